package dto

type QueryRequest struct {
	Q              string `json:"q" example:"What did he build at his last company?"`
	LastBotMessage string `json:"lastBotMessage,omitempty"`
}

type QueryResponse struct {
	Answer string `json:"answer"`
	Intent string `json:"intent"`
	Shape  string `json:"shape"`
}

type SuggestRequest struct {
	Q string `json:"q,omitempty"`
}

type SuggestResponse struct {
	Suggestions []string `json:"suggestions"`
}

type StatusResponse struct {
	Status              string `json:"status"`
	Entries             int    `json:"entries"`
	Semantic            string `json:"semantic" example:"enabled"`
	EmbeddingDimensions int    `json:"embeddingDimensions"`
	GenerationProvider  string `json:"generationProvider"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
