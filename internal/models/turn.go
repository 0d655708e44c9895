package models

// Turn is one request of a conversation. The service keeps no session state;
// LastBotMessage is whatever the caller echoes back from the previous answer.
type Turn struct {
	Query          string
	LastBotMessage string
}
