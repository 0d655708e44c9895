package service

import "strings"

const TopicGeneral = "general"

// topicKeywords is checked in order; the first topic with a hit wins.
var topicKeywords = []struct {
	topic    string
	keywords []string
}{
	{"leadership", []string{"lead", "manage", "manager", "management", "mentor", "team", "hire", "hiring", "director", "head of", "people", "coach", "delegate"}},
	{"engineering", []string{"code", "coding", "program", "software", "engineer", "develop", "backend", "frontend", "architect", "system", "infrastructure", "devops", "cloud", "kubernetes", "golang", "python", "java", "api", "scale"}},
	{"data", []string{"data", "analytics", "analysis", "sql", "machine learning", "statistic", "model", "dashboard", "metrics", "bi "}},
	{"product", []string{"product", "roadmap", "user research", "customer", "feature", "strategy", "prioriti", "market"}},
	{"operations", []string{"operation", "process", "logistics", "budget", "vendor", "supply", "compliance", "project manage", "deliver", "execution"}},
	{"communication", []string{"communicat", "present", "write", "writing", "stakeholder", "negotiat", "public speaking", "explain", "collaborat"}},
}

// classifyTopic maps a capability question onto a coarse topic.
func classifyTopic(q string) string {
	q = strings.ToLower(q) + " "
	for _, t := range topicKeywords {
		for _, k := range t.keywords {
			if strings.Contains(q, k) {
				return t.topic
			}
		}
	}
	return TopicGeneral
}
