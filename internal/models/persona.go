package models

import (
	"fmt"
	"strings"
)

// Pronouns holds the third-person forms used when describing the subject.
type Pronouns struct {
	Subject    string `yaml:"subject"`
	Possessive string `yaml:"possessive"`
	Object     string `yaml:"object"`
	Reflexive  string `yaml:"reflexive"`
	Be         string `yaml:"be"`
	Have       string `yaml:"have"`
	Was        string `yaml:"was"`
	// Plural is set for "they": verbs keep their base form.
	Plural bool `yaml:"plural"`
}

// PronounsFor returns the pronoun set for "he", "she" or "they".
func PronounsFor(p string) Pronouns {
	switch strings.ToLower(strings.TrimSpace(p)) {
	case "she", "her":
		return Pronouns{Subject: "she", Possessive: "her", Object: "her", Reflexive: "herself", Be: "is", Have: "has", Was: "was"}
	case "they", "them":
		return Pronouns{Subject: "they", Possessive: "their", Object: "them", Reflexive: "themselves", Be: "are", Have: "have", Was: "were", Plural: true}
	default:
		return Pronouns{Subject: "he", Possessive: "his", Object: "him", Reflexive: "himself", Be: "is", Have: "has", Was: "was"}
	}
}

// Persona describes the subject of the knowledge base and the assistant that
// answers on the subject's behalf, plus the fixed statements used by canned
// responses.
type Persona struct {
	Name          string   `yaml:"name"`
	AssistantName string   `yaml:"assistant_name"`
	Pronoun       string   `yaml:"pronoun"`
	Pronouns      Pronouns `yaml:"-"`

	Biography      string `yaml:"biography"`
	Summary        string `yaml:"summary"`
	Compensation   string `yaml:"compensation"`
	KnowledgeScope string `yaml:"knowledge_scope"`
	Accomplishment string `yaml:"accomplishments"`
	Process        string `yaml:"process"`
	Development    string `yaml:"development_areas"`
	Fallback       string `yaml:"fallback"`

	// Capabilities maps a coarse topic to a capability statement.
	Capabilities map[string]string `yaml:"capabilities"`
}

// FirstName returns the first word of the subject's name.
func (p Persona) FirstName() string {
	if f := strings.Fields(p.Name); len(f) > 0 {
		return f[0]
	}
	return p.Name
}

// PossessiveName returns the subject's name in possessive form.
func (p Persona) PossessiveName() string {
	return possessiveName(p.Name)
}

// WithDefaults fills every empty statement from the subject's name.
func (p Persona) WithDefaults() Persona {
	if p.Name == "" {
		p.Name = "the candidate"
	}
	if p.AssistantName == "" {
		p.AssistantName = "Echo"
	}
	p.Pronouns = PronounsFor(p.Pronoun)
	subj := capitalize(p.Pronouns.Subject)
	poss := p.Pronouns.Possessive

	if p.Biography == "" {
		p.Biography = fmt.Sprintf("%s is a professional whose background, experience and skills are documented in this assistant's knowledge base. Ask about %s roles, projects, strengths or the way %s works.",
			p.Name, poss, p.Pronouns.Subject)
	}
	if p.Summary == "" {
		p.Summary = fmt.Sprintf("Here is the short version: %s brings hands-on delivery experience, a track record of owning outcomes end to end, and a habit of documenting and improving the way teams work. Ask about any one area to go deeper.",
			p.Name)
	}
	if p.Compensation == "" {
		p.Compensation = fmt.Sprintf("Compensation is something %s prefers to discuss directly once there is a concrete role in view. %s is open to a conversation that reflects the scope and responsibilities of the position.",
			p.Name, subj)
	}
	if p.KnowledgeScope == "" {
		p.KnowledgeScope = fmt.Sprintf("%s can answer questions about %s: %s experience, projects, skills, working style and career goals. Try asking about a specific role or a time %s solved a hard problem.",
			p.AssistantName, p.Name, poss, p.Pronouns.Subject)
	}
	if p.Accomplishment == "" {
		p.Accomplishment = fmt.Sprintf("%s proudest wins are the ones with measurable results: projects shipped, processes improved and teams helped to grow. Ask about a specific role to hear the details.",
			capitalize(possessiveName(p.Name)))
	}
	if p.Process == "" {
		p.Process = fmt.Sprintf("%s works from clear written process: define the goal, agree on how success is measured, break the work into small steps, and review results openly so the next iteration is better.",
			p.Name)
	}
	if p.Development == "" {
		p.Development = fmt.Sprintf("An area %s is actively developing is delegating earlier on large projects. %s has been working on handing off ownership sooner so that teams grow alongside the work.",
			p.Name, subj)
	}
	if p.Fallback == "" {
		p.Fallback = fmt.Sprintf("Sorry, an answer could not be put together right now. Please try rephrasing the question or ask about a specific part of %s background.",
			possessiveName(p.Name))
	}
	if p.Capabilities == nil {
		p.Capabilities = map[string]string{}
	}
	return p
}

func possessiveName(name string) string {
	if strings.HasSuffix(name, "s") {
		return name + "'"
	}
	return name + "'s"
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
