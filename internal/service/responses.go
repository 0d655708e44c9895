package service

import (
	"fmt"
	"strings"

	"career-qa/internal/models"
)

// ambiguousOpener prefixes answers to short questions that could mean
// several things.
const ambiguousOpener = "It's not fully clear what you're asking, but here is what fits best.\n\n"

var capabilityTemplates = map[string]string{
	"leadership":    "%[1]s has led teams and cross-functional initiatives and is comfortable owning outcomes, setting direction and growing the people around %[3]s. Ask about a specific team or project to see how %[2]s approached it.",
	"engineering":   "%[1]s has hands-on technical depth and has designed, built and operated production systems. Ask about a particular technology or project for the details of what %[2]s built.",
	"data":          "%[1]s works comfortably with data: defining metrics, analysing results and using evidence to make decisions. Ask about a project where the numbers mattered to hear how %[2]s used them.",
	"product":       "%[1]s thinks in terms of users and outcomes, and has shaped roadmaps and priorities with customers in mind. Ask about a product decision to hear how %[2]s made the call.",
	"operations":    "%[1]s is strong on execution: planning the work, keeping delivery on track and improving the process along the way. Ask about a delivery that was under pressure to see how %[2]s handled it.",
	"communication": "%[1]s communicates clearly with engineers, stakeholders and leadership alike, in writing and in person. Ask about a difficult conversation or presentation to hear how %[2]s handled it.",
	TopicGeneral:    "Based on %[4]s track record, %[1]s can take on that kind of work. The best way to judge the fit is to ask about a specific role or project that resembles it.",
}

// RenderCanned returns the fixed response text for a canned decision.
func RenderCanned(d IntentDecision, persona models.Persona) string {
	if persona.Pronouns.Subject == "" {
		persona = persona.WithDefaults()
	}
	name := persona.Name
	subj := persona.Pronouns.Subject

	switch d.Kind {
	case IntentHostile:
		return fmt.Sprintf("Let's keep this constructive. Questions about %s experience, projects or skills will get a straight answer.", persona.PossessiveName())
	case IntentEmotional:
		return fmt.Sprintf("Sorry that has been frustrating. Let's try a narrower angle: ask about one specific thing, such as a role %s held or a project %s led, and the answer will be more focused.", name, subj)
	case IntentIdentity:
		return persona.Biography
	case IntentEverything:
		return persona.Summary
	case IntentCapability:
		return capabilityStatement(d.Topic, persona)
	case IntentCompensation:
		return persona.Compensation
	case IntentKnowledgeScope:
		return persona.KnowledgeScope
	case IntentAccomplishments:
		return persona.Accomplishment
	case IntentProcess:
		return persona.Process
	case IntentWeakness:
		return persona.Development
	case IntentChallenge:
		return fmt.Sprintf("Fair enough to ask for evidence. Everything here comes from %s documented experience. Pick a specific claim, such as a project or a result, and ask for the details behind it.", persona.PossessiveName())
	case IntentLowSignal:
		return fmt.Sprintf("Could you say a bit more? For example, ask about %s experience, a project %s worked on, or how %s approaches a problem.", persona.PossessiveName(), subj, subj)
	case IntentContinuationUnclear:
		return "Happy to keep going. Which part would you like to hear more about?"
	case IntentSmallTalk:
		return smallTalkResponse(d.SmallTalk, persona)
	default:
		return persona.Fallback
	}
}

func capabilityStatement(topic string, persona models.Persona) string {
	if topic == "" {
		topic = TopicGeneral
	}
	if s, ok := persona.Capabilities[topic]; ok && strings.TrimSpace(s) != "" {
		return s
	}
	tmpl, ok := capabilityTemplates[topic]
	if !ok {
		tmpl = capabilityTemplates[TopicGeneral]
	}
	p := persona.Pronouns
	return fmt.Sprintf(tmpl, persona.Name, p.Subject, p.Object, persona.PossessiveName())
}

func smallTalkResponse(kind string, persona models.Persona) string {
	name := persona.Name
	switch kind {
	case SmallTalkGreeting:
		return fmt.Sprintf("Hello! %s here. Ask anything about %s background, projects or skills.", persona.AssistantName, persona.PossessiveName())
	case SmallTalkThanks:
		return fmt.Sprintf("You're welcome. Anything else you'd like to know about %s?", name)
	case SmallTalkFarewell:
		return fmt.Sprintf("Thanks for stopping by. Come back any time with more questions about %s.", name)
	case SmallTalkWeather:
		return fmt.Sprintf("No forecasts here, unfortunately. The only thing this assistant covers is %s professional background.", persona.PossessiveName())
	case SmallTalkJoke:
		return fmt.Sprintf("Humor is not the strong suit here, but questions about %s work are. Try asking about a recent project.", persona.PossessiveName())
	case SmallTalkMeaning:
		return fmt.Sprintf("That one is above this assistant's pay grade. What it can tell you about is %s career.", persona.PossessiveName())
	case SmallTalkHowAreYou:
		return fmt.Sprintf("Doing well, thanks for asking. What would you like to know about %s?", name)
	default:
		return persona.KnowledgeScope
	}
}
