package service

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"career-qa/internal/models"
)

// IntentKind is the routing decision for a query.
type IntentKind int

const (
	IntentRetrieve IntentKind = iota
	IntentHostile
	IntentEmotional
	IntentIdentity
	IntentEverything
	IntentCapability
	IntentCompensation
	IntentKnowledgeScope
	IntentAccomplishments
	IntentProcess
	IntentWeakness
	IntentChallenge
	IntentLowSignal
	IntentContinuation
	IntentContinuationUnclear
	IntentSmallTalk
)

var intentNames = map[IntentKind]string{
	IntentRetrieve:            "retrieve",
	IntentHostile:             "hostile",
	IntentEmotional:           "emotional",
	IntentIdentity:            "identity",
	IntentEverything:          "everything",
	IntentCapability:          "capability",
	IntentCompensation:        "compensation",
	IntentKnowledgeScope:      "knowledge_scope",
	IntentAccomplishments:     "accomplishments",
	IntentProcess:             "process",
	IntentWeakness:            "weakness",
	IntentChallenge:           "challenge",
	IntentLowSignal:           "low_signal",
	IntentContinuation:        "continuation",
	IntentContinuationUnclear: "continuation_unclear",
	IntentSmallTalk:           "small_talk",
}

func (k IntentKind) String() string {
	if name, ok := intentNames[k]; ok {
		return name
	}
	return "unknown"
}

// Shape is how the answer text is produced and laid out.
type Shape int

const (
	ShapeGenerated Shape = iota
	ShapeVerbatim
	ShapeCanned
	ShapeSTAR
	ShapeMultiPart
	ShapeAmbiguous
	ShapeFallback
)

var shapeNames = map[Shape]string{
	ShapeGenerated: "generated",
	ShapeVerbatim:  "verbatim",
	ShapeCanned:    "canned",
	ShapeSTAR:      "star",
	ShapeMultiPart: "multi_part",
	ShapeAmbiguous: "ambiguous",
	ShapeFallback:  "fallback",
}

func (s Shape) String() string {
	if name, ok := shapeNames[s]; ok {
		return name
	}
	return "unknown"
}

// Small talk kinds.
const (
	SmallTalkGreeting  = "greeting"
	SmallTalkThanks    = "thanks"
	SmallTalkFarewell  = "farewell"
	SmallTalkWeather   = "weather"
	SmallTalkJoke      = "joke"
	SmallTalkMeaning   = "meaning"
	SmallTalkHowAreYou = "how_are_you"
)

// IntentDecision is the result of Classify. Query is the text retrieval
// should use; it differs from the input only for continuations.
type IntentDecision struct {
	Kind      IntentKind
	Shape     Shape
	Query     string
	Topic     string
	SmallTalk string
	// TooShort marks a LowSignal decision made only because the query is
	// under three characters.
	TooShort bool
}

// Canned reports whether the decision is answered from a fixed template
// without retrieval or generation.
func (d IntentDecision) Canned() bool {
	return d.Shape == ShapeCanned
}

type intentInput struct {
	query string
	// lower has the subject's name replaced by "the subject".
	lower string
	prior string
}

type intentRule struct {
	kind  IntentKind
	match func(in intentInput, d *IntentDecision) bool
}

var (
	// technicalWastePattern covers engineering terms that share words with
	// insults, such as "garbage collection" or "trash-collection".
	technicalWastePattern = regexp.MustCompile(`(?i)\b(garbage|trash)[\s-]*(collect\w*|collector|can|bin|pickup|day|compactor)\b`)

	hostilePattern = regexp.MustCompile(`(?i)\b(fuck\w*|shit\w*|bullshit|stupid|idiot\w*|dumb|moron\w*|suck|sucks|useless|worthless|garbage|trash|shut up|hate you|loser|pathetic|crap|scam\w*)\b`)

	emotionalPattern = regexp.MustCompile(`(?i)\b((i'?m|i\s+am|i\s+feel|so|this\s+is|that'?s|that\s+is|getting)\s+(really\s+|so\s+|very\s+)?(confus\w*|frustrat\w*|annoy\w*|upset|overwhelm\w*|lost)|frustrating|ugh+|argh+|i\s+don'?t\s+(understand|get\s+it)|doesn'?t\s+make\s+sense|makes\s+no\s+sense|not\s+making\s+sense|not\s+helpful|this\s+isn'?t\s+working|tired\s+of\s+this)\b`)

	identityPattern = regexp.MustCompile(`(?i)^(who\s+is|who's|whos|who\s+exactly\s+is)\s+(he|she|they|this\s+(person|guy|candidate)|the\s+(subject|candidate|person))\s*[?.!]*$|^(tell\s+me\s+about|introduce|describe)\s+(him|her|them|yourself|the\s+(subject|candidate))\s*[?.!]*$`)

	everythingPattern = regexp.MustCompile(`(?i)\b(tell\s+me\s+everything|everything\s+(about|on)|all\s+about\s+(him|her|them|the\s+subject)|full\s+(summary|overview|picture|rundown|story)|give\s+me\s+(a|an|the)\s+(overview|summary|rundown)|sum\s+(him|her|them|the\s+subject)\s+up|in\s+a\s+nutshell|tl;?\s?dr)\b`)

	capabilityPattern = regexp.MustCompile(`(?i)^(can|could|would|is|does)\s+(he|she|they|the\s+subject)\b.*\b(do|handle|lead|manage|build|run|own|fit|capable|able|qualified|suited|ready|good\s+at|good\s+fit|right\s+(person|fit|choice))\b|\b(good\s+fit|a\s+fit\s+for|qualified\s+(for|to)|capable\s+of|suited\s+(for|to)|right\s+(person|candidate)\s+for|hire\s+(him|her|them|the\s+subject))\b`)

	compensationPattern = regexp.MustCompile(`(?i)\b(salary|salaries|compensation|remuneration|paycheck|pay\s+(range|band|expectations?)|expected\s+(pay|salary|rate|wages?)|(his|her|their|the\s+subject's)\s+(pay|wages?|income|bonus|equity|rate|asking\s+price)|(signing|annual|performance)\s+bonus|equity\s+(stake|grant|package|split|ask)|stock\s+options|day\s+rate|hourly\s+rate|(is|was|does|did|would|will)\s+(he|she|they|the\s+subject)\s+(get\s+|be\s+|expect\s+to\s+be\s+)?paid|how\s+much\s+(does|do|would|is|will)\b.*\b(cost|charge|make|earn|want|expect|ask|paid))\b`)

	scopePattern = regexp.MustCompile(`(?i)\b(what\s+(do|can)\s+you\s+(know|tell\s+me|answer|help\s+with|do)|what\s+can\s+i\s+ask|what\s+should\s+i\s+ask|what\s+(kind|sort|types?)\s+of\s+questions|what\s+are\s+you|who\s+are\s+you|how\s+does\s+this\s+work)\b|^help\s*[?.!]*$`)

	accomplishmentPattern = regexp.MustCompile(`(?i)\b(accomplish\w*|achievement\w*|proudest|most\s+proud|biggest\s+wins?|top\s+wins?|key\s+wins?|greatest\s+success\w*|notable\s+(results|successes|wins)|track\s+record|career\s+highlights?)\b`)

	processPattern = regexp.MustCompile(`(?i)\b(sops?|standard\s+operating\s+procedures?|(his|her|their|the\s+subject's|work|working)\s+(process|processes|workflows?|methodology)|methodolog\w*|how\s+(does|do)\s+(he|she|they|the\s+subject)\s+(work|approach|operate|organi[sz]e|plan)|approach\s+to\s+work|way\s+of\s+working)\b`)

	weaknessPattern = regexp.MustCompile(`(?i)\b(weakness\w*|weak\s+(spots?|points?|areas?)|shortcomings?|flaws?|failures?|failed|fail|mistakes?|regrets?|areas?\s+(for|of)\s+(improvement|growth|development)|improve\s+on|struggles?|struggled|bad\s+at|not\s+good\s+at)\b`)

	challengePattern = regexp.MustCompile(`(?i)\b(prove\s+it|prove\s+(that|this|to\s+me)|i\s+don'?t\s+believe|not\s+convinced|convince\s+me|(is|are)\s+(that|this|any\s+of\s+this)\s+(true|real|a\s+lie)|you'?re\s+lying|lying|liar|made\s+(that|this|it)\s+up|sounds\s+fake|bet\s+you\s+can'?t|stump\s+you|gotcha)\b`)

	greetingPattern  = regexp.MustCompile(`(?i)^(hi|hello|hey|hiya|howdy|yo|sup|good\s+(morning|afternoon|evening)|greetings)\b`)
	thanksPattern    = regexp.MustCompile(`(?i)\b(thanks|thank\s+you|thx|ty|cheers|appreciate\s+it)\b`)
	farewellPattern  = regexp.MustCompile(`(?i)^(bye|goodbye|good\s+bye|see\s+you|see\s+ya|cya|later|good\s+night)\b`)
	weatherPattern   = regexp.MustCompile(`(?i)\bweather\b`)
	jokePattern      = regexp.MustCompile(`(?i)\b(joke|jokes|make\s+me\s+laugh|something\s+funny)\b`)
	meaningPattern   = regexp.MustCompile(`(?i)\bmeaning\s+of\s+life\b`)
	howAreYouPattern = regexp.MustCompile(`(?i)\b(how\s+are\s+you|how's\s+it\s+going|how\s+is\s+it\s+going|what's\s+up)\b`)

	aboutSubjectPattern = regexp.MustCompile(`(?i)\b(the\s+subject|he|she|they|him|her|his|their|them|experience|career|role|job|project|projects|skills?|background|resume|cv)\b`)

	starPattern = regexp.MustCompile(`(?i)\b(tell\s+me\s+about\s+a\s+time|describe\s+a\s+(time|situation)|give\s+(me\s+)?an\s+example\s+of|an\s+example\s+(of|when)|walk\s+me\s+through\s+a\s+(time|situation)|share\s+(a|an)\s+(time|example|story)|(has|did)\s+(he|she|they|the\s+subject)\s+ever|a\s+time\s+(when\s+)?(he|she|they|the\s+subject))\b`)

	multiPartPattern = regexp.MustCompile(`(?i)\b(and\s+also|as\s+well\s+as|additionally)\b|\b(what|how|why|where|when|which|who)\b[^?]*\band\s+(what|how|why|where|when|which|who)\b`)
)

var fillerWords = map[string]struct{}{
	"hmm": {}, "hm": {}, "hmmm": {}, "um": {}, "umm": {}, "uh": {}, "uhh": {}, "erm": {},
	"huh": {}, "idk": {}, "lol": {}, "lmao": {}, "meh": {}, "asdf": {},
}

var affirmatives = map[string]struct{}{
	"yes": {}, "yeah": {}, "yea": {}, "yep": {}, "yup": {}, "y": {}, "ya": {}, "sure": {},
	"ok": {}, "okay": {}, "k": {}, "kk": {}, "please": {}, "yes please": {}, "sure thing": {},
	"go on": {}, "go ahead": {}, "continue": {}, "more": {}, "more please": {},
	"tell me more": {}, "sounds good": {}, "absolutely": {}, "definitely": {}, "of course": {},
	"why not": {}, "keep going": {}, "and": {}, "then": {},
}

var continuationStopwords = map[string]struct{}{
	"about": {}, "above": {}, "after": {}, "again": {}, "also": {}, "because": {}, "been": {},
	"before": {}, "being": {}, "between": {}, "both": {}, "could": {}, "does": {}, "doing": {},
	"down": {}, "during": {}, "each": {}, "from": {}, "further": {}, "have": {}, "having": {},
	"hear": {}, "here": {}, "into": {}, "just": {}, "know": {}, "like": {}, "more": {}, "most": {},
	"much": {}, "only": {}, "other": {}, "over": {}, "same": {}, "should": {}, "some": {},
	"such": {}, "than": {}, "that": {}, "their": {}, "them": {}, "then": {}, "there": {},
	"these": {}, "they": {}, "this": {}, "those": {}, "through": {}, "under": {}, "until": {},
	"very": {}, "want": {}, "were": {}, "what": {}, "when": {}, "where": {}, "which": {},
	"while": {}, "will": {}, "with": {}, "would": {}, "your": {}, "yours": {}, "himself": {},
	"herself": {}, "themselves": {}, "subject": {}, "tell": {}, "said": {}, "says": {},
	"ask": {}, "asking": {}, "happy": {}, "share": {}, "detail": {}, "details": {}, "sure": {},
	"well": {}, "anything": {}, "something": {}, "else": {}, "question": {},
}

const continuationMaxKeywords = 6

var intentRules = []intentRule{
	{IntentHostile, func(in intentInput, _ *IntentDecision) bool {
		return hostilePattern.MatchString(technicalWastePattern.ReplaceAllString(in.lower, " "))
	}},
	{IntentEmotional, matchPattern(emotionalPattern)},
	{IntentIdentity, matchPattern(identityPattern)},
	{IntentEverything, matchPattern(everythingPattern)},
	{IntentCapability, func(in intentInput, d *IntentDecision) bool {
		if !capabilityPattern.MatchString(in.lower) {
			return false
		}
		d.Topic = classifyTopic(in.lower)
		return true
	}},
	{IntentCompensation, matchPattern(compensationPattern)},
	{IntentKnowledgeScope, matchPattern(scopePattern)},
	{IntentAccomplishments, matchPattern(accomplishmentPattern)},
	{IntentProcess, matchPattern(processPattern)},
	{IntentWeakness, matchPattern(weaknessPattern)},
	{IntentChallenge, matchPattern(challengePattern)},
	{IntentLowSignal, func(in intentInput, d *IntentDecision) bool {
		low, short := isLowSignal(in)
		d.TooShort = short
		return low
	}},
	{IntentContinuation, func(in intentInput, d *IntentDecision) bool {
		if in.prior == "" || !isAffirmative(in.lower) {
			return false
		}
		keywords := continuationKeywords(in.prior)
		if len(keywords) == 0 {
			d.Kind = IntentContinuationUnclear
			return true
		}
		d.Query = "Tell me more about " + strings.Join(keywords, " ")
		return true
	}},
	{IntentSmallTalk, func(in intentInput, d *IntentDecision) bool {
		kind := smallTalkKind(in.lower)
		if kind == "" {
			return false
		}
		d.SmallTalk = kind
		return true
	}},
}

func matchPattern(re *regexp.Regexp) func(intentInput, *IntentDecision) bool {
	return func(in intentInput, _ *IntentDecision) bool {
		return re.MatchString(in.lower)
	}
}

// Classify routes a normalized query. Rules are tried in priority order and
// the first match wins; anything unmatched goes to retrieval with a shape
// picked from the query's form.
func Classify(normalizedQuery, priorTurn string, persona models.Persona) IntentDecision {
	query := strings.TrimSpace(normalizedQuery)
	in := intentInput{
		query: query,
		lower: canonicalizeSubject(strings.ToLower(query), persona),
		prior: strings.TrimSpace(priorTurn),
	}

	for _, rule := range intentRules {
		d := IntentDecision{Kind: rule.kind, Shape: ShapeCanned, Query: query}
		if !rule.match(in, &d) {
			continue
		}
		if d.Kind == IntentContinuation {
			d.Shape = ShapeGenerated
		}
		return d
	}

	return IntentDecision{Kind: IntentRetrieve, Shape: retrievalShape(in.lower), Query: query}
}

func retrievalShape(lower string) Shape {
	switch {
	case starPattern.MatchString(lower):
		return ShapeSTAR
	case strings.Count(lower, "?") >= 2 || multiPartPattern.MatchString(lower):
		return ShapeMultiPart
	case len(strings.Fields(lower)) <= 3:
		return ShapeAmbiguous
	default:
		return ShapeGenerated
	}
}

// canonicalizeSubject rewrites the subject's full and first name to "the
// subject" so the patterns need no per-persona variants.
func canonicalizeSubject(lower string, persona models.Persona) string {
	for _, alias := range subjectAliases(persona) {
		re, err := regexp.Compile(`\b` + regexp.QuoteMeta(alias) + `\b`)
		if err != nil {
			continue
		}
		lower = re.ReplaceAllString(lower, "the subject")
	}
	return lower
}

func subjectAliases(persona models.Persona) []string {
	name := strings.ToLower(strings.TrimSpace(persona.Name))
	if name == "" || strings.HasPrefix(name, "the ") {
		return nil
	}
	aliases := []string{name}
	if first := strings.ToLower(persona.FirstName()); first != name && utf8.RuneCountInString(first) > 2 {
		aliases = append(aliases, first)
	}
	return aliases
}

// isLowSignal reports whether the query carries too little to act on, and
// whether length alone was the reason.
func isLowSignal(in intentInput) (low, short bool) {
	if !strings.ContainsFunc(in.lower, func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsDigit(r)
	}) {
		return true, false
	}

	bare := trimPunct(in.lower)
	if _, ok := fillerWords[bare]; ok {
		return true, false
	}
	if isAffirmative(in.lower) {
		// With a prior turn the affirmative continues that thread instead.
		return in.prior == "", false
	}
	if greetingPattern.MatchString(bare) {
		return false, false
	}
	short = utf8.RuneCountInString(bare) < 3
	return short, short
}

func isAffirmative(lower string) bool {
	_, ok := affirmatives[strings.Join(strings.Fields(trimPunct(lower)), " ")]
	return ok
}

func trimPunct(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsPunct(r) || unicode.IsSpace(r) || unicode.IsSymbol(r)
	})
}

// continuationKeywords picks up to continuationMaxKeywords distinct content
// words longer than three characters from the prior turn.
func continuationKeywords(prior string) []string {
	out := make([]string, 0, continuationMaxKeywords)
	for _, tok := range distinctTokens(strings.ToLower(prior), 4) {
		if _, stop := continuationStopwords[tok]; stop {
			continue
		}
		out = append(out, tok)
		if len(out) == continuationMaxKeywords {
			break
		}
	}
	return out
}

func smallTalkKind(lower string) string {
	if aboutSubjectPattern.MatchString(lower) {
		return ""
	}
	switch {
	case meaningPattern.MatchString(lower):
		return SmallTalkMeaning
	case jokePattern.MatchString(lower):
		return SmallTalkJoke
	case weatherPattern.MatchString(lower):
		return SmallTalkWeather
	case howAreYouPattern.MatchString(lower):
		return SmallTalkHowAreYou
	case thanksPattern.MatchString(lower):
		return SmallTalkThanks
	case farewellPattern.MatchString(lower):
		return SmallTalkFarewell
	case greetingPattern.MatchString(lower):
		return SmallTalkGreeting
	default:
		return ""
	}
}
