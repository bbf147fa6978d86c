package tagger

import (
	"strings"

	"github.com/ppiankov/copycop/internal/model"
)

// Coarse term labels
const (
	LabelNoun        = "Noun"
	LabelPlural      = "Plural"
	LabelProperNoun  = "ProperNoun"
	LabelVerb        = "Verb"
	LabelCopula      = "Copula"
	LabelAuxiliary   = "Auxiliary"
	LabelModal       = "Modal"
	LabelPastTense   = "PastTense"
	LabelGerund      = "Gerund"
	LabelParticiple  = "Participle"
	LabelAdjective   = "Adjective"
	LabelAdverb      = "Adverb"
	LabelDeterminer  = "Determiner"
	LabelPronoun     = "Pronoun"
	LabelPreposition = "Preposition"
	LabelConjunction = "Conjunction"
	LabelValue       = "Value"
	LabelContraction = "Contraction"
	LabelQuestion    = "QuestionWord"
)

// entry is one lexicon record
type entry struct {
	penn   model.PosTag
	swtch  []model.PosTag
	labels []string
}

type lexicon map[string]entry

func (l lexicon) add(penn model.PosTag, labels []string, words ...string) {
	for _, w := range words {
		l[w] = entry{penn: penn, labels: labels}
	}
}

func (l lexicon) addSwitch(a, b model.PosTag, labels []string, words ...string) {
	for _, w := range words {
		l[w] = entry{penn: a, swtch: []model.PosTag{a, b}, labels: labels}
	}
}

// irregular verbs: base, past, participle
var irregularVerbs = [][3]string{
	{"go", "went", "gone"}, {"write", "wrote", "written"}, {"run", "ran", "run"},
	{"make", "made", "made"}, {"take", "took", "taken"}, {"get", "got", "gotten"},
	{"give", "gave", "given"}, {"see", "saw", "seen"}, {"know", "knew", "known"},
	{"find", "found", "found"}, {"build", "built", "built"}, {"set", "set", "set"},
	{"put", "put", "put"}, {"read", "read", "read"}, {"begin", "began", "begun"},
	{"choose", "chose", "chosen"}, {"send", "sent", "sent"}, {"keep", "kept", "kept"},
	{"leave", "left", "left"}, {"bring", "brought", "brought"}, {"think", "thought", "thought"},
	{"buy", "bought", "bought"}, {"show", "showed", "shown"}, {"hide", "hid", "hidden"},
	{"break", "broke", "broken"}, {"speak", "spoke", "spoken"}, {"eat", "ate", "eaten"},
	{"say", "said", "said"}, {"tell", "told", "told"}, {"come", "came", "come"},
	{"become", "became", "become"}, {"hold", "held", "held"}, {"feel", "felt", "felt"},
	{"lose", "lost", "lost"}, {"pay", "paid", "paid"}, {"mean", "meant", "meant"},
	{"split", "split", "split"}, {"cut", "cut", "cut"}, {"let", "let", "let"},
	{"fall", "fell", "fallen"}, {"forget", "forgot", "forgotten"}, {"grow", "grew", "grown"},
	{"draw", "drew", "drawn"}, {"throw", "threw", "thrown"}, {"drive", "drove", "driven"},
	{"rise", "rose", "risen"}, {"sell", "sold", "sold"}, {"win", "won", "won"},
	{"understand", "understood", "understood"}, {"stand", "stood", "stood"},
	{"sit", "sat", "sat"}, {"lead", "led", "led"}, {"meet", "met", "met"},
	{"spend", "spent", "spent"}, {"bind", "bound", "bound"}, {"teach", "taught", "taught"},
	{"catch", "caught", "caught"}, {"fight", "fought", "fought"}, {"wear", "wore", "worn"},
	{"shake", "shook", "shaken"}, {"steal", "stole", "stolen"}, {"freeze", "froze", "frozen"},
	{"fly", "flew", "flown"}, {"blow", "blew", "blown"}, {"rewrite", "rewrote", "rewritten"},
	{"override", "overrode", "overridden"}, {"overwrite", "overwrote", "overwritten"},
}

// regular verbs that are never nouns in technical prose
var regularVerbs = []string{
	"install", "configure", "add", "create", "remove", "delete", "open", "close",
	"enable", "disable", "define", "describe", "explain", "include", "provide",
	"require", "allow", "avoid", "consider", "compare", "connect", "follow",
	"generate", "ignore", "initialize", "load", "move", "parse", "pass", "publish",
	"rename", "replace", "restart", "submit", "try", "upgrade", "validate",
	"verify", "want", "apply", "attach", "refer", "prefer", "contain", "suggest",
	"deploy", "exist", "happen", "learn", "like", "live", "love", "look", "seem",
	"accept", "assume", "clone", "compile", "convert", "declare", "detect",
	"download", "ensure", "execute", "extend", "extract", "fetch", "implement",
	"improve", "inherit", "insert", "introduce", "invoke", "mention", "modify",
	"notice", "obtain", "omit", "prevent", "receive", "render", "resolve", "retry",
	"specify", "reduce", "decide", "finish", "expect",
}

// noun/verb words carry an NN|VB switch
var nounVerbs = []string{
	"query", "fix", "test", "check", "update", "contact", "play", "call", "release",
	"report", "request", "review", "search", "change", "need", "support", "name",
	"access", "display", "list", "map", "plan", "design", "document", "import",
	"export", "work", "use", "copy", "start", "stop", "type", "push", "pull", "merge",
	"process", "return", "print", "log", "commit", "drop", "turn", "watch", "walk",
	"sync", "reset", "edit", "build", "run", "set", "cut", "split", "show", "order",
	"answer", "cause", "control", "question", "result", "step", "view", "link",
	"save", "guess", "help", "mark", "hope", "offer", "record", "visit", "store",
}

// consonant doubling before -ed and -ing
var doubled = map[string]bool{
	"stop": true, "plan": true, "drop": true, "commit": true, "refer": true,
	"prefer": true, "log": true, "map": true, "submit": true, "omit": true,
	"cut": true, "run": true, "set": true, "split": true, "put": true,
	"let": true, "sit": true, "begin": true, "forget": true, "win": true, "get": true,
}

func newLexicon() lexicon {
	lex := make(lexicon)

	lex.add(model.TagDT, []string{LabelDeterminer},
		"the", "a", "an", "this", "that", "these", "those", "some", "any", "no",
		"every", "each", "all", "both", "another", "either", "neither")

	lex.add(model.TagPRP, []string{LabelPronoun},
		"i", "you", "he", "she", "it", "we", "they", "me", "him", "us", "them",
		"myself", "yourself", "himself", "herself", "itself", "ourselves", "themselves")

	lex.add(model.TagPRPS, []string{LabelPronoun},
		"my", "your", "his", "her", "its", "our", "their")

	lex.add(model.TagIN, []string{LabelPreposition},
		"in", "on", "at", "for", "with", "by", "from", "of", "about", "into",
		"through", "during", "before", "after", "above", "below", "between", "under",
		"over", "against", "among", "around", "behind", "beside", "beyond", "near",
		"toward", "towards", "upon", "within", "without", "across", "along", "inside",
		"outside", "throughout", "if", "because", "although", "while", "since",
		"unless", "until", "whether", "than", "as", "per", "via")

	lex.add(model.TagTO, nil, "to")
	lex.add(model.TagCC, []string{LabelConjunction}, "and", "or", "but", "nor", "yet", "so")

	lex.add(model.TagMD, []string{LabelVerb, LabelModal},
		"can", "could", "will", "would", "shall", "should", "may", "might", "must")

	lex.add(model.TagWDT, []string{LabelQuestion}, "which", "whatever")
	lex.add(model.TagWP, []string{LabelQuestion, LabelPronoun}, "who", "whom", "what")
	lex.add(model.TagWPS, []string{LabelQuestion}, "whose")
	lex.add(model.TagWRB, []string{LabelQuestion}, "when", "where", "why", "how")

	lex.add(model.TagRB, []string{LabelAdverb},
		"not", "very", "also", "just", "only", "now", "then", "here", "there",
		"always", "never", "often", "sometimes", "already", "still", "even", "too",
		"quite", "really", "again", "usually", "ever", "soon", "later", "instead",
		"together", "however", "therefore", "rather", "almost", "perhaps")

	lex.add(model.TagRP, nil, "up", "out", "down", "off", "back", "away")
	lex.add(model.TagUH, nil, "please", "yes", "hello", "oh")

	lex.add(model.TagCD, []string{LabelValue},
		"one", "two", "three", "four", "five", "six", "seven", "eight", "nine", "ten")

	// copulas map to VB so the VB VBN passive pattern holds in every tense
	lex.add(model.TagVB, []string{LabelVerb, LabelCopula}, "be", "is", "am", "are", "being", "been")
	lex.add(model.TagVB, []string{LabelVerb, LabelCopula, LabelPastTense}, "was", "were")

	lex.add(model.TagVBP, []string{LabelVerb, LabelAuxiliary}, "have", "do")
	lex.add(model.TagVBZ, []string{LabelVerb, LabelAuxiliary}, "has", "does")
	lex.add(model.TagVBD, []string{LabelVerb, LabelAuxiliary, LabelPastTense}, "had", "did")
	lex.add(model.TagVBG, []string{LabelVerb, LabelAuxiliary, LabelGerund}, "having", "doing")

	lex.add(model.TagJJ, []string{LabelAdjective},
		"good", "bad", "new", "old", "great", "small", "large", "big", "little", "long",
		"short", "high", "low", "early", "late", "first", "last", "passive", "active",
		"simple", "easy", "hard", "same", "different", "important", "available",
		"possible", "other", "many", "much", "few", "several", "own", "next", "main",
		"default", "public", "private", "local", "global", "current", "previous",
		"ready", "sure", "able", "full", "empty", "free", "clear", "common",
		"specific", "general", "whole", "real", "true", "false", "correct", "wrong",
		"optional", "required", "single", "multiple", "explicit", "implicit")
	lex.add(model.TagJJR, []string{LabelAdjective}, "more", "less", "better", "worse", "larger", "smaller")
	lex.add(model.TagJJS, []string{LabelAdjective}, "most", "least", "best", "worst")

	lex.add(model.TagNN, []string{LabelNoun},
		"tool", "file", "code", "api", "sentence", "tense", "store", "dog", "guy", "bug",
		"problem", "project", "user", "system", "server", "database", "function",
		"method", "page", "section", "heading", "command", "option", "value", "key",
		"library", "package", "module", "version", "error", "issue", "dress", "donut",
		"book", "example", "application", "service", "configuration",
		"directory", "folder", "repository", "team", "way", "thing", "time", "person",
		"man", "woman", "child", "convention", "paragraph", "text", "word", "line",
		"table", "field", "class", "object", "string", "number", "address", "client",
		"browser", "terminal", "shell", "network", "interface", "input", "output",
		"setting", "feature", "guide", "tutorial", "documentation", "readme", "tree")
	lex.add(model.TagNNS, []string{LabelNoun, LabelPlural}, "people", "children", "men", "women", "data")

	irregular := make(map[string]bool, len(irregularVerbs))
	for _, forms := range irregularVerbs {
		irregular[forms[0]] = true
	}
	for _, base := range regularVerbs {
		lex.addVerb(base, false, irregular[base])
	}
	for _, base := range nounVerbs {
		lex.addVerb(base, true, irregular[base])
	}
	for _, forms := range irregularVerbs {
		lex.addIrregular(forms[0], forms[1], forms[2])
	}

	return lex
}

// addVerb registers the present inflections of a verb, and its -ed form
// unless the verb is irregular
func (l lexicon) addVerb(base string, noun, irregular bool) {
	if noun {
		l.addSwitch(model.TagNN, model.TagVB, []string{LabelVerb, LabelNoun}, base)
		l.addSwitch(model.TagNNS, model.TagVBZ, []string{LabelVerb, LabelNoun}, thirdPerson(base))
	} else {
		l.add(model.TagVB, []string{LabelVerb}, base)
		l.add(model.TagVBZ, []string{LabelVerb}, thirdPerson(base))
	}
	if !irregular {
		l.addSwitch(model.TagVBN, model.TagVBD, []string{LabelVerb, LabelPastTense}, pastTense(base))
	}
	l.add(model.TagVBG, []string{LabelVerb, LabelGerund}, presentParticiple(base))
}

// addIrregular registers an irregular verb; past and participle share a
// switch only when they are spelled the same. A base form spelled like its
// past (put, set, read) keeps its present reading.
func (l lexicon) addIrregular(base, past, participle string) {
	baseEntry, ok := l[base]
	if !ok {
		baseEntry = entry{penn: model.TagVB, labels: []string{LabelVerb}}
		l.add(model.TagVBZ, []string{LabelVerb}, thirdPerson(base))
	}
	if past == participle {
		l.addSwitch(model.TagVBN, model.TagVBD, []string{LabelVerb, LabelPastTense}, past)
	} else {
		l.add(model.TagVBD, []string{LabelVerb, LabelPastTense}, past)
		l.add(model.TagVBN, []string{LabelVerb, LabelParticiple}, participle)
	}
	l.add(model.TagVBG, []string{LabelVerb, LabelGerund}, presentParticiple(base))
	l[base] = baseEntry
}

func thirdPerson(base string) string {
	switch {
	case strings.HasSuffix(base, "y") && len(base) > 2 && !isVowel(base[len(base)-2]):
		return base[:len(base)-1] + "ies"
	case strings.HasSuffix(base, "s"), strings.HasSuffix(base, "x"), strings.HasSuffix(base, "z"),
		strings.HasSuffix(base, "ch"), strings.HasSuffix(base, "sh"), base == "go", base == "do":
		return base + "es"
	default:
		return base + "s"
	}
}

func pastTense(base string) string {
	switch {
	case strings.HasSuffix(base, "e"):
		return base + "d"
	case strings.HasSuffix(base, "y") && len(base) > 2 && !isVowel(base[len(base)-2]):
		return base[:len(base)-1] + "ied"
	case doubled[base]:
		return base + base[len(base)-1:] + "ed"
	default:
		return base + "ed"
	}
}

func presentParticiple(base string) string {
	switch {
	case strings.HasSuffix(base, "ie"):
		return base[:len(base)-2] + "ying"
	case strings.HasSuffix(base, "e") && !strings.HasSuffix(base, "ee") && base != "be":
		return base[:len(base)-1] + "ing"
	case doubled[base]:
		return base + base[len(base)-1:] + "ing"
	default:
		return base + "ing"
	}
}

func isVowel(c byte) bool {
	return strings.IndexByte("aeiou", c) >= 0
}

// guess tags an out-of-lexicon word from its shape
func guess(word string, initial bool) entry {
	lower := strings.ToLower(word)

	if isNumeric(lower) {
		return entry{penn: model.TagCD, labels: []string{LabelValue}}
	}
	if !initial && len(word) > 0 && word[0] >= 'A' && word[0] <= 'Z' {
		return entry{penn: model.TagNNP, labels: []string{LabelNoun, LabelProperNoun}}
	}

	switch {
	case len(lower) > 4 && strings.HasSuffix(lower, "ing"):
		return entry{penn: model.TagVBG, labels: []string{LabelVerb, LabelGerund}}
	case len(lower) > 3 && strings.HasSuffix(lower, "ed"):
		return entry{penn: model.TagVBN, swtch: []model.PosTag{model.TagVBN, model.TagVBD}, labels: []string{LabelVerb, LabelPastTense}}
	case len(lower) > 3 && strings.HasSuffix(lower, "ly"):
		return entry{penn: model.TagRB, labels: []string{LabelAdverb}}
	}

	for _, suffix := range []string{"ous", "ful", "less", "ive", "able", "ible", "al", "ic", "ary"} {
		if len(lower) > len(suffix)+2 && strings.HasSuffix(lower, suffix) {
			return entry{penn: model.TagJJ, labels: []string{LabelAdjective}}
		}
	}

	if len(lower) > 3 && strings.HasSuffix(lower, "s") &&
		!strings.HasSuffix(lower, "ss") && !strings.HasSuffix(lower, "us") && !strings.HasSuffix(lower, "is") {
		return entry{penn: model.TagNNS, labels: []string{LabelNoun, LabelPlural}}
	}

	return entry{penn: model.TagNN, labels: []string{LabelNoun}}
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	digits := 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '.' || r == ',' || r == '-':
		default:
			return false
		}
	}
	return digits > 0
}
