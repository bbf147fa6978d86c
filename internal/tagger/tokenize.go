package tagger

import (
	"strings"
	"unicode"
)

// token is one word-level unit before tagging
type token struct {
	text     string
	implicit string
	clitic   bool
}

// clitics split off a host word, with their canonical form
var clitics = []struct {
	suffix   string
	implicit string
}{
	{"n't", "not"},
	{"'s", "is"},
	{"'re", "are"},
	{"'ll", "will"},
	{"'ve", "have"},
	{"'m", "am"},
	{"'d", "would"},
}

// irregular negated hosts: "can't" -> "ca" + "n't"
var negatedHosts = map[string]string{
	"ca":  "can",
	"wo":  "will",
	"sha": "shall",
}

// tokenize splits a sentence into words, dropping punctuation and
// separating contractions into host and clitic
func tokenize(sentence string) []token {
	sentence = strings.NewReplacer("’", "'", "‘", "'").Replace(sentence)
	runes := []rune(sentence)

	// Heuristic: average word length 5 + separator
	words := make([]string, 0, len(runes)/6+1)
	var b strings.Builder

	flush := func() {
		if b.Len() == 0 {
			return
		}
		w := strings.Trim(b.String(), "'-.")
		if w != "" {
			words = append(words, w)
		}
		b.Reset()
	}

	for i, r := range runes {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
			b.WriteRune(r)
		case r == '\'' || r == '-' || r == '.':
			// Inside a word only: "don't", "built-in", "v1.2", "e.g"
			if b.Len() > 0 && i+1 < len(runes) && (unicode.IsLetter(runes[i+1]) || unicode.IsDigit(runes[i+1])) {
				b.WriteRune(r)
			} else {
				flush()
			}
		default:
			flush()
		}
	}
	flush()

	tokens := make([]token, 0, len(words))
	for _, w := range words {
		tokens = append(tokens, splitContraction(w)...)
	}
	return tokens
}

func splitContraction(word string) []token {
	lower := strings.ToLower(word)
	for _, c := range clitics {
		if len(lower) <= len(c.suffix) || !strings.HasSuffix(lower, c.suffix) {
			continue
		}
		host := word[:len(word)-len(c.suffix)]
		hostTok := token{text: host}
		if c.suffix == "n't" {
			if canonical, ok := negatedHosts[strings.ToLower(host)]; ok {
				hostTok.implicit = canonical
			}
		}
		return []token{
			hostTok,
			{text: word[len(host):], implicit: c.implicit, clitic: true},
		}
	}
	return []token{{text: word}}
}
