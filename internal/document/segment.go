package document

import (
	"strings"
	"unicode"
)

// abbreviations never end a sentence
var abbreviations = map[string]bool{
	"e.g.": true, "i.e.": true, "etc.": true, "vs.": true, "cf.": true,
	"mr.": true, "mrs.": true, "ms.": true, "dr.": true, "approx.": true,
}

// Sentences splits block text into sentences, then splits each sentence
// at colons that have trailing content
func Sentences(text string) []string {
	var out []string
	for _, s := range SplitSentences(text) {
		out = append(out, SplitColons(s)...)
	}
	return out
}

// SplitSentences splits text at '.', '!' or '?' followed by whitespace or
// the end of the text. Terminators stay with their sentence.
func SplitSentences(text string) []string {
	// Replace newlines with spaces
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)

	var sentences []string
	var current strings.Builder

	for i, r := range runes {
		current.WriteRune(r)

		// Check for sentence terminators
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		if i+1 < len(runes) && !unicode.IsSpace(runes[i+1]) {
			continue
		}
		if r == '.' && i+1 < len(runes) && abbreviations[strings.ToLower(lastWord(current.String()))] {
			continue
		}

		if sentence := strings.TrimSpace(current.String()); sentence != "" {
			sentences = append(sentences, sentence)
		}
		current.Reset()
	}

	// Add remaining text
	if sentence := strings.TrimSpace(current.String()); sentence != "" {
		sentences = append(sentences, sentence)
	}

	return sentences
}

// SplitColons splits a sentence at every colon followed by whitespace and
// more text. The colon belongs to neither part; a trailing colon with
// nothing after it is kept.
func SplitColons(sentence string) []string {
	var parts []string
	rest := sentence

	for {
		at := colonSplitPoint(rest)
		if at < 0 {
			break
		}
		if before := strings.TrimSpace(rest[:at]); before != "" {
			parts = append(parts, before)
		}
		rest = rest[at+1:]
	}

	if last := strings.TrimSpace(rest); last != "" {
		parts = append(parts, last)
	}
	return parts
}

// colonSplitPoint finds the first colon followed by whitespace and
// non-space text
func colonSplitPoint(s string) int {
	for i := 0; i < len(s); i++ {
		if s[i] != ':' {
			continue
		}
		after := s[i+1:]
		if after == "" || (after[0] != ' ' && after[0] != '\t') {
			continue
		}
		if strings.TrimSpace(after) != "" {
			return i
		}
	}
	return -1
}

func lastWord(s string) string {
	if i := strings.LastIndexByte(s, ' '); i >= 0 {
		return s[i+1:]
	}
	return s
}
