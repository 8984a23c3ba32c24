package summarize

import (
	"strings"
	"unicode"

	"github.com/kljensen/snowball"
)

// terms tokenizes a sentence into the stemmed, stop-word-filtered terms
// used for graph and matrix construction. Japanese text goes through the
// morphological tokenizer when available; everything else is split on
// letter runs and stemmed.
func (s *Summarizer) terms(sentence string) []string {
	if s.jpTok != nil && s.language == "japanese" {
		return s.termsJapanese(sentence)
	}
	return s.termsGeneric(sentence)
}

func (s *Summarizer) termsJapanese(sentence string) []string {
	var terms []string
	for _, surface := range s.jpTok.Wakati(sentence) {
		w := strings.TrimSpace(surface)
		if w == "" || !hasLetter(w) {
			continue
		}
		if _, stopped := s.stopWords[w]; stopped {
			continue
		}
		terms = append(terms, w)
	}
	return terms
}

func (s *Summarizer) termsGeneric(sentence string) []string {
	var terms []string
	for _, w := range wordTokenRe.FindAllString(strings.ToLower(sentence), -1) {
		if _, stopped := s.stopWords[w]; stopped {
			continue
		}
		terms = append(terms, s.stem(w))
	}
	return terms
}

// stem applies snowball stemming for languages it supports; unsupported
// languages (including Japanese) pass the word through unchanged.
func (s *Summarizer) stem(word string) string {
	stemmed, err := snowball.Stem(word, s.language, true)
	if err != nil || stemmed == "" {
		return word
	}
	return stemmed
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
