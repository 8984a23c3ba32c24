package summarize

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// ExtractKeyPoints returns up to maxPoints salient terms in descending
// frequency order. Japanese text with a working morphological tokenizer
// keeps noun tokens; everything else uses the generic lowercase word path.
// Terms occurring only once are pruned. Never returns an error; internal
// failures yield an empty slice.
func (s *Summarizer) ExtractKeyPoints(text string, maxPoints int) (points []string) {
	defer func() {
		if recover() != nil {
			points = nil
		}
	}()

	if maxPoints < 1 || strings.TrimSpace(text) == "" {
		return nil
	}

	if s.jpTok != nil && s.language == "japanese" {
		return topByFrequency(s.nounTokens(text), maxPoints)
	}
	return topByFrequency(s.genericTokens(text), maxPoints)
}

// nounTokens keeps noun-class morphemes with a surface longer than one rune.
func (s *Summarizer) nounTokens(text string) []string {
	var words []string
	for _, token := range s.jpTok.Tokenize(text) {
		features := token.Features()
		if len(features) == 0 || features[0] != "名詞" {
			continue
		}
		if utf8.RuneCountInString(token.Surface) > 1 {
			words = append(words, token.Surface)
		}
	}
	return words
}

// genericTokens lowercases and keeps word tokens longer than two runes
// that are not stop words.
func (s *Summarizer) genericTokens(text string) []string {
	var words []string
	for _, w := range wordTokenRe.FindAllString(strings.ToLower(text), -1) {
		if utf8.RuneCountInString(w) <= 2 {
			continue
		}
		if _, stopped := s.stopWords[w]; stopped {
			continue
		}
		words = append(words, w)
	}
	return words
}

// topByFrequency counts words, drops frequency-one entries, and returns
// the most frequent in first-seen stable order within equal counts.
func topByFrequency(words []string, maxPoints int) []string {
	freq := make(map[string]int)
	var order []string
	for _, w := range words {
		if freq[w] == 0 {
			order = append(order, w)
		}
		freq[w]++
	}

	sort.SliceStable(order, func(a, b int) bool {
		return freq[order[a]] > freq[order[b]]
	})

	var points []string
	for _, w := range order {
		if freq[w] <= 1 {
			continue
		}
		points = append(points, w)
		if len(points) == maxPoints {
			break
		}
	}
	return points
}

// ExtractKeyPhrases is the phrase-level alternative to ExtractKeyPoints:
// clauses between 5 and 50 runes long, returned in source order.
func ExtractKeyPhrases(text string, maxPoints int) []string {
	if maxPoints < 1 {
		return nil
	}
	var phrases []string
	for _, frag := range splitClauses(text) {
		frag = strings.TrimSpace(frag)
		n := utf8.RuneCountInString(frag)
		if n < 5 || n > 50 {
			continue
		}
		phrases = append(phrases, frag)
		if len(phrases) == maxPoints {
			break
		}
	}
	return phrases
}
