package summarize

import (
	"regexp"
	"strings"
)

var (
	bracketRe   = regexp.MustCompile(`[【】「」（）()\[\]{}]`)
	spaceRunRe  = regexp.MustCompile(`[ \t]+`)
	blankRunRe  = regexp.MustCompile(`\n\s*\n`)
	sentenceRe  = regexp.MustCompile(`[。．！？!?.]`)
	fragmentRe  = regexp.MustCompile(`[。．！？!?.、，,;；]`)
	wordTokenRe = regexp.MustCompile(`\p{L}+`)
)

// Preprocess normalizes text before summarization: bracket characters are
// stripped, whitespace runs collapse to a single space, and runs of blank
// lines collapse to one newline.
func Preprocess(text string) string {
	text = bracketRe.ReplaceAllString(text, "")
	text = spaceRunRe.ReplaceAllString(text, " ")
	text = blankRunRe.ReplaceAllString(text, "\n")
	return strings.TrimSpace(text)
}

// segment splits preprocessed text into sentences, keeping the terminal
// punctuation attached so the extracted summary reads naturally. Newlines
// also end a sentence: work logs are often bullet-like lines without
// terminal punctuation.
func segment(text string) []string {
	var sentences []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		start := 0
		for _, loc := range sentenceRe.FindAllStringIndex(line, -1) {
			sent := strings.TrimSpace(line[start:loc[1]])
			if sent != "" && sentenceRe.ReplaceAllString(sent, "") != "" {
				sentences = append(sentences, sent)
			}
			start = loc[1]
		}
		if rest := strings.TrimSpace(line[start:]); rest != "" {
			sentences = append(sentences, rest)
		}
	}
	return sentences
}

// splitSentences splits on sentence-terminal punctuation, dropping the
// terminators. Used by the degenerate mode and key-phrase extraction.
func splitSentences(text string) []string {
	return sentenceRe.Split(text, -1)
}

// splitClauses splits on both sentence-terminal and clause punctuation.
func splitClauses(text string) []string {
	return fragmentRe.Split(text, -1)
}
