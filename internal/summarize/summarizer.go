// Package summarize implements unsupervised extractive summarization and
// keyword extraction over free-text work logs. Three ranking methods share
// one tokenize/graph pipeline; all entry points are total and report
// failures as sentinel sentences instead of errors.
package summarize

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"
)

// Method identifies a sentence ranking algorithm.
type Method string

const (
	// MethodCentrality ranks sentences by eigenvector centrality over a
	// symmetric idf-modified-cosine similarity graph (LexRank).
	MethodCentrality Method = "centrality"
	// MethodCooccurrence ranks sentences with a damped PageRank over a
	// word-overlap graph (TextRank).
	MethodCooccurrence Method = "cooccurrence"
	// MethodLatent ranks sentences by their projection onto the top latent
	// topics of a truncated SVD of the term-sentence matrix (LSA).
	MethodLatent Method = "latent"
)

// ParseMethod maps a method name to a Method. The historical names
// textrank/lexrank/lsa are accepted; unknown names map to MethodCentrality.
func ParseMethod(s string) Method {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "centrality", "lexrank":
		return MethodCentrality
	case "cooccurrence", "textrank":
		return MethodCooccurrence
	case "latent", "lsa":
		return MethodLatent
	default:
		return MethodCentrality
	}
}

const (
	msgNothingToSummarize = "要約するテキストがありません。"
	msgGenerationFailed   = "要約の生成に失敗しました。"
)

// Summarizer holds per-language tokenization and stop-word state shared by
// all ranking methods. Construct once, reuse across calls; it is safe for
// concurrent use after construction.
type Summarizer struct {
	language  string
	stopWords map[string]struct{}
	jpTok     *tokenizer.Tokenizer
	naive     bool
}

// Option configures a Summarizer.
type Option func(*Summarizer)

// WithNaiveSplit selects the degenerate punctuation-split mode: sentences
// are taken in source order without ranking. Intended for environments
// where the ranking pipeline is unavailable.
func WithNaiveSplit() Option {
	return func(s *Summarizer) { s.naive = true }
}

// New creates a Summarizer for the given language. A missing stop-word list
// falls back to English, then to an empty list; summarization still runs
// without stop-word suppression. The Japanese morphological tokenizer is
// loaded when the language is japanese and the dictionary is usable.
func New(language string, opts ...Option) *Summarizer {
	s := &Summarizer{
		language:  language,
		stopWords: stopWordsFor(language),
	}
	if language == "japanese" {
		if t, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos()); err == nil {
			s.jpTok = t
		}
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Summarize reduces text to at most count representative sentences.
// It always returns at least one element: a sentinel sentence when the text
// is blank, a descriptive sentence when ranking fails, and the ranked
// selection (in source order) otherwise.
func (s *Summarizer) Summarize(text string, method Method, count int) []string {
	if count < 1 {
		count = 1
	}

	cleaned := Preprocess(text)
	if cleaned == "" {
		return []string{msgNothingToSummarize}
	}

	if s.naive {
		return naiveSplit(cleaned, count)
	}

	sentences := segment(cleaned)
	if len(sentences) == 0 {
		return []string{msgNothingToSummarize}
	}
	if len(sentences) <= count {
		return sentenceTexts(sentences)
	}

	docs := make([][]string, len(sentences))
	for i, sent := range sentences {
		docs[i] = s.terms(sent)
	}

	scores, err := s.rank(docs, method, count)
	if err != nil {
		return []string{fmt.Sprintf("要約の生成中にエラーが発生しました: %v", err)}
	}

	picked := selectTop(scores, count)
	if len(picked) == 0 {
		return []string{msgGenerationFailed}
	}

	out := make([]string, 0, len(picked))
	for _, idx := range picked {
		out = append(out, sentences[idx])
	}
	return out
}

// rank dispatches to one of the ranking functions. Panics inside the
// ranking math are converted to errors so Summarize stays total.
func (s *Summarizer) rank(docs [][]string, method Method, count int) (scores []float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			scores = nil
			err = fmt.Errorf("%v", r)
		}
	}()

	switch method {
	case MethodCooccurrence:
		return rankCooccurrence(docs), nil
	case MethodLatent:
		return rankLatent(docs, count)
	default:
		return rankCentrality(docs), nil
	}
}

// selectTop returns the indices of the count highest-scored sentences,
// in source order. Ties keep the earlier sentence.
func selectTop(scores []float64, count int) []int {
	idx := make([]int, len(scores))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return scores[idx[a]] > scores[idx[b]]
	})
	if count > len(idx) {
		count = len(idx)
	}
	picked := append([]int(nil), idx[:count]...)
	sort.Ints(picked)
	return picked
}

func sentenceTexts(sentences []string) []string {
	return append([]string(nil), sentences...)
}

// naiveSplit is the degenerate summarization mode: split on
// sentence-terminal punctuation and keep the first count non-empty
// fragments in source order.
func naiveSplit(text string, count int) []string {
	frags := splitSentences(text)
	var out []string
	for _, f := range frags {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		out = append(out, f)
		if len(out) == count {
			break
		}
	}
	if len(out) == 0 {
		return []string{msgNothingToSummarize}
	}
	return out
}
