package summarize

import "unicode/utf8"

// Stats describes how much a summary compressed its source text.
// Counts are rune counts; CompressionRatio is a percentage and is 0 when
// the source is empty. Free-text backends may expand the text, so the
// ratio can exceed 100.
type Stats struct {
	OriginalCount    int
	WordCount        int
	CompressionRatio float64
}

// ComputeStats measures source and summary sizes.
func ComputeStats(source, summary string) Stats {
	st := Stats{
		OriginalCount: utf8.RuneCountInString(source),
		WordCount:     utf8.RuneCountInString(summary),
	}
	if st.OriginalCount > 0 {
		st.CompressionRatio = float64(st.WordCount) / float64(st.OriginalCount) * 100
	}
	return st
}
