package summary

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/snagasawa/nippo/internal/domain/worklog"
)

func TestCombine(t *testing.T) {
	corpus := Combine([]worklog.WorkLog{
		{Date: "2024-01-01", Content: "  年始の計画を立てた。  "},
		{Date: "2024-01-02", Content: "   "},
		{Date: "2024-01-03", Content: "実装を開始した。"},
	})

	assert.Equal(t,
		"【2024年1月1日（月）】\n年始の計画を立てた。\n\n【2024年1月3日（水）】\n実装を開始した。\n",
		corpus)
}

func TestCombineEmpty(t *testing.T) {
	assert.Empty(t, Combine(nil))
	assert.Empty(t, Combine([]worklog.WorkLog{{Date: "2024-01-02", Content: "\n\t"}}))
}

func TestCombineBadDateStillKeepsContent(t *testing.T) {
	corpus := Combine([]worklog.WorkLog{{Date: "not-a-date", Content: "内容"}})
	assert.Equal(t, "内容\n", corpus)
}
