package summary

import (
	"strings"

	"github.com/snagasawa/nippo/internal/dateutil"
	"github.com/snagasawa/nippo/internal/domain/worklog"
)

// Combine merges dated log entries into a single corpus. Entries with
// blank content are skipped entirely; the rest contribute a Japanese
// date header, the trimmed content, and a blank separator line, in input
// order. Pure function; callers supply entries in chronological order.
func Combine(logs []worklog.WorkLog) string {
	var parts []string
	for _, log := range logs {
		content := strings.TrimSpace(log.Content)
		if content == "" {
			continue
		}
		if d, err := dateutil.Parse(log.Date); err == nil {
			parts = append(parts, "【"+dateutil.FormatJapanese(d)+"】")
		}
		parts = append(parts, content, "")
	}
	return strings.Join(parts, "\n")
}
