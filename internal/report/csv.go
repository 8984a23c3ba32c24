package report

import (
	"bytes"
	"encoding/csv"
	"strings"
)

// csvEncoder flattens the report into section/content rows. Bullet
// item lines are folded into the section row that precedes them.
type csvEncoder struct{}

func (csvEncoder) Encode(content string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"セクション", "内容"}); err != nil {
		return nil, err
	}

	section := ""
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "":
			continue
		case isHeading(line):
			section = headingText(line)
		case strings.HasPrefix(line, "・") || strings.HasPrefix(line, "•"):
			continue
		default:
			if err := w.Write([]string{section, line}); err != nil {
				return nil, err
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (csvEncoder) Extension() string { return ".csv" }
