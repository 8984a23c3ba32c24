// Package report encodes rendered report text into downloadable file
// formats. Encoders share a line-oriented view of the report: lines
// starting with ■ or 【 are section headings, lines starting with ・
// are bullet items, everything else is body text.
package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnknownFormat indicates no encoder is registered for a format name.
var ErrUnknownFormat = errors.New("unknown report format")

// Encoder turns rendered report content into one output file format.
type Encoder interface {
	Encode(content string) ([]byte, error)
	Extension() string
}

var encoders = map[string]Encoder{
	"text": textEncoder{},
	"txt":  textEncoder{},
	"csv":  csvEncoder{},
	"xlsx": xlsxEncoder{},
}

// EncoderFor returns the encoder registered for format.
func EncoderFor(format string) (Encoder, error) {
	enc, ok := encoders[strings.ToLower(format)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
	return enc, nil
}

// Formats lists the supported format names.
func Formats() []string {
	return []string{"text", "csv", "xlsx"}
}

// WriteReport encodes content and writes it to path, appending the
// encoder's extension when path has none.
func WriteReport(path, format, content string) (string, error) {
	enc, err := EncoderFor(format)
	if err != nil {
		return "", err
	}
	data, err := enc.Encode(content)
	if err != nil {
		return "", fmt.Errorf("encode %s report: %w", format, err)
	}
	if filepath.Ext(path) == "" {
		path += enc.Extension()
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create report dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}

// isHeading reports whether a report line is a section heading.
func isHeading(line string) bool {
	return strings.HasPrefix(line, "■") || strings.HasPrefix(line, "【")
}

// headingText strips the heading markers from a heading line.
func headingText(line string) string {
	line = strings.TrimPrefix(line, "■")
	line = strings.TrimPrefix(line, "【")
	line = strings.TrimSuffix(line, "】")
	return strings.TrimSpace(line)
}
