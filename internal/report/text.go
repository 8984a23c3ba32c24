package report

// textEncoder writes the report verbatim.
type textEncoder struct{}

func (textEncoder) Encode(content string) ([]byte, error) {
	return []byte(content), nil
}

func (textEncoder) Extension() string { return ".txt" }
