package report

import (
	"strings"

	"github.com/xuri/excelize/v2"
)

const reportSheet = "Report"

// xlsxEncoder writes the report into a single-sheet workbook with
// bold styling on the title and section headings.
type xlsxEncoder struct{}

func (xlsxEncoder) Encode(content string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(reportSheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16},
	})
	if err != nil {
		return nil, err
	}
	headingStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return nil, err
	}
	if err := f.SetColWidth(reportSheet, "A", "A", 80); err != nil {
		return nil, err
	}

	row := 1
	for i, line := range strings.Split(content, "\n") {
		line = strings.TrimRight(line, " \t")
		if line == "" {
			row++
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(reportSheet, cell, line); err != nil {
			return nil, err
		}
		switch {
		case i == 0 && strings.HasPrefix(line, "【"):
			err = f.SetCellStyle(reportSheet, cell, cell, titleStyle)
		case isHeading(line):
			err = f.SetCellStyle(reportSheet, cell, cell, headingStyle)
		}
		if err != nil {
			return nil, err
		}
		row++
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (xlsxEncoder) Extension() string { return ".xlsx" }
