package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/frahmantamala/compliance-management/internal"
	"github.com/xuri/excelize/v2"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ParseWorkbook reads an uploaded spreadsheet into raw rows of cells.
// Excel workbooks are read from their first sheet only; anything else is
// treated as CSV.
func ParseWorkbook(filename string, data []byte) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm", ".xls":
		return parseExcel(data)
	default:
		return parseCSV(data)
	}
}

func parseExcel(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, internal.NewValidationError("Workbook could not be read", internal.ErrCodeWorkbookUnreadable).WithCause(err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, internal.ErrWorkbookEmpty
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, internal.NewValidationError("Workbook could not be read", internal.ErrCodeWorkbookUnreadable).WithCause(err)
	}
	return rows, nil
}

// parseCSV tolerates the mess real exported sheets carry: BOM prefixes,
// stray quotes, and rows whose cell count disagrees with the header.
func parseCSV(data []byte) ([][]string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var rows [][]string
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, internal.NewValidationError("Workbook could not be read", internal.ErrCodeWorkbookUnreadable).WithCause(err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
