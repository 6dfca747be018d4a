package service

import (
	"bytes"
	"encoding/csv"
)

// readCSVRecords parses CSV bytes into records. Rows may have varying field
// counts; the workbook grid simply stays ragged.
func readCSVRecords(data []byte) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	return reader.ReadAll()
}
