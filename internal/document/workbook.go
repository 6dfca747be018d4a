package document

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"document-ops-server/internal/errors"
)

// Workbook wraps an in-memory spreadsheet: a mapping from sheet name to a 2D
// cell grid addressed by 1-based (row, column).
type Workbook struct {
	f *excelize.File
}

// NewWorkbook creates a workbook with a single default sheet.
func NewWorkbook() *Workbook {
	return &Workbook{f: excelize.NewFile()}
}

// OpenWorkbook parses a workbook from raw bytes.
func OpenWorkbook(data []byte) (*Workbook, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.MalformedInput("workbook", err)
	}
	return &Workbook{f: f}, nil
}

// SheetNames returns the sheet names in workbook order.
func (w *Workbook) SheetNames() []string {
	return w.f.GetSheetList()
}

// SheetCount returns the number of sheets.
func (w *Workbook) SheetCount() int {
	return len(w.f.GetSheetList())
}

// FirstSheet returns the name of the first sheet.
func (w *Workbook) FirstSheet() string {
	names := w.f.GetSheetList()
	if len(names) == 0 {
		return ""
	}
	return names[0]
}

// HasSheet reports whether a sheet with the given name exists.
func (w *Workbook) HasSheet(name string) bool {
	idx, err := w.f.GetSheetIndex(name)
	return err == nil && idx != -1
}

// EnsureSheet creates the named sheet if it does not exist yet. Creating a
// sheet that already exists is a no-op.
func (w *Workbook) EnsureSheet(name string) error {
	if w.HasSheet(name) {
		return nil
	}
	if _, err := w.f.NewSheet(name); err != nil {
		return fmt.Errorf("create sheet %q: %w", name, err)
	}
	return nil
}

// SetCell writes a value at 1-based (row, col) on the given sheet.
func (w *Workbook) SetCell(sheet string, row, col int, value interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("cell (%d,%d): %w", row, col, err)
	}
	return w.f.SetCellValue(sheet, cell, value)
}

// CellValue reads the value at 1-based (row, col) on the given sheet.
func (w *Workbook) CellValue(sheet string, row, col int) (string, error) {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return "", fmt.Errorf("cell (%d,%d): %w", row, col, err)
	}
	return w.f.GetCellValue(sheet, cell)
}

// RemoveRow deletes the 1-based row from the sheet, shifting rows up.
func (w *Workbook) RemoveRow(sheet string, row int) error {
	return w.f.RemoveRow(sheet, row)
}

// RemoveColumn deletes the 1-based column from the sheet, shifting columns
// left.
func (w *Workbook) RemoveColumn(sheet string, col int) error {
	name, err := excelize.ColumnNumberToName(col)
	if err != nil {
		return fmt.Errorf("column %d: %w", col, err)
	}
	return w.f.RemoveCol(sheet, name)
}

// DeleteSheet removes the named sheet. Callers guard against removing the
// final sheet; the library additionally refuses to drop the last visible one.
func (w *Workbook) DeleteSheet(name string) error {
	return w.f.DeleteSheet(name)
}

// Rows returns all populated rows of the sheet as strings.
func (w *Workbook) Rows(sheet string) ([][]string, error) {
	return w.f.GetRows(sheet)
}

// Bytes renders the workbook to XLSX bytes.
func (w *Workbook) Bytes() ([]byte, error) {
	buf, err := w.f.WriteToBuffer()
	if err != nil {
		return nil, errors.IO("render workbook", err)
	}
	return buf.Bytes(), nil
}

// Close releases the underlying file resources.
func (w *Workbook) Close() error {
	return w.f.Close()
}
