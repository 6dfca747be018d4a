// Package ops applies ordered batches of operation descriptors to open
// document handles. The policy for every descriptor: out-of-range indices and
// unknown types are skipped with a warning and the batch continues; there is
// no rollback, so effects of earlier descriptors persist even when a later
// one is skipped.
package ops

import (
	"document-ops-server/internal/models"
)

// Logger is the warning sink injected into the interpreter. *log.Logger
// satisfies it.
type Logger interface {
	Printf(format string, v ...interface{})
}

// WordEditor is the mutable view of a Word document the interpreter needs.
// Implemented by document.WordDocument.
type WordEditor interface {
	ParagraphCount() int
	AddParagraph(text string)
	AddHeading(text string, level int)
	EditParagraph(i int, text string)
	DeleteParagraph(i int)
}

// SheetEditor is the mutable view of a workbook the interpreter needs.
// Implemented by document.Workbook.
type SheetEditor interface {
	FirstSheet() string
	SheetCount() int
	HasSheet(name string) bool
	EnsureSheet(name string) error
	SetCell(sheet string, row, col int, value interface{}) error
	RemoveRow(sheet string, row int) error
	RemoveColumn(sheet string, col int) error
	DeleteSheet(name string) error
}

// Summary reports how a batch went. Skipped descriptors are non-fatal and do
// not affect the overall success of the call.
type Summary struct {
	Applied int
	Skipped int
}

func defaultInt(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}

// ApplyWordOperations applies descriptors to a Word document in order.
func ApplyWordOperations(doc WordEditor, operations []models.Operation, logger Logger) Summary {
	var sum Summary
	for _, op := range operations {
		switch op.Type {
		case models.OpAddParagraph:
			doc.AddParagraph(op.Text)
			sum.Applied++
		case models.OpAddHeading:
			doc.AddHeading(op.Text, defaultInt(op.Level, 1))
			sum.Applied++
		case models.OpEditParagraph:
			if op.Index < 0 || op.Index >= doc.ParagraphCount() {
				logger.Printf("WARN: paragraph index out of range: %d", op.Index)
				sum.Skipped++
				continue
			}
			doc.EditParagraph(op.Index, op.Text)
			sum.Applied++
		case models.OpDeleteParagraph:
			if op.Index < 0 || op.Index >= doc.ParagraphCount() {
				logger.Printf("WARN: paragraph index out of range: %d", op.Index)
				sum.Skipped++
				continue
			}
			doc.DeleteParagraph(op.Index)
			sum.Applied++
		default:
			logger.Printf("WARN: unknown operation type: %q", op.Type)
			sum.Skipped++
		}
	}
	return sum
}

// ApplySheetOperations applies descriptors to a workbook in order. Every
// descriptor resolves its target sheet first (defaulting to the first sheet)
// and referencing a missing sheet creates it as a side effect.
func ApplySheetOperations(wb SheetEditor, operations []models.Operation, logger Logger) Summary {
	var sum Summary
	for _, op := range operations {
		sheet := op.Sheet
		if sheet == "" {
			sheet = wb.FirstSheet()
		}
		if err := wb.EnsureSheet(sheet); err != nil {
			logger.Printf("WARN: cannot use sheet %q: %v", sheet, err)
			sum.Skipped++
			continue
		}

		switch op.Type {
		case models.OpUpdateCell:
			row := defaultInt(op.Row, 1)
			col := defaultInt(op.Col, 1)
			value := op.Value
			if value == nil {
				value = ""
			}
			if err := wb.SetCell(sheet, row, col, value); err != nil {
				logger.Printf("WARN: update_cell skipped: %v", err)
				sum.Skipped++
				continue
			}
			sum.Applied++
		case models.OpUpdateRange:
			startRow := defaultInt(op.StartRow, 1)
			startCol := defaultInt(op.StartCol, 1)
			failed := false
			for i, rowValues := range op.Values {
				for j, value := range rowValues {
					if err := wb.SetCell(sheet, startRow+i, startCol+j, value); err != nil {
						logger.Printf("WARN: update_range cell skipped: %v", err)
						failed = true
					}
				}
			}
			if failed {
				sum.Skipped++
			} else {
				sum.Applied++
			}
		case models.OpDeleteRow:
			row := defaultInt(op.Row, 1)
			if err := wb.RemoveRow(sheet, row); err != nil {
				logger.Printf("WARN: delete_row skipped: %v", err)
				sum.Skipped++
				continue
			}
			sum.Applied++
		case models.OpDeleteColumn:
			col := defaultInt(op.Col, 1)
			if err := wb.RemoveColumn(sheet, col); err != nil {
				logger.Printf("WARN: delete_column skipped: %v", err)
				sum.Skipped++
				continue
			}
			sum.Applied++
		case models.OpAddSheet:
			name := op.Name
			if name == "" {
				name = "NewSheet"
			}
			// Idempotent: an existing name is a no-op, not an error.
			if err := wb.EnsureSheet(name); err != nil {
				logger.Printf("WARN: add_sheet skipped: %v", err)
				sum.Skipped++
				continue
			}
			sum.Applied++
		case models.OpDeleteSheet:
			if wb.SheetCount() <= 1 {
				logger.Printf("WARN: refusing to delete the last sheet %q", sheet)
				sum.Skipped++
				continue
			}
			if err := wb.DeleteSheet(sheet); err != nil {
				logger.Printf("WARN: delete_sheet skipped: %v", err)
				sum.Skipped++
				continue
			}
			sum.Applied++
		default:
			logger.Printf("WARN: unknown operation type: %q", op.Type)
			sum.Skipped++
		}
	}
	return sum
}
