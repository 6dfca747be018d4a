package models

// OpType identifies one kind of document mutation. The set is closed: the
// interpreter dispatches on it with an exhaustive switch whose default arm
// treats anything else as an unknown operation (skipped with a warning, never
// fatal).
type OpType string

// Word document operations.
const (
	OpAddParagraph    OpType = "add_paragraph"
	OpAddHeading      OpType = "add_heading"
	OpEditParagraph   OpType = "edit_paragraph"
	OpDeleteParagraph OpType = "delete_paragraph"
)

// Spreadsheet operations.
const (
	OpUpdateCell   OpType = "update_cell"
	OpUpdateRange  OpType = "update_range"
	OpDeleteRow    OpType = "delete_row"
	OpDeleteColumn OpType = "delete_column"
	OpAddSheet     OpType = "add_sheet"
	OpDeleteSheet  OpType = "delete_sheet"
)

// Operation is one instruction in an edit batch. Only the fields relevant to
// its Type are consulted; absent numeric fields take the same defaults as the
// wire protocol documents (level, row and col default to 1, index to 0, sheet
// to the workbook's first sheet).
type Operation struct {
	Type OpType `json:"type"`

	// Word fields.

	// Text is the paragraph or heading text for add_paragraph, add_heading
	// and edit_paragraph.
	Text string `json:"text,omitempty"`
	// Level is the heading level for add_heading (1-9).
	Level int `json:"level,omitempty"`
	// Index is the 0-based paragraph index for edit_paragraph and
	// delete_paragraph.
	Index int `json:"index,omitempty"`

	// Spreadsheet fields.

	// Sheet selects the target sheet. A sheet that does not exist yet is
	// created as a side effect of being referenced.
	Sheet string `json:"sheet,omitempty"`
	// Row and Col are 1-based coordinates for update_cell, delete_row and
	// delete_column.
	Row int `json:"row,omitempty"`
	Col int `json:"col,omitempty"`
	// Value is the cell value for update_cell.
	Value interface{} `json:"value,omitempty"`
	// StartRow/StartCol anchor the 2D Values block for update_range.
	StartRow int             `json:"start_row,omitempty"`
	StartCol int             `json:"start_col,omitempty"`
	Values   [][]interface{} `json:"values,omitempty"`
	// Name is the sheet name for add_sheet.
	Name string `json:"name,omitempty"`
}
