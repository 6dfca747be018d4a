package models

// OperationResult is the uniform envelope returned by every document tool call.
// It is never partially filled: Success and Message are always set, Filepath is
// the affected path on success (null for failures and for read-only tools), and
// Content carries extracted text when a tool produces it.
type OperationResult struct {
	// Success reports whether the call as a whole succeeded. Skipped
	// descriptors inside an edit batch do not affect it.
	Success bool `json:"success"`
	// Message is a human-readable summary of the outcome.
	Message string `json:"message"`
	// Filepath is the path of the created or edited file, or null.
	Filepath *string `json:"filepath"`
	// Content holds extracted document text, when applicable.
	Content string `json:"content,omitempty"`
}

// CreateDocumentRequest asks for a new document to be created from raw content.
// Used by create_word_document, create_excel_file and create_pdf_file.
type CreateDocumentRequest struct {
	// Filepath is where the document is saved. Relative paths resolve
	// against the configured working directory.
	Filepath string `json:"filepath"`
	// Content is the raw text content. For spreadsheets it is parsed as a
	// JSON array of rows first, then as comma-separated lines.
	Content string `json:"content"`
}

// EditDocumentRequest asks for an ordered batch of operations to be applied to
// an existing document. Used by edit_word_document and edit_excel_file.
type EditDocumentRequest struct {
	Filepath string `json:"filepath"`
	// Operations are applied in order; later operations see the effects of
	// earlier ones.
	Operations []Operation `json:"operations"`
}

// ConvertDocumentRequest asks for a document to be converted between formats.
// Used by convert_txt_to_word, convert_csv_to_excel and convert_word_to_pdf.
type ConvertDocumentRequest struct {
	SourcePath string `json:"source_path"`
	TargetPath string `json:"target_path"`
}

// ExtractTextRequest asks for the text content of a Word document.
type ExtractTextRequest struct {
	Filepath string `json:"filepath"`
}
