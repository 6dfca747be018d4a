package mcp

import "document-ops-server/internal/models"

func stringProp(description string) map[string]interface{} {
	return map[string]interface{}{"type": "string", "description": description}
}

func objectSchema(properties map[string]interface{}, required ...string) models.Schema {
	schema := models.Schema{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

// operationsProp is the schema of the ordered operation batch accepted by the
// edit tools. Descriptors are loosely typed on purpose: unknown fields are
// ignored and unknown types are skipped at interpretation time, not rejected
// here.
func operationsProp(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "array",
		"description": description,
		"items": map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"type": stringProp("Operation type"),
			},
			"required": []string{"type"},
		},
	}
}

// toolDefinitions returns the static tool catalog served by tools/list.
func toolDefinitions() []models.ToolDefinition {
	return []models.ToolDefinition{
		{
			Name:        "create_word_document",
			Description: "Create a new Word document from text content, one paragraph per non-empty line",
			InputSchema: objectSchema(map[string]interface{}{
				"filepath": stringProp("Path where the .docx file is saved"),
				"content":  stringProp("Text content of the document"),
			}, "filepath", "content"),
			Annotations: models.ToolAnnotations{},
		},
		{
			Name:        "edit_word_document",
			Description: "Apply an ordered batch of paragraph operations (add_paragraph, add_heading, edit_paragraph, delete_paragraph) to an existing Word document",
			InputSchema: objectSchema(map[string]interface{}{
				"filepath":   stringProp("Path of the .docx file to edit"),
				"operations": operationsProp("Paragraph operations applied in order"),
			}, "filepath", "operations"),
			Annotations: models.ToolAnnotations{DestructiveHint: true},
		},
		{
			Name:        "convert_txt_to_word",
			Description: "Convert a plain text file into a Word document",
			InputSchema: objectSchema(map[string]interface{}{
				"source_path": stringProp("Path of the .txt file to convert"),
				"target_path": stringProp("Path where the .docx file is saved"),
			}, "source_path", "target_path"),
			Annotations: models.ToolAnnotations{},
		},
		{
			Name:        "extract_docx_text",
			Description: "Extract the plain text of a Word document",
			InputSchema: objectSchema(map[string]interface{}{
				"filepath": stringProp("Path of the .docx file to read"),
			}, "filepath"),
			Annotations: models.ToolAnnotations{ReadOnlyHint: true},
		},
		{
			Name:        "create_excel_file",
			Description: "Create a new Excel file from content given as a JSON array of rows or as comma-separated lines",
			InputSchema: objectSchema(map[string]interface{}{
				"filepath": stringProp("Path where the .xlsx file is saved"),
				"content":  stringProp("Sheet content: JSON array of rows, or comma-separated lines"),
			}, "filepath", "content"),
			Annotations: models.ToolAnnotations{},
		},
		{
			Name:        "edit_excel_file",
			Description: "Apply an ordered batch of cell and sheet operations (update_cell, update_range, delete_row, delete_column, add_sheet, delete_sheet) to an existing Excel file",
			InputSchema: objectSchema(map[string]interface{}{
				"filepath":   stringProp("Path of the .xlsx file to edit"),
				"operations": operationsProp("Cell and sheet operations applied in order"),
			}, "filepath", "operations"),
			Annotations: models.ToolAnnotations{DestructiveHint: true},
		},
		{
			Name:        "convert_csv_to_excel",
			Description: "Convert a CSV file into an Excel file",
			InputSchema: objectSchema(map[string]interface{}{
				"source_path": stringProp("Path of the .csv file to convert"),
				"target_path": stringProp("Path where the .xlsx file is saved"),
			}, "source_path", "target_path"),
			Annotations: models.ToolAnnotations{},
		},
		{
			Name:        "create_pdf_file",
			Description: "Create a new PDF file from text content, paginating automatically",
			InputSchema: objectSchema(map[string]interface{}{
				"filepath": stringProp("Path where the .pdf file is saved"),
				"content":  stringProp("Text content of the document"),
			}, "filepath", "content"),
			Annotations: models.ToolAnnotations{},
		},
		{
			Name:        "convert_word_to_pdf",
			Description: "Convert a Word document into a PDF file",
			InputSchema: objectSchema(map[string]interface{}{
				"source_path": stringProp("Path of the .docx file to convert"),
				"target_path": stringProp("Path where the .pdf file is saved"),
			}, "source_path", "target_path"),
			Annotations: models.ToolAnnotations{},
		},
	}
}
