// Package service implements the document tool facade. Every method takes a
// decoded request, performs all file I/O through the filesystem adapter, and
// returns a result envelope. Methods never return a Go error: fatal problems
// and recovered panics become failure envelopes, so the transport layer only
// ever serializes results.
package service

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"document-ops-server/internal/config"
	"document-ops-server/internal/document"
	appErrors "document-ops-server/internal/errors"
	"document-ops-server/internal/filesystem"
	"document-ops-server/internal/models"
	"document-ops-server/internal/ops"
)

const documentFilePerm = 0644

// DocumentOperationService defines the tool surface of the server. One method
// per tool, plus the capabilities descriptor backing the capabilities
// resource.
type DocumentOperationService interface {
	CreateWordDocument(req models.CreateDocumentRequest) *models.OperationResult
	EditWordDocument(req models.EditDocumentRequest) *models.OperationResult
	ConvertTxtToWord(req models.ConvertDocumentRequest) *models.OperationResult
	ExtractDocxText(req models.ExtractTextRequest) *models.OperationResult
	CreateExcelFile(req models.CreateDocumentRequest) *models.OperationResult
	EditExcelFile(req models.EditDocumentRequest) *models.OperationResult
	ConvertCSVToExcel(req models.ConvertDocumentRequest) *models.OperationResult
	CreatePDFFile(req models.CreateDocumentRequest) *models.OperationResult
	ConvertWordToPDF(req models.ConvertDocumentRequest) *models.OperationResult
	Capabilities() models.CapabilitiesDescriptor
}

// DefaultDocumentService is the standard implementation of
// DocumentOperationService.
type DefaultDocumentService struct {
	fsAdapter   filesystem.Adapter
	logger      ops.Logger
	workingDir  string
	maxFileSize int64
}

var _ DocumentOperationService = (*DefaultDocumentService)(nil)

// NewDefaultDocumentService creates a new DefaultDocumentService.
func NewDefaultDocumentService(fsAdapter filesystem.Adapter, logger ops.Logger, cfg *config.Config) (*DefaultDocumentService, error) {
	if fsAdapter == nil {
		return nil, fmt.Errorf("filesystem adapter cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	workingDir, err := filepath.Abs(cfg.WorkingDirectory)
	if err != nil {
		return nil, fmt.Errorf("invalid working directory %q: %w", cfg.WorkingDirectory, err)
	}
	return &DefaultDocumentService{
		fsAdapter:   fsAdapter,
		logger:      logger,
		workingDir:  workingDir,
		maxFileSize: int64(cfg.MaxFileSizeMB) * 1024 * 1024,
	}, nil
}

// resolvePath resolves a request path against the working directory. Absolute
// paths are used as given.
func (s *DefaultDocumentService) resolvePath(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(s.workingDir, path)
}

// recoverToFailure is the failure boundary around every tool method: a panic
// anywhere below becomes a failure envelope instead of crossing into the
// transport layer.
func (s *DefaultDocumentService) recoverToFailure(operation string, res **models.OperationResult) {
	if r := recover(); r != nil {
		s.logger.Printf("ERROR: panic in %s: %v", operation, r)
		*res = &models.OperationResult{
			Success: false,
			Message: fmt.Sprintf("Error in %s: %v", operation, r),
		}
	}
}

func successResult(message, path string) *models.OperationResult {
	return &models.OperationResult{
		Success:  true,
		Message:  message,
		Filepath: &path,
	}
}

// failure logs a classified fatal error and wraps it in a failure envelope.
func (s *DefaultDocumentService) failure(operation, context string, err error) *models.OperationResult {
	s.logger.Printf("ERROR: %s failed (%s): %v", operation, appErrors.Classify(err), err)
	return &models.OperationResult{
		Success: false,
		Message: fmt.Sprintf("%s: %v", context, err),
	}
}

// failureMessage returns a failure envelope with a literal message, for
// conditions like missing source files where the message is the whole story.
func (s *DefaultDocumentService) failureMessage(operation, message string) *models.OperationResult {
	s.logger.Printf("ERROR: %s failed: %s", operation, message)
	return &models.OperationResult{
		Success: false,
		Message: message,
	}
}

// checkSourceExists resolves a source path and verifies it exists, returning
// the resolved path.
func (s *DefaultDocumentService) checkSourceExists(path string) (string, error) {
	resolved := s.resolvePath(path)
	exists, err := s.fsAdapter.FileExists(resolved)
	if err != nil {
		return "", appErrors.IO("stat source", err)
	}
	if !exists {
		return "", appErrors.NotFound(resolved)
	}
	return resolved, nil
}

// readSource reads a resolved source path, enforcing the configured size
// limit first.
func (s *DefaultDocumentService) readSource(resolved string) ([]byte, error) {
	stats, err := s.fsAdapter.GetFileStats(resolved)
	if err != nil {
		return nil, appErrors.IO("stat source", err)
	}
	if s.maxFileSize > 0 && stats.Size > s.maxFileSize {
		return nil, appErrors.IO("read source", fmt.Errorf("file %s exceeds maximum size of %d bytes", resolved, s.maxFileSize))
	}
	data, err := s.fsAdapter.ReadFileBytes(resolved)
	if err != nil {
		return nil, appErrors.IO("read source", err)
	}
	return data, nil
}

// writeDocument persists rendered document bytes at the resolved path,
// creating parent directories as needed. Nothing is written until the
// document rendered cleanly, so a fatal error earlier in the call leaves the
// target untouched.
func (s *DefaultDocumentService) writeDocument(resolved string, data []byte) error {
	if err := s.fsAdapter.EnsureDir(filepath.Dir(resolved)); err != nil {
		return appErrors.IO("create target directory", err)
	}
	if err := s.fsAdapter.WriteFileBytesAtomic(resolved, data, documentFilePerm); err != nil {
		return appErrors.IO("write document", err)
	}
	return nil
}

// nonEmptyLines splits content into lines and drops the blank ones. Word
// creation and text conversion map each remaining line to one paragraph.
func (s *DefaultDocumentService) nonEmptyLines(content []byte) []string {
	var lines []string
	for _, line := range s.fsAdapter.SplitLines(content) {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// CreateWordDocument creates a .docx file with one paragraph per non-empty
// content line.
func (s *DefaultDocumentService) CreateWordDocument(req models.CreateDocumentRequest) (res *models.OperationResult) {
	defer s.recoverToFailure("create_word_document", &res)

	path := s.resolvePath(req.Filepath)
	doc := document.NewWordDocument()
	for _, line := range s.nonEmptyLines([]byte(req.Content)) {
		doc.AddParagraph(line)
	}
	data, err := doc.Bytes()
	if err != nil {
		return s.failure("create_word_document", "Error creating Word document", err)
	}
	if err := s.writeDocument(path, data); err != nil {
		return s.failure("create_word_document", "Error creating Word document", err)
	}
	s.logger.Printf("Created Word document: %s", path)
	return successResult("Successfully created Word document", path)
}

// EditWordDocument applies an ordered batch of paragraph operations to an
// existing .docx file. Skipped operations are logged and do not fail the
// call.
func (s *DefaultDocumentService) EditWordDocument(req models.EditDocumentRequest) (res *models.OperationResult) {
	defer s.recoverToFailure("edit_word_document", &res)

	path := s.resolvePath(req.Filepath)
	exists, err := s.fsAdapter.FileExists(path)
	if err != nil {
		return s.failure("edit_word_document", "Error editing Word document", appErrors.IO("stat file", err))
	}
	if !exists {
		return s.failureMessage("edit_word_document", fmt.Sprintf("File not found: %s", req.Filepath))
	}
	data, err := s.readSource(path)
	if err != nil {
		return s.failure("edit_word_document", "Error editing Word document", err)
	}
	doc, err := document.OpenWordDocument(data)
	if err != nil {
		return s.failure("edit_word_document", "Error editing Word document", err)
	}
	summary := ops.ApplyWordOperations(doc, req.Operations, s.logger)
	out, err := doc.Bytes()
	if err != nil {
		return s.failure("edit_word_document", "Error editing Word document", err)
	}
	if err := s.writeDocument(path, out); err != nil {
		return s.failure("edit_word_document", "Error editing Word document", err)
	}
	s.logger.Printf("Edited Word document: %s (%d applied, %d skipped)", path, summary.Applied, summary.Skipped)
	return successResult("Successfully edited Word document", path)
}

// ConvertTxtToWord converts a plain text file into a .docx file with one
// paragraph per non-empty line.
func (s *DefaultDocumentService) ConvertTxtToWord(req models.ConvertDocumentRequest) (res *models.OperationResult) {
	defer s.recoverToFailure("convert_txt_to_word", &res)

	source, err := s.checkSourceExists(req.SourcePath)
	if err != nil {
		if appErrors.Classify(err) == "file_not_found" {
			return s.failureMessage("convert_txt_to_word", fmt.Sprintf("Source file not found: %s", req.SourcePath))
		}
		return s.failure("convert_txt_to_word", "Error converting text to Word", err)
	}
	data, err := s.readSource(source)
	if err != nil {
		return s.failure("convert_txt_to_word", "Error converting text to Word", err)
	}

	target := s.resolvePath(req.TargetPath)
	doc := document.NewWordDocument()
	for _, line := range s.nonEmptyLines(data) {
		doc.AddParagraph(line)
	}
	out, err := doc.Bytes()
	if err != nil {
		return s.failure("convert_txt_to_word", "Error converting text to Word", err)
	}
	if err := s.writeDocument(target, out); err != nil {
		return s.failure("convert_txt_to_word", "Error converting text to Word", err)
	}
	s.logger.Printf("Converted text to Word: %s -> %s", source, target)
	return successResult("Successfully converted text to Word document", target)
}

// ExtractDocxText returns the text of a .docx file: non-empty paragraphs
// joined with newlines, in the Content field of the envelope.
func (s *DefaultDocumentService) ExtractDocxText(req models.ExtractTextRequest) (res *models.OperationResult) {
	defer s.recoverToFailure("extract_docx_text", &res)

	path := s.resolvePath(req.Filepath)
	exists, err := s.fsAdapter.FileExists(path)
	if err != nil {
		return s.failure("extract_docx_text", "Error reading Word file", appErrors.IO("stat file", err))
	}
	if !exists {
		return s.failureMessage("extract_docx_text", fmt.Sprintf("File not found: %s", req.Filepath))
	}
	data, err := s.readSource(path)
	if err != nil {
		return s.failure("extract_docx_text", "Error reading Word file", err)
	}
	doc, err := document.OpenWordDocument(data)
	if err != nil {
		return s.failure("extract_docx_text", "Error reading Word file", err)
	}
	content := string(s.fsAdapter.JoinLinesWithNewlines(doc.ExtractText()))
	s.logger.Printf("Extracted text from Word document: %s", path)
	return &models.OperationResult{
		Success: true,
		Message: "Successfully extracted text from Word document",
		Content: content,
	}
}

// parseSheetContent turns raw spreadsheet content into rows of cell values.
// A JSON array of rows is tried first; anything else falls back to
// comma-separated lines. The order matters: JSON content that happens to
// contain commas must not be split naively.
func (s *DefaultDocumentService) parseSheetContent(content string) [][]interface{} {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return nil
	}
	var rows [][]interface{}
	if err := json.Unmarshal([]byte(trimmed), &rows); err == nil {
		return rows
	}
	var parsed [][]interface{}
	for _, line := range s.fsAdapter.SplitLines([]byte(trimmed)) {
		fields := strings.Split(line, ",")
		row := make([]interface{}, len(fields))
		for i, field := range fields {
			row[i] = field
		}
		parsed = append(parsed, row)
	}
	return parsed
}

// CreateExcelFile creates an .xlsx file from content that is either a JSON
// array of rows or comma-separated lines.
func (s *DefaultDocumentService) CreateExcelFile(req models.CreateDocumentRequest) (res *models.OperationResult) {
	defer s.recoverToFailure("create_excel_file", &res)

	path := s.resolvePath(req.Filepath)
	wb := document.NewWorkbook()
	defer wb.Close()

	sheet := wb.FirstSheet()
	for i, row := range s.parseSheetContent(req.Content) {
		for j, value := range row {
			if err := wb.SetCell(sheet, i+1, j+1, value); err != nil {
				return s.failure("create_excel_file", "Error creating Excel file", err)
			}
		}
	}
	data, err := wb.Bytes()
	if err != nil {
		return s.failure("create_excel_file", "Error creating Excel file", err)
	}
	if err := s.writeDocument(path, data); err != nil {
		return s.failure("create_excel_file", "Error creating Excel file", err)
	}
	s.logger.Printf("Created Excel file: %s", path)
	return successResult("Successfully created Excel file", path)
}

// EditExcelFile applies an ordered batch of cell and sheet operations to an
// existing .xlsx file. Skipped operations are logged and do not fail the
// call.
func (s *DefaultDocumentService) EditExcelFile(req models.EditDocumentRequest) (res *models.OperationResult) {
	defer s.recoverToFailure("edit_excel_file", &res)

	path := s.resolvePath(req.Filepath)
	exists, err := s.fsAdapter.FileExists(path)
	if err != nil {
		return s.failure("edit_excel_file", "Error editing Excel file", appErrors.IO("stat file", err))
	}
	if !exists {
		return s.failureMessage("edit_excel_file", fmt.Sprintf("File not found: %s", req.Filepath))
	}
	data, err := s.readSource(path)
	if err != nil {
		return s.failure("edit_excel_file", "Error editing Excel file", err)
	}
	wb, err := document.OpenWorkbook(data)
	if err != nil {
		return s.failure("edit_excel_file", "Error editing Excel file", err)
	}
	defer wb.Close()

	summary := ops.ApplySheetOperations(wb, req.Operations, s.logger)
	out, err := wb.Bytes()
	if err != nil {
		return s.failure("edit_excel_file", "Error editing Excel file", err)
	}
	if err := s.writeDocument(path, out); err != nil {
		return s.failure("edit_excel_file", "Error editing Excel file", err)
	}
	s.logger.Printf("Edited Excel file: %s (%d applied, %d skipped)", path, summary.Applied, summary.Skipped)
	return successResult("Successfully edited Excel file", path)
}

// ConvertCSVToExcel converts a CSV file into an .xlsx file, preserving cell
// values as text.
func (s *DefaultDocumentService) ConvertCSVToExcel(req models.ConvertDocumentRequest) (res *models.OperationResult) {
	defer s.recoverToFailure("convert_csv_to_excel", &res)

	source, err := s.checkSourceExists(req.SourcePath)
	if err != nil {
		if appErrors.Classify(err) == "file_not_found" {
			return s.failureMessage("convert_csv_to_excel", fmt.Sprintf("Source file not found: %s", req.SourcePath))
		}
		return s.failure("convert_csv_to_excel", "Error converting CSV to Excel", err)
	}
	data, err := s.readSource(source)
	if err != nil {
		return s.failure("convert_csv_to_excel", "Error converting CSV to Excel", err)
	}
	records, err := readCSVRecords(data)
	if err != nil {
		return s.failure("convert_csv_to_excel", "Error converting CSV to Excel", appErrors.MalformedInput("csv", err))
	}

	target := s.resolvePath(req.TargetPath)
	wb := document.NewWorkbook()
	defer wb.Close()

	sheet := wb.FirstSheet()
	for i, record := range records {
		for j, field := range record {
			if err := wb.SetCell(sheet, i+1, j+1, field); err != nil {
				return s.failure("convert_csv_to_excel", "Error converting CSV to Excel", err)
			}
		}
	}
	out, err := wb.Bytes()
	if err != nil {
		return s.failure("convert_csv_to_excel", "Error converting CSV to Excel", err)
	}
	if err := s.writeDocument(target, out); err != nil {
		return s.failure("convert_csv_to_excel", "Error converting CSV to Excel", err)
	}
	s.logger.Printf("Converted CSV to Excel: %s -> %s", source, target)
	return successResult("Successfully converted CSV to Excel", target)
}

// CreatePDFFile creates a PDF from plain text, one content line per PDF line.
// Blank lines still advance the cursor, so they show up as vertical space.
func (s *DefaultDocumentService) CreatePDFFile(req models.CreateDocumentRequest) (res *models.OperationResult) {
	defer s.recoverToFailure("create_pdf_file", &res)

	path := s.resolvePath(req.Filepath)
	writer := document.NewPDFWriter()
	normalized := string(s.fsAdapter.NormalizeNewlines([]byte(req.Content)))
	for _, line := range strings.Split(normalized, "\n") {
		writer.WriteLine(line)
	}
	data, err := writer.Bytes()
	if err != nil {
		return s.failure("create_pdf_file", "Error creating PDF file", err)
	}
	if err := s.writeDocument(path, data); err != nil {
		return s.failure("create_pdf_file", "Error creating PDF file", err)
	}
	s.logger.Printf("Created PDF file: %s (%d pages)", path, writer.PageCount())
	return successResult("Successfully created PDF file", path)
}

// ConvertWordToPDF converts a .docx file into a PDF, one non-empty paragraph
// per PDF line.
func (s *DefaultDocumentService) ConvertWordToPDF(req models.ConvertDocumentRequest) (res *models.OperationResult) {
	defer s.recoverToFailure("convert_word_to_pdf", &res)

	source, err := s.checkSourceExists(req.SourcePath)
	if err != nil {
		if appErrors.Classify(err) == "file_not_found" {
			return s.failureMessage("convert_word_to_pdf", fmt.Sprintf("Source file not found: %s", req.SourcePath))
		}
		return s.failure("convert_word_to_pdf", "Error converting Word to PDF", err)
	}
	data, err := s.readSource(source)
	if err != nil {
		return s.failure("convert_word_to_pdf", "Error converting Word to PDF", err)
	}
	doc, err := document.OpenWordDocument(data)
	if err != nil {
		return s.failure("convert_word_to_pdf", "Error converting Word to PDF", err)
	}

	target := s.resolvePath(req.TargetPath)
	writer := document.NewPDFWriter()
	for _, line := range doc.ExtractText() {
		writer.WriteLine(line)
	}
	out, err := writer.Bytes()
	if err != nil {
		return s.failure("convert_word_to_pdf", "Error converting Word to PDF", err)
	}
	if err := s.writeDocument(target, out); err != nil {
		return s.failure("convert_word_to_pdf", "Error converting Word to PDF", err)
	}
	s.logger.Printf("Converted Word to PDF: %s -> %s", source, target)
	return successResult("Successfully converted Word to PDF", target)
}

// Capabilities returns the static capabilities descriptor exposed through the
// capabilities resource.
func (s *DefaultDocumentService) Capabilities() models.CapabilitiesDescriptor {
	return models.CapabilitiesDescriptor{
		Name:        "document-ops-server",
		Version:     "0.1.0",
		Description: "Create, edit and convert Word, Excel and PDF documents",
		DocumentOperations: models.DocumentOperations{
			Word: models.WordCapabilities{
				Create:         true,
				Edit:           true,
				ConvertFromTxt: true,
				ExtractText:    true,
			},
			Excel: models.ExcelCapabilities{
				Create:         true,
				Edit:           true,
				ConvertFromCSV: true,
			},
			PDF: models.PDFCapabilities{
				Create:          true,
				ConvertFromWord: true,
			},
		},
	}
}
