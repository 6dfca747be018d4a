package service

import (
	"bytes"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"document-ops-server/internal/config"
	"document-ops-server/internal/document"
	"document-ops-server/internal/filesystem"
	"document-ops-server/internal/models"
)

func newTestService(t *testing.T) (*DefaultDocumentService, string) {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{WorkingDirectory: dir, MaxFileSizeMB: 10}
	svc, err := NewDefaultDocumentService(filesystem.NewDefaultAdapter(), log.New(io.Discard, "", 0), cfg)
	if err != nil {
		t.Fatalf("NewDefaultDocumentService() error: %v", err)
	}
	return svc, dir
}

func requireSuccess(t *testing.T, res *models.OperationResult) {
	t.Helper()
	if !res.Success {
		t.Fatalf("expected success, got failure: %s", res.Message)
	}
}

func requireFailure(t *testing.T, res *models.OperationResult) {
	t.Helper()
	if res.Success {
		t.Fatalf("expected failure, got success: %s", res.Message)
	}
	if res.Filepath != nil {
		t.Errorf("failure envelope should carry a null filepath, got %q", *res.Filepath)
	}
}

func openWorkbookFile(t *testing.T, path string) *document.Workbook {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	wb, err := document.OpenWorkbook(data)
	if err != nil {
		t.Fatalf("opening workbook %s: %v", path, err)
	}
	t.Cleanup(func() { wb.Close() })
	return wb
}

func TestCreateWordDocumentThenExtractRoundTrip(t *testing.T) {
	svc, dir := newTestService(t)
	path := filepath.Join(dir, "doc.docx")

	res := svc.CreateWordDocument(models.CreateDocumentRequest{
		Filepath: path,
		Content:  "alpha\n\nbeta\ngamma",
	})
	requireSuccess(t, res)
	if res.Filepath == nil || *res.Filepath != path {
		t.Fatalf("Filepath = %v, want %s", res.Filepath, path)
	}

	extract := svc.ExtractDocxText(models.ExtractTextRequest{Filepath: path})
	requireSuccess(t, extract)
	// Blank lines are dropped on creation, so the round-trip loses them.
	if extract.Content != "alpha\nbeta\ngamma" {
		t.Errorf("Content = %q, want %q", extract.Content, "alpha\nbeta\ngamma")
	}
}

func TestCreateWordDocumentRelativePath(t *testing.T) {
	svc, dir := newTestService(t)

	res := svc.CreateWordDocument(models.CreateDocumentRequest{
		Filepath: "nested/doc.docx",
		Content:  "hello",
	})
	requireSuccess(t, res)

	want := filepath.Join(dir, "nested", "doc.docx")
	if res.Filepath == nil || *res.Filepath != want {
		t.Fatalf("Filepath = %v, want %s", res.Filepath, want)
	}
	if _, err := os.Stat(want); err != nil {
		t.Errorf("document not created under working directory: %v", err)
	}
}

func TestEditWordDocumentMissingFile(t *testing.T) {
	svc, dir := newTestService(t)

	res := svc.EditWordDocument(models.EditDocumentRequest{
		Filepath:   "missing.docx",
		Operations: []models.Operation{{Type: models.OpAddParagraph, Text: "x"}},
	})
	requireFailure(t, res)
	if res.Message != "File not found: missing.docx" {
		t.Errorf("Message = %q", res.Message)
	}
	if _, err := os.Stat(filepath.Join(dir, "missing.docx")); !os.IsNotExist(err) {
		t.Error("edit of a missing file must not create it")
	}
}

func TestEditWordDocumentOutOfRangeDeleteIsNoOpSuccess(t *testing.T) {
	svc, dir := newTestService(t)
	path := filepath.Join(dir, "doc.docx")
	requireSuccess(t, svc.CreateWordDocument(models.CreateDocumentRequest{Filepath: path, Content: "one\ntwo"}))

	res := svc.EditWordDocument(models.EditDocumentRequest{
		Filepath:   path,
		Operations: []models.Operation{{Type: models.OpDeleteParagraph, Index: 999}},
	})
	requireSuccess(t, res)

	extract := svc.ExtractDocxText(models.ExtractTextRequest{Filepath: path})
	requireSuccess(t, extract)
	if extract.Content != "one\ntwo" {
		t.Errorf("document changed by out-of-range delete: %q", extract.Content)
	}
}

func TestEditWordDocumentAppliesBatchInOrder(t *testing.T) {
	svc, dir := newTestService(t)
	path := filepath.Join(dir, "doc.docx")
	requireSuccess(t, svc.CreateWordDocument(models.CreateDocumentRequest{Filepath: path, Content: "start"}))

	res := svc.EditWordDocument(models.EditDocumentRequest{
		Filepath: path,
		Operations: []models.Operation{
			{Type: models.OpAddParagraph, Text: "middle"},
			{Type: models.OpEditParagraph, Index: 0, Text: "start edited"},
			{Type: "bogus_op"},
			{Type: models.OpAddHeading, Text: "End", Level: 2},
		},
	})
	requireSuccess(t, res)

	extract := svc.ExtractDocxText(models.ExtractTextRequest{Filepath: path})
	requireSuccess(t, extract)
	if extract.Content != "start edited\nmiddle\nEnd" {
		t.Errorf("Content = %q", extract.Content)
	}
}

func TestConvertTxtToWord(t *testing.T) {
	svc, dir := newTestService(t)
	source := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(source, []byte("first\r\nsecond\r\n\r\nthird"), 0644); err != nil {
		t.Fatal(err)
	}
	target := filepath.Join(dir, "notes.docx")

	res := svc.ConvertTxtToWord(models.ConvertDocumentRequest{SourcePath: source, TargetPath: target})
	requireSuccess(t, res)
	if res.Filepath == nil || *res.Filepath != target {
		t.Fatalf("Filepath = %v, want %s", res.Filepath, target)
	}

	extract := svc.ExtractDocxText(models.ExtractTextRequest{Filepath: target})
	requireSuccess(t, extract)
	if extract.Content != "first\nsecond\nthird" {
		t.Errorf("Content = %q", extract.Content)
	}
}

func TestConvertTxtToWordMissingSource(t *testing.T) {
	svc, _ := newTestService(t)

	res := svc.ConvertTxtToWord(models.ConvertDocumentRequest{
		SourcePath: "nope.txt",
		TargetPath: "out.docx",
	})
	requireFailure(t, res)
	if res.Message != "Source file not found: nope.txt" {
		t.Errorf("Message = %q", res.Message)
	}
}

func TestExtractDocxTextMissingFile(t *testing.T) {
	svc, _ := newTestService(t)

	res := svc.ExtractDocxText(models.ExtractTextRequest{Filepath: "ghost.docx"})
	requireFailure(t, res)
	if res.Message != "File not found: ghost.docx" {
		t.Errorf("Message = %q", res.Message)
	}
}

func TestCreateExcelFileFromJSONRows(t *testing.T) {
	svc, dir := newTestService(t)
	path := filepath.Join(dir, "grid.xlsx")

	res := svc.CreateExcelFile(models.CreateDocumentRequest{
		Filepath: path,
		Content:  `[["a","b"],["c","d"]]`,
	})
	requireSuccess(t, res)

	wb := openWorkbookFile(t, path)
	sheet := wb.FirstSheet()
	tests := []struct {
		row, col int
		want     string
	}{
		{1, 1, "a"}, {1, 2, "b"}, {2, 1, "c"}, {2, 2, "d"},
	}
	for _, tt := range tests {
		got, err := wb.CellValue(sheet, tt.row, tt.col)
		if err != nil {
			t.Fatalf("CellValue(%d,%d) error: %v", tt.row, tt.col, err)
		}
		if got != tt.want {
			t.Errorf("cell (%d,%d) = %q, want %q", tt.row, tt.col, got, tt.want)
		}
	}
}

func TestCreateExcelFileCommaFallback(t *testing.T) {
	svc, dir := newTestService(t)
	path := filepath.Join(dir, "plain.xlsx")

	res := svc.CreateExcelFile(models.CreateDocumentRequest{
		Filepath: path,
		Content:  "x,y\nz",
	})
	requireSuccess(t, res)

	wb := openWorkbookFile(t, path)
	sheet := wb.FirstSheet()
	for _, tt := range []struct {
		row, col int
		want     string
	}{
		{1, 1, "x"}, {1, 2, "y"}, {2, 1, "z"},
	} {
		got, err := wb.CellValue(sheet, tt.row, tt.col)
		if err != nil {
			t.Fatalf("CellValue error: %v", err)
		}
		if got != tt.want {
			t.Errorf("cell (%d,%d) = %q, want %q", tt.row, tt.col, got, tt.want)
		}
	}
}

func TestEditExcelFile(t *testing.T) {
	svc, dir := newTestService(t)
	path := filepath.Join(dir, "book.xlsx")
	requireSuccess(t, svc.CreateExcelFile(models.CreateDocumentRequest{Filepath: path, Content: `[["old"]]`}))

	res := svc.EditExcelFile(models.EditDocumentRequest{
		Filepath: path,
		Operations: []models.Operation{
			{Type: models.OpUpdateCell, Row: 1, Col: 1, Value: "new"},
			{Type: models.OpUpdateCell, Sheet: "Budget", Row: 1, Col: 1, Value: 7},
			{Type: models.OpAddSheet, Name: "Budget"},
		},
	})
	requireSuccess(t, res)

	wb := openWorkbookFile(t, path)
	got, err := wb.CellValue(wb.FirstSheet(), 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if got != "new" {
		t.Errorf("cell (1,1) = %q, want %q", got, "new")
	}
	if !wb.HasSheet("Budget") {
		t.Error("sheet Budget should exist after edit")
	}
	if budget, _ := wb.CellValue("Budget", 1, 1); budget != "7" {
		t.Errorf("Budget cell (1,1) = %q, want %q", budget, "7")
	}
}

func TestEditExcelFileLastSheetGuard(t *testing.T) {
	svc, dir := newTestService(t)
	path := filepath.Join(dir, "single.xlsx")
	requireSuccess(t, svc.CreateExcelFile(models.CreateDocumentRequest{Filepath: path, Content: `[["v"]]`}))

	res := svc.EditExcelFile(models.EditDocumentRequest{
		Filepath:   path,
		Operations: []models.Operation{{Type: models.OpDeleteSheet}},
	})
	requireSuccess(t, res)

	wb := openWorkbookFile(t, path)
	if wb.SheetCount() != 1 {
		t.Errorf("SheetCount() = %d, want 1: the last sheet must survive", wb.SheetCount())
	}
}

func TestEditExcelFileMalformedLeavesFileUntouched(t *testing.T) {
	svc, dir := newTestService(t)
	path := filepath.Join(dir, "broken.xlsx")
	garbage := []byte("this is not a workbook")
	if err := os.WriteFile(path, garbage, 0644); err != nil {
		t.Fatal(err)
	}

	res := svc.EditExcelFile(models.EditDocumentRequest{
		Filepath:   path,
		Operations: []models.Operation{{Type: models.OpUpdateCell, Value: "x"}},
	})
	requireFailure(t, res)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, garbage) {
		t.Error("a fatal error must not modify the target file")
	}
}

func TestConvertCSVToExcelPreservesQuotedFields(t *testing.T) {
	svc, dir := newTestService(t)
	source := filepath.Join(dir, "data.csv")
	if err := os.WriteFile(source, []byte("a,\"b,c\"\nd,e\n"), 0644); err != nil {
		t.Fatal(err)
	}
	target := filepath.Join(dir, "data.xlsx")

	res := svc.ConvertCSVToExcel(models.ConvertDocumentRequest{SourcePath: source, TargetPath: target})
	requireSuccess(t, res)

	wb := openWorkbookFile(t, target)
	sheet := wb.FirstSheet()
	got, err := wb.CellValue(sheet, 1, 2)
	if err != nil {
		t.Fatal(err)
	}
	if got != "b,c" {
		t.Errorf("cell (1,2) = %q, want %q", got, "b,c")
	}
	if got, _ := wb.CellValue(sheet, 2, 2); got != "e" {
		t.Errorf("cell (2,2) = %q, want %q", got, "e")
	}
}

func TestConvertCSVToExcelMissingSource(t *testing.T) {
	svc, _ := newTestService(t)

	res := svc.ConvertCSVToExcel(models.ConvertDocumentRequest{
		SourcePath: "absent.csv",
		TargetPath: "out.xlsx",
	})
	requireFailure(t, res)
	if res.Message != "Source file not found: absent.csv" {
		t.Errorf("Message = %q", res.Message)
	}
}

func TestCreatePDFFile(t *testing.T) {
	svc, dir := newTestService(t)
	path := filepath.Join(dir, "out.pdf")

	res := svc.CreatePDFFile(models.CreateDocumentRequest{
		Filepath: path,
		Content:  "line one\nline two",
	})
	requireSuccess(t, res)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("output is not a PDF")
	}
}

func TestConvertWordToPDF(t *testing.T) {
	svc, dir := newTestService(t)
	source := filepath.Join(dir, "src.docx")
	requireSuccess(t, svc.CreateWordDocument(models.CreateDocumentRequest{Filepath: source, Content: "para one\npara two"}))
	target := filepath.Join(dir, "src.pdf")

	res := svc.ConvertWordToPDF(models.ConvertDocumentRequest{SourcePath: source, TargetPath: target})
	requireSuccess(t, res)

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("output is not a PDF")
	}
}

func TestConvertWordToPDFMissingSource(t *testing.T) {
	svc, _ := newTestService(t)

	res := svc.ConvertWordToPDF(models.ConvertDocumentRequest{
		SourcePath: "gone.docx",
		TargetPath: "out.pdf",
	})
	requireFailure(t, res)
	if res.Message != "Source file not found: gone.docx" {
		t.Errorf("Message = %q", res.Message)
	}
}

func TestReadSourceEnforcesSizeLimit(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{WorkingDirectory: dir, MaxFileSizeMB: 1}
	svc, err := NewDefaultDocumentService(filesystem.NewDefaultAdapter(), log.New(io.Discard, "", 0), cfg)
	if err != nil {
		t.Fatal(err)
	}

	source := filepath.Join(dir, "big.txt")
	if err := os.WriteFile(source, make([]byte, 2*1024*1024), 0644); err != nil {
		t.Fatal(err)
	}

	res := svc.ConvertTxtToWord(models.ConvertDocumentRequest{
		SourcePath: source,
		TargetPath: filepath.Join(dir, "big.docx"),
	})
	requireFailure(t, res)
}

func TestCapabilities(t *testing.T) {
	svc, _ := newTestService(t)
	caps := svc.Capabilities()

	if caps.Name == "" || caps.Version == "" {
		t.Error("capabilities must carry name and version")
	}
	if !caps.DocumentOperations.Word.Create || !caps.DocumentOperations.Word.ExtractText {
		t.Error("word capabilities incomplete")
	}
	if !caps.DocumentOperations.Excel.Edit || !caps.DocumentOperations.Excel.ConvertFromCSV {
		t.Error("excel capabilities incomplete")
	}
	if !caps.DocumentOperations.PDF.ConvertFromWord {
		t.Error("pdf capabilities incomplete")
	}
}

func TestParseSheetContentPrefersJSON(t *testing.T) {
	svc, _ := newTestService(t)

	// JSON that contains commas must not fall into the comma-split path.
	rows := svc.parseSheetContent(`[["a,b"]]`)
	if len(rows) != 1 || len(rows[0]) != 1 || rows[0][0] != "a,b" {
		t.Errorf("parseSheetContent = %v, want single cell %q", rows, "a,b")
	}

	rows = svc.parseSheetContent("a,b")
	if len(rows) != 1 || len(rows[0]) != 2 {
		t.Errorf("parseSheetContent = %v, want one row of two cells", rows)
	}

	if rows := svc.parseSheetContent("   "); rows != nil {
		t.Errorf("parseSheetContent(blank) = %v, want nil", rows)
	}
}
