// Package document holds the format adapters: narrow load/create/save
// boundaries around the external OOXML and PDF libraries. Handles are
// in-memory and call-scoped; all file I/O happens outside this package.
package document

import (
	"bytes"
	"fmt"

	"github.com/fumiama/go-docx"

	"document-ops-server/internal/errors"
)

// WordDocument wraps an in-memory Word document. Paragraphs form an ordered,
// index-addressable sequence (0-based).
type WordDocument struct {
	doc *docx.Docx
}

// NewWordDocument creates an empty Word document.
func NewWordDocument() *WordDocument {
	return &WordDocument{doc: docx.New().WithDefaultTheme()}
}

// OpenWordDocument parses a Word document from raw bytes.
func OpenWordDocument(data []byte) (*WordDocument, error) {
	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, errors.MalformedInput("word document", err)
	}
	return &WordDocument{doc: doc}, nil
}

// paragraphs returns the current ordered paragraph list, recomputed from the
// document body so it reflects prior mutations.
func (w *WordDocument) paragraphs() []*docx.Paragraph {
	var paras []*docx.Paragraph
	for _, item := range w.doc.Document.Body.Items {
		if p, ok := item.(*docx.Paragraph); ok {
			paras = append(paras, p)
		}
	}
	return paras
}

// ParagraphCount returns the number of paragraphs in the document.
func (w *WordDocument) ParagraphCount() int {
	return len(w.paragraphs())
}

// ParagraphText returns the text of the paragraph at index i.
func (w *WordDocument) ParagraphText(i int) string {
	paras := w.paragraphs()
	if i < 0 || i >= len(paras) {
		return ""
	}
	return paras[i].String()
}

// AddParagraph appends a paragraph with the given text.
func (w *WordDocument) AddParagraph(text string) {
	p := w.doc.AddParagraph()
	if text != "" {
		p.AddText(text)
	}
}

// AddHeading appends a heading paragraph. Levels outside 1-9 are clamped.
func (w *WordDocument) AddHeading(text string, level int) {
	if level < 1 {
		level = 1
	}
	if level > 9 {
		level = 9
	}
	p := w.doc.AddParagraph()
	p.Style(fmt.Sprintf("Heading%d", level))
	if text != "" {
		p.AddText(text)
	}
}

// EditParagraph replaces the text of the paragraph at index i. The caller is
// responsible for bounds checking via ParagraphCount.
func (w *WordDocument) EditParagraph(i int, text string) {
	paras := w.paragraphs()
	if i < 0 || i >= len(paras) {
		return
	}
	p := paras[i]
	p.Children = nil
	if text != "" {
		p.AddText(text)
	}
}

// DeleteParagraph removes the paragraph at index i from the document body.
func (w *WordDocument) DeleteParagraph(i int) {
	if i < 0 {
		return
	}
	items := w.doc.Document.Body.Items
	seen := 0
	for pos, item := range items {
		if _, ok := item.(*docx.Paragraph); !ok {
			continue
		}
		if seen == i {
			w.doc.Document.Body.Items = append(items[:pos], items[pos+1:]...)
			return
		}
		seen++
	}
}

// ExtractText concatenates all non-empty paragraph texts with newline
// separators.
func (w *WordDocument) ExtractText() []string {
	var lines []string
	for _, p := range w.paragraphs() {
		if text := p.String(); text != "" {
			lines = append(lines, text)
		}
	}
	return lines
}

// Bytes renders the document to OOXML bytes.
func (w *WordDocument) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := w.doc.WriteTo(&buf); err != nil {
		return nil, errors.IO("render word document", err)
	}
	return buf.Bytes(), nil
}
