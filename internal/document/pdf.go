package document

import (
	"bytes"

	"github.com/phpdave11/gofpdf"

	"document-ops-server/internal/errors"
)

// PDF layout constants: Letter page in points, a 40pt margin at top and
// bottom, 15pt per line, no wrapping.
const (
	pdfMargin     = 40.0
	pdfLineHeight = 15.0
	pdfFontFamily = "Helvetica"
	pdfFontSize   = 12.0
)

// PDFWriter is a write-only, append-only text stream with explicit
// pagination: a cursor tracks vertical position, and crossing the bottom
// margin starts a new page with the cursor reset to the top.
type PDFWriter struct {
	pdf        *gofpdf.Fpdf
	pageHeight float64
	y          float64
}

// NewPDFWriter creates a PDF with one page and the cursor at the top margin.
func NewPDFWriter() *PDFWriter {
	pdf := gofpdf.New("P", "pt", "Letter", "")
	pdf.SetFont(pdfFontFamily, "", pdfFontSize)
	// Pagination is explicit: the cursor decides page breaks, not the
	// library.
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	_, height := pdf.GetPageSize()
	return &PDFWriter{
		pdf:        pdf,
		pageHeight: height,
		y:          height - pdfMargin,
	}
}

// WriteLine draws one content line at the cursor and advances it by the line
// height, starting a new page first if the cursor has crossed the bottom
// margin. Line width is ignored: no wrapping.
func (p *PDFWriter) WriteLine(line string) {
	if p.y < pdfMargin {
		p.pdf.AddPage()
		p.y = p.pageHeight - pdfMargin
	}
	p.pdf.Text(pdfMargin, p.y, line)
	p.y -= pdfLineHeight
}

// PageCount returns the number of pages emitted so far.
func (p *PDFWriter) PageCount() int {
	return p.pdf.PageCount()
}

// Bytes renders the PDF to bytes.
func (p *PDFWriter) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := p.pdf.Output(&buf); err != nil {
		return nil, errors.IO("render pdf", err)
	}
	return buf.Bytes(), nil
}
