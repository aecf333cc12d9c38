package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// Orientation of the rendered page.
type Orientation string

const (
	Portrait  Orientation = "P"
	Landscape Orientation = "L"
)

// PDFExporter renders datasets into a tabular A4 document.
type PDFExporter struct {
	orientation Orientation
}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter(orientation Orientation) *PDFExporter {
	if orientation != Landscape {
		orientation = Portrait
	}
	return &PDFExporter{orientation: orientation}
}

// Render creates a PDF with the dataset title, subtitle and a bordered table.
// Rows wrap inside their cell and the header row repeats on each new page.
func (e *PDFExporter) Render(data Dataset) ([]byte, error) {
	if err := data.validate(); err != nil {
		return nil, err
	}
	pdf := gofpdf.New(string(e.orientation), "mm", "A4", "")
	pdf.SetMargins(10, 12, 10)
	pdf.SetAutoPageBreak(false, 12)
	pdf.AddPage()

	pageW, pageH := pdf.GetPageSize()
	_, top, _, bottom := pdf.GetMargins()
	tableW := pageW - 20
	colW := tableW / float64(len(data.Headers))

	if data.Title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 9, data.Title, "", 1, "C", false, 0, "")
	}
	if data.Subtitle != "" {
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(0, 6, data.Subtitle, "", 1, "C", false, 0, "")
	}
	pdf.Ln(3)

	header := func() {
		pdf.SetFont("Arial", "B", 9)
		pdf.SetFillColor(230, 230, 230)
		for _, h := range data.Headers {
			pdf.CellFormat(colW, 8, h, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 8)
	}
	header()

	const lineH = 4.5
	for _, row := range data.Rows {
		lines := 1
		for i := range data.Headers {
			if n := len(pdf.SplitLines([]byte(data.cell(row, i)), colW-2)); n > lines {
				lines = n
			}
		}
		rowH := float64(lines) * lineH
		if pdf.GetY()+rowH > pageH-bottom {
			pdf.AddPage()
			pdf.SetY(top)
			header()
		}
		x, y := pdf.GetXY()
		for i := range data.Headers {
			cellX := x + float64(i)*colW
			pdf.Rect(cellX, y, colW, rowH, "D")
			pdf.SetXY(cellX+1, y)
			pdf.MultiCell(colW-2, lineH, data.cell(row, i), "", "L", false)
		}
		pdf.SetXY(x, y+rowH)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
