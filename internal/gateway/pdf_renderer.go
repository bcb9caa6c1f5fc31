package gateway

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"

	"agri-reconciliation/internal/domain"
	"agri-reconciliation/internal/money"
)

const (
	pageBreakY = 270.0
	tableWidth = 182.0
	rowHeight  = 7.0
)

// PDFRenderer lays a statement out as A4 tables.
type PDFRenderer struct {
	now func() time.Time
}

func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{now: time.Now}
}

func (r *PDFRenderer) Render(ctx context.Context, doc domain.Statement, w io.Writer) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(14, 14, 14)
	pdf.SetTitle(doc.Title, true)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	text := func(s string) string {
		// The core fonts have no naira glyph.
		return tr(strings.ReplaceAll(s, money.Symbol, "NGN "))
	}

	pdf.SetTextColor(20, 20, 20)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, text(doc.Title))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(80, 80, 80)
	if doc.Subject != "" {
		pdf.Cell(0, 6, text("Farmer: "+doc.Subject))
		pdf.Ln(5)
	}
	if doc.SubjectID != "" {
		pdf.Cell(0, 6, text("ID: "+doc.SubjectID))
		pdf.Ln(5)
	}
	pdf.Cell(0, 6, "Generated: "+doc.GeneratedAt.Format("2006-01-02 15:04 MST"))
	pdf.Ln(10)

	pdf.SetDrawColor(200, 200, 200)
	for _, section := range doc.Sections {
		if err := ctx.Err(); err != nil {
			return err
		}
		if pdf.GetY() > pageBreakY-2*rowHeight {
			pdf.AddPage()
		}
		pdf.SetFont("Helvetica", "B", 13)
		pdf.SetTextColor(20, 20, 20)
		pdf.Cell(0, 8, text(section.Title))
		pdf.Ln(9)

		if len(section.Columns) == 0 {
			continue
		}
		colW := tableWidth / float64(len(section.Columns))
		tableHeader := func() {
			pdf.SetFont("Helvetica", "B", 9)
			pdf.SetFillColor(245, 245, 245)
			for i, col := range section.Columns {
				ln := 0
				if i == len(section.Columns)-1 {
					ln = 1
				}
				pdf.CellFormat(colW, rowHeight, fit(pdf, text(col), colW), "1", ln, "C", true, 0, "")
			}
			pdf.SetFont("Helvetica", "", 8)
		}
		tableHeader()

		if len(section.Rows) == 0 {
			pdf.SetFont("Helvetica", "I", 8)
			pdf.CellFormat(tableWidth, rowHeight, noRecords, "1", 1, "C", false, 0, "")
		}
		for _, row := range section.Rows {
			if pdf.GetY() > pageBreakY {
				pdf.AddPage()
				tableHeader()
			}
			for i, col := range section.Columns {
				ln := 0
				if i == len(section.Columns)-1 {
					ln = 1
				}
				pdf.CellFormat(colW, rowHeight, fit(pdf, text(row[col]), colW), "1", ln, "L", false, 0, "")
			}
		}
		pdf.Ln(6)
	}

	pdf.SetY(-18)
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(0, 10, "Rendered "+r.now().UTC().Format(time.RFC3339), "", 0, "C", false, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("pdf build failed: %w", err)
	}
	return nil
}

// fit trims s until it fits a cell of width w.
func fit(pdf *gofpdf.Fpdf, s string, w float64) string {
	const padding = 2.0
	if pdf.GetStringWidth(s) <= w-padding {
		return s
	}
	for len(s) > 0 && pdf.GetStringWidth(s+"...") > w-padding {
		s = s[:len(s)-1]
	}
	return s + "..."
}
