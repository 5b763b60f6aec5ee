package export

import (
	"io"

	"moodlog/internal/entity"

	"github.com/jung-kurt/gofpdf"
)

// pdfTextLimit caps the entry column so long entries do not overflow their
// table cell.
const pdfTextLimit = 80

// WritePDF renders the user's entries as a simple PDF table with the same
// columns as the CSV export.
func WritePDF(w io.Writer, rows []entity.EntryItem) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(0, 10, "Sentiment Journal Entries", "", 1, "C", false, 0, "")
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(40, 10, "Date", "1", 0, "", false, 0, "")
	pdf.CellFormat(100, 10, "Entry", "1", 0, "", false, 0, "")
	pdf.CellFormat(40, 10, "Sentiment", "1", 1, "", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, row := range rows {
		text := row.Text
		if len(text) > pdfTextLimit {
			text = text[:pdfTextLimit] + "..."
		}
		pdf.CellFormat(40, 10, row.Date.Format(exportTimeLayout), "1", 0, "", false, 0, "")
		pdf.CellFormat(100, 10, text, "1", 0, "", false, 0, "")
		pdf.CellFormat(40, 10, row.Sentiment, "1", 1, "", false, 0, "")
	}

	return pdf.Output(w)
}
