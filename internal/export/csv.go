package export

import (
	"encoding/csv"
	"io"

	"moodlog/internal/entity"
)

const exportTimeLayout = "2006-01-02 15:04"

// WriteCSV streams the user's entries as CSV: a header row followed by one
// row per entry (date, text, sentiment), already ordered most recent first
// by the caller.
func WriteCSV(w io.Writer, rows []entity.EntryItem) error {
	writer := csv.NewWriter(w)

	if err := writer.Write([]string{"Date", "Entry", "Sentiment"}); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{
			row.Date.Format(exportTimeLayout),
			row.Text,
			row.Sentiment,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
