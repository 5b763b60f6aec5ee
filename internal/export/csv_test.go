package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"moodlog/internal/entity"
)

func TestWriteCSV(t *testing.T) {
	when := time.Date(2026, 3, 14, 9, 26, 0, 0, time.UTC)
	rows := []entity.EntryItem{
		{ID: 2, Date: when.Add(time.Hour), Text: "Great day at the park", Sentiment: entity.SentimentPositive},
		{ID: 1, Date: when, Text: "Commas, should \"survive\" quoting", Sentiment: entity.SentimentNeutral},
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, rows); err != nil {
		t.Fatalf("unexpected error writing csv: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid csv: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d records", len(records))
	}
	header := records[0]
	if header[0] != "Date" || header[1] != "Entry" || header[2] != "Sentiment" {
		t.Fatalf("unexpected header: %v", header)
	}
	if records[1][0] != "2026-03-14 10:26" {
		t.Errorf("expected formatted timestamp, got %q", records[1][0])
	}
	if records[2][1] != "Commas, should \"survive\" quoting" {
		t.Errorf("expected quoted text round-trip, got %q", records[2][1])
	}
	if records[1][2] != entity.SentimentPositive {
		t.Errorf("expected sentiment column, got %q", records[1][2])
	}
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid csv: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected header only, got %d records", len(records))
	}
}
