package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"moodlog/internal/entity"
	"moodlog/internal/model"
	"moodlog/internal/sentiment"
)

const dateLayout = "2006-01-02"

// JournalService owns the entry lifecycle: classification on submit, tag
// resolution, filtered retrieval, and trend aggregation.
type JournalService struct {
	repo        model.Repository
	pageSize    int
	trendWindow time.Duration

	now func() time.Time
}

// NewJournalService creates the service. pageSize and trendWindowDays fall
// back to the defaults (10 entries, 7 days) when out of range.
func NewJournalService(repo model.Repository, pageSize, trendWindowDays int) *JournalService {
	if pageSize <= 0 {
		pageSize = 10
	}
	if trendWindowDays <= 0 {
		trendWindowDays = 7
	}
	return &JournalService{
		repo:        repo,
		pageSize:    pageSize,
		trendWindow: time.Duration(trendWindowDays) * 24 * time.Hour,
		now:         time.Now,
	}
}

// CreateEntry classifies the text, persists the entry, and resolves its tag
// list. rawTags is a comma separated string; pieces are trimmed and empty
// pieces discarded. Returns the stored entry hydrated with its tags.
func (s *JournalService) CreateEntry(ctx context.Context, userID uint, text, rawTags string) (*entity.EntryItem, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, &ValidationError{Field: "entry", Message: "entry text must not be empty"}
	}

	category, _ := sentiment.Classify(trimmed)

	entry := &entity.DbEntry{
		UserID:    userID,
		Text:      trimmed,
		Sentiment: category,
	}

	if err := s.repo.CreateEntryWithTags(ctx, entry, SplitTagList(rawTags)); err != nil {
		return nil, &StorageError{Op: "create entry", Err: err}
	}

	names, err := s.repo.TagNamesForEntry(ctx, entry.ID)
	if err != nil {
		return nil, &StorageError{Op: "load entry tags", Err: err}
	}

	item := makeEntryItem(*entry)
	item.Tags = names
	return &item, nil
}

// QueryEntries returns one page of a user's entries under the supplied
// filters, with totals. Malformed date strings are rejected; an unknown
// sentiment value acts as "no filter".
func (s *JournalService) QueryEntries(ctx context.Context, userID uint, query entity.EntryQuery) (*entity.EntryListResponse, error) {
	if err := validateDateFilter("date_from", query.DateFrom); err != nil {
		return nil, err
	}
	if err := validateDateFilter("date_to", query.DateTo); err != nil {
		return nil, err
	}

	query.UserID = userID
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.PageSize <= 0 {
		query.PageSize = int64(s.pageSize)
	}

	entries, meta, err := s.repo.ListEntries(ctx, &query)
	if err != nil {
		return nil, &StorageError{Op: "list entries", Err: err}
	}

	items := make([]entity.EntryItem, 0, len(entries))
	for _, entry := range entries {
		items = append(items, makeEntryItem(entry))
	}

	return &entity.EntryListResponse{Entries: items, Meta: meta}, nil
}

// TagsFor returns the tag names attached to an entry, deterministic across
// repeated calls against unchanged data.
func (s *JournalService) TagsFor(ctx context.Context, entryID uint) ([]string, error) {
	names, err := s.repo.TagNamesForEntry(ctx, entryID)
	if err != nil {
		return nil, &StorageError{Op: "load entry tags", Err: err}
	}
	return names, nil
}

// ListTags returns every tag with its usage count.
func (s *JournalService) ListTags(ctx context.Context) ([]entity.Tag, error) {
	tags, err := s.repo.ListTags(ctx)
	if err != nil {
		return nil, &StorageError{Op: "list tags", Err: err}
	}
	items := make([]entity.Tag, 0, len(tags))
	for _, tag := range tags {
		items = append(items, entity.Tag{
			ID:         tag.ID,
			Name:       tag.Name,
			UsageCount: tag.UsageCount,
			CreatedAt:  tag.CreatedAt,
		})
	}
	return items, nil
}

// DailyTrend aggregates the user's full history into a per-day, per-category
// count matrix.
func (s *JournalService) DailyTrend(ctx context.Context, userID uint) (*entity.TrendData, error) {
	return s.trend(ctx, userID, nil)
}

// RecentTrend aggregates the trailing window (7 days by default).
func (s *JournalService) RecentTrend(ctx context.Context, userID uint) (*entity.TrendData, error) {
	since := s.now().Add(-s.trendWindow)
	return s.trend(ctx, userID, &since)
}

func (s *JournalService) trend(ctx context.Context, userID uint, since *time.Time) (*entity.TrendData, error) {
	rows, err := s.repo.DailySentimentCounts(ctx, userID, since)
	if err != nil {
		return nil, &StorageError{Op: "aggregate trend", Err: err}
	}
	return buildTrend(rows), nil
}

// buildTrend densifies sparse grouping rows into a rectangular matrix: the
// x-axis is the sorted set of days that have at least one entry, and every
// category key is present with exactly len(days) counts, zero-filled where
// the groupings had no row.
func buildTrend(rows []entity.DailySentimentCount) *entity.TrendData {
	daySet := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		daySet[row.Day] = struct{}{}
	}

	days := make([]string, 0, len(daySet))
	for day := range daySet {
		days = append(days, day)
	}
	// 天字符串为 YYYY-MM-DD，字典序即时间序
	sort.Strings(days)

	dayIndex := make(map[string]int, len(days))
	for i, day := range days {
		dayIndex[day] = i
	}

	matrix := make(map[string][]int64, len(entity.SentimentCategories))
	for _, category := range entity.SentimentCategories {
		matrix[category] = make([]int64, len(days))
	}

	for _, row := range rows {
		counts, ok := matrix[row.Sentiment]
		if !ok {
			continue
		}
		counts[dayIndex[row.Day]] = row.Count
	}

	return &entity.TrendData{Days: days, Matrix: matrix}
}

// ExportRows returns every entry of the user, most recent first, in the same
// record shape the query endpoint produces. Export collaborators (CSV, PDF)
// consume this unpaginated.
func (s *JournalService) ExportRows(ctx context.Context, userID uint) ([]entity.EntryItem, error) {
	entries, err := s.repo.ListEntriesForExport(ctx, userID)
	if err != nil {
		return nil, &StorageError{Op: "export entries", Err: err}
	}
	items := make([]entity.EntryItem, 0, len(entries))
	for _, entry := range entries {
		items = append(items, makeEntryItem(entry))
	}
	return items, nil
}

// SplitTagList splits a comma separated tag submission, trimming each piece
// and dropping empties. Normalization to canonical form happens in the
// repository.
func SplitTagList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	pieces := strings.Split(raw, ",")
	names := make([]string, 0, len(pieces))
	for _, piece := range pieces {
		trimmed := strings.TrimSpace(piece)
		if trimmed == "" {
			continue
		}
		names = append(names, trimmed)
	}
	return names
}

func validateDateFilter(field, value string) error {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	if _, err := time.Parse(dateLayout, trimmed); err != nil {
		return &ValidationError{Field: field, Message: "date must be formatted as YYYY-MM-DD"}
	}
	return nil
}

func makeEntryItem(entry entity.DbEntry) entity.EntryItem {
	tags := make([]string, 0, len(entry.Tags))
	for _, tag := range entry.Tags {
		tags = append(tags, tag.Name)
	}
	return entity.EntryItem{
		ID:        entry.ID,
		Date:      entry.CreatedAt,
		Text:      entry.Text,
		Sentiment: entry.Sentiment,
		Glyph:     sentiment.GlyphFor(entry.Sentiment),
		Tags:      tags,
	}
}
