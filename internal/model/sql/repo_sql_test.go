package sql

import (
	"context"
	"fmt"
	"testing"
	"time"

	"moodlog/internal/entity"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

func newTestRepository(t *testing.T) *GormRepository {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
		NamingStrategy: schema.NamingStrategy{SingularTable: true},
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}

	// 内存库只允许单连接，多连接会各自得到独立的空库
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&entity.DbUser{}, &entity.DbEntry{}, &entity.DbTag{}, &entity.DbEntryTag{}); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}

	return NewGormRepository(db)
}

func seedTestUser(t *testing.T, repo *GormRepository, username string) *entity.DbUser {
	t.Helper()
	user := &entity.DbUser{Username: username, PasswordHash: "x", IsActive: true}
	if err := repo.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

func seedEntry(t *testing.T, repo *GormRepository, userID uint, text, sentiment string, createdAt time.Time, tags ...string) *entity.DbEntry {
	t.Helper()
	entry := &entity.DbEntry{
		UserID:    userID,
		Text:      text,
		Sentiment: sentiment,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	if err := repo.CreateEntryWithTags(context.Background(), entry, tags); err != nil {
		t.Fatalf("failed to create entry: %v", err)
	}
	return entry
}

func TestNormalizeTagName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Happy", "happy"},
		{"  happy  ", "happy"},
		{"HAPPY", "happy"},
		{"  Work Life  ", "work life"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		if got := NormalizeTagName(tt.input); got != tt.expected {
			t.Errorf("NormalizeTagName(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestGetOrCreateTagIdempotent(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	first, err := repo.GetOrCreateTag(ctx, "Happy")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Name != "happy" {
		t.Errorf("expected normalized name happy, got %q", first.Name)
	}

	// 不同写法应命中同一行
	for _, variant := range []string{" happy ", "HAPPY", "happy"} {
		tag, err := repo.GetOrCreateTag(ctx, variant)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", variant, err)
		}
		if tag.ID != first.ID {
			t.Errorf("variant %q resolved to tag %d, want %d", variant, tag.ID, first.ID)
		}
	}

	var count int64
	if err := repo.db.Model(&entity.DbTag{}).Count(&count).Error; err != nil {
		t.Fatalf("failed to count tags: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 tag row, got %d", count)
	}
}

func TestGetOrCreateTagBlankName(t *testing.T) {
	repo := newTestRepository(t)

	tag, err := repo.GetOrCreateTag(context.Background(), "   ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tag != nil {
		t.Errorf("expected nil tag for blank name, got %+v", tag)
	}
}

func TestAssociateTagsIdempotent(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	user := seedTestUser(t, repo, "alice")
	entry := seedEntry(t, repo, user.ID, "note", entity.SentimentNeutral, time.Now())

	tag, err := repo.GetOrCreateTag(ctx, "work")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := repo.AssociateTags(ctx, entry.ID, []uint{tag.ID}); err != nil {
		t.Fatalf("first associate failed: %v", err)
	}
	if err := repo.AssociateTags(ctx, entry.ID, []uint{tag.ID}); err != nil {
		t.Fatalf("second associate failed: %v", err)
	}

	var count int64
	err = repo.db.Model(&entity.DbEntryTag{}).
		Where("entry_id = ? AND tag_id = ?", entry.ID, tag.ID).
		Count(&count).Error
	if err != nil {
		t.Fatalf("failed to count associations: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 association row, got %d", count)
	}
}

func TestCreateEntryWithTags(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	user := seedTestUser(t, repo, "alice")
	entry := seedEntry(t, repo, user.ID, "busy day at work", entity.SentimentNeutral, time.Now(), "Work", " work ", "Personal")

	names, err := repo.TagNamesForEntry(ctx, entry.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(names) != 2 {
		t.Fatalf("expected 2 tags, got %d (%v)", len(names), names)
	}
	if names[0] != "personal" || names[1] != "work" {
		t.Errorf("expected [personal work], got %v", names)
	}
}

func TestListEntriesPagination(t *testing.T) {
	repo := newTestRepository(t)
	user := seedTestUser(t, repo, "alice")

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 15; i++ {
		seedEntry(t, repo, user.ID, fmt.Sprintf("entry %d", i), entity.SentimentNeutral, base.Add(time.Duration(i)*time.Hour))
	}

	t.Run("FirstPageDefaults", func(t *testing.T) {
		entries, meta, err := repo.ListEntries(context.Background(), &entity.EntryQuery{UserID: user.ID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(entries) != 10 {
			t.Errorf("expected 10 entries, got %d", len(entries))
		}
		if meta.Total != 15 {
			t.Errorf("expected total 15, got %d", meta.Total)
		}
		if meta.TotalPages != 2 {
			t.Errorf("expected 2 total pages, got %d", meta.TotalPages)
		}
		// 最新的先出现
		if entries[0].Text != "entry 14" {
			t.Errorf("expected newest entry first, got %q", entries[0].Text)
		}
	})

	t.Run("SecondPage", func(t *testing.T) {
		query := &entity.EntryQuery{UserID: user.ID}
		query.Page = 2
		entries, meta, err := repo.ListEntries(context.Background(), query)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(entries) != 5 {
			t.Errorf("expected 5 entries on page 2, got %d", len(entries))
		}
		if meta.Page != 2 {
			t.Errorf("expected meta page 2, got %d", meta.Page)
		}
	})

	t.Run("PageBeyondRange", func(t *testing.T) {
		query := &entity.EntryQuery{UserID: user.ID}
		query.Page = 5
		entries, meta, err := repo.ListEntries(context.Background(), query)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(entries) != 0 {
			t.Errorf("expected empty page beyond range, got %d entries", len(entries))
		}
		if meta.Total != 15 {
			t.Errorf("expected total 15, got %d", meta.Total)
		}
	})

	t.Run("PagesCoverAllRows", func(t *testing.T) {
		seen := 0
		for page := int64(1); page <= 2; page++ {
			query := &entity.EntryQuery{UserID: user.ID}
			query.Page = page
			entries, _, err := repo.ListEntries(context.Background(), query)
			if err != nil {
				t.Fatalf("unexpected error on page %d: %v", page, err)
			}
			seen += len(entries)
		}
		if seen != 15 {
			t.Errorf("expected pages to cover 15 rows, got %d", seen)
		}
	})

	t.Run("EmptyResultZeroPages", func(t *testing.T) {
		other := seedTestUser(t, repo, "bob")
		entries, meta, err := repo.ListEntries(context.Background(), &entity.EntryQuery{UserID: other.ID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(entries) != 0 {
			t.Errorf("expected no entries for other user, got %d", len(entries))
		}
		if meta.TotalPages != 0 {
			t.Errorf("expected 0 total pages for empty set, got %d", meta.TotalPages)
		}
	})
}

func TestListEntriesFilters(t *testing.T) {
	repo := newTestRepository(t)
	user := seedTestUser(t, repo, "alice")
	other := seedTestUser(t, repo, "bob")

	day1 := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	day3 := time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC)

	seedEntry(t, repo, user.ID, "great morning run", entity.SentimentPositive, day1)
	seedEntry(t, repo, user.ID, "terrible meeting at work", entity.SentimentNegative, day2)
	seedEntry(t, repo, user.ID, "ordinary work day", entity.SentimentNeutral, day3)
	seedEntry(t, repo, other.ID, "work from another user", entity.SentimentNeutral, day2)

	list := func(t *testing.T, query *entity.EntryQuery) []entity.DbEntry {
		t.Helper()
		query.UserID = user.ID
		entries, _, err := repo.ListEntries(context.Background(), query)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return entries
	}

	t.Run("OwnerScoped", func(t *testing.T) {
		entries := list(t, &entity.EntryQuery{})
		if len(entries) != 3 {
			t.Errorf("expected 3 entries for owner, got %d", len(entries))
		}
	})

	t.Run("Keyword", func(t *testing.T) {
		entries := list(t, &entity.EntryQuery{Keyword: "work"})
		if len(entries) != 2 {
			t.Errorf("expected 2 keyword matches, got %d", len(entries))
		}
	})

	t.Run("Sentiment", func(t *testing.T) {
		entries := list(t, &entity.EntryQuery{Sentiment: entity.SentimentNegative})
		if len(entries) != 1 {
			t.Fatalf("expected 1 negative entry, got %d", len(entries))
		}
		if entries[0].Text != "terrible meeting at work" {
			t.Errorf("unexpected entry %q", entries[0].Text)
		}
	})

	t.Run("InvalidSentimentIgnored", func(t *testing.T) {
		entries := list(t, &entity.EntryQuery{Sentiment: "Angry"})
		if len(entries) != 3 {
			t.Errorf("expected invalid sentiment to be ignored, got %d entries", len(entries))
		}
	})

	t.Run("DateRangeInclusive", func(t *testing.T) {
		entries := list(t, &entity.EntryQuery{DateFrom: "2026-03-01", DateTo: "2026-03-02"})
		if len(entries) != 2 {
			t.Errorf("expected 2 entries in inclusive range, got %d", len(entries))
		}
	})

	t.Run("DateFromOnly", func(t *testing.T) {
		entries := list(t, &entity.EntryQuery{DateFrom: "2026-03-03"})
		if len(entries) != 1 {
			t.Errorf("expected 1 entry from 03-03 on, got %d", len(entries))
		}
	})

	t.Run("CombinedFilters", func(t *testing.T) {
		entries := list(t, &entity.EntryQuery{
			Keyword:   "work",
			Sentiment: entity.SentimentNeutral,
			DateFrom:  "2026-03-02",
			DateTo:    "2026-03-03",
		})
		if len(entries) != 1 {
			t.Fatalf("expected 1 combined match, got %d", len(entries))
		}
		if entries[0].Text != "ordinary work day" {
			t.Errorf("unexpected entry %q", entries[0].Text)
		}
	})

	t.Run("TagsHydratedSorted", func(t *testing.T) {
		tagged := seedEntry(t, repo, user.ID, "tagged entry", entity.SentimentNeutral, day3.Add(time.Hour), "zeta", "alpha")
		entries := list(t, &entity.EntryQuery{Keyword: "tagged"})
		if len(entries) != 1 {
			t.Fatalf("expected 1 entry, got %d", len(entries))
		}
		if entries[0].ID != tagged.ID {
			t.Fatalf("unexpected entry id %d", entries[0].ID)
		}
		if len(entries[0].Tags) != 2 || entries[0].Tags[0].Name != "alpha" || entries[0].Tags[1].Name != "zeta" {
			t.Errorf("expected tags [alpha zeta], got %+v", entries[0].Tags)
		}
	})
}

func TestDeleteEntry(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	user := seedTestUser(t, repo, "alice")
	entry := seedEntry(t, repo, user.ID, "to delete", entity.SentimentNeutral, time.Now(), "work")

	if err := repo.DeleteEntry(ctx, user.ID, entry.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 关联行一并删除
	var count int64
	if err := repo.db.Model(&entity.DbEntryTag{}).Where("entry_id = ?", entry.ID).Count(&count).Error; err != nil {
		t.Fatalf("failed to count associations: %v", err)
	}
	if count != 0 {
		t.Errorf("expected associations removed, got %d rows", count)
	}

	if err := repo.DeleteEntry(ctx, user.ID, entry.ID); err != gorm.ErrRecordNotFound {
		t.Errorf("expected ErrRecordNotFound on second delete, got %v", err)
	}
}

func TestDeleteEntryOwnerScoped(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	alice := seedTestUser(t, repo, "alice")
	bob := seedTestUser(t, repo, "bob")
	entry := seedEntry(t, repo, alice.ID, "private", entity.SentimentNeutral, time.Now())

	if err := repo.DeleteEntry(ctx, bob.ID, entry.ID); err != gorm.ErrRecordNotFound {
		t.Errorf("expected ErrRecordNotFound for non-owner, got %v", err)
	}
}

func TestDailySentimentCounts(t *testing.T) {
	repo := newTestRepository(t)
	user := seedTestUser(t, repo, "alice")

	day1 := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	day3 := time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC)

	seedEntry(t, repo, user.ID, "good one", entity.SentimentPositive, day1)
	seedEntry(t, repo, user.ID, "another good one", entity.SentimentPositive, day1.Add(time.Hour))
	seedEntry(t, repo, user.ID, "bad one", entity.SentimentNegative, day3)

	rows, err := repo.DailySentimentCounts(context.Background(), user.ID, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 sparse rows, got %d (%+v)", len(rows), rows)
	}
	if rows[0].Day != "2026-03-01" || rows[0].Sentiment != entity.SentimentPositive || rows[0].Count != 2 {
		t.Errorf("unexpected first row %+v", rows[0])
	}
	if rows[1].Day != "2026-03-03" || rows[1].Sentiment != entity.SentimentNegative || rows[1].Count != 1 {
		t.Errorf("unexpected second row %+v", rows[1])
	}
}

func TestDailySentimentCountsSince(t *testing.T) {
	repo := newTestRepository(t)
	user := seedTestUser(t, repo, "alice")

	now := time.Now().UTC()
	seedEntry(t, repo, user.ID, "old entry", entity.SentimentPositive, now.AddDate(0, 0, -30))
	seedEntry(t, repo, user.ID, "recent entry", entity.SentimentNegative, now.AddDate(0, 0, -2))

	since := now.AddDate(0, 0, -7)
	rows, err := repo.DailySentimentCounts(context.Background(), user.ID, &since)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row inside window, got %d", len(rows))
	}
	if rows[0].Sentiment != entity.SentimentNegative {
		t.Errorf("expected the recent negative entry, got %+v", rows[0])
	}
}
