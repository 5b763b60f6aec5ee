package sql

import (
	"context"
	"fmt"
	"strings"

	"moodlog/internal/entity"

	"gorm.io/gorm"
)

// CreateEntryWithTags persists a new entry and its tag associations in a
// single transaction. Tag names are resolved through the shared tag table
// (get-or-create), so concurrent submissions of the same name converge to one
// row. The entry's ID and CreatedAt are assigned by the store.
func (r *GormRepository) CreateEntryWithTags(ctx context.Context, entry *entity.DbEntry, tagNames []string) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if entry == nil {
		return fmt.Errorf("entry is nil")
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Tags").Create(entry).Error; err != nil {
			return err
		}

		for _, name := range tagNames {
			tag, err := getOrCreateTag(tx, name)
			if err != nil {
				return err
			}
			if tag == nil {
				continue
			}
			if err := associateTag(tx, entry.ID, tag.ID); err != nil {
				return err
			}
		}
		return nil
	})
}

// ListEntries retrieves paginated entries for one user. Optional predicates
// (keyword, sentiment, date range) are combined with AND; a sentiment value
// outside the fixed categories is ignored rather than rejected. Results are
// ordered most recent first and hydrated with their tags.
func (r *GormRepository) ListEntries(ctx context.Context, params *entity.EntryQuery) ([]entity.DbEntry, *entity.Meta, error) {
	if r == nil || r.db == nil {
		return nil, nil, fmt.Errorf("repository not initialised")
	}
	if params == nil || params.UserID == 0 {
		return nil, nil, fmt.Errorf("entry query requires a user")
	}

	query := r.db.WithContext(ctx).
		Model(&entity.DbEntry{}).
		Where("user_id = ?", params.UserID)

	if keyword := strings.TrimSpace(params.Keyword); keyword != "" {
		query = query.Where("text LIKE ?", "%"+keyword+"%")
	}
	if sentiment := strings.TrimSpace(params.Sentiment); entity.IsValidSentiment(sentiment) {
		query = query.Where("sentiment = ?", sentiment)
	}
	if from := strings.TrimSpace(params.DateFrom); from != "" {
		query = query.Where(r.dayExpression()+" >= ?", from)
	}
	if to := strings.TrimSpace(params.DateTo); to != "" {
		query = query.Where(r.dayExpression()+" <= ?", to)
	}

	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		return nil, nil, err
	}

	page := 1
	pageSize := 10
	if params.Page > 0 {
		page = int(params.Page)
	}
	if params.PageSize > 0 {
		pageSize = int(params.PageSize)
	}

	offset := (page - 1) * pageSize
	if offset < 0 {
		offset = 0
	}

	var entries []entity.DbEntry
	err := query.
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("tags.name ASC") }).
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&entries).Error
	if err != nil {
		return nil, nil, err
	}

	meta := r.calculatePagination(totalCount, page, pageSize)
	return entries, meta, nil
}

// ListEntriesForExport returns every entry of one user, most recent first,
// without pagination. Export collaborators consume this shape directly.
func (r *GormRepository) ListEntriesForExport(ctx context.Context, userID uint) ([]entity.DbEntry, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if userID == 0 {
		return nil, fmt.Errorf("invalid user id")
	}

	var entries []entity.DbEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("tags.name ASC") }).
		Order("created_at DESC, id DESC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// GetEntry loads a single entry, scoped to its owner.
func (r *GormRepository) GetEntry(ctx context.Context, userID, entryID uint) (*entity.DbEntry, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if userID == 0 || entryID == 0 {
		return nil, fmt.Errorf("invalid entry reference")
	}

	var entry entity.DbEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("tags.name ASC") }).
		First(&entry, entryID).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// DeleteEntry removes an entry and its tag associations. Owner scoped;
// associations never outlive the entry.
func (r *GormRepository) DeleteEntry(ctx context.Context, userID, entryID uint) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if userID == 0 || entryID == 0 {
		return fmt.Errorf("invalid entry reference")
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("user_id = ?", userID).Delete(&entity.DbEntry{}, entryID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("entry_id = ?", entryID).Delete(&entity.DbEntryTag{}).Error
	})
}

// dayExpression returns the SQL expression that reduces created_at to a
// YYYY-MM-DD calendar day for the active dialect.
func (r *GormRepository) dayExpression() string {
	dialect := ""
	if r != nil && r.db != nil && r.db.Dialector != nil {
		dialect = strings.ToLower(r.db.Dialector.Name())
	}

	switch dialect {
	case "postgres":
		return "TO_CHAR(created_at, 'YYYY-MM-DD')"
	default:
		// MySQL 和 SQLite 共用 DATE()
		return "DATE(created_at)"
	}
}
