package sql

import (
	"context"
	"fmt"
	"strings"

	"moodlog/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NormalizeTagName reduces a raw tag name to its canonical form: surrounding
// whitespace trimmed, lowercased. Applying it twice yields the same result
// as once.
func NormalizeTagName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// GetOrCreateTag resolves a tag name to its row, creating the row on first
// use. Safe under concurrent resolution of the same unseen name: a losing
// insert is recovered by re-reading, never surfaced to the caller.
func (r *GormRepository) GetOrCreateTag(ctx context.Context, name string) (*entity.DbTag, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	return getOrCreateTag(r.db.WithContext(ctx), name)
}

func getOrCreateTag(tx *gorm.DB, name string) (*entity.DbTag, error) {
	normalized := NormalizeTagName(name)
	if normalized == "" {
		return nil, nil
	}

	var tag entity.DbTag
	err := tx.Where("name = ?", normalized).First(&tag).Error
	if err == nil {
		return &tag, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	tag = entity.DbTag{Name: normalized}
	if createErr := tx.Create(&tag).Error; createErr != nil {
		// 唯一索引竞争：并发插入同名标签时重新查询已有行
		var existing entity.DbTag
		if retryErr := tx.Where("name = ?", normalized).First(&existing).Error; retryErr == nil {
			return &existing, nil
		}
		return nil, createErr
	}
	return &tag, nil
}

// AssociateTags links tags to an entry. Idempotent: re-associating an
// existing (entry, tag) pair is a no-op, not an error.
func (r *GormRepository) AssociateTags(ctx context.Context, entryID uint, tagIDs []uint) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if entryID == 0 {
		return fmt.Errorf("invalid entry id")
	}

	tx := r.db.WithContext(ctx)
	for _, tagID := range tagIDs {
		if tagID == 0 {
			continue
		}
		if err := associateTag(tx, entryID, tagID); err != nil {
			return err
		}
	}
	return nil
}

func associateTag(tx *gorm.DB, entryID, tagID uint) error {
	association := entity.DbEntryTag{EntryID: entryID, TagID: tagID}
	return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&association).Error
}

// TagNamesForEntry returns the tag names attached to an entry, ordered by
// name so repeated reads against unchanged data are stable.
func (r *GormRepository) TagNamesForEntry(ctx context.Context, entryID uint) ([]string, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if entryID == 0 {
		return nil, fmt.Errorf("invalid entry id")
	}

	var names []string
	err := r.db.WithContext(ctx).
		Model(&entity.DbTag{}).
		Select("tags.name").
		Joins("JOIN entry_tags ON entry_tags.tag_id = tags.id").
		Where("entry_tags.entry_id = ?", entryID).
		Order("tags.name ASC").
		Pluck("tags.name", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}

// ListTags returns all tags with their usage counts.
func (r *GormRepository) ListTags(ctx context.Context) ([]entity.DbTag, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}

	var tags []entity.DbTag
	query := r.db.WithContext(ctx).
		Model(&entity.DbTag{}).
		Select("tags.*, COUNT(entry_tags.entry_id) as usage_count").
		Joins("LEFT JOIN entry_tags ON entry_tags.tag_id = tags.id").
		Group("tags.id").
		Order("tags.name ASC")

	if err := query.Find(&tags).Error; err != nil {
		return nil, err
	}

	return tags, nil
}
