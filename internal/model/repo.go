package model

import (
	"context"
	"time"

	"moodlog/internal/entity"
)

// Repository 定义数据库操作接口
type Repository interface {
	// 用户管理
	CreateUser(ctx context.Context, user *entity.DbUser) error
	GetUserByUsername(ctx context.Context, username string) (*entity.DbUser, error)
	GetUserByID(ctx context.Context, id uint) (*entity.DbUser, error)

	// 日记条目
	CreateEntryWithTags(ctx context.Context, entry *entity.DbEntry, tagNames []string) error
	ListEntries(ctx context.Context, params *entity.EntryQuery) ([]entity.DbEntry, *entity.Meta, error)
	ListEntriesForExport(ctx context.Context, userID uint) ([]entity.DbEntry, error)
	GetEntry(ctx context.Context, userID, entryID uint) (*entity.DbEntry, error)
	DeleteEntry(ctx context.Context, userID, entryID uint) error

	// 标签
	GetOrCreateTag(ctx context.Context, name string) (*entity.DbTag, error)
	AssociateTags(ctx context.Context, entryID uint, tagIDs []uint) error
	TagNamesForEntry(ctx context.Context, entryID uint) ([]string, error)
	ListTags(ctx context.Context) ([]entity.DbTag, error)

	// 趋势聚合
	DailySentimentCounts(ctx context.Context, userID uint, since *time.Time) ([]entity.DailySentimentCount, error)
}
