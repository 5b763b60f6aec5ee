package entity

import "time"

// DbTag 表示用户定义的标签。名称在写入前统一为小写并去除首尾空白，
// 全局唯一，不归属于任何用户。
type DbTag struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name       string `gorm:"size:64;uniqueIndex;not null" json:"name"`
	UsageCount int64  `gorm:"-" json:"usage_count,omitempty"`
}

// TableName 指定表名
func (DbTag) TableName() string {
	return "tags"
}

// DbEntryTag 日记条目与标签的关联表。复合主键保证同一 (entry, tag)
// 只存在一行。
type DbEntryTag struct {
	EntryID   uint      `gorm:"primaryKey" json:"entry_id"`
	TagID     uint      `gorm:"primaryKey" json:"tag_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName 指定表名
func (DbEntryTag) TableName() string {
	return "entry_tags"
}
