package entity

import "time"

// Sentiment categories assigned to journal entries. Every persisted entry
// carries exactly one of these values.
const (
	SentimentPositive = "Positive"
	SentimentNeutral  = "Neutral"
	SentimentNegative = "Negative"
)

// SentimentCategories lists the fixed categories in display order.
var SentimentCategories = []string{SentimentPositive, SentimentNeutral, SentimentNegative}

// IsValidSentiment reports whether value is one of the fixed categories.
func IsValidSentiment(value string) bool {
	switch value {
	case SentimentPositive, SentimentNeutral, SentimentNegative:
		return true
	default:
		return false
	}
}

// DbEntry stores a single journal entry with its derived sentiment.
type DbEntry struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID uint    `gorm:"column:user_id;index;not null" json:"user_id"`
	User   *DbUser `gorm:"foreignKey:UserID" json:"-"`

	Text      string `gorm:"column:text;type:text;not null" json:"text"`
	Sentiment string `gorm:"column:sentiment;type:varchar(16);index;not null" json:"sentiment"`

	Tags []DbTag `gorm:"many2many:entry_tags;foreignKey:ID;joinForeignKey:EntryID;references:ID;joinReferences:TagID" json:"tags"`
}

// TableName 指定表名
func (DbEntry) TableName() string {
	return "entries"
}
