package entity

import "time"

// EntryQuery 条目检索参数。keyword/sentiment/date 为空字符串表示不限制。
type EntryQuery struct {
	BaseParams
	Keyword   string `json:"keyword" form:"keyword" query:"keyword"`
	Sentiment string `json:"sentiment" form:"sentiment" query:"sentiment"`
	DateFrom  string `json:"date_from" form:"date_from" query:"date_from"` // YYYY-MM-DD，含当天
	DateTo    string `json:"date_to" form:"date_to" query:"date_to"`       // YYYY-MM-DD，含当天
	UserID    uint   `json:"-" form:"-" query:"-"`
}

type CreateEntryRequest struct {
	Text string `json:"text" binding:"required"`
	Tags string `json:"tags"` // 逗号分隔的标签列表
}

type EntryItem struct {
	ID        uint      `json:"id"`
	Date      time.Time `json:"date"`
	Text      string    `json:"text"`
	Sentiment string    `json:"sentiment"`
	Glyph     string    `json:"glyph,omitempty"`
	Tags      []string  `json:"tags"`
}

type EntryListResponse struct {
	Entries []EntryItem `json:"entries"`
	Meta    *Meta       `json:"meta"`
}

type EntryDetailResponse struct {
	Entry EntryItem `json:"entry"`
}

// DailySentimentCount is one sparse grouping row: how many entries of one
// sentiment were written on one calendar day.
type DailySentimentCount struct {
	Day       string `json:"day"` // YYYY-MM-DD
	Sentiment string `json:"sentiment"`
	Count     int64  `json:"count"`
}

// TrendData 按天×情绪类别的稠密计数矩阵。三个类别键始终存在，
// 每个序列长度等于 len(Days)。
type TrendData struct {
	Days   []string           `json:"days"`
	Matrix map[string][]int64 `json:"matrix"`
}

type Tag struct {
	ID         uint      `json:"id"`
	Name       string    `json:"name"`
	UsageCount int64     `json:"usage_count,omitempty"`
	CreatedAt  time.Time `json:"created_at,omitempty"`
}

type TagListResponse struct {
	Tags []Tag `json:"tags"`
}

type AuthRegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UserSummary struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

type AuthResponse struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      UserSummary `json:"user"`
}
