package sql

import (
	"context"
	"fmt"
	"time"

	"moodlog/internal/entity"
)

// DailySentimentCounts returns the sparse (day, sentiment, count) groupings
// for one user, optionally restricted to entries created after since. Days
// without entries never appear here; the dense fill happens in the trend
// aggregation layer.
func (r *GormRepository) DailySentimentCounts(ctx context.Context, userID uint, since *time.Time) ([]entity.DailySentimentCount, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if userID == 0 {
		return nil, fmt.Errorf("invalid user id")
	}

	dayExpr := r.dayExpression()

	query := r.db.WithContext(ctx).
		Model(&entity.DbEntry{}).
		Select(dayExpr+" as day, sentiment, COUNT(*) as count").
		Where("user_id = ?", userID)
	if since != nil {
		query = query.Where("created_at > ?", *since)
	}

	var rows []entity.DailySentimentCount
	err := query.
		Group(dayExpr).
		Group("sentiment").
		Order("day ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
