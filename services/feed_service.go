// services/feed_service.go
package services

import (
	"time"

	"litter-cleanup-system/apperrors"
	"litter-cleanup-system/models"

	"gorm.io/gorm"
)

const feedLimit = 50

// FeedItem is one row of the recent-activity feed: a report that was
// cleared, possibly since promoted to verified.
type FeedItem struct {
	ReportID    string    `json:"report_id"`
	Status      string    `json:"status"`
	ClearerID   string    `json:"clearer_id"`
	ClearerName string    `json:"clearer_name"`
	City        string    `json:"city,omitempty"`
	Country     string    `json:"country,omitempty"`
	PhotoBefore string    `json:"photo_before,omitempty"`
	PhotoAfter  string    `json:"photo_after,omitempty"`
	ClearedAt   time.Time `json:"cleared_at"`
}

// FeedService serves the public activity feed of recent clears.
type FeedService struct {
	DB *gorm.DB
}

func NewFeedService(db *gorm.DB) *FeedService {
	return &FeedService{DB: db}
}

// Recent returns the latest cleared and verified reports with the
// clearer's display name, newest first.
func (s *FeedService) Recent(limit int) ([]FeedItem, error) {
	if limit <= 0 || limit > feedLimit {
		limit = feedLimit
	}

	var items []FeedItem
	err := s.DB.Raw(`
		SELECT r.id AS report_id,
		       r.status,
		       r.cleared_by AS clearer_id,
		       COALESCE(u.full_name, '') AS clearer_name,
		       r.city,
		       r.country,
		       r.photo_before,
		       r.photo_after,
		       r.cleared_at
		FROM reports r
		LEFT JOIN cleanup_users u ON u.external_user_id = r.cleared_by
		WHERE r.status IN ?
		ORDER BY r.cleared_at DESC
		LIMIT ?
	`, []string{string(models.StatusCleared), string(models.StatusVerified)}, limit).Scan(&items).Error
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return items, nil
}
