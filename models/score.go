package models

import "time"

// UserScore is the materialized per-user aggregate. It is created lazily
// on the first scoring event and mutated only by the scoring service
// under a row lock. CurrentStreak never exceeds LongestStreak;
// ReportsCleared only grows through clear awards.
type UserScore struct {
	ID              string     `gorm:"primaryKey;type:uuid" json:"id"`
	UserID          string     `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	TotalPoints     int        `gorm:"not null;default:0" json:"total_points"`
	ReportsCleared  int        `gorm:"not null;default:0" json:"reports_cleared"`
	CurrentStreak   int        `gorm:"not null;default:0" json:"current_streak"`
	LongestStreak   int        `gorm:"not null;default:0" json:"longest_streak"`
	LastClearedDate *time.Time `gorm:"type:date" json:"last_cleared_date,omitempty"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// ScoreEventType labels a row in the score ledger.
type ScoreEventType string

const (
	ScoreEventClear         ScoreEventType = "clear"
	ScoreEventVerification  ScoreEventType = "verification"
	ScoreEventVerifiedBonus ScoreEventType = "verified_bonus"
)

// ScoreEvent is one append-only ledger entry. Windowed leaderboards sum
// these; the retention scheduler prunes rows past the monthly horizon.
// CityKey and CountryKey are slugged scope keys captured from the
// user's profile at award time.
type ScoreEvent struct {
	ID         string         `gorm:"primaryKey;type:uuid" json:"id"`
	UserID     string         `gorm:"type:uuid;index;not null" json:"user_id"`
	ReportID   *string        `gorm:"type:uuid;index" json:"report_id,omitempty"`
	EventType  ScoreEventType `gorm:"type:varchar(24);not null" json:"event_type"`
	Points     int            `gorm:"not null" json:"points"`
	CityKey    string         `gorm:"index" json:"city_key,omitempty"`
	CountryKey string         `gorm:"index" json:"country_key,omitempty"`
	CreatedAt  time.Time      `json:"created_at" gorm:"autoCreateTime;index"`
}

// LeaderboardEntry is a ranked row returned to callers. Rank is dense
// and 1-based; ties share a rank and break by user id for a stable order.
type LeaderboardEntry struct {
	UserID         string `json:"user_id"`
	FullName       string `json:"full_name"`
	City           string `json:"city"`
	Country        string `json:"country"`
	TotalPoints    int    `json:"total_points"`
	ReportsCleared int    `json:"reports_cleared"`
	CurrentStreak  int    `json:"current_streak"`
	Rank           int    `json:"rank"`
}
