package models

import "time"

// CleanupUser is a local snapshot of user data needed by the report and
// scoring services. Populated by the sync worker from the profile
// service; this service never writes profile fields itself.
type CleanupUser struct {
	ID             string `gorm:"primaryKey;type:uuid" json:"id"`
	ExternalUserID string `gorm:"type:uuid;uniqueIndex;not null" json:"external_user_id"`
	FullName       string `gorm:"not null" json:"full_name"`
	Email          string `json:"email,omitempty"`
	EmailVerified  bool   `gorm:"default:false" json:"email_verified"`
	City           string `gorm:"index" json:"city,omitempty"`
	Country        string `gorm:"index" json:"country,omitempty"`

	// Slugged scope keys derived from City/Country by the sync worker;
	// leaderboard scoping matches on these, never on display names.
	CityKey    string `gorm:"index" json:"-"`
	CountryKey string `gorm:"index" json:"-"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}
