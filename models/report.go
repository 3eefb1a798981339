package models

import (
	"time"
)

// ReportStatus is the report lifecycle state. Order is fixed and
// monotonically non-decreasing: pending → claimed → cleared → verified.
type ReportStatus string

const (
	StatusPending  ReportStatus = "pending"
	StatusClaimed  ReportStatus = "claimed"
	StatusCleared  ReportStatus = "cleared"
	StatusVerified ReportStatus = "verified"
)

var statusOrder = map[ReportStatus]int{
	StatusPending:  0,
	StatusClaimed:  1,
	StatusCleared:  2,
	StatusVerified: 3,
}

// Order returns the position of s in the lifecycle, or -1 for an
// unknown status.
func (s ReportStatus) Order() int {
	o, ok := statusOrder[s]
	if !ok {
		return -1
	}
	return o
}

// CanTransitionTo reports whether the single lifecycle edge s → next
// exists. No edge skips a state or returns to an earlier one; verified
// is terminal.
func (s ReportStatus) CanTransitionTo(next ReportStatus) bool {
	cur, ok := statusOrder[s]
	if !ok {
		return false
	}
	nxt, ok := statusOrder[next]
	if !ok {
		return false
	}
	return nxt == cur+1
}

// Report is a litter report moving through the cleanup lifecycle.
// ClaimedBy is set iff status >= claimed; ClearedBy and PhotoAfter iff
// status >= cleared. ReporterID never changes after creation.
type Report struct {
	ID          string       `gorm:"primaryKey;type:uuid" json:"id"`
	ReporterID  string       `gorm:"index;not null" json:"reporter_id"`
	Latitude    float64      `gorm:"not null" json:"latitude"`
	Longitude   float64      `gorm:"not null" json:"longitude"`
	Description string       `gorm:"type:text" json:"description"`
	PhotoBefore string       `gorm:"type:text" json:"photo_before"`
	Status      ReportStatus `gorm:"type:varchar(16);not null;default:'pending';index" json:"status"`

	ClaimedBy *string    `gorm:"type:uuid;index" json:"claimed_by,omitempty"`
	ClaimedAt *time.Time `json:"claimed_at,omitempty"`

	ClearedBy  *string    `gorm:"type:uuid;index" json:"cleared_by,omitempty"`
	ClearedAt  *time.Time `gorm:"index" json:"cleared_at,omitempty"`
	PhotoAfter *string    `gorm:"type:text" json:"photo_after,omitempty"`

	City    string `gorm:"index" json:"city,omitempty"`
	Country string `gorm:"index" json:"country,omitempty"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime;index"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// CreateReportRequest is the JSON payload for POST /reports.
type CreateReportRequest struct {
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Description string  `json:"description"`
	PhotoBase64 string  `json:"photo_base64"`
	City        string  `json:"city"`
	Country     string  `json:"country"`
}

// ClearReportRequest carries the after photo for POST /reports/:id/clear.
type ClearReportRequest struct {
	PhotoBase64 string `json:"photo_base64"`
}
