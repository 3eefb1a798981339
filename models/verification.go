package models

import "time"

// ReportVerification is one peer's judgement of a cleared report.
// A verifier gets exactly one row per report.
type ReportVerification struct {
	ID         string    `gorm:"primaryKey;type:uuid" json:"id"`
	ReportID   string    `gorm:"type:uuid;not null;uniqueIndex:idx_report_verifier" json:"report_id"`
	VerifierID string    `gorm:"type:uuid;not null;uniqueIndex:idx_report_verifier" json:"verifier_id"`
	IsVerified bool      `gorm:"not null" json:"is_verified"`
	Comment    string    `gorm:"type:text" json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime;index"`
}

// CreateVerificationRequest is the JSON payload for POST /reports/:id/verify.
type CreateVerificationRequest struct {
	IsVerified bool   `json:"is_verified"`
	Comment    string `json:"comment"`
}
