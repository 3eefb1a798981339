// services/verification_service.go
package services

import (
	"errors"
	"fmt"

	"litter-cleanup-system/apperrors"
	"litter-cleanup-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VerificationService accepts peer verifications of cleared reports and
// drives the cleared→verified promotion once the quorum of positive
// verifications is reached.
type VerificationService struct {
	DB      *gorm.DB
	Scoring *ScoringService
}

func NewVerificationService(db *gorm.DB, scoring *ScoringService) *VerificationService {
	return &VerificationService{DB: db, Scoring: scoring}
}

// ValidateVerifier applies the report-side eligibility rules: the
// report must be cleared, and the verifier must be neither its reporter
// nor its clearer.
func ValidateVerifier(report *models.Report, verifierID string) error {
	if report.Status != models.StatusCleared {
		return apperrors.BadRequest("Report must be cleared before it can be verified")
	}
	if report.ReporterID == verifierID {
		return apperrors.BadRequest("You cannot verify your own report")
	}
	if report.ClearedBy != nil && *report.ClearedBy == verifierID {
		return apperrors.BadRequest("You cannot verify a report you cleared")
	}
	return nil
}

// QuorumReached reports whether positive verifications meet the
// promotion threshold. The threshold is inclusive: exactly needed
// positives promote.
func QuorumReached(positive int64, needed int) bool {
	return positive >= int64(needed)
}

// Submit records one verification. The record insert, the verifier's
// bonus and any quorum promotion with its clearer bonus form a single
// transaction. Promotion is a conditional update guarded by
// status='cleared', so two submissions racing across the threshold
// produce exactly one flip and one bonus.
func (s *VerificationService) Submit(reportID, verifierID string, req models.CreateVerificationRequest) (*models.ReportVerification, error) {
	eligible, err := s.Scoring.CanVerify(verifierID)
	if err != nil {
		return nil, err
	}
	if !eligible {
		return nil, apperrors.Forbidden(fmt.Sprintf(
			"You need to clear at least %d reports before you can verify others",
			s.Scoring.Config.MinClearsToVerify))
	}

	var record models.ReportVerification
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		var report models.Report
		if err := tx.Where("id = ?", reportID).First(&report).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("Report not found")
			}
			return apperrors.Internal(err)
		}
		if err := ValidateVerifier(&report, verifierID); err != nil {
			return err
		}

		var existing int64
		if err := tx.Model(&models.ReportVerification{}).
			Where("report_id = ? AND verifier_id = ?", reportID, verifierID).
			Count(&existing).Error; err != nil {
			return apperrors.Internal(err)
		}
		if existing > 0 {
			return apperrors.BadRequest("You have already verified this report")
		}

		record = models.ReportVerification{
			ID:         uuid.NewString(),
			ReportID:   reportID,
			VerifierID: verifierID,
			IsVerified: req.IsVerified,
			Comment:    req.Comment,
		}
		if err := tx.Create(&record).Error; err != nil {
			// The unique (report_id, verifier_id) index closes the race
			// the count above cannot see.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperrors.BadRequest("You have already verified this report")
			}
			return apperrors.Internal(err)
		}

		if _, err := s.Scoring.awardFlat(tx, verifierID, reportID,
			models.ScoreEventVerification, s.Scoring.Config.VerificationBonus); err != nil {
			return err
		}

		if req.IsVerified {
			if err := s.promoteIfQuorum(tx, &report); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *VerificationService) promoteIfQuorum(tx *gorm.DB, report *models.Report) error {
	var positive int64
	if err := tx.Model(&models.ReportVerification{}).
		Where("report_id = ? AND is_verified = ?", report.ID, true).
		Count(&positive).Error; err != nil {
		return apperrors.Internal(err)
	}
	if !QuorumReached(positive, s.Scoring.Config.MinVerificationsNeeded) {
		return nil
	}
	if !report.Status.CanTransitionTo(models.StatusVerified) {
		return nil
	}

	res := tx.Model(&models.Report{}).
		Where("id = ? AND status = ?", report.ID, models.StatusCleared).
		Update("status", models.StatusVerified)
	if res.Error != nil {
		return apperrors.Internal(res.Error)
	}
	// Zero rows means another submission already flipped the status;
	// the bonus belongs to that one.
	if res.RowsAffected == 0 {
		return nil
	}

	if report.ClearedBy != nil {
		if _, err := s.Scoring.awardFlat(tx, *report.ClearedBy, report.ID,
			models.ScoreEventVerifiedBonus, s.Scoring.Config.VerifiedReportBonus); err != nil {
			return err
		}
	}
	return nil
}

// List returns every verification for a report, oldest first.
func (s *VerificationService) List(reportID string) ([]models.ReportVerification, error) {
	var count int64
	if err := s.DB.Model(&models.Report{}).Where("id = ?", reportID).Count(&count).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	if count == 0 {
		return nil, apperrors.NotFound("Report not found")
	}

	var records []models.ReportVerification
	err := s.DB.Where("report_id = ?", reportID).
		Order("created_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return records, nil
}
