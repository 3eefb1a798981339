// services/report_service.go
package services

import (
	"errors"

	"litter-cleanup-system/apperrors"
	"litter-cleanup-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const nearbyReportLimit = 100

// ReportService owns the report lifecycle. Transitions are conditional
// updates whose WHERE clause re-validates the precondition, so a stale
// read can never produce an illegal edge: among racing claimants exactly
// one update matches a row.
type ReportService struct {
	DB      *gorm.DB
	Scoring *ScoringService
	Users   *UserDirectory
	Spatial SpatialIndex
	Clock   Clock
}

func NewReportService(db *gorm.DB, scoring *ScoringService, users *UserDirectory, spatial SpatialIndex, clock Clock) *ReportService {
	return &ReportService{DB: db, Scoring: scoring, Users: users, Spatial: spatial, Clock: clock}
}

// CreateReport files a new pending report. The reporter must exist and
// have a verified email. photoBeforeRef is the opaque storage reference
// returned by the photo store.
func (s *ReportService) CreateReport(reporterID string, req models.CreateReportRequest, photoBeforeRef string) (*models.Report, error) {
	verified, err := s.Users.IsEmailVerified(reporterID)
	if err != nil {
		return nil, err
	}
	if !verified {
		return nil, apperrors.Forbidden("Email must be verified to create reports")
	}

	report := models.Report{
		ID:          uuid.NewString(),
		ReporterID:  reporterID,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Description: req.Description,
		PhotoBefore: photoBeforeRef,
		Status:      models.StatusPending,
		City:        req.City,
		Country:     req.Country,
	}
	if err := s.DB.Create(&report).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	return &report, nil
}

// ClaimReport moves a pending report to claimed for actorID. The status
// check lives in the UPDATE's WHERE clause: with two concurrent
// claimants exactly one affects a row, the other gets BadRequest no
// matter what an earlier read showed.
func (s *ReportService) ClaimReport(reportID, actorID string) (*models.Report, error) {
	report, err := s.GetReport(reportID)
	if err != nil {
		return nil, err
	}
	if report.ReporterID == actorID {
		return nil, apperrors.BadRequest("Cannot claim your own report")
	}
	if !report.Status.CanTransitionTo(models.StatusClaimed) {
		return nil, apperrors.BadRequest("Report is not available for claiming")
	}

	now := s.Clock.Now()
	res := s.DB.Model(&models.Report{}).
		Where("id = ? AND status = ?", reportID, models.StatusPending).
		Updates(map[string]interface{}{
			"status":     models.StatusClaimed,
			"claimed_by": actorID,
			"claimed_at": now,
		})
	if res.Error != nil {
		return nil, apperrors.Internal(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperrors.BadRequest("Report is not available for claiming")
	}

	return s.GetReport(reportID)
}

// ClearReport moves a claimed report to cleared and awards clear points
// in the same transaction; the status flip is not observable unless
// scoring succeeded.
func (s *ReportService) ClearReport(reportID, actorID, photoAfterRef string) (*models.Report, error) {
	var cleared models.Report
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var report models.Report
		if err := tx.Where("id = ?", reportID).First(&report).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("Report not found")
			}
			return apperrors.Internal(err)
		}
		if !report.Status.CanTransitionTo(models.StatusCleared) {
			return apperrors.BadRequest("Report must be claimed before clearing")
		}
		if report.ClaimedBy == nil || *report.ClaimedBy != actorID {
			return apperrors.Forbidden("Only the user who claimed this report can clear it")
		}

		now := s.Clock.Now()
		res := tx.Model(&models.Report{}).
			Where("id = ? AND status = ? AND claimed_by = ?", reportID, models.StatusClaimed, actorID).
			Updates(map[string]interface{}{
				"status":      models.StatusCleared,
				"cleared_by":  actorID,
				"cleared_at":  now,
				"photo_after": photoAfterRef,
			})
		if res.Error != nil {
			return apperrors.Internal(res.Error)
		}
		if res.RowsAffected == 0 {
			return apperrors.BadRequest("Report is not available for clearing")
		}

		if _, err := s.Scoring.awardClear(tx, actorID, reportID, report.Latitude, report.Longitude); err != nil {
			return err
		}

		if err := tx.Where("id = ?", reportID).First(&cleared).Error; err != nil {
			return apperrors.Internal(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &cleared, nil
}

// GetNearby returns open reports (pending or claimed) within radiusKm
// of the point, newest first, capped at 100.
func (s *ReportService) GetNearby(lat, lon, radiusKm float64) ([]models.Report, error) {
	return s.Spatial.Nearby(lat, lon, radiusKm*1000,
		[]models.ReportStatus{models.StatusPending, models.StatusClaimed},
		nearbyReportLimit)
}

func (s *ReportService) GetReport(reportID string) (*models.Report, error) {
	var report models.Report
	if err := s.DB.Where("id = ?", reportID).First(&report).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Report not found")
		}
		return nil, apperrors.Internal(err)
	}
	return &report, nil
}

func (s *ReportService) GetUserReports(userID string) ([]models.Report, error) {
	var reports []models.Report
	err := s.DB.Where("reporter_id = ?", userID).
		Order("created_at DESC").
		Find(&reports).Error
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return reports, nil
}

func (s *ReportService) GetUserClearedReports(userID string) ([]models.Report, error) {
	var reports []models.Report
	err := s.DB.Where("cleared_by = ?", userID).
		Order("cleared_at DESC").
		Find(&reports).Error
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return reports, nil
}
