// services/scoring_service.go
package services

import (
	"errors"
	"time"

	"litter-cleanup-system/apperrors"
	"litter-cleanup-system/config"
	"litter-cleanup-system/models"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	firstInAreaRadiusM = 1000.0
	firstInAreaWindow  = 24 * time.Hour
)

// ScoringService owns per-user totals, clear counts, streaks, the score
// ledger and leaderboards. Every mutation runs as one atomic update
// keyed by user id; the aggregate row is locked for the duration of the
// transaction so two events for the same user cannot interleave.
type ScoringService struct {
	DB      *gorm.DB
	Config  config.ScoringConfig
	Clock   Clock
	Spatial SpatialIndex
}

func NewScoringService(db *gorm.DB, cfg config.ScoringConfig, clock Clock, spatial SpatialIndex) *ScoringService {
	return &ScoringService{DB: db, Config: cfg, Clock: clock, Spatial: spatial}
}

// NextStreak applies the streak rule for a clear happening today.
// No prior clear starts a streak of 1; a same-day repeat keeps the
// current streak; a clear the day after extends it; any other gap,
// including a negative one from clock skew, resets to 1.
func NextStreak(lastClearedDate *time.Time, currentStreak int, today time.Time) int {
	if lastClearedDate == nil {
		return 1
	}
	last := lastClearedDate.UTC().Truncate(24 * time.Hour)
	days := int(today.UTC().Truncate(24*time.Hour).Sub(last).Hours() / 24)
	switch days {
	case 0:
		return currentStreak
	case 1:
		return currentStreak + 1
	default:
		return 1
	}
}

// ClearPoints computes the points for a single clear:
// base + streak * bonus-per-streak-day + first-in-area bonus.
func ClearPoints(cfg config.ScoringConfig, newStreak int, firstInArea bool) int {
	points := cfg.BasePointsPerClear + newStreak*cfg.StreakBonusPoints
	if firstInArea {
		points += cfg.FirstInAreaBonus
	}
	return points
}

// awardClear records a clear for userID at the report's location and
// returns the updated aggregate. It runs inside the report service's
// clear transaction so the status flip and the award commit or roll
// back together.
func (s *ScoringService) awardClear(tx *gorm.DB, userID, reportID string, lat, lon float64) (*models.UserScore, error) {
	score, err := s.lockOrInitScore(tx, userID)
	if err != nil {
		return nil, err
	}

	today := s.Clock.Today()
	newStreak := NextStreak(score.LastClearedDate, score.CurrentStreak, today)

	firstInArea, err := s.isFirstClearInArea(lat, lon, userID)
	if err != nil {
		return nil, err
	}
	points := ClearPoints(s.Config, newStreak, firstInArea)

	score.TotalPoints += points
	score.ReportsCleared++
	score.CurrentStreak = newStreak
	if newStreak > score.LongestStreak {
		score.LongestStreak = newStreak
	}
	score.LastClearedDate = &today

	if err := tx.Save(score).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	if err := s.appendEvent(tx, userID, reportID, models.ScoreEventClear, points); err != nil {
		return nil, err
	}
	return score, nil
}

// awardFlat grants a flat bonus (verification or verified-report) to a
// user inside the caller's transaction. The verification service
// guarantees the verified-report bonus runs at most once per report
// through the guarded cleared→verified status flip.
func (s *ScoringService) awardFlat(tx *gorm.DB, userID, reportID string, eventType models.ScoreEventType, points int) (*models.UserScore, error) {
	score, err := s.lockOrInitScore(tx, userID)
	if err != nil {
		return nil, err
	}
	score.TotalPoints += points
	if err := tx.Save(score).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	if err := s.appendEvent(tx, userID, reportID, eventType, points); err != nil {
		return nil, err
	}
	return score, nil
}

// MeetsClearThreshold reports whether reportsCleared satisfies the
// minimum-clears requirement for acting as a verifier.
func MeetsClearThreshold(reportsCleared, minClears int) bool {
	return reportsCleared >= minClears
}

// CanVerify reports whether the user has cleared enough reports to act
// as a verifier. A user with no score row has zero clears.
func (s *ScoringService) CanVerify(userID string) (bool, error) {
	var score models.UserScore
	err := s.DB.Where("user_id = ?", userID).First(&score).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return MeetsClearThreshold(0, s.Config.MinClearsToVerify), nil
	}
	if err != nil {
		return false, apperrors.Internal(err)
	}
	return MeetsClearThreshold(score.ReportsCleared, s.Config.MinClearsToVerify), nil
}

// GetUserScore returns the aggregate for a user, creating the zero row
// on first access.
func (s *ScoringService) GetUserScore(userID string) (*models.UserScore, error) {
	var score *models.UserScore
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var txErr error
		score, txErr = s.lockOrInitScore(tx, userID)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return score, nil
}

// lockOrInitScore loads the user's aggregate under FOR UPDATE, seeding
// the zero row if this is the user's first scoring event. The upsert
// tolerates two first events racing; the re-read then serializes them.
func (s *ScoringService) lockOrInitScore(tx *gorm.DB, userID string) (*models.UserScore, error) {
	var score models.UserScore
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		First(&score).Error
	if err == nil {
		return &score, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Internal(err)
	}

	seed := models.UserScore{ID: uuid.NewString(), UserID: userID}
	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(&seed).Error; err != nil {
		return nil, apperrors.Internal(err)
	}

	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		First(&score).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	return &score, nil
}

// isFirstClearInArea holds iff no other user's clear is recorded within
// 1km of the location in the preceding 24 hours. The clearer's own
// earlier clears never disqualify them.
func (s *ScoringService) isFirstClearInArea(lat, lon float64, userID string) (bool, error) {
	cutoff := s.Clock.Now().Add(-firstInAreaWindow)
	taken, err := s.Spatial.OtherUserClearedWithin(lat, lon, firstInAreaRadiusM, cutoff, userID)
	if err != nil {
		return false, err
	}
	return !taken, nil
}

// eventReportID maps an optional report id to the ledger column; the
// column is uuid-typed, so an absent id must be NULL, never "".
func eventReportID(reportID string) *string {
	if reportID == "" {
		return nil
	}
	return &reportID
}

func (s *ScoringService) appendEvent(tx *gorm.DB, userID, reportID string, eventType models.ScoreEventType, points int) error {
	event := models.ScoreEvent{
		ID:        uuid.NewString(),
		UserID:    userID,
		ReportID:  eventReportID(reportID),
		EventType: eventType,
		Points:    points,
	}

	// Scope keys come from the user's profile snapshot at award time.
	var user models.CleanupUser
	if err := tx.Where("external_user_id = ?", userID).First(&user).Error; err == nil {
		event.CityKey = user.CityKey
		event.CountryKey = user.CountryKey
		if event.CityKey == "" && user.City != "" {
			event.CityKey = slug.Make(user.City)
		}
		if event.CountryKey == "" && user.Country != "" {
			event.CountryKey = slug.Make(user.Country)
		}
	}

	if err := tx.Create(&event).Error; err != nil {
		return apperrors.Internal(err)
	}
	return nil
}
