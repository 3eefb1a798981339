// services/leaderboard.go
package services

import (
	"time"

	"litter-cleanup-system/apperrors"
	"litter-cleanup-system/models"

	"github.com/gosimple/slug"
)

type LeaderboardScope string

const (
	ScopeGlobal  LeaderboardScope = "global"
	ScopeCity    LeaderboardScope = "city"
	ScopeCountry LeaderboardScope = "country"
)

type LeaderboardPeriod string

const (
	PeriodWeekly  LeaderboardPeriod = "weekly"
	PeriodMonthly LeaderboardPeriod = "monthly"
	PeriodAllTime LeaderboardPeriod = "all_time"
)

const leaderboardLimit = 20

// Leaderboard ranks users by points. All-time boards read the
// materialized aggregates; weekly and monthly boards sum the score
// ledger over a trailing window. scopeValue is the city or country name
// for scoped boards and ignored for global. Only users with at least
// one qualifying event appear.
func (s *ScoringService) Leaderboard(scope LeaderboardScope, scopeValue string, period LeaderboardPeriod) ([]models.LeaderboardEntry, error) {
	var window time.Duration
	switch period {
	case PeriodWeekly:
		window = 7 * 24 * time.Hour
	case PeriodMonthly:
		window = 30 * 24 * time.Hour
	case PeriodAllTime:
		window = 0
	default:
		return nil, apperrors.BadRequest("Invalid period. Use 'weekly', 'monthly', or 'all_time'")
	}

	scopeKey := ""
	switch scope {
	case ScopeGlobal:
	case ScopeCity, ScopeCountry:
		scopeKey = slug.Make(scopeValue)
		if scopeKey == "" {
			return nil, apperrors.BadRequest("Scope value is required for city and country leaderboards")
		}
	default:
		return nil, apperrors.BadRequest("Invalid scope. Use 'global', 'city', or 'country'")
	}

	var entries []models.LeaderboardEntry
	var err error
	if window == 0 {
		entries, err = s.allTimeBoard(scope, scopeKey)
	} else {
		entries, err = s.windowedBoard(scope, scopeKey, s.Clock.Now().Add(-window))
	}
	if err != nil {
		return nil, err
	}

	AssignDenseRanks(entries)
	return entries, nil
}

func (s *ScoringService) allTimeBoard(scope LeaderboardScope, scopeKey string) ([]models.LeaderboardEntry, error) {
	query := `
		SELECT us.user_id,
		       COALESCE(u.full_name, '') AS full_name,
		       COALESCE(u.city, '') AS city,
		       COALESCE(u.country, '') AS country,
		       us.total_points,
		       us.reports_cleared,
		       us.current_streak
		FROM user_scores us
		LEFT JOIN cleanup_users u ON u.external_user_id = us.user_id
		WHERE us.reports_cleared > 0`
	args := []interface{}{}
	switch scope {
	case ScopeCity:
		query += ` AND u.city_key = ?`
		args = append(args, scopeKey)
	case ScopeCountry:
		query += ` AND u.country_key = ?`
		args = append(args, scopeKey)
	}
	query += ` ORDER BY us.total_points DESC, us.user_id ASC LIMIT ?`
	args = append(args, leaderboardLimit)

	var entries []models.LeaderboardEntry
	if err := s.DB.Raw(query, args...).Scan(&entries).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	return entries, nil
}

func (s *ScoringService) windowedBoard(scope LeaderboardScope, scopeKey string, after time.Time) ([]models.LeaderboardEntry, error) {
	query := `
		SELECT e.user_id,
		       COALESCE(MAX(u.full_name), '') AS full_name,
		       COALESCE(MAX(u.city), '') AS city,
		       COALESCE(MAX(u.country), '') AS country,
		       SUM(e.points) AS total_points,
		       COUNT(*) FILTER (WHERE e.event_type = 'clear') AS reports_cleared,
		       0 AS current_streak
		FROM score_events e
		LEFT JOIN cleanup_users u ON u.external_user_id = e.user_id
		WHERE e.created_at > ?`
	args := []interface{}{after}
	switch scope {
	case ScopeCity:
		query += ` AND e.city_key = ?`
		args = append(args, scopeKey)
	case ScopeCountry:
		query += ` AND e.country_key = ?`
		args = append(args, scopeKey)
	}
	query += `
		GROUP BY e.user_id
		ORDER BY total_points DESC, e.user_id ASC
		LIMIT ?`
	args = append(args, leaderboardLimit)

	var entries []models.LeaderboardEntry
	if err := s.DB.Raw(query, args...).Scan(&entries).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	return entries, nil
}

// AssignDenseRanks writes 1-based dense ranks into entries, which must
// already be sorted by points descending with a stable tiebreak. Equal
// totals share a rank; the next distinct total takes the next rank.
func AssignDenseRanks(entries []models.LeaderboardEntry) {
	rank := 0
	lastPoints := 0
	for i := range entries {
		if rank == 0 || entries[i].TotalPoints != lastPoints {
			rank++
			lastPoints = entries[i].TotalPoints
		}
		entries[i].Rank = rank
	}
}
