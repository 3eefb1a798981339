// services/spatial.go
package services

import (
	"math"
	"sort"
	"sync"
	"time"

	"litter-cleanup-system/apperrors"
	"litter-cleanup-system/models"

	"gorm.io/gorm"
)

// SpatialIndex answers the two geospatial questions the core needs:
// which reports sit near a point, and whether anyone else cleared near a
// point recently. Backends are interchangeable; the relational store's
// native geography type is the production one.
type SpatialIndex interface {
	// Nearby returns reports in the given statuses within radiusM meters
	// of the point, newest first, capped at limit.
	Nearby(lat, lon, radiusM float64, statuses []models.ReportStatus, limit int) ([]models.Report, error)

	// OtherUserClearedWithin reports whether a user other than
	// excludeUserID has a recorded clear within radiusM meters of the
	// point since the cutoff.
	OtherUserClearedWithin(lat, lon, radiusM float64, since time.Time, excludeUserID string) (bool, error)
}

// PostGISIndex runs the spatial predicates against the reports table
// using ST_DWithin on a geography point built from the stored
// longitude/latitude columns.
type PostGISIndex struct {
	DB *gorm.DB
}

func NewPostGISIndex(db *gorm.DB) *PostGISIndex {
	return &PostGISIndex{DB: db}
}

func (idx *PostGISIndex) Nearby(lat, lon, radiusM float64, statuses []models.ReportStatus, limit int) ([]models.Report, error) {
	var reports []models.Report
	err := idx.DB.Raw(`
		SELECT * FROM reports
		WHERE ST_DWithin(
			ST_SetSRID(ST_MakePoint(longitude, latitude), 4326)::geography,
			ST_SetSRID(ST_MakePoint(?, ?), 4326)::geography,
			?
		)
		AND status IN ?
		ORDER BY created_at DESC
		LIMIT ?
	`, lon, lat, radiusM, statusStrings(statuses), limit).Scan(&reports).Error
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return reports, nil
}

func (idx *PostGISIndex) OtherUserClearedWithin(lat, lon, radiusM float64, since time.Time, excludeUserID string) (bool, error) {
	var count int64
	err := idx.DB.Raw(`
		SELECT COUNT(*) FROM reports
		WHERE cleared_by IS NOT NULL
		AND cleared_at > ?
		AND cleared_by != ?
		AND ST_DWithin(
			ST_SetSRID(ST_MakePoint(longitude, latitude), 4326)::geography,
			ST_SetSRID(ST_MakePoint(?, ?), 4326)::geography,
			?
		)
	`, since, excludeUserID, lon, lat, radiusM).Scan(&count).Error
	if err != nil {
		return false, apperrors.Internal(err)
	}
	return count > 0, nil
}

func statusStrings(statuses []models.ReportStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

// MemoryIndex is a slice-backed SpatialIndex using haversine distance.
// Used in tests and small single-node deployments.
type MemoryIndex struct {
	mu      sync.RWMutex
	reports []models.Report
}

func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{}
}

// Upsert replaces the stored copy of the report, matching by ID.
func (idx *MemoryIndex) Upsert(report models.Report) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	for i := range idx.reports {
		if idx.reports[i].ID == report.ID {
			idx.reports[i] = report
			return
		}
	}
	idx.reports = append(idx.reports, report)
}

func (idx *MemoryIndex) Nearby(lat, lon, radiusM float64, statuses []models.ReportStatus, limit int) ([]models.Report, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	wanted := make(map[models.ReportStatus]bool, len(statuses))
	for _, s := range statuses {
		wanted[s] = true
	}

	var matched []models.Report
	for _, r := range idx.reports {
		if !wanted[r.Status] {
			continue
		}
		if HaversineMeters(lat, lon, r.Latitude, r.Longitude) <= radiusM {
			matched = append(matched, r)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (idx *MemoryIndex) OtherUserClearedWithin(lat, lon, radiusM float64, since time.Time, excludeUserID string) (bool, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	for _, r := range idx.reports {
		if r.ClearedBy == nil || r.ClearedAt == nil {
			continue
		}
		if *r.ClearedBy == excludeUserID {
			continue
		}
		if !r.ClearedAt.After(since) {
			continue
		}
		if HaversineMeters(lat, lon, r.Latitude, r.Longitude) <= radiusM {
			return true, nil
		}
	}
	return false, nil
}

const earthRadiusM = 6371000.0

// HaversineMeters returns the great-circle distance between two points.
func HaversineMeters(lat1, lon1, lat2, lon2 float64) float64 {
	rad := math.Pi / 180
	dLat := (lat2 - lat1) * rad
	dLon := (lon2 - lon1) * rad

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*rad)*math.Cos(lat2*rad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusM * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
