package services

import (
	"math"
	"testing"
	"time"

	"litter-cleanup-system/models"
)

func TestHaversineMetersZeroDistance(t *testing.T) {
	t.Parallel()

	if d := HaversineMeters(52.52, 13.405, 52.52, 13.405); d != 0 {
		t.Fatalf("expected zero distance for identical points, got %f", d)
	}
}

func TestHaversineMetersKnownDistance(t *testing.T) {
	t.Parallel()

	// Berlin city center to Alexanderplatz, roughly 600m.
	d := HaversineMeters(52.5200, 13.4050, 52.5219, 13.4132)
	if d < 500 || d > 1000 {
		t.Fatalf("expected distance between 500m and 1000m, got %f", d)
	}

	// One degree of latitude is about 111km.
	d = HaversineMeters(0, 0, 1, 0)
	if math.Abs(d-111195) > 500 {
		t.Fatalf("expected roughly 111195m per degree of latitude, got %f", d)
	}
}

func memReport(id string, lat, lon float64, status models.ReportStatus, createdAt time.Time) models.Report {
	return models.Report{
		ID:        id,
		Latitude:  lat,
		Longitude: lon,
		Status:    status,
		CreatedAt: createdAt,
	}
}

func TestMemoryIndexNearbyFiltersByStatusAndRadius(t *testing.T) {
	t.Parallel()

	base := time.Date(2025, time.May, 1, 12, 0, 0, 0, time.UTC)
	idx := NewMemoryIndex()
	idx.Upsert(memReport("near-pending", 52.5200, 13.4050, models.StatusPending, base))
	idx.Upsert(memReport("near-verified", 52.5201, 13.4051, models.StatusVerified, base))
	idx.Upsert(memReport("far-pending", 53.5500, 9.9900, models.StatusPending, base))

	got, err := idx.Nearby(52.5200, 13.4050, 500, []models.ReportStatus{models.StatusPending, models.StatusClaimed}, 10)
	if err != nil {
		t.Fatalf("Nearby returned error: %v", err)
	}
	if len(got) != 1 || got[0].ID != "near-pending" {
		t.Fatalf("expected only near-pending, got %+v", got)
	}
}

func TestMemoryIndexNearbySortsNewestFirstAndCaps(t *testing.T) {
	t.Parallel()

	base := time.Date(2025, time.May, 1, 12, 0, 0, 0, time.UTC)
	idx := NewMemoryIndex()
	idx.Upsert(memReport("old", 52.5200, 13.4050, models.StatusPending, base))
	idx.Upsert(memReport("newest", 52.5201, 13.4051, models.StatusPending, base.Add(2*time.Hour)))
	idx.Upsert(memReport("middle", 52.5202, 13.4052, models.StatusPending, base.Add(time.Hour)))

	got, err := idx.Nearby(52.5200, 13.4050, 500, []models.ReportStatus{models.StatusPending}, 2)
	if err != nil {
		t.Fatalf("Nearby returned error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected limit of 2 results, got %d", len(got))
	}
	if got[0].ID != "newest" || got[1].ID != "middle" {
		t.Fatalf("expected newest-first order, got %s then %s", got[0].ID, got[1].ID)
	}
}

func TestMemoryIndexUpsertReplacesByID(t *testing.T) {
	t.Parallel()

	base := time.Date(2025, time.May, 1, 12, 0, 0, 0, time.UTC)
	idx := NewMemoryIndex()
	idx.Upsert(memReport("r1", 52.5200, 13.4050, models.StatusPending, base))

	updated := memReport("r1", 52.5200, 13.4050, models.StatusClaimed, base)
	idx.Upsert(updated)

	got, err := idx.Nearby(52.5200, 13.4050, 500, []models.ReportStatus{models.StatusClaimed}, 10)
	if err != nil {
		t.Fatalf("Nearby returned error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected the updated report to replace the original, got %d results", len(got))
	}
}

func TestMemoryIndexOtherUserClearedWithin(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, time.May, 2, 12, 0, 0, 0, time.UTC)
	since := now.Add(-24 * time.Hour)
	alice := "alice"
	bob := "bob"

	recentClear := now.Add(-time.Hour)
	staleClear := now.Add(-48 * time.Hour)

	idx := NewMemoryIndex()
	r := memReport("cleared-by-bob", 52.5200, 13.4050, models.StatusCleared, now)
	r.ClearedBy = &bob
	r.ClearedAt = &recentClear
	idx.Upsert(r)

	taken, err := idx.OtherUserClearedWithin(52.5200, 13.4050, 1000, since, alice)
	if err != nil {
		t.Fatalf("OtherUserClearedWithin returned error: %v", err)
	}
	if !taken {
		t.Fatal("expected bob's recent clear to count against alice")
	}

	// The excluded user's own clears never count.
	taken, err = idx.OtherUserClearedWithin(52.5200, 13.4050, 1000, since, bob)
	if err != nil {
		t.Fatalf("OtherUserClearedWithin returned error: %v", err)
	}
	if taken {
		t.Fatal("expected bob's own clear to be excluded")
	}

	// Clears outside the window do not count.
	r2 := memReport("stale", 52.5201, 13.4051, models.StatusCleared, now)
	r2.ClearedBy = &bob
	r2.ClearedAt = &staleClear
	idx2 := NewMemoryIndex()
	idx2.Upsert(r2)

	taken, err = idx2.OtherUserClearedWithin(52.5201, 13.4051, 1000, since, alice)
	if err != nil {
		t.Fatalf("OtherUserClearedWithin returned error: %v", err)
	}
	if taken {
		t.Fatal("expected a 48-hour-old clear to fall outside the window")
	}

	// Clears beyond the radius do not count.
	taken, err = idx.OtherUserClearedWithin(53.5500, 9.9900, 1000, since, alice)
	if err != nil {
		t.Fatalf("OtherUserClearedWithin returned error: %v", err)
	}
	if taken {
		t.Fatal("expected a clear hundreds of kilometers away to be ignored")
	}
}
