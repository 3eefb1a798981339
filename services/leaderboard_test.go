package services

import (
	"testing"

	"litter-cleanup-system/models"
)

func TestAssignDenseRanksEmpty(t *testing.T) {
	t.Parallel()

	AssignDenseRanks(nil)
	AssignDenseRanks([]models.LeaderboardEntry{})
}

func TestAssignDenseRanksDistinctTotals(t *testing.T) {
	t.Parallel()

	entries := []models.LeaderboardEntry{
		{UserID: "a", TotalPoints: 50},
		{UserID: "b", TotalPoints: 30},
		{UserID: "c", TotalPoints: 10},
	}
	AssignDenseRanks(entries)

	for i, want := range []int{1, 2, 3} {
		if entries[i].Rank != want {
			t.Fatalf("entry %d: expected rank %d, got %d", i, want, entries[i].Rank)
		}
	}
}

func TestAssignDenseRanksTiesShareRank(t *testing.T) {
	t.Parallel()

	entries := []models.LeaderboardEntry{
		{UserID: "a", TotalPoints: 50},
		{UserID: "b", TotalPoints: 50},
		{UserID: "c", TotalPoints: 30},
		{UserID: "d", TotalPoints: 30},
		{UserID: "e", TotalPoints: 10},
	}
	AssignDenseRanks(entries)

	for i, want := range []int{1, 1, 2, 2, 3} {
		if entries[i].Rank != want {
			t.Fatalf("entry %d (%s): expected rank %d, got %d", i, entries[i].UserID, want, entries[i].Rank)
		}
	}
}

func TestAssignDenseRanksZeroPointsStillRanked(t *testing.T) {
	t.Parallel()

	entries := []models.LeaderboardEntry{
		{UserID: "a", TotalPoints: 5},
		{UserID: "b", TotalPoints: 0},
	}
	AssignDenseRanks(entries)

	if entries[0].Rank != 1 || entries[1].Rank != 2 {
		t.Fatalf("expected ranks 1 and 2, got %d and %d", entries[0].Rank, entries[1].Rank)
	}
}
