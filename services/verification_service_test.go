package services

import (
	"testing"

	"litter-cleanup-system/apperrors"
	"litter-cleanup-system/models"
)

func clearedReport(reporterID, clearerID string) *models.Report {
	return &models.Report{
		ID:         "r1",
		ReporterID: reporterID,
		Status:     models.StatusCleared,
		ClearedBy:  &clearerID,
	}
}

func TestValidateVerifierAcceptsThirdParty(t *testing.T) {
	t.Parallel()

	if err := ValidateVerifier(clearedReport("reporter", "clearer"), "someone-else"); err != nil {
		t.Fatalf("expected third-party verifier to be accepted, got %v", err)
	}
}

func TestValidateVerifierRejectsUnclearedReport(t *testing.T) {
	t.Parallel()

	for _, status := range []models.ReportStatus{models.StatusPending, models.StatusClaimed, models.StatusVerified} {
		report := &models.Report{ID: "r1", ReporterID: "reporter", Status: status}
		err := ValidateVerifier(report, "someone-else")
		if err == nil {
			t.Fatalf("expected %s report to be rejected", status)
		}
		if apperrors.KindOf(err) != apperrors.KindBadRequest {
			t.Fatalf("expected bad request for %s report, got %v", status, err)
		}
	}
}

func TestValidateVerifierRejectsReporter(t *testing.T) {
	t.Parallel()

	err := ValidateVerifier(clearedReport("reporter", "clearer"), "reporter")
	if err == nil {
		t.Fatal("expected the reporter to be rejected as verifier")
	}
	if apperrors.KindOf(err) != apperrors.KindBadRequest {
		t.Fatalf("expected bad request, got %v", err)
	}
}

func TestQuorumReached(t *testing.T) {
	t.Parallel()

	cases := []struct {
		positive int64
		needed   int
		want     bool
	}{
		{0, 3, false},
		{2, 3, false},
		{3, 3, true},
		{4, 3, true},
		{0, 0, true},
	}
	for _, c := range cases {
		if got := QuorumReached(c.positive, c.needed); got != c.want {
			t.Fatalf("%d positives against quorum %d: expected %v, got %v", c.positive, c.needed, c.want, got)
		}
	}
}

func TestValidateVerifierRejectsClearer(t *testing.T) {
	t.Parallel()

	err := ValidateVerifier(clearedReport("reporter", "clearer"), "clearer")
	if err == nil {
		t.Fatal("expected the clearer to be rejected as verifier")
	}
	if apperrors.KindOf(err) != apperrors.KindBadRequest {
		t.Fatalf("expected bad request, got %v", err)
	}
}
