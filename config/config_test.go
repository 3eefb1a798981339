package config

import "testing"

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected Load to fail without DATABASE_URL")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/cleanup_test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Scoring.MinClearsToVerify != 5 {
		t.Fatalf("expected MinClearsToVerify default 5, got %d", cfg.Scoring.MinClearsToVerify)
	}
	if cfg.Scoring.MinVerificationsNeeded != 3 {
		t.Fatalf("expected MinVerificationsNeeded default 3, got %d", cfg.Scoring.MinVerificationsNeeded)
	}
	if cfg.Scoring.BasePointsPerClear != 10 || cfg.Scoring.StreakBonusPoints != 5 {
		t.Fatalf("unexpected clear point defaults: %+v", cfg.Scoring)
	}
	if cfg.Scoring.FirstInAreaBonus != 20 {
		t.Fatalf("expected FirstInAreaBonus default 20, got %d", cfg.Scoring.FirstInAreaBonus)
	}
	if cfg.Server.Port != 8080 {
		t.Fatalf("expected default port 8080, got %d", cfg.Server.Port)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/cleanup_test")
	t.Setenv("MIN_CLEARS_TO_VERIFY", "2")
	t.Setenv("PORT", "9000")
	t.Setenv("BASE_POINTS_PER_CLEAR", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Scoring.MinClearsToVerify != 2 {
		t.Fatalf("expected override 2, got %d", cfg.Scoring.MinClearsToVerify)
	}
	if cfg.Server.Port != 9000 {
		t.Fatalf("expected override port 9000, got %d", cfg.Server.Port)
	}
	if cfg.Scoring.BasePointsPerClear != 10 {
		t.Fatalf("expected malformed int to fall back to default 10, got %d", cfg.Scoring.BasePointsPerClear)
	}
}
