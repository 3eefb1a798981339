// config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds every runtime setting, loaded from environment variables.
// godotenv populates the environment in main before Load runs.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Scoring   ScoringConfig
	S3        S3Config
	RateLimit RateLimitConfig
	Sync      SyncConfig
	Photo     PhotoConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type DatabaseConfig struct {
	URL string
}

// ScoringConfig tunes the point engine. Defaults mirror production values.
type ScoringConfig struct {
	MinClearsToVerify      int
	MinVerificationsNeeded int
	BasePointsPerClear     int
	StreakBonusPoints      int
	FirstInAreaBonus       int
	VerificationBonus      int
	VerifiedReportBonus    int
	LedgerRetentionDays    int
}

type S3Config struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	PublicURL string
}

type RateLimitConfig struct {
	GeneralPerMin        int
	ReportsPerHour       int
	VerificationsPerHour int
}

// SyncConfig points at the profile service the user snapshot worker polls.
type SyncConfig struct {
	ServiceURL   string
	EndpointPath string
	ServiceToken string
}

type PhotoConfig struct {
	MaxSizeMB int
}

func Load() (*Config, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable not set")
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("HOST", "0.0.0.0"),
			Port: getEnvInt("PORT", 8080),
		},
		Database: DatabaseConfig{URL: dsn},
		Scoring: ScoringConfig{
			MinClearsToVerify:      getEnvInt("MIN_CLEARS_TO_VERIFY", 5),
			MinVerificationsNeeded: getEnvInt("MIN_VERIFICATIONS_NEEDED", 3),
			BasePointsPerClear:     getEnvInt("BASE_POINTS_PER_CLEAR", 10),
			StreakBonusPoints:      getEnvInt("STREAK_BONUS_POINTS", 5),
			FirstInAreaBonus:       getEnvInt("FIRST_IN_AREA_BONUS", 20),
			VerificationBonus:      getEnvInt("VERIFICATION_BONUS", 2),
			VerifiedReportBonus:    getEnvInt("VERIFIED_REPORT_BONUS", 10),
			LedgerRetentionDays:    getEnvInt("SCORE_LEDGER_RETENTION_DAYS", 90),
		},
		S3: S3Config{
			Endpoint:  getEnv("S3_ENDPOINT", "http://127.0.0.1:9000"),
			Region:    getEnv("S3_REGION", "us-east-1"),
			Bucket:    getEnv("S3_BUCKET", "cleanup-photos"),
			AccessKey: getEnv("S3_ACCESS_KEY", "minioadmin"),
			SecretKey: getEnv("S3_SECRET_KEY", "minioadmin123"),
			PublicURL: getEnv("S3_PUBLIC_URL", "http://127.0.0.1:9000/cleanup-photos"),
		},
		RateLimit: RateLimitConfig{
			GeneralPerMin:        getEnvInt("RATE_LIMIT_GENERAL_PER_MIN", 100),
			ReportsPerHour:       getEnvInt("RATE_LIMIT_REPORTS_PER_HOUR", 10),
			VerificationsPerHour: getEnvInt("RATE_LIMIT_VERIFICATIONS_PER_HOUR", 20),
		},
		Sync: SyncConfig{
			ServiceURL:   os.Getenv("SYNC_SERVICE_URL"),
			EndpointPath: getEnv("SYNC_ENDPOINT_PATH", "/api/v1/public/profiles"),
			ServiceToken: os.Getenv("CLEANUP_SERVICE_TOKEN"),
		},
		Photo: PhotoConfig{
			MaxSizeMB: getEnvInt("MAX_PHOTO_SIZE_MB", 5),
		},
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
