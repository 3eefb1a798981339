// workers/user_sync_worker.go
package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"litter-cleanup-system/models"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MirroredProfile matches the JSON the profile service returns for each
// changed user.
type MirroredProfile struct {
	ExternalID    string    `json:"external_id"`
	FullName      string    `json:"full_name"`
	Email         string    `json:"email"`
	EmailVerified bool      `json:"email_verified"`
	City          string    `json:"city,omitempty"`
	Country       string    `json:"country,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// GetProfileChangesResponse is the top-level shape of the sync endpoint.
type GetProfileChangesResponse struct {
	Users []MirroredProfile `json:"users"`
}

// UserSyncWorker keeps the local cleanup_users snapshot in step with the
// profile service. The snapshot feeds the email-verified gate on report
// creation and the display names on leaderboards and the feed.
type UserSyncWorker struct {
	db           *gorm.DB
	interval     time.Duration
	baseURL      string
	endpointPath string
	serviceToken string
	httpClient   *http.Client
}

func NewUserSyncWorker(db *gorm.DB, baseURL, endpointPath, serviceToken string) *UserSyncWorker {
	return &UserSyncWorker{
		db:           db,
		interval:     1 * time.Minute,
		baseURL:      baseURL,
		endpointPath: endpointPath,
		serviceToken: serviceToken,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (w *UserSyncWorker) Start(ctx context.Context) {
	log.Println("Starting user sync worker (profile service → cleanup_users)")
	go w.run(ctx)
}

func (w *UserSyncWorker) run(ctx context.Context) {
	// Initial backfill from the beginning of time.
	if err := w.syncBatch(ctx, time.Time{}); err != nil {
		log.Printf("[SYNC] initial sync failed: %v", err)
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := w.syncBatch(ctx, w.getLastSyncTime()); err != nil {
				log.Printf("[SYNC] sync batch failed: %v", err)
			}
		case <-ctx.Done():
			log.Println("User sync worker stopped")
			return
		}
	}
}

// getLastSyncTime finds the most recent UpdatedAt in the local snapshot.
func (w *UserSyncWorker) getLastSyncTime() time.Time {
	var lastTime time.Time
	err := w.db.Raw("SELECT MAX(updated_at) FROM cleanup_users").Scan(&lastTime).Error
	if err != nil || lastTime.IsZero() {
		return time.Unix(0, 0)
	}
	return lastTime
}

func (w *UserSyncWorker) syncBatch(ctx context.Context, since time.Time) error {
	base, err := url.Parse(w.baseURL)
	if err != nil {
		return fmt.Errorf("invalid profile service URL %q: %w", w.baseURL, err)
	}

	endpoint := base.JoinPath(w.endpointPath)
	q := endpoint.Query()
	q.Set("since", since.UTC().Format(time.RFC3339))
	endpoint.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to create sync request: %w", err)
	}
	req.Header.Set("X-Service-Token", w.serviceToken)

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("profile service request failed: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("profile service non-200 response: %d — %s", resp.StatusCode, string(body))
	}

	var response GetProfileChangesResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return fmt.Errorf("failed to decode profile service response: %w", err)
	}
	if len(response.Users) == 0 {
		return nil
	}

	var upserted, failed int
	for _, profile := range response.Users {
		local := models.CleanupUser{
			ID:             uuid.NewString(),
			ExternalUserID: profile.ExternalID,
			FullName:       profile.FullName,
			Email:          profile.Email,
			EmailVerified:  profile.EmailVerified,
			City:           profile.City,
			Country:        profile.Country,
			CityKey:        slug.Make(profile.City),
			CountryKey:     slug.Make(profile.Country),
			CreatedAt:      profile.CreatedAt,
			UpdatedAt:      profile.UpdatedAt,
		}

		err := w.db.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "external_user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"full_name", "email", "email_verified",
				"city", "country", "city_key", "country_key", "updated_at",
			}),
		}).Create(&local).Error
		if err != nil {
			failed++
			log.Printf("[SYNC] failed to upsert cleanup_user (external_id=%q): %v", profile.ExternalID, err)
		} else {
			upserted++
		}
	}

	log.Printf("[SYNC] synced %d users (%d upserted, %d errors)", len(response.Users), upserted, failed)
	return nil
}
