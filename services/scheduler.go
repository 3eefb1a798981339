// services/scheduler.go
package services

import (
	"log"
	"time"

	"litter-cleanup-system/models"

	"github.com/go-co-op/gocron/v2"
)

// StartLedgerRetention launches a daily job that prunes score-ledger
// events older than retentionDays. Windowed leaderboards look back at
// most 30 days, so anything past the retention horizon only costs disk.
func (s *ScoringService) StartLedgerRetention(retentionDays int) {
	if retentionDays <= 30 {
		retentionDays = 31
	}

	sched, err := gocron.NewScheduler()
	if err != nil {
		log.Printf("[Scheduler] failed to create scheduler: %v", err)
		return
	}
	sched.Start()

	_, err = sched.NewJob(
		gocron.DurationJob(24*time.Hour),
		gocron.NewTask(func() {
			cutoff := s.Clock.Now().AddDate(0, 0, -retentionDays)
			res := s.DB.Where("created_at < ?", cutoff).Delete(&models.ScoreEvent{})
			if res.Error != nil {
				log.Printf("[Scheduler] score event pruning failed: %v", res.Error)
				return
			}
			if res.RowsAffected > 0 {
				log.Printf("[Scheduler] pruned %d score events older than %s", res.RowsAffected, cutoff.Format("2006-01-02"))
			}
		}),
	)
	if err != nil {
		log.Printf("[Scheduler] failed to schedule ledger pruning: %v", err)
	}
}
