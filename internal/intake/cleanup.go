package intake

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/devforge-studio/crm-backend/internal/intake/storage"
)

// stagedMaxAge is how long an aborted submission's staged files may linger.
const stagedMaxAge = time.Hour

// CleanupScheduler periodically purges stale staged uploads left behind
// by aborted submissions.
type CleanupScheduler struct {
	files storage.FileStore
	cron  *cron.Cron
}

func NewCleanupScheduler(files storage.FileStore) *CleanupScheduler {
	return &CleanupScheduler{
		files: files,
		cron:  cron.New(),
	}
}

// Start registers the hourly purge and starts the scheduler.
func (s *CleanupScheduler) Start() {
	_, err := s.cron.AddFunc("@hourly", func() {
		removed, err := s.files.PurgeStaged(stagedMaxAge)
		if err != nil {
			log.Printf("[warn] operation=staged_cleanup purge failed: %v", err)
			return
		}
		if removed > 0 {
			log.Printf("[info] operation=staged_cleanup removed %d stale staged files", removed)
		}
	})
	if err != nil {
		log.Printf("[error] operation=staged_cleanup failed to schedule: %v", err)
		return
	}
	s.cron.Start()
}

// Stop halts the scheduler.
func (s *CleanupScheduler) Stop() {
	s.cron.Stop()
}
