package logging

import (
	"context"
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/gymgoers-backend/internal/repository"
)

// StartCleanup runs a daily goroutine that deletes system logs older than
// retentionDays. It returns when done is closed.
func StartCleanup(repo repository.SystemLogRepository, retentionDays int, done chan struct{}) {
	if retentionDays <= 0 {
		retentionDays = 30
	}
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				purge(repo, retentionDays, time.Now())
			case <-done:
				return
			}
		}
	}()
}

func purge(repo repository.SystemLogRepository, retentionDays int, now time.Time) int64 {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cutoff := now.AddDate(0, 0, -retentionDays)
	deleted, err := repo.DeleteBefore(ctx, cutoff)
	if err != nil {
		slog.Warn("log cleanup failed", "error", err)
		return 0
	}
	if deleted > 0 {
		slog.Info("log cleanup completed", "deleted", deleted)
	}
	return deleted
}
