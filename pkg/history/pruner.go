package history

import (
	"context"
	"log/slog"
	"time"
)

// PrunerConfig contains configuration for retention pruning.
type PrunerConfig struct {
	// RetentionDays is the number of days to retain probe records.
	// 0 means keep records forever.
	RetentionDays int

	// PruneSchedule is a cron expression for scheduled pruning,
	// for example "0 3 * * *" for daily at 3 AM. Empty disables
	// the scheduler.
	PruneSchedule string
}

// DefaultPrunerConfig returns the default retention configuration.
func DefaultPrunerConfig() *PrunerConfig {
	return &PrunerConfig{
		RetentionDays: 30,
		PruneSchedule: "0 3 * * *",
	}
}

// Pruner deletes probe records older than the retention window.
type Pruner struct {
	store  *Store
	config *PrunerConfig
	logger *slog.Logger

	// now is swappable for tests.
	now func() time.Time
}

// NewPruner creates a retention pruner over the given store.
func NewPruner(store *Store, config *PrunerConfig) *Pruner {
	if config == nil {
		config = DefaultPrunerConfig()
	}
	return &Pruner{
		store:  store,
		config: config,
		logger: slog.Default().With("component", "history.pruner"),
		now:    time.Now,
	}
}

// Prune deletes records older than RetentionDays and returns the number
// deleted. With RetentionDays zero or negative, pruning is disabled and
// Prune returns 0.
func (p *Pruner) Prune(ctx context.Context) (int64, error) {
	if p.config.RetentionDays <= 0 {
		return 0, nil
	}

	cutoff := p.now().AddDate(0, 0, -p.config.RetentionDays)
	deleted, err := p.store.DeleteBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	if deleted > 0 {
		p.logger.Info("pruned probe history",
			"deleted", deleted,
			"cutoff", cutoff.Format(time.RFC3339),
		)
	}
	return deleted, nil
}
