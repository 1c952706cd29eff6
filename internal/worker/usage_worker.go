package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/quizdeck/quizdeck-backend/internal/config"
	"github.com/quizdeck/quizdeck-backend/internal/logger"
	"github.com/quizdeck/quizdeck-backend/internal/model"
	"github.com/quizdeck/quizdeck-backend/internal/service"
	"github.com/quizdeck/quizdeck-backend/internal/store"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const usagePollTimeout = 1 * time.Second

// UsageWorker drains the template-usage queue and applies the analytics
// writes: timesUsed increment, lastUsedAt, and the append-only usage record.
// Analytics are best-effort: a job that fails to apply is logged and dropped,
// never retried, so a flaky store cannot inflate usage counters.
type UsageWorker struct {
	store store.Store
	rdb   *redis.Client
	log   zerolog.Logger
}

// NewUsageWorker creates a new UsageWorker.
func NewUsageWorker(st store.Store, rdb *redis.Client, log zerolog.Logger) *UsageWorker {
	return &UsageWorker{
		store: st,
		rdb:   rdb,
		log:   log.With().Str("component", "usage_worker").Logger(),
	}
}

// Start runs the worker loop until ctx is cancelled.
func (w *UsageWorker) Start(ctx context.Context) {
	w.log.Info().Msg("UsageWorker started")

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("UsageWorker stopped")
			return
		default:
			item, err := w.rdb.BLPop(ctx, usagePollTimeout, config.WorkerKey.TemplateUsageQueue).Result()
			if err != nil {
				if err != redis.Nil && ctx.Err() == nil {
					w.log.Error().Str("context", "usage_dequeue").Msg(logger.ErrDetail(err))
				}
				continue
			}
			if len(item) < 2 {
				continue
			}

			var usage model.TemplateUsage
			if err := json.Unmarshal([]byte(item[1]), &usage); err != nil {
				w.log.Error().Msg("Invalid usage job payload, dropping")
				continue
			}

			w.apply(ctx, usage)
		}
	}
}

// Drain applies every job currently in the queue and returns. Used on
// shutdown and by tests.
func (w *UsageWorker) Drain(ctx context.Context) {
	for {
		item, err := w.rdb.LPop(ctx, config.WorkerKey.TemplateUsageQueue).Result()
		if err != nil {
			if err != redis.Nil {
				w.log.Error().Str("context", "usage_drain").Msg(logger.ErrDetail(err))
			}
			return
		}

		var usage model.TemplateUsage
		if err := json.Unmarshal([]byte(item), &usage); err != nil {
			w.log.Error().Msg("Invalid usage job payload, dropping")
			continue
		}
		w.apply(ctx, usage)
	}
}

func (w *UsageWorker) apply(ctx context.Context, usage model.TemplateUsage) {
	if err := service.ApplyUsage(ctx, w.store, usage); err != nil {
		w.log.Warn().
			Str("context", "usage_apply").
			Str("template_id", usage.TemplateID).
			Msg(logger.ErrDetail(err))
		return
	}
	w.log.Debug().
		Str("template_id", usage.TemplateID).
		Str("quiz_id", usage.QuizID).
		Msg("Usage recorded")
}
