package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/quizdeck/quizdeck-backend/internal/config"
	"github.com/quizdeck/quizdeck-backend/internal/logger"
	"github.com/quizdeck/quizdeck-backend/internal/model"
	"github.com/quizdeck/quizdeck-backend/internal/store"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// UsageRecorder records template usage analytics. Implementations are
// best-effort by contract: Record returns nothing and must never fail or
// delay the quiz creation it accompanies.
type UsageRecorder interface {
	Record(ctx context.Context, usage model.TemplateUsage)
}

// ApplyUsage performs the three usage writes: counter increment, last-used
// timestamp, append-only usage record. Shared by the queue worker and the
// direct recorder.
func ApplyUsage(ctx context.Context, st store.Store, usage model.TemplateUsage) error {
	if err := st.IncrementField(ctx, store.CollectionTemplates, usage.TemplateID, "timesUsed", 1); err != nil {
		return fmt.Errorf("increment timesUsed: %w", err)
	}
	if err := st.Update(ctx, store.CollectionTemplates, usage.TemplateID, map[string]interface{}{
		"lastUsedAt": usage.UsedAt,
	}); err != nil {
		return fmt.Errorf("set lastUsedAt: %w", err)
	}
	if _, err := st.Add(ctx, store.CollectionTemplateUsage, usage); err != nil {
		return fmt.Errorf("append usage record: %w", err)
	}
	return nil
}

// QueueUsageRecorder pushes usage jobs onto a Redis queue drained by the
// usage worker, keeping the analytics writes off the request path entirely.
type QueueUsageRecorder struct {
	rdb *redis.Client
	log zerolog.Logger
}

// NewQueueUsageRecorder creates a new QueueUsageRecorder.
func NewQueueUsageRecorder(rdb *redis.Client, log zerolog.Logger) *QueueUsageRecorder {
	return &QueueUsageRecorder{
		rdb: rdb,
		log: log.With().Str("component", "usage_recorder").Logger(),
	}
}

func (r *QueueUsageRecorder) Record(ctx context.Context, usage model.TemplateUsage) {
	raw, err := json.Marshal(usage)
	if err != nil {
		r.log.Warn().Str("template_id", usage.TemplateID).Msg("Failed to encode usage record")
		return
	}
	if err := r.rdb.RPush(ctx, config.WorkerKey.TemplateUsageQueue, raw).Err(); err != nil {
		r.log.Warn().
			Str("context", "usage_enqueue").
			Str("template_id", usage.TemplateID).
			Msg(logger.ErrDetail(err))
	}
}

// DirectUsageRecorder applies the usage writes inline against the store.
// Used by tools and tests running without Redis. Failures are logged and
// swallowed.
type DirectUsageRecorder struct {
	store store.Store
	log   zerolog.Logger
}

// NewDirectUsageRecorder creates a new DirectUsageRecorder.
func NewDirectUsageRecorder(st store.Store, log zerolog.Logger) *DirectUsageRecorder {
	return &DirectUsageRecorder{
		store: st,
		log:   log.With().Str("component", "usage_recorder").Logger(),
	}
}

func (r *DirectUsageRecorder) Record(ctx context.Context, usage model.TemplateUsage) {
	if err := ApplyUsage(ctx, r.store, usage); err != nil {
		r.log.Warn().
			Str("context", "usage_apply").
			Str("template_id", usage.TemplateID).
			Msg(logger.ErrDetail(err))
	}
}
