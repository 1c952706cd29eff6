package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/quizdeck/quizdeck-backend/internal/config"
	"github.com/quizdeck/quizdeck-backend/internal/model"
	"github.com/quizdeck/quizdeck-backend/internal/service"
	"github.com/quizdeck/quizdeck-backend/internal/store"
	"github.com/quizdeck/quizdeck-backend/internal/store/memory"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func newWorkerFixture(t *testing.T) (*UsageWorker, *memory.Store, *service.QueueUsageRecorder, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	st := memory.New()
	log := zerolog.Nop()
	return NewUsageWorker(st, client, log), st, service.NewQueueUsageRecorder(client, log), mr
}

func TestDrainAppliesQueuedUsage(t *testing.T) {
	ctx := context.Background()
	w, st, recorder, _ := newWorkerFixture(t)

	templateID, err := st.Add(ctx, store.CollectionTemplates, model.Template{
		Name: "Pack", CreatedBy: "teacher-1", TimesUsed: 4,
	})
	if err != nil {
		t.Fatalf("seed template: %v", err)
	}

	usedAt := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	recorder.Record(ctx, model.TemplateUsage{
		TemplateID: templateID,
		UsedBy:     "teacher-1",
		UsedAt:     usedAt,
		ClassID:    "class-1",
		QuizID:     "quiz-1",
	})
	recorder.Record(ctx, model.TemplateUsage{
		TemplateID: templateID,
		UsedBy:     "teacher-1",
		UsedAt:     usedAt.Add(time.Minute),
		ClassID:    "class-1",
		QuizID:     "quiz-2",
	})

	w.Drain(ctx)

	var tpl model.Template
	if err := st.Get(ctx, store.CollectionTemplates, templateID, &tpl); err != nil {
		t.Fatalf("reload template: %v", err)
	}
	if tpl.TimesUsed != 6 {
		t.Fatalf("expected timesUsed 6, got %d", tpl.TimesUsed)
	}
	if tpl.LastUsedAt == nil || !tpl.LastUsedAt.Equal(usedAt.Add(time.Minute)) {
		t.Fatalf("expected lastUsedAt from the final job, got %v", tpl.LastUsedAt)
	}
	if n := st.Count(store.CollectionTemplateUsage); n != 2 {
		t.Fatalf("expected 2 usage records, got %d", n)
	}
}

func TestDrainDropsFailedJobs(t *testing.T) {
	ctx := context.Background()
	w, st, recorder, mr := newWorkerFixture(t)

	// The referenced template does not exist, so the increment fails; the job
	// must be dropped rather than requeued.
	recorder.Record(ctx, model.TemplateUsage{TemplateID: "ghost", UsedBy: "t"})
	w.Drain(ctx)

	if items, err := mr.List(config.WorkerKey.TemplateUsageQueue); err == nil && len(items) > 0 {
		t.Fatalf("expected empty queue, got %d items", len(items))
	}
	if n := st.Count(store.CollectionTemplateUsage); n != 0 {
		t.Fatalf("expected no usage records, got %d", n)
	}
}

func TestDrainDropsInvalidPayloads(t *testing.T) {
	ctx := context.Background()
	w, st, _, mr := newWorkerFixture(t)

	if _, err := mr.Push(config.WorkerKey.TemplateUsageQueue, "not-json"); err != nil {
		t.Fatalf("push: %v", err)
	}
	w.Drain(ctx)

	if items, err := mr.List(config.WorkerKey.TemplateUsageQueue); err == nil && len(items) > 0 {
		t.Fatalf("expected queue drained, got %d items", len(items))
	}
	if n := st.Count(store.CollectionTemplateUsage); n != 0 {
		t.Fatalf("expected no usage records, got %d", n)
	}
}

func TestStartProcessesJobsUntilCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w, st, recorder, _ := newWorkerFixture(t)

	templateID, err := st.Add(ctx, store.CollectionTemplates, model.Template{
		Name: "Pack", CreatedBy: "teacher-1",
	})
	if err != nil {
		t.Fatalf("seed template: %v", err)
	}

	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	recorder.Record(ctx, model.TemplateUsage{
		TemplateID: templateID, UsedBy: "teacher-1", UsedAt: time.Now(), QuizID: "quiz-1",
	})

	deadline := time.After(3 * time.Second)
	for {
		if st.Count(store.CollectionTemplateUsage) == 1 {
			break
		}
		select {
		case <-deadline:
			t.Fatal("worker did not apply the job in time")
		case <-time.After(10 * time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("worker did not stop after cancel")
	}
}

func TestApplyUsageStopsOnFirstFailure(t *testing.T) {
	ctx := context.Background()
	st := memory.New()

	templateID, _ := st.Add(ctx, store.CollectionTemplates, model.Template{Name: "Pack"})

	boom := errors.New("injected")
	st.Fail = func(op, collection string) error {
		if op == "update" {
			return boom
		}
		return nil
	}

	err := service.ApplyUsage(ctx, st, model.TemplateUsage{TemplateID: templateID})
	if !errors.Is(err, boom) {
		t.Fatalf("expected injected error, got %v", err)
	}
	// The increment before the failing update still landed; the usage record
	// after it did not.
	if n := st.Count(store.CollectionTemplateUsage); n != 0 {
		t.Fatalf("expected no usage record, got %d", n)
	}
}
