package groups

import (
	"context"
	"meetcue-service/internal/app/config"
	"meetcue-service/internal/app/contracts"
	"meetcue-service/internal/pkg/constvars"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// queueDrainBatchSize caps how many queued recompute requests one pass pulls.
const queueDrainBatchSize = 50

// Worker keeps persisted group compactions current. Each pass drains the
// recompute queue, then refreshes groups whose stored compaction has gone
// stale. A redis leader lock keeps only one instance working at a time.
type Worker struct {
	log          *zap.Logger
	cfg          *config.InternalConfig
	locker       contracts.LockerService
	queue        contracts.RecomputeQueueService
	groupRepo    contracts.GroupRepository
	groupUsecase contracts.GroupUsecase
	cron         *cron.Cron
	runCtx       context.Context
	cancel       context.CancelFunc
}

func NewWorker(
	log *zap.Logger,
	cfg *config.InternalConfig,
	lockerSvc contracts.LockerService,
	queue contracts.RecomputeQueueService,
	groupRepo contracts.GroupRepository,
	groupUsecase contracts.GroupUsecase,
) *Worker {
	return &Worker{log: log, cfg: cfg, locker: lockerSvc, queue: queue, groupRepo: groupRepo, groupUsecase: groupUsecase}
}

// Start begins the periodic loop.
func (w *Worker) Start(ctx context.Context) {
	w.runCtx, w.cancel = context.WithCancel(ctx)
	c := cron.New()
	spec := w.cfg.App.CompactionWorkerCronSpec
	_, err := c.AddFunc(spec, func() { w.runOnce(w.runCtx) })
	if err != nil {
		w.log.Warn("group.worker: failed to schedule with provided cron spec; falling back to @hourly", zap.Error(err))
		c = cron.New()
		_, _ = c.AddFunc("@hourly", func() { w.runOnce(w.runCtx) })
	}
	c.Start()
	w.cron = c
}

// Stop cancels in-flight passes and waits for running jobs to finish.
func (w *Worker) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	if w.cron != nil {
		ctx := w.cron.Stop()
		<-ctx.Done()
	}
}

func (w *Worker) runOnce(ctx context.Context) {
	ttl := 2 * time.Minute
	acquired, token, err := w.locker.TryLock(ctx, constvars.RedisCompactionLockKey, ttl)
	if err != nil {
		w.log.Warn("group.worker: leader lock attempt failed", zap.Error(err))
		return
	}
	if !acquired {
		w.log.Info("group.worker: leader lock not acquired; another instance is running")
		return
	}
	defer w.locker.Unlock(ctx, constvars.RedisCompactionLockKey, token)

	refreshCtx, cancelRefresh := context.WithCancel(ctx)
	defer cancelRefresh()
	go func() {
		tick := time.NewTicker(ttl / 2)
		defer tick.Stop()
		for {
			select {
			case <-refreshCtx.Done():
				return
			case <-tick.C:
				if err := w.locker.Refresh(ctx, constvars.RedisCompactionLockKey, token, ttl); err != nil {
					w.log.Warn("group.worker: failed to refresh leader lock TTL", zap.Error(err))
				}
			}
		}
	}()

	w.drainQueue(ctx)
	w.refreshStale(ctx)
}

func (w *Worker) drainQueue(ctx context.Context) {
	for {
		queued, err := w.queue.FetchN(ctx, queueDrainBatchSize)
		if err != nil {
			w.log.Warn("group.worker: fetch from recompute queue failed", zap.Error(err))
			return
		}
		if len(queued) == 0 {
			return
		}

		for _, item := range queued {
			if err := w.groupUsecase.RecomputeCompaction(ctx, item.Message.GroupID); err != nil {
				w.log.Warn("group.worker: recompute failed",
					zap.String(constvars.LoggingGroupIDKey, item.Message.GroupID),
					zap.Error(err),
				)
				// Leave the message unacked so a later pass retries it.
				continue
			}
			if err := w.queue.Ack(ctx, item.DeliveryTag); err != nil {
				w.log.Warn("group.worker: ack failed", zap.Error(err))
			}
		}

		if len(queued) < queueDrainBatchSize {
			return
		}
	}
}

func (w *Worker) refreshStale(ctx context.Context) {
	staleAfter := time.Duration(w.cfg.App.CompactionStaleAfterInMinutes) * time.Minute
	cutoff := time.Now().Add(-staleAfter)

	stale, err := w.groupRepo.FindUpdatedBefore(ctx, cutoff)
	if err != nil {
		w.log.Warn("group.worker: stale group lookup failed", zap.Error(err))
		return
	}

	for i := range stale {
		if err := w.groupUsecase.RecomputeCompaction(ctx, stale[i].ID); err != nil {
			w.log.Warn("group.worker: stale recompute failed",
				zap.String(constvars.LoggingGroupIDKey, stale[i].ID),
				zap.Error(err),
			)
		}
	}
}
