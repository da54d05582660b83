package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/contentkosh/institute-api/internal/api/metrics"
	"github.com/contentkosh/institute-api/internal/core/domain"
	"github.com/contentkosh/institute-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// AuditDispatcher moves audit writes off the request path. Events are
// sharded across a fixed set of workers by actor id, so the audit trail
// of any single user stays in order.
type AuditDispatcher struct {
	workers []chan domain.AuditEvent
	repo    ports.AuditRepository
	log     zerolog.Logger
}

// NewAuditDispatcher creates a dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewAuditDispatcher(numWorkers int, repo ports.AuditRepository, log zerolog.Logger) *AuditDispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &AuditDispatcher{
		workers: make([]chan domain.AuditEvent, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.AuditEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *AuditDispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Record enqueues an event without blocking the caller. When a worker's
// buffer is full the event is dropped with a warning: the audit trail is
// best-effort and must never stall request handling.
func (d *AuditDispatcher) Record(event domain.AuditEvent) {
	idx := d.shardIndex(event.UserID)
	select {
	case d.workers[idx] <- event:
		metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		d.log.Warn().Int64("user_id", event.UserID).Str("action", string(event.Action)).Msg("audit queue full, event dropped")
	}
}

// shardIndex maps an actor id deterministically to a worker index.
func (d *AuditDispatcher) shardIndex(userID int64) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strconv.FormatInt(userID, 10)))
	return int(h.Sum32()) % len(d.workers)
}

func (d *AuditDispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.AuditEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			if err := d.repo.Insert(ctx, event); err != nil {
				d.log.Error().Err(err).
					Str("action", string(event.Action)).
					Int("worker_id", id).
					Msg("audit event write failed")
			}
			metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
		}
	}
}
