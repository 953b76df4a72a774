package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/royalsilk/storefront/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher fans audit entries out to a fixed set of workers using
// consistent hashing on the session identifier, so records for one visitor
// are persisted in the order they were produced.
type Dispatcher struct {
	workers []chan ports.AuditEntry
	service ports.AuditService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.AuditService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.AuditEntry, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.AuditEntry, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands an entry to the worker responsible for its session. When the
// worker's buffer is full the entry is dropped rather than blocking the
// request path.
func (d *Dispatcher) Enqueue(entry ports.AuditEntry) {
	select {
	case d.workers[d.shardIndex(entry.SessionID)] <- entry:
	default:
		d.log.Warn().Str("action", entry.Action).Msg("audit queue full, entry dropped")
	}
}

// shardIndex maps a session identifier deterministically to a worker index.
func (d *Dispatcher) shardIndex(sessionID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(sessionID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.AuditEntry) {
	for {
		select {
		case <-ctx.Done():
			return
		case entry, ok := <-ch:
			if !ok {
				return
			}
			if err := d.service.Record(ctx, entry); err != nil {
				d.log.Error().Err(err).
					Str("session_id", entry.SessionID).
					Int("worker_id", id).
					Msg("audit record failed")
			}
		}
	}
}
