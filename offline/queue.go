// Package offline durably stages mutating operations while the remote store
// is unreachable and replays them later in enqueue order, tolerating partial
// failure.
package offline

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"sync"
	"time"

	"github.com/shelfwise/circulation/remotestore"
)

const (
	logMsgOperationQueued    = "operation queued for later sync"
	logMsgQueueUnreadable    = "persisted queue content is unreadable, treating the queue as empty"
	logMsgItemReplayFailed   = "replaying queued operation failed, retained for the next sync"
	logMsgPersistQueueFailed = "persisting queue after sync failed"
	logMsgSyncCompleted      = "sync pass completed"
	logAttrError             = "error"
	logAttrEntity            = "entity"
	logAttrKind              = "kind"
	logAttrRecordID          = "record_id"
	logAttrProcessed         = "processed"
	logAttrTotal             = "total"
	logAttrFailed            = "failed"
)

// Logger interface for queue notifications, replay failures, and warnings.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// errUnknownOperationKind guards against queue content from a newer schema.
var errUnknownOperationKind = errors.New("unknown operation kind")

// RemoteWriter is the slice of the remote-store contract a sync pass needs.
type RemoteWriter interface {
	Insert(ctx context.Context, entity remotestore.Entity, record json.RawMessage) error
	Update(ctx context.Context, entity remotestore.Entity, id string, record json.RawMessage) error
	Delete(ctx context.Context, entity remotestore.Entity, id string) error
}

// ProgressFunc is invoked after every replayed item with the number of items
// processed so far, the pass total, and the projected remaining seconds.
type ProgressFunc func(processed int, total int, etaSeconds int)

// QueuedFunc is invoked after an operation has been durably staged.
type QueuedFunc func(op Operation)

// Queue stages mutations durably and replays them on an explicit sync trigger.
//
// Producers (actions enqueueing while offline) and the single consumer (a sync
// pass) share one exclusive lock around both enqueue and the replay loop, so
// operations enqueued during an in-progress pass always land in the next one.
// A sync pass is not cancellable mid-flight; it runs to completion over its
// snapshot of the queue. There is no background retry timer.
type Queue struct {
	mu       sync.Mutex
	store    Store
	remote   RemoteWriter
	logger   Logger
	clock    func() time.Time
	onQueued QueuedFunc
}

// QueueOption configures a Queue.
type QueueOption func(*Queue)

// WithLogger sets the logger for the queue.
func WithLogger(logger Logger) QueueOption {
	return func(q *Queue) {
		q.logger = logger
	}
}

// WithClock overrides the time source, used by tests to make ETA reporting
// deterministic.
func WithClock(clock func() time.Time) QueueOption {
	return func(q *Queue) {
		q.clock = clock
	}
}

// WithQueuedNotification registers a callback emitted after every enqueue.
func WithQueuedNotification(fn QueuedFunc) QueueOption {
	return func(q *Queue) {
		q.onQueued = fn
	}
}

// NewQueue creates a Queue on top of a durable store and a remote writer.
func NewQueue(store Store, remote RemoteWriter, options ...QueueOption) *Queue {
	queue := &Queue{
		store:  store,
		remote: remote,
		clock:  time.Now,
	}

	for _, option := range options {
		option(queue)
	}

	return queue
}

// Enqueue durably appends the operation and emits the queued notification.
func (q *Queue) Enqueue(op Operation) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	op.EnqueuedAt = q.clock().UTC()

	if err := q.store.Append(op); err != nil {
		return err
	}

	if q.logger != nil {
		q.logger.Info(logMsgOperationQueued,
			logAttrEntity, string(op.Entity),
			logAttrKind, string(op.Kind),
			logAttrRecordID, op.RecordID,
		)
	}

	if q.onQueued != nil {
		q.onQueued(op)
	}

	return nil
}

// Len returns the number of currently staged operations. Unreadable persisted
// state counts as an empty queue.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.load())
}

// FailedOperation pairs a retained operation with the error that failed it.
type FailedOperation struct {
	Operation Operation
	Err       error
}

// SyncReport summarizes one sync pass.
type SyncReport struct {
	Total     int
	Succeeded int
	Failed    []FailedOperation
}

// Ok reports whether every staged operation replayed successfully.
func (r SyncReport) Ok() bool {
	return len(r.Failed) == 0
}

// Sync replays the staged operations against the remote store in enqueue
// order. The pass total is the queue length at the start of the pass. A failed
// item is moved to the failed subset instead of aborting the pass; afterwards
// exactly that subset is persisted as the new queue (the queue is cleared on
// full success). Progress is reported after every item.
func (q *Queue) Sync(ctx context.Context, progress ProgressFunc) SyncReport {
	q.mu.Lock()
	defer q.mu.Unlock()

	ops := q.load()
	total := len(ops)

	report := SyncReport{Total: total}
	failedOps := make([]Operation, 0)

	started := q.clock()

	for index, op := range ops {
		if err := q.replayItem(ctx, op); err != nil {
			report.Failed = append(report.Failed, FailedOperation{Operation: op, Err: err})
			failedOps = append(failedOps, op)

			if q.logger != nil {
				q.logger.Error(logMsgItemReplayFailed,
					logAttrError, err.Error(),
					logAttrEntity, string(op.Entity),
					logAttrKind, string(op.Kind),
					logAttrRecordID, op.RecordID,
				)
			}
		} else {
			report.Succeeded++
		}

		processed := index + 1
		if progress != nil {
			progress(processed, total, etaSeconds(q.clock().Sub(started), processed, total-processed))
		}
	}

	if persistErr := q.store.Replace(failedOps); persistErr != nil && q.logger != nil {
		q.logger.Error(logMsgPersistQueueFailed, logAttrError, persistErr.Error())
	}

	if q.logger != nil {
		q.logger.Info(logMsgSyncCompleted,
			logAttrProcessed, total,
			logAttrTotal, total,
			logAttrFailed, len(report.Failed),
		)
	}

	return report
}

func (q *Queue) replayItem(ctx context.Context, op Operation) error {
	switch op.Kind {
	case KindInsert:
		return q.remote.Insert(ctx, op.Entity, op.Record)
	case KindUpdate:
		return q.remote.Update(ctx, op.Entity, op.RecordID, op.Record)
	case KindDelete:
		return q.remote.Delete(ctx, op.Entity, op.RecordID)
	default:
		return errUnknownOperationKind
	}
}

// load reads the persisted queue, treating unreadable content as empty.
func (q *Queue) load() []Operation {
	ops, err := q.store.Load()
	if err != nil {
		if q.logger != nil {
			q.logger.Warn(logMsgQueueUnreadable, logAttrError, err.Error())
		}

		return nil
	}

	return ops
}

// etaSeconds projects the remaining time from the average elapsed time per
// item observed so far in this pass, rounded up.
func etaSeconds(elapsed time.Duration, processed int, remaining int) int {
	if processed == 0 || remaining <= 0 {
		return 0
	}

	average := elapsed.Seconds() / float64(processed)

	return int(math.Ceil(average * float64(remaining)))
}
