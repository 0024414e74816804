// Package actions orchestrates the mutating operations of the engine:
// checkout, checkin, renew, reserve, cancel, pickup-date edit and catalog
// removal.
//
// Each action validates against the current snapshot through the pure
// scheduling packages, then issues exactly one mutation per record: directly
// to the remote store when it is reachable, otherwise staged in the offline
// write queue. An explicit submission-in-progress guard blocks identical
// submissions until the round trip resolves, preventing duplicate ledger
// entries.
package actions

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shelfwise/circulation/offline"
	"github.com/shelfwise/circulation/remotestore"
)

const (
	logMsgRemoteUnreachable = "remote store unreachable, staging operation offline"
	logMsgRemoteWriteFailed = "remote operation failed, submission abandoned"
	logAttrError            = "error"
	logAttrEntity           = "entity"
	logAttrKind             = "kind"
	logAttrRecordID         = "record_id"
)

// ErrSubmissionInProgress is returned while an identical submission is still
// in flight.
var ErrSubmissionInProgress = errors.New("an identical submission is already in progress")

// Logger interface for action-level reporting.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Result is the outcome of an action.
//
// A rule violation is reported with OK=false and the Reason surfaced verbatim;
// it is never an error. Queued marks that the mutation was staged offline
// instead of written directly. Message carries advisory detail such as the
// renewal cap explanation.
type Result struct {
	OK      bool
	Reason  string
	Queued  bool
	Message string
}

func accepted() Result {
	return Result{OK: true}
}

func rejected(reason string) Result {
	return Result{Reason: reason}
}

// Handler executes the mutating actions against one remote store and one
// offline queue.
type Handler struct {
	remote remotestore.Store
	queue  *offline.Queue
	logger Logger
	clock  func() time.Time

	mu       sync.Mutex
	inflight map[string]struct{}
}

// Option configures a Handler.
type Option func(*Handler)

// WithLogger sets the logger for the handler.
func WithLogger(logger Logger) Option {
	return func(h *Handler) {
		h.logger = logger
	}
}

// WithClock overrides the time source, used by tests.
func WithClock(clock func() time.Time) Option {
	return func(h *Handler) {
		h.clock = clock
	}
}

// NewHandler creates a Handler.
func NewHandler(remote remotestore.Store, queue *offline.Queue, options ...Option) *Handler {
	handler := &Handler{
		remote:   remote,
		queue:    queue,
		clock:    time.Now,
		inflight: make(map[string]struct{}),
	}

	for _, option := range options {
		option(handler)
	}

	return handler
}

// begin registers a submission under its fingerprint. It fails with
// ErrSubmissionInProgress while an identical submission has not resolved yet.
func (h *Handler) begin(key string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, inProgress := h.inflight[key]; inProgress {
		return ErrSubmissionInProgress
	}

	h.inflight[key] = struct{}{}

	return nil
}

func (h *Handler) finish(key string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.inflight, key)
}

// submit issues one mutation. When the remote store is unreachable the
// operation is staged offline and queued=true is returned. An error from an
// attempted online write is returned to the caller and the operation is
// abandoned; it is not re-queued.
func (h *Handler) submit(ctx context.Context, op offline.Operation) (queued bool, err error) {
	if pingErr := h.remote.Ping(ctx); pingErr != nil {
		if h.logger != nil {
			h.logger.Warn(logMsgRemoteUnreachable,
				logAttrError, pingErr.Error(),
				logAttrEntity, string(op.Entity),
				logAttrKind, string(op.Kind),
			)
		}

		if enqueueErr := h.queue.Enqueue(op); enqueueErr != nil {
			return false, enqueueErr
		}

		return true, nil
	}

	switch op.Kind {
	case offline.KindInsert:
		err = h.remote.Insert(ctx, op.Entity, op.Record)
	case offline.KindUpdate:
		err = h.remote.Update(ctx, op.Entity, op.RecordID, op.Record)
	case offline.KindDelete:
		err = h.remote.Delete(ctx, op.Entity, op.RecordID)
	}

	if err != nil {
		if h.logger != nil {
			h.logger.Error(logMsgRemoteWriteFailed,
				logAttrError, err.Error(),
				logAttrEntity, string(op.Entity),
				logAttrKind, string(op.Kind),
				logAttrRecordID, op.RecordID,
			)
		}

		return false, err
	}

	return false, nil
}
