// Package doubles provides test doubles for the remote store, the queue
// store, and logging.
package doubles

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/shelfwise/circulation/core"
	"github.com/shelfwise/circulation/remotestore"
)

// WriteCall records one mutating call received by the fake store.
type WriteCall struct {
	Kind   string // "insert", "update", "delete"
	Entity remotestore.Entity
	ID     string
	Record json.RawMessage
}

// RemoteStoreFake implements remotestore.Store in memory with scriptable
// reachability and per-call failures.
type RemoteStoreFake struct {
	mu sync.Mutex

	Unreachable bool
	PingGate    chan struct{}    // when set, Ping blocks until the gate is closed
	PingEntered chan struct{}    // when set, Ping signals here before blocking on the gate
	FailNext    map[string]error // keyed by "kind:entity:id", consumed on hit
	Calls       []WriteCall

	Titles       []core.Title
	Members      []core.Member
	LoanEvents   []core.LoanEvent
	Reservations []core.Reservation
	Settings     core.Settings
}

// NewRemoteStoreFake creates an empty, reachable fake.
func NewRemoteStoreFake() *RemoteStoreFake {
	return &RemoteStoreFake{
		FailNext: make(map[string]error),
		Settings: core.DefaultSettings(),
	}
}

// FailOn scripts an error for the next matching call.
func (f *RemoteStoreFake) FailOn(kind string, entity remotestore.Entity, id string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.FailNext[callKey(kind, entity, id)] = err
}

// WriteCalls returns a copy of the recorded mutating calls.
func (f *RemoteStoreFake) WriteCalls() []WriteCall {
	f.mu.Lock()
	defer f.mu.Unlock()

	calls := make([]WriteCall, len(f.Calls))
	copy(calls, f.Calls)

	return calls
}

func (f *RemoteStoreFake) Ping(_ context.Context) error {
	f.mu.Lock()
	gate := f.PingGate
	entered := f.PingEntered
	f.mu.Unlock()

	if gate != nil {
		if entered != nil {
			select {
			case entered <- struct{}{}:
			default:
			}
		}

		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.Unreachable {
		return remotestore.ErrUnreachable
	}

	return nil
}

func (f *RemoteStoreFake) Insert(_ context.Context, entity remotestore.Entity, record json.RawMessage) error {
	return f.record("insert", entity, "", record)
}

func (f *RemoteStoreFake) Update(_ context.Context, entity remotestore.Entity, id string, record json.RawMessage) error {
	return f.record("update", entity, id, record)
}

func (f *RemoteStoreFake) Delete(_ context.Context, entity remotestore.Entity, id string) error {
	return f.record("delete", entity, id, nil)
}

func (f *RemoteStoreFake) record(kind string, entity remotestore.Entity, id string, record json.RawMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.Unreachable {
		return remotestore.ErrUnreachable
	}

	key := callKey(kind, entity, id)
	if err, scripted := f.FailNext[key]; scripted {
		delete(f.FailNext, key)
		return err
	}

	f.Calls = append(f.Calls, WriteCall{Kind: kind, Entity: entity, ID: id, Record: record})

	return nil
}

func (f *RemoteStoreFake) FetchTitles(_ context.Context) ([]core.Title, error) {
	return f.Titles, nil
}

func (f *RemoteStoreFake) FetchMembers(_ context.Context) ([]core.Member, error) {
	return f.Members, nil
}

func (f *RemoteStoreFake) FetchLoanEvents(_ context.Context) ([]core.LoanEvent, error) {
	return f.LoanEvents, nil
}

func (f *RemoteStoreFake) FetchReservations(_ context.Context) ([]core.Reservation, error) {
	return f.Reservations, nil
}

func (f *RemoteStoreFake) FetchSettings(_ context.Context) (core.Settings, error) {
	return f.Settings, nil
}

func callKey(kind string, entity remotestore.Entity, id string) string {
	return fmt.Sprintf("%s:%s:%s", kind, entity, id)
}
