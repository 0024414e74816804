// Package remotestore defines the collaborator contract for the shared record
// store: entity-keyed insert, update and delete plus the snapshot reads the
// scheduling engine rehydrates from.
//
// Every operation either succeeds or returns an error value; no partial-write
// semantics are assumed. Reachability is probed explicitly with Ping so the
// action layer can decide between a direct write and the offline queue.
package remotestore

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/shelfwise/circulation/core"
)

// Entity names a record collection in the remote store.
type Entity string

const (
	EntityTitles       Entity = "titles"
	EntityMembers      Entity = "members"
	EntityLoanEvents   Entity = "loan_events"
	EntityReservations Entity = "reservations"
	EntitySettings     Entity = "settings"
)

var (
	// ErrUnreachable is returned when the remote store cannot be reached.
	ErrUnreachable = errors.New("remote store is unreachable")

	// ErrUnknownEntity is returned for an entity name outside the contract.
	ErrUnknownEntity = errors.New("unknown entity")

	// ErrRecordNotFound is returned when an update or delete matches no record.
	ErrRecordNotFound = errors.New("record not found")

	// ErrNilDatabaseConnection is returned when an engine is built without a connection.
	ErrNilDatabaseConnection = errors.New("database connection must not be nil")
)

// Writer issues the three mutating operations of the contract.
// Record payloads are the JSON encoding of the matching core record.
type Writer interface {
	Insert(ctx context.Context, entity Entity, record json.RawMessage) error
	Update(ctx context.Context, entity Entity, id string, record json.RawMessage) error
	Delete(ctx context.Context, entity Entity, id string) error
}

// Reader fetches the full current state of each collection for rehydration.
type Reader interface {
	FetchTitles(ctx context.Context) ([]core.Title, error)
	FetchMembers(ctx context.Context) ([]core.Member, error)
	FetchLoanEvents(ctx context.Context) ([]core.LoanEvent, error)
	FetchReservations(ctx context.Context) ([]core.Reservation, error)
	FetchSettings(ctx context.Context) (core.Settings, error)
}

// Pinger probes reachability before a mutating action commits to a direct write.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Store is the full collaborator contract.
type Store interface {
	Writer
	Reader
	Pinger
}
