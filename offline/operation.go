package offline

import (
	"encoding/json"
	"time"

	"github.com/shelfwise/circulation/remotestore"
)

// Kind discriminates the three mutating operations that can be staged.
type Kind string

const (
	KindInsert Kind = "Insert"
	KindUpdate Kind = "Update"
	KindDelete Kind = "Delete"
)

// Operation is one staged mutation: a tagged variant of
// Insert(entity, record), Update(entity, record, id) or Delete(entity, id).
//
// Construct it only with InsertOperation, UpdateOperation or DeleteOperation.
// Record carries the JSON encoding of the entity's concrete record shape and
// is empty for deletes.
type Operation struct {
	Entity     remotestore.Entity `json:"entity"`
	Kind       Kind               `json:"kind"`
	RecordID   string             `json:"recordId,omitempty"`
	Record     json.RawMessage    `json:"record,omitempty"`
	EnqueuedAt time.Time          `json:"enqueuedAt"`
}

// InsertOperation stages an insert of the given record.
func InsertOperation(entity remotestore.Entity, record json.RawMessage) Operation {
	return Operation{
		Entity: entity,
		Kind:   KindInsert,
		Record: record,
	}
}

// UpdateOperation stages an update of the record with the given id.
func UpdateOperation(entity remotestore.Entity, id string, record json.RawMessage) Operation {
	return Operation{
		Entity:   entity,
		Kind:     KindUpdate,
		RecordID: id,
		Record:   record,
	}
}

// DeleteOperation stages a delete of the record with the given id.
func DeleteOperation(entity remotestore.Entity, id string) Operation {
	return Operation{
		Entity:   entity,
		Kind:     KindDelete,
		RecordID: id,
	}
}
