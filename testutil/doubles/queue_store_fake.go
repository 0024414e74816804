package doubles

import (
	"errors"

	"github.com/shelfwise/circulation/offline"
)

// ErrCorruptQueueContent simulates unreadable persisted queue state.
var ErrCorruptQueueContent = errors.New("persisted queue content is corrupt")

// QueueStoreFake implements offline.Store in memory. With Corrupt set, Load
// fails the way an unreadable file would.
type QueueStoreFake struct {
	Ops      []offline.Operation
	Corrupt  bool
	Replaces [][]offline.Operation
}

func (s *QueueStoreFake) Append(op offline.Operation) error {
	s.Ops = append(s.Ops, op)
	return nil
}

func (s *QueueStoreFake) Load() ([]offline.Operation, error) {
	if s.Corrupt {
		return nil, ErrCorruptQueueContent
	}

	ops := make([]offline.Operation, len(s.Ops))
	copy(ops, s.Ops)

	return ops, nil
}

func (s *QueueStoreFake) Replace(ops []offline.Operation) error {
	s.Ops = make([]offline.Operation, len(ops))
	copy(s.Ops, ops)
	s.Replaces = append(s.Replaces, s.Ops)

	return nil
}
