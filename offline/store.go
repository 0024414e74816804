package offline

// Store is the durable representation of the queue: an ordered sequence of
// operations surviving process restart.
//
// Append adds one operation at the tail. Load returns the current sequence in
// enqueue order. Replace persists exactly the given operations as the new
// queue, which is how a sync pass retains its failed subset (or clears the
// queue with an empty slice).
type Store interface {
	Append(op Operation) error
	Load() ([]Operation, error)
	Replace(ops []Operation) error
}
