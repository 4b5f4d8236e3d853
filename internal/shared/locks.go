package shared

import "sync"

// WriteGate serializes mutating operations against the table backend within
// one process. The backend has no cross-row transactions, so read-then-write
// sequences (stock sufficiency check, invoice numbering) are only safe when
// at most one writer runs at a time. The gate is process-local; concurrent
// processes still race.
type WriteGate struct {
	mu sync.Mutex
}

// NewWriteGate constructs a WriteGate.
func NewWriteGate() *WriteGate {
	return &WriteGate{}
}

// Lock acquires the gate.
func (g *WriteGate) Lock() {
	g.mu.Lock()
}

// Unlock releases the gate.
func (g *WriteGate) Unlock() {
	g.mu.Unlock()
}
