package service

import (
	"sync"

	"github.com/andres-erbsen/clock"
)

// Clock is the single time source of every handler. All timing decisions
// read the ledger clock once per transaction; nothing in the transition
// logic touches the system clock directly.
type Clock interface {
	NowMs() int64
}

// LedgerClock adapts a clock.Clock to millisecond ledger time. Production
// wires clock.New(); tests wire clock.NewMock() and advance it explicitly.
type LedgerClock struct {
	c clock.Clock
}

func NewLedgerClock(c clock.Clock) *LedgerClock {
	return &LedgerClock{c: c}
}

func (l *LedgerClock) NowMs() int64 {
	return l.c.Now().UnixMilli()
}

// LockTable serializes transactions per shared object, mirroring the
// ledger's object-mutation locking: between concurrent calls on the same
// object exactly one completes first and the next observes its post-state.
type LockTable struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewLockTable() *LockTable {
	return &LockTable{locks: make(map[string]*sync.Mutex)}
}

// Acquire locks the object's mutex and returns the release func.
func (t *LockTable) Acquire(objectID string) func() {
	t.mu.Lock()
	l, ok := t.locks[objectID]
	if !ok {
		l = &sync.Mutex{}
		t.locks[objectID] = l
	}
	t.mu.Unlock()

	l.Lock()
	return l.Unlock
}
