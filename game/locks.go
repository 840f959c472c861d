package game

import "sync"

// roomLocks hands out one mutex per room id so operations on the same room
// are serialized while different rooms proceed in parallel. Entries are
// reference-counted and removed once nobody holds or waits on them.
type roomLocks struct {
	mu    sync.Mutex
	locks map[string]*roomLock
}

type roomLock struct {
	mu   sync.Mutex
	refs int
}

func newRoomLocks() *roomLocks {
	return &roomLocks{locks: map[string]*roomLock{}}
}

// lock blocks until the caller holds the room's mutex and returns the unlock
// function. The critical section is expected to span the whole
// resolve-timeout, validate, dictionary-lookup, mutate, persist sequence.
func (l *roomLocks) lock(roomID string) func() {
	l.mu.Lock()
	entry, ok := l.locks[roomID]
	if !ok {
		entry = &roomLock{}
		l.locks[roomID] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()
		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, roomID)
		}
		l.mu.Unlock()
	}
}
