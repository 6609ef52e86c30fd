package usecase

import (
	"sync"

	"github.com/google/uuid"
)

// showtimeLocks serializes purchase initiation per showtime. Reading the
// taken-seat set and persisting the new purchase are two storage round
// trips; without mutual exclusion two concurrent initiations could both see
// the same free seats and sell them twice. Locks are per showtime id so
// unrelated showtimes never contend.
type showtimeLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

func newShowtimeLocks() *showtimeLocks {
	return &showtimeLocks{
		locks: make(map[uuid.UUID]*sync.Mutex),
	}
}

// Get returns the mutex for a showtime, creating it on first use.
// Lock entries are never removed; the map grows with the number of
// distinct showtimes purchased against, which is bounded and small.
func (l *showtimeLocks) Get(showtimeID uuid.UUID) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()

	lock, ok := l.locks[showtimeID]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[showtimeID] = lock
	}
	return lock
}
