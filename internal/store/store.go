package store

import "sync"

// Collection names used by the services. Every entity lives in one
// shared store keyed by collection name.
const (
	Concerts     = "concerts"
	Users        = "users"
	Reservations = "reservations"
	Histories    = "histories"
)

// Store is the persistence contract for named record collections.
// Read fills out (a pointer to a slice) with the full current
// collection, leaving it empty when the collection is absent. Write
// replaces the collection with the given records without touching any
// other collection. Errors are storage faults: the callers do not
// catch them, they propagate.
type Store interface {
	Read(collection string, out any) error
	Write(collection string, records any) error
}

// KeyedLock hands out one mutex per collection name. The services
// hold the collection's lock for the whole read-modify-write cycle of
// a mutation so that e.g. two concurrent reservations for the last
// seat serialize instead of both reading the same pre-increment state.
type KeyedLock struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewKeyedLock() *KeyedLock {
	return &KeyedLock{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for the given collection, creating it on
// first use, and returns the matching unlock function.
func (k *KeyedLock) Lock(collection string) func() {
	k.mu.Lock()
	m, ok := k.locks[collection]
	if !ok {
		m = &sync.Mutex{}
		k.locks[collection] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}
