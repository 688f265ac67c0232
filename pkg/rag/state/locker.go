package state

import "sync"

// KeyedLocker serializes work per key. Entries are dropped once unused.
type KeyedLocker struct {
	mu    sync.Mutex
	locks map[string]*keyedEntry
}

type keyedEntry struct {
	mu   sync.Mutex
	refs int
}

func NewKeyedLocker() *KeyedLocker {
	return &KeyedLocker{locks: make(map[string]*keyedEntry)}
}

// Lock blocks until key is free and returns the matching unlock.
func (k *KeyedLocker) Lock(key string) func() {
	k.mu.Lock()
	e, ok := k.locks[key]
	if !ok {
		e = &keyedEntry{}
		k.locks[key] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()

	return func() {
		e.mu.Unlock()

		k.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}

func (k *KeyedLocker) size() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.locks)
}
