// Package pairlock serializes operations on an unordered pair of keys.
//
// Follow toggles are check-then-act against two profile documents; two
// concurrent toggles on the same edge could both observe "not following" and
// double-apply. Locking the unordered {a, b} pair makes the inspect/flip
// sequence atomic within this process.
package pairlock

import "sync"

type entry struct {
	mu   sync.Mutex
	refs int
}

// Locker hands out per-pair mutexes. Entries are dropped once the last
// holder releases, so the map stays bounded by in-flight pairs.
type Locker struct {
	mu    sync.Mutex
	pairs map[string]*entry
}

func New() *Locker {
	return &Locker{pairs: make(map[string]*entry)}
}

// Lock acquires the mutex for the unordered pair {a, b} and returns the
// release function. Lock(a, b) and Lock(b, a) contend on the same mutex.
func (l *Locker) Lock(a, b string) func() {
	k := key(a, b)

	l.mu.Lock()
	e, ok := l.pairs[k]
	if !ok {
		e = &entry{}
		l.pairs[k] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()

	return func() {
		e.mu.Unlock()

		l.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(l.pairs, k)
		}
		l.mu.Unlock()
	}
}

func key(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + "\x00" + b
}
