// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package lock provides keyed mutual exclusion for request de-duplication.
// A caller that fails to acquire a key should reject the request rather
// than wait.
package lock

import "sync"

// Locker grants at most one holder per key.
type Locker interface {
	TryAcquire(key string) bool
	Release(key string)
}

// MemoryLocker is an in-process Locker for a single instance.
type MemoryLocker struct {
	mu   sync.Mutex
	held map[string]struct{}
}

// NewMemoryLocker returns an empty MemoryLocker.
func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{held: make(map[string]struct{})}
}

// TryAcquire takes key if it is free and reports whether it did.
func (l *MemoryLocker) TryAcquire(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.held[key]; ok {
		return false
	}
	l.held[key] = struct{}{}
	return true
}

// Release frees key. Releasing a key that is not held is a no-op.
func (l *MemoryLocker) Release(key string) {
	l.mu.Lock()
	delete(l.held, key)
	l.mu.Unlock()
}

// Held returns the number of keys currently held.
func (l *MemoryLocker) Held() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.held)
}

// Key joins a caller and an operation into a lock key.
func Key(caller, operation string) string {
	return caller + "|" + operation
}
