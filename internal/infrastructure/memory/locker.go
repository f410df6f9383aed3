package memory

import (
	"context"
	"sync"
)

// keyLocker un mutex por clave ("part:<id>", "order:<id>") que respeta la cancelación del contexto.
type keyLocker struct {
	mu   sync.Mutex
	keys map[string]chan struct{}
}

func newKeyLocker() *keyLocker {
	return &keyLocker{keys: make(map[string]chan struct{})}
}

func (l *keyLocker) slot(key string) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	ch, ok := l.keys[key]
	if !ok {
		ch = make(chan struct{}, 1)
		l.keys[key] = ch
	}
	return ch
}

func (l *keyLocker) acquire(ctx context.Context, key string) error {
	select {
	case l.slot(key) <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l *keyLocker) release(key string) {
	<-l.slot(key)
}
