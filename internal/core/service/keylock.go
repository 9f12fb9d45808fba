package service

import (
	"context"
	"hash/fnv"
	"sync"
)

const defaultStripes = 64

// StripedLocker is an in-process KeyLocker. Keys hash onto a fixed set of
// stripes, so unrelated keys may occasionally wait on each other but the
// same key is always exclusive.
type StripedLocker struct {
	stripes []chan struct{}
}

// NewStripedLocker creates a locker with n stripes (defaultStripes if n <= 0).
func NewStripedLocker(n int) *StripedLocker {
	if n <= 0 {
		n = defaultStripes
	}
	l := &StripedLocker{stripes: make([]chan struct{}, n)}
	for i := range l.stripes {
		l.stripes[i] = make(chan struct{}, 1)
	}
	return l
}

// Lock blocks until key is free or ctx is done.
func (l *StripedLocker) Lock(ctx context.Context, key string) (func(), error) {
	s := l.stripes[l.stripeIndex(key)]
	select {
	case s <- struct{}{}:
		var once sync.Once
		return func() { once.Do(func() { <-s }) }, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (l *StripedLocker) stripeIndex(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(len(l.stripes)))
}
