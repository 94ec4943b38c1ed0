package lock

import (
	"context"
	"sync"
	"time"

	"artisan_escrow/internal/usecase/interfaces"
)

// LocalLocker is the single-process locker. Each project id gets its own
// one-slot channel; entries are dropped once nobody holds or waits on them.
type LocalLocker struct {
	mu    sync.Mutex
	slots map[string]*slot
	wait  time.Duration
}

type slot struct {
	ch   chan struct{}
	refs int
}

var _ interfaces.IProjectLocker = (*LocalLocker)(nil)

// NewLocalLocker returns a locker that gives up after wait. Zero waits until
// the context is done.
func NewLocalLocker(wait time.Duration) *LocalLocker {
	return &LocalLocker{slots: make(map[string]*slot), wait: wait}
}

func (l *LocalLocker) Lock(ctx context.Context, projectID string) (func(), error) {
	s := l.acquireSlot(projectID)

	var timeout <-chan time.Time
	if l.wait > 0 {
		timer := time.NewTimer(l.wait)
		defer timer.Stop()
		timeout = timer.C
	}

	select {
	case s.ch <- struct{}{}:
	case <-ctx.Done():
		l.releaseSlot(projectID, s)
		return nil, ctx.Err()
	case <-timeout:
		l.releaseSlot(projectID, s)
		return nil, ErrLockTimeout
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-s.ch
			l.releaseSlot(projectID, s)
		})
	}, nil
}

func (l *LocalLocker) acquireSlot(id string) *slot {
	l.mu.Lock()
	defer l.mu.Unlock()
	s, ok := l.slots[id]
	if !ok {
		s = &slot{ch: make(chan struct{}, 1)}
		l.slots[id] = s
	}
	s.refs++
	return s
}

func (l *LocalLocker) releaseSlot(id string, s *slot) {
	l.mu.Lock()
	defer l.mu.Unlock()
	s.refs--
	if s.refs == 0 {
		delete(l.slots, id)
	}
}
