// Package clock lets business code read time through an interface so tests
// can pin it.
package clock

import (
	"sync"
	"time"
)

type Clocker interface {
	Now() time.Time
}

// TimeClocker reads the system clock.
type TimeClocker struct{}

func New() *TimeClocker {
	return &TimeClocker{}
}

func (*TimeClocker) Now() time.Time {
	return time.Now()
}

// Frozen always reports the same instant until moved with Advance.
type Frozen struct {
	mu sync.Mutex
	t  time.Time
}

func NewFrozen(t time.Time) *Frozen {
	return &Frozen{t: t}
}

func (f *Frozen) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.t
}

func (f *Frozen) Advance(d time.Duration) {
	f.mu.Lock()
	f.t = f.t.Add(d)
	f.mu.Unlock()
}
