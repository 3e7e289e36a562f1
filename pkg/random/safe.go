package random

import (
	"math/rand"
	"sync"
	"time"
)

// Safe is a math/rand source guarded for concurrent use.
type Safe struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewSafe(seed int64) *Safe {
	return &Safe{rnd: rand.New(rand.NewSource(seed))}
}

func New() *Safe {
	return NewSafe(time.Now().UnixNano())
}

// Jitter returns a random duration in [0, max).
func (s *Safe) Jitter(max time.Duration) time.Duration {
	if max <= 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return time.Duration(s.rnd.Int63n(int64(max)))
}
