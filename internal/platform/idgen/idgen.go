package idgen

import (
	"sync"
	"time"
)

// Source hands out monotonically increasing int64 identifiers seeded from the
// current time in milliseconds. Two calls in the same millisecond still yield
// distinct ids.
type Source struct {
	mu   sync.Mutex
	now  func() time.Time
	last int64
}

func New(now func() time.Time) *Source {
	if now == nil {
		now = time.Now
	}
	return &Source{now: now}
}

func (s *Source) Next() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.now().UnixMilli()
	if id <= s.last {
		id = s.last + 1
	}
	s.last = id
	return id
}
