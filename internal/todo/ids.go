package todo

import (
	"math"
	"time"

	"github.com/Makepad-fr/tada/internal/model"
)

// IDSource issues creation-time ids in milliseconds. When the clock has not
// advanced past the last issued id (same tick, or a clock step backwards),
// it hands out last+1 instead, so ids are strictly increasing.
type IDSource struct {
	now  func() time.Time
	last int64
}

// NewIDSource returns an IDSource reading now. A nil now uses time.Now.
func NewIDSource(now func() time.Time) *IDSource {
	if now == nil {
		now = time.Now
	}
	return &IDSource{now: now}
}

// Seed makes sure later ids sort after every id already in items.
func (s *IDSource) Seed(items []model.Item) {
	for _, it := range items {
		if it.ID > s.last {
			s.last = it.ID
		}
	}
}

// Next returns a fresh id. It fails once math.MaxInt64 has been issued or
// seeded, since no larger id exists.
func (s *IDSource) Next() (int64, bool) {
	id := s.now().UnixMilli()
	if id <= s.last {
		if s.last == math.MaxInt64 {
			return 0, false
		}
		id = s.last + 1
	}
	s.last = id
	return id, true
}
