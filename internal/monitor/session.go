package monitor

import (
	"context"
	"time"

	"github.com/Dicklesworthstone/hostmon/internal/model"
	"github.com/Dicklesworthstone/hostmon/internal/rate"
	"github.com/Dicklesworthstone/hostmon/internal/sampler"
)

// Session holds the live snapshot and the one before it. It is owned by a
// single loop and is not safe for concurrent use.
type Session struct {
	provider sampler.Provider
	interval time.Duration
	now      func() time.Time

	prev   model.Snapshot
	primed bool
}

// NewSession returns a session sampling p every interval.
func NewSession(p sampler.Provider, interval time.Duration) *Session {
	return &Session{provider: p, interval: interval, now: time.Now}
}

// Prime takes the baseline snapshot the first frame's throughput is
// measured against.
func (s *Session) Prime(ctx context.Context) error {
	if err := s.provider.Refresh(ctx); err != nil {
		s.primed = false
		return err
	}
	s.prev = sampler.Take(s.provider, s.now())
	s.primed = true
	return nil
}

// Step refreshes the provider and builds the next frame. On a refresh
// failure the previous reading is dropped, so the next successful frame
// reports zero throughput instead of a delta spanning several intervals.
func (s *Session) Step(ctx context.Context) (model.Frame, model.Snapshot, error) {
	if err := s.provider.Refresh(ctx); err != nil {
		s.primed = false
		return model.Frame{}, model.Snapshot{}, err
	}
	cur := sampler.Take(s.provider, s.now())

	var net model.Throughput
	if s.primed {
		net = rate.Aggregate(s.prev.Interfaces, cur.Interfaces)
	}
	s.prev, s.primed = cur, true
	return model.NewFrame(cur, net, s.interval), cur, nil
}

// Interval is the tick length.
func (s *Session) Interval() time.Duration { return s.interval }
