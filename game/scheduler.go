package game

import "time"

// Scheduler is the periodic driver behind the tick loop. The controller
// always stops it before starting it again with a new interval.
type Scheduler interface {
	Start(interval time.Duration)
	Stop()
}

// FrameScheduler is polled from a render loop, once per frame
type FrameScheduler struct {
	interval   time.Duration
	lastUpdate time.Time
	running    bool
	now        func() time.Time
}

func NewFrameScheduler() *FrameScheduler {
	return &FrameScheduler{now: time.Now}
}

func (s *FrameScheduler) Start(interval time.Duration) {
	s.interval = interval
	s.lastUpdate = s.now()
	s.running = true
}

func (s *FrameScheduler) Stop() {
	s.running = false
}

// Due reports whether a tick should run at now. At most one tick fires per
// call; a slow frame does not queue up a burst of catch-up ticks.
func (s *FrameScheduler) Due(now time.Time) bool {
	if !s.running || now.Sub(s.lastUpdate) < s.interval {
		return false
	}
	s.lastUpdate = now
	return true
}

func (s *FrameScheduler) Running() bool {
	return s.running
}

// TickerScheduler wraps a time.Ticker for select-based loops
type TickerScheduler struct {
	ticker *time.Ticker
}

func NewTickerScheduler() *TickerScheduler {
	return &TickerScheduler{}
}

func (s *TickerScheduler) Start(interval time.Duration) {
	s.Stop()
	s.ticker = time.NewTicker(interval)
}

func (s *TickerScheduler) Stop() {
	if s.ticker != nil {
		s.ticker.Stop()
		s.ticker = nil
	}
}

// C returns the tick channel, nil while stopped so a select never fires on it
func (s *TickerScheduler) C() <-chan time.Time {
	if s.ticker == nil {
		return nil
	}
	return s.ticker.C
}
