package quiz

import (
	"sync"
	"time"
)

const (
	UrgencyNormal   = "normal"
	UrgencyWarning  = "warning"
	UrgencyCritical = "critical"

	warningThreshold  = 10
	criticalThreshold = 5
)

// TickInfo is the per-tick countdown snapshot handed to observers. Urgency
// is purely presentational (display color in the original quiz).
type TickInfo struct {
	Remaining int
	Fraction  float64
	Urgency   string
}

// countdown is a cancellable per-question timer. It ticks down from a fixed
// number of seconds and fires onExpire exactly once when it reaches zero,
// unless stopped first. stop is idempotent and must be called on every path
// that leaves a question, so an old countdown can never fire against a
// future question.
type countdown struct {
	quit chan struct{}
	once sync.Once
}

func newCountdown(seconds int, interval time.Duration, onTick func(TickInfo), onExpire func()) *countdown {
	if interval <= 0 {
		interval = time.Second
	}
	c := &countdown{quit: make(chan struct{})}
	go c.run(seconds, interval, onTick, onExpire)
	return c
}

func (c *countdown) run(seconds int, interval time.Duration, onTick func(TickInfo), onExpire func()) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	remaining := seconds
	if onTick != nil {
		onTick(makeTick(remaining, seconds))
	}

	for {
		select {
		case <-c.quit:
			return
		case <-ticker.C:
			remaining--
			if onTick != nil {
				onTick(makeTick(remaining, seconds))
			}
			if remaining <= 0 {
				if onExpire != nil {
					onExpire()
				}
				return
			}
		}
	}
}

func (c *countdown) stop() {
	c.once.Do(func() { close(c.quit) })
}

func makeTick(remaining, total int) TickInfo {
	if remaining < 0 {
		remaining = 0
	}
	fraction := 0.0
	if total > 0 {
		fraction = float64(remaining) / float64(total)
	}
	urgency := UrgencyNormal
	switch {
	case remaining <= criticalThreshold:
		urgency = UrgencyCritical
	case remaining <= warningThreshold:
		urgency = UrgencyWarning
	}
	return TickInfo{Remaining: remaining, Fraction: fraction, Urgency: urgency}
}
