package ui

import (
	"sync"
	"time"
)

// NextProgress advances the cosmetic progress value by one tick. The curve
// moves fast at first and stalls just below 100 until the run ends.
func NextProgress(value float64) float64 {
	step := 13.0
	if value >= 50 {
		step = 2
	}
	if value >= 80 {
		step = 1
	}
	if value >= 95 {
		step = 0.1
	}
	if value >= 99 {
		step = 0
	}
	return value + step
}

// ProgressAnimator drives a progress value on a timer while a run is in
// flight. It knows nothing about the bytes transferred.
type ProgressAnimator struct {
	tick     time.Duration
	onChange func(value float64, done bool)

	mu      sync.Mutex
	value   float64
	stop    chan struct{}
	stopped chan struct{}
}

// NewProgressAnimator creates an animator that reports every value change
// to onChange, possibly from a background goroutine.
func NewProgressAnimator(tick time.Duration, onChange func(value float64, done bool)) *ProgressAnimator {
	if tick <= 0 {
		tick = ProgressTick
	}
	return &ProgressAnimator{tick: tick, onChange: onChange}
}

// Start resets the value to zero and begins ticking. A running animation is
// restarted.
func (p *ProgressAnimator) Start() {
	p.halt()

	p.mu.Lock()
	p.value = 0
	p.stop = make(chan struct{})
	p.stopped = make(chan struct{})
	stop, stopped := p.stop, p.stopped
	p.mu.Unlock()

	p.notify(0, false)
	go p.loop(stop, stopped)
}

// Finish stops ticking and jumps to 100%
func (p *ProgressAnimator) Finish() {
	p.halt()

	p.mu.Lock()
	p.value = ProgressMax
	p.mu.Unlock()

	p.notify(ProgressMax, true)
}

// Value returns the current progress in percent
func (p *ProgressAnimator) Value() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.value
}

func (p *ProgressAnimator) loop(stop <-chan struct{}, stopped chan<- struct{}) {
	defer close(stopped)

	ticker := time.NewTicker(p.tick)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			p.mu.Lock()
			p.value = NextProgress(p.value)
			value := p.value
			p.mu.Unlock()
			p.notify(value, false)
		}
	}
}

// halt stops the ticking goroutine and waits for it to exit
func (p *ProgressAnimator) halt() {
	p.mu.Lock()
	stop, stopped := p.stop, p.stopped
	p.stop, p.stopped = nil, nil
	p.mu.Unlock()

	if stop == nil {
		return
	}
	close(stop)
	<-stopped
}

func (p *ProgressAnimator) notify(value float64, done bool) {
	if p.onChange != nil {
		p.onChange(value, done)
	}
}
