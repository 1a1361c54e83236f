// Package monitor renders live run progress in the terminal
package monitor

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/tmc-evolve/evolve"
	"github.com/lixenwraith/tmc-evolve/logging"
	"github.com/lixenwraith/tmc-evolve/objective"
	"github.com/lixenwraith/tmc-evolve/parameter"
)

// Monitor is a tcell dashboard fed by run events
// Observe may be called from any goroutine; Run owns the screen
type Monitor struct {
	screen tcell.Screen
	dash   *Dashboard
	cancel context.CancelFunc
	chime  *Chime
	logger logging.Logger

	events     chan evolve.Event
	finished   chan struct{}
	finishOnce sync.Once
	dropped    atomic.Int64
}

// Option configures a Monitor
type Option func(*Monitor)

// WithChime plays c whenever an event carries a new best score
func WithChime(c *Chime) Option {
	return func(m *Monitor) { m.chime = c }
}

// WithLogger sets the logger
func WithLogger(l logging.Logger) Option {
	return func(m *Monitor) {
		if l != nil {
			m.logger = l
		}
	}
}

// NewScreen creates and initializes the terminal screen
func NewScreen() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	return screen, nil
}

// New creates a monitor on an initialized screen
// cancel is invoked when the user quits
func New(screen tcell.Screen, obj objective.Objective, cancel context.CancelFunc, opts ...Option) *Monitor {
	m := &Monitor{
		screen:   screen,
		dash:     NewDashboard(obj),
		cancel:   cancel,
		logger:   logging.NoOpLogger{},
		events:   make(chan evolve.Event, parameter.MonitorEventBuffer),
		finished: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Observe implements evolve.Observer, dropping events when the buffer is full
func (m *Monitor) Observe(ev evolve.Event) {
	select {
	case m.events <- ev:
	default:
		m.dropped.Add(1)
	}
}

// Dropped returns the number of events discarded under back pressure
func (m *Monitor) Dropped() int64 { return m.dropped.Load() }

// Finish tells the monitor every run has ended; it stays open until the user quits
func (m *Monitor) Finish() {
	m.finishOnce.Do(func() { close(m.finished) })
}

// Run draws until the user quits or ctx is cancelled
// The caller finalizes the screen afterwards
func (m *Monitor) Run(ctx context.Context) error {
	input := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)

	go func() {
		for {
			ev := m.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case input <- ev:
			case <-quit:
				return
			}
		}
	}()

	ticker := time.NewTicker(parameter.MonitorRefresh)
	defer ticker.Stop()

	finished := m.finished
	m.draw()
	dirty := false

	for {
		select {
		case <-ctx.Done():
			m.drain()
			m.draw()
			return nil

		case ev := <-m.events:
			m.apply(ev)
			dirty = true

		case <-finished:
			m.drain()
			m.dash.Finish()
			finished = nil
			dirty = true

		case ev := <-input:
			if !m.handleInput(ev) {
				m.logger.Infof("monitor: quit requested")
				m.cancel()
				return nil
			}
			dirty = true

		case <-ticker.C:
			if dirty {
				m.draw()
				dirty = false
			}
		}
	}
}

func (m *Monitor) apply(ev evolve.Event) {
	if m.dash.Apply(ev) && m.chime != nil {
		m.chime.Play()
	}
}

// drain applies queued events without blocking
func (m *Monitor) drain() {
	for {
		select {
		case ev := <-m.events:
			m.apply(ev)
		default:
			return
		}
	}
}

// handleInput returns false when the user asked to quit
func (m *Monitor) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
			return false
		case ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q'):
			return false
		case ev.Key() == tcell.KeyTab:
			m.dash.Next()
		}
	case *tcell.EventResize:
		m.screen.Sync()
	}
	return true
}

func (m *Monitor) draw() {
	m.screen.Clear()
	m.dash.Draw(m.screen)
	m.screen.Show()
}

var _ evolve.Observer = (*Monitor)(nil)
