// Package poller keeps one upstream resource fresh on an interval. Each poller
// is a small state machine driven by its fetcher identity, an enabled flag and
// consumer visibility.
package poller

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/riskibarqy/college-baseball-live/internal/platform/logging"
)

const defaultInterval = 30 * time.Second

var ErrIdle = errors.New("poller is idle")

type State string

const (
	StateIdle      State = "idle"
	StateActive    State = "active"
	StateSuspended State = "suspended"
)

// Fetcher loads one snapshot of the resource.
type Fetcher[T any] func(ctx context.Context) (T, error)

// Snapshot is the consumer view of a poller.
type Snapshot[T any] struct {
	Data       T
	HasData    bool
	IsLoading  bool
	Err        error
	UpdatedAt  time.Time
	Generation uint64
}

// Status describes the recent health of the poll loop.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
}

// IsReady reports a recent success without a run of failures since.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < 3
}

type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type TickerFactory func(d time.Duration) Ticker

type stdTicker struct {
	t *time.Ticker
}

func (s stdTicker) C() <-chan time.Time { return s.t.C }
func (s stdTicker) Stop()               { s.t.Stop() }

func newStdTicker(d time.Duration) Ticker {
	return stdTicker{t: time.NewTicker(d)}
}

type Options struct {
	Name      string
	Interval  time.Duration
	Disabled  bool
	Hidden    bool
	Logger    *logging.Logger
	Now       func() time.Time
	NewTicker TickerFactory
}

type Poller[T any] struct {
	name      string
	logger    *logging.Logger
	now       func() time.Time
	newTicker TickerFactory

	// notifyMu serializes result application and subscriber callbacks so they
	// observe results in completion order.
	notifyMu sync.Mutex

	mu          sync.Mutex
	key         string
	fetcher     Fetcher[T]
	interval    time.Duration
	enabled     bool
	visible     bool
	started     bool
	stopped     bool
	state       State
	baseCtx     context.Context
	stopCh      chan struct{}
	gen         uint64
	genCtx      context.Context
	genCancel   context.CancelFunc
	loopCancel  context.CancelFunc
	loaded      chan struct{}
	loadedDone  bool
	snap        Snapshot[T]
	status      Status
	subscribers []func(Snapshot[T])
}

func New[T any](opts Options) *Poller[T] {
	interval := opts.Interval
	if interval <= 0 {
		interval = defaultInterval
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	factory := opts.NewTicker
	if factory == nil {
		factory = newStdTicker
	}
	name := opts.Name
	if name == "" {
		name = "poller"
	}

	return &Poller[T]{
		name:      name,
		logger:    logging.OrDefault(opts.Logger).With("poller", name),
		now:       now,
		newTicker: factory,
		interval:  interval,
		enabled:   !opts.Disabled,
		visible:   !opts.Hidden,
		state:     StateIdle,
		stopCh:    make(chan struct{}),
	}
}

func (p *Poller[T]) Name() string {
	return p.name
}

// Start activates the poller once. Cancelling ctx stops it.
func (p *Poller[T]) Start(ctx context.Context) {
	p.mu.Lock()
	if p.started || p.stopped {
		p.mu.Unlock()
		return
	}
	p.started = true
	p.baseCtx = ctx
	if p.canActivateLocked() {
		p.activateLocked()
	}
	p.mu.Unlock()

	go func() {
		select {
		case <-ctx.Done():
			p.Stop()
		case <-p.stopCh:
		}
	}()
}

// Stop tears down the loop and drops any in-flight result. Safe to call more
// than once.
func (p *Poller[T]) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopped {
		return
	}
	p.stopped = true
	close(p.stopCh)
	p.teardownLocked()
	p.gen++
	p.state = StateIdle
	p.snap.IsLoading = false
	p.markLoadedLocked()
}

// SetFetcher swaps the fetcher. A new key starts a new generation with an
// immediate loading fetch. The same key only replaces the function.
func (p *Poller[T]) SetFetcher(key string, f Fetcher[T]) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if f != nil && p.fetcher != nil && key == p.key {
		p.fetcher = f
		return
	}
	p.key = key
	p.fetcher = f
	p.snap = Snapshot[T]{Generation: p.gen}
	if p.canActivateLocked() {
		p.activateLocked()
		return
	}
	if f == nil {
		p.teardownLocked()
		p.gen++
		p.state = StateIdle
		p.markLoadedLocked()
	}
}

// Key returns the identity of the current fetcher.
func (p *Poller[T]) Key() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.key
}

// SetInterval rebuilds the timer with a fresh phase. It never fetches.
func (p *Poller[T]) SetInterval(d time.Duration) {
	if d <= 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if d == p.interval {
		return
	}
	p.interval = d
	if p.state == StateActive {
		p.stopLoopLocked()
		p.startLoopLocked()
	}
}

func (p *Poller[T]) Interval() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.interval
}

func (p *Poller[T]) SetEnabled(enabled bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if enabled == p.enabled {
		return
	}
	p.enabled = enabled
	if enabled {
		if p.canActivateLocked() {
			p.activateLocked()
		}
		return
	}

	p.teardownLocked()
	p.gen++
	p.state = StateIdle
	p.snap.IsLoading = false
	p.markLoadedLocked()
}

// SetVisible suspends the timer while hidden. Becoming visible fetches in the
// background right away and restarts the timer phase.
func (p *Poller[T]) SetVisible(visible bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if visible == p.visible {
		return
	}
	p.visible = visible
	if p.state == StateIdle {
		return
	}

	if !visible {
		p.stopLoopLocked()
		p.state = StateSuspended
		p.logger.Debug("poller suspended")
		return
	}

	p.state = StateActive
	p.startLoopLocked()
	go p.fetch(p.genCtx, p.gen, p.fetcher)
	p.logger.Debug("poller resumed")
}

// Refetch runs one fetch now with loading shown and waits for it. The fetch
// outlives ctx; ctx only bounds the wait.
func (p *Poller[T]) Refetch(ctx context.Context) error {
	p.mu.Lock()
	if p.state == StateIdle || p.fetcher == nil {
		p.mu.Unlock()
		return ErrIdle
	}
	p.snap.IsLoading = true
	gen, genCtx, fetcher := p.gen, p.genCtx, p.fetcher
	p.mu.Unlock()

	done := make(chan error, 1)
	go func() {
		done <- p.fetch(genCtx, gen, fetcher)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// WaitLoaded blocks until the current generation finished its first fetch.
func (p *Poller[T]) WaitLoaded(ctx context.Context) error {
	p.mu.Lock()
	ch := p.loaded
	p.mu.Unlock()
	if ch == nil {
		return nil
	}

	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Poller[T]) Snapshot() Snapshot[T] {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snap
}

func (p *Poller[T]) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *Poller[T]) Status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

// OnUpdate registers fn for every successful result. Callbacks run in result
// order. They may adjust the poller but must not call Refetch.
func (p *Poller[T]) OnUpdate(fn func(Snapshot[T])) {
	if fn == nil {
		return
	}
	p.mu.Lock()
	p.subscribers = append(p.subscribers, fn)
	p.mu.Unlock()
}

func (p *Poller[T]) canActivateLocked() bool {
	return p.started && !p.stopped && p.enabled && p.fetcher != nil
}

func (p *Poller[T]) activateLocked() {
	p.teardownLocked()
	// Waiters on the superseded generation are released; its result is dropped.
	p.markLoadedLocked()
	p.gen++
	p.genCtx, p.genCancel = context.WithCancel(p.baseCtx)
	p.loaded = make(chan struct{})
	p.loadedDone = false
	p.snap.IsLoading = true
	p.snap.Generation = p.gen

	if p.visible {
		p.state = StateActive
		p.startLoopLocked()
	} else {
		p.state = StateSuspended
	}

	go p.fetch(p.genCtx, p.gen, p.fetcher)
}

func (p *Poller[T]) teardownLocked() {
	p.stopLoopLocked()
	if p.genCancel != nil {
		p.genCancel()
		p.genCancel = nil
	}
}

func (p *Poller[T]) startLoopLocked() {
	loopCtx, cancel := context.WithCancel(p.genCtx)
	p.loopCancel = cancel
	go p.loop(loopCtx, p.genCtx, p.newTicker(p.interval), p.gen, p.fetcher)
}

func (p *Poller[T]) stopLoopLocked() {
	if p.loopCancel != nil {
		p.loopCancel()
		p.loopCancel = nil
	}
}

func (p *Poller[T]) markLoadedLocked() {
	if p.loaded != nil && !p.loadedDone {
		close(p.loaded)
		p.loadedDone = true
	}
}

// loop fires background fetches until loopCtx ends. Fetches use genCtx so a
// suspended poller still finishes the request it already sent.
func (p *Poller[T]) loop(loopCtx, genCtx context.Context, t Ticker, gen uint64, fetcher Fetcher[T]) {
	defer t.Stop()
	for {
		select {
		case <-loopCtx.Done():
			return
		case <-t.C():
			p.fetch(genCtx, gen, fetcher)
		}
	}
}

func (p *Poller[T]) fetch(ctx context.Context, gen uint64, fetcher Fetcher[T]) error {
	if fetcher == nil {
		return ErrIdle
	}
	attempt := p.now()
	data, err := fetcher(ctx)
	p.apply(gen, attempt, data, err)
	return err
}

func (p *Poller[T]) apply(gen uint64, attempt time.Time, data T, err error) {
	p.notifyMu.Lock()
	defer p.notifyMu.Unlock()

	p.mu.Lock()
	if gen != p.gen {
		p.mu.Unlock()
		p.logger.Debug("poller dropped stale result", "generation", gen)
		return
	}

	p.status.LastAttempt = attempt
	p.snap.IsLoading = false
	p.markLoadedLocked()

	if err != nil {
		p.snap.Err = err
		p.status.ConsecutiveFailures++
		p.status.LastError = err.Error()
		failures := p.status.ConsecutiveFailures
		p.mu.Unlock()
		p.logger.Warn("poller fetch failed", "error", err, "consecutive_failures", failures)
		return
	}

	p.snap.Data = data
	p.snap.HasData = true
	p.snap.Err = nil
	p.snap.UpdatedAt = p.now()
	p.status.ConsecutiveFailures = 0
	p.status.LastError = ""
	p.status.LastSuccess = attempt
	snap := p.snap
	subs := append([]func(Snapshot[T]){}, p.subscribers...)
	p.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}
