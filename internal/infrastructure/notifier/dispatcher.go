package notifier

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/riskibarqy/college-baseball-live/internal/domain/notification"
	"github.com/riskibarqy/college-baseball-live/internal/platform/logging"
)

const defaultDispatchWorkers = 4

// Dispatcher delivers one notification to every ready backend concurrently on
// a bounded worker pool. It is itself a notification.Notifier.
type Dispatcher struct {
	pool     *ants.Pool
	backends []notification.Notifier
	logger   *logging.Logger
}

func NewDispatcher(workers int, logger *logging.Logger, backends ...notification.Notifier) (*Dispatcher, error) {
	if workers <= 0 {
		workers = defaultDispatchWorkers
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, fmt.Errorf("create notifier pool: %w", err)
	}
	kept := make([]notification.Notifier, 0, len(backends))
	for _, backend := range backends {
		if backend != nil {
			kept = append(kept, backend)
		}
	}
	return &Dispatcher{
		pool:     pool,
		backends: kept,
		logger:   logging.OrDefault(logger).Named("notifier"),
	}, nil
}

func (d *Dispatcher) Name() string { return "dispatcher" }

// CanNotify reports whether at least one backend is ready.
func (d *Dispatcher) CanNotify() bool {
	for _, backend := range d.backends {
		if backend.CanNotify() {
			return true
		}
	}
	return false
}

// Backends lists the configured backend names.
func (d *Dispatcher) Backends() []string {
	out := make([]string, 0, len(d.backends))
	for _, backend := range d.backends {
		out = append(out, backend.Name())
	}
	return out
}

func (d *Dispatcher) Send(ctx context.Context, item notification.Notification) error {
	var (
		workers sync.WaitGroup
		mu      sync.Mutex
		errs    []error
	)
	record := func(err error) {
		mu.Lock()
		errs = append(errs, err)
		mu.Unlock()
	}

	for _, backend := range d.backends {
		if !backend.CanNotify() {
			continue
		}
		backend := backend
		workers.Add(1)
		if err := d.pool.Submit(func() {
			defer workers.Done()
			if err := backend.Send(ctx, item); err != nil {
				d.logger.WarnContext(ctx, "notification delivery failed", "backend", backend.Name(), "key", item.Key, "error", err)
				record(fmt.Errorf("%s: %w", backend.Name(), err))
			}
		}); err != nil {
			workers.Done()
			record(fmt.Errorf("submit %s delivery: %w", backend.Name(), err))
		}
	}

	workers.Wait()
	return errors.Join(errs...)
}

func (d *Dispatcher) Release() {
	d.pool.Release()
}
