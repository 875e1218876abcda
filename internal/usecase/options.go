package usecase

import (
	"time"

	"github.com/riskibarqy/college-baseball-live/internal/platform/logging"
	"github.com/riskibarqy/college-baseball-live/internal/platform/poller"
)

// Intervals are the poll periods for each resource.
type Intervals struct {
	Live        time.Duration
	Idle        time.Duration
	Rankings    time.Duration
	Standings   time.Duration
	Stats       time.Duration
	Conferences time.Duration
}

func DefaultIntervals() Intervals {
	return Intervals{
		Live:        30 * time.Second,
		Idle:        5 * time.Minute,
		Rankings:    time.Hour,
		Standings:   time.Hour,
		Stats:       30 * time.Minute,
		Conferences: time.Hour,
	}
}

func (i Intervals) withDefaults() Intervals {
	d := DefaultIntervals()
	if i.Live <= 0 {
		i.Live = d.Live
	}
	if i.Idle <= 0 {
		i.Idle = d.Idle
	}
	if i.Rankings <= 0 {
		i.Rankings = d.Rankings
	}
	if i.Standings <= 0 {
		i.Standings = d.Standings
	}
	if i.Stats <= 0 {
		i.Stats = d.Stats
	}
	if i.Conferences <= 0 {
		i.Conferences = d.Conferences
	}
	return i
}

// Options carries the runtime pieces every service shares. Zero values fall
// back to the wall clock, real tickers, the local zone and the default logger.
type Options struct {
	Logger    *logging.Logger
	Location  *time.Location
	Now       func() time.Time
	NewTicker poller.TickerFactory
	Intervals Intervals
}

func (o Options) normalize() Options {
	o.Logger = logging.OrDefault(o.Logger)
	if o.Location == nil {
		o.Location = time.Local
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	o.Intervals = o.Intervals.withDefaults()
	return o
}

func (o Options) pollerOptions(name string, interval time.Duration) poller.Options {
	return poller.Options{
		Name:      name,
		Interval:  interval,
		Logger:    o.Logger,
		Now:       o.Now,
		NewTicker: o.NewTicker,
	}
}
