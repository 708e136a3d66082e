// Package scheduler drives a bootstrap.Scraper on a fixed interval
// (spec §4.8), ensuring at most one scrape cycle runs at a time.
package scheduler

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/BourgeoisBear/rdap-gateway/internal/bootstrap"
	"github.com/BourgeoisBear/rdap-gateway/internal/store"
)

// metricsSink is the subset of *metrics.Metrics the scheduler needs.
// Declared locally to avoid a dependency cycle (metrics has no need
// to know about scheduler).
type metricsSink interface {
	ObserveScrape(seconds float64, committed bool)
	SetGeneration(seq uint64)
}

// Scheduler runs a bootstrap.Scraper every Interval until stopped. A
// tick that fires while a cycle is still running is skipped and
// logged rather than queued, mirroring dnsrocks' PeriodicDBReload:
// reload ticks are cheap to drop, never worth stacking up.
type Scheduler struct {
	Scraper  *bootstrap.Scraper
	Interval time.Duration
	Logger   *logrus.Logger
	Metrics  metricsSink

	running  atomic.Bool
	done     chan struct{}
	cycles   atomic.Uint64
	failures atomic.Uint64
}

// New returns a Scheduler ready to Run.
func New(s *bootstrap.Scraper, interval time.Duration, logger *logrus.Logger) *Scheduler {
	return &Scheduler{
		Scraper:  s,
		Interval: interval,
		Logger:   logger,
		done:     make(chan struct{}),
	}
}

func (s *Scheduler) logger() *logrus.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return logrus.StandardLogger()
}

// Run blocks, firing one scrape cycle immediately and then every
// Interval, until ctx is cancelled or Stop is called. It never
// returns an error: a failed cycle is logged and the live
// store.ResourceStore is simply left at its previous generation
// (spec §4.7 invariant 7), and the next tick tries again.
func (s *Scheduler) Run(ctx context.Context) {
	s.tick(ctx)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.done:
			return
		case <-ticker.C:
			s.tick(ctx)
			// a tick that fired while that cycle ran is dropped, not run late
			select {
			case <-ticker.C:
				s.logger().Warn("bootstrap tick skipped, previous cycle still running")
			default:
			}
		}
	}
}

// Stop signals Run to return. Safe to call once; calling it more than
// once panics, matching close-channel semantics used elsewhere in the
// teacher's reload loop.
func (s *Scheduler) Stop() {
	close(s.done)
}

// Cycles returns the number of scrape cycles attempted so far.
func (s *Scheduler) Cycles() uint64 { return s.cycles.Load() }

// Failures returns the number of scrape cycles that did not commit.
func (s *Scheduler) Failures() uint64 { return s.failures.Load() }

func (s *Scheduler) tick(ctx context.Context) {
	if !s.running.CompareAndSwap(false, true) {
		s.logger().Warn("bootstrap tick skipped, previous cycle still running")
		return
	}
	defer s.running.Store(false)

	s.cycles.Add(1)
	start := time.Now()
	gen, err := s.Scraper.Run(ctx)
	elapsed := time.Since(start).Seconds()

	if err != nil {
		s.failures.Add(1)
		s.logger().WithError(err).Error("scheduled bootstrap cycle failed")
		if s.Metrics != nil {
			s.Metrics.ObserveScrape(elapsed, false)
		}
		return
	}

	s.logger().WithField("sequence", gen.Sequence()).Info("scheduled bootstrap cycle committed")
	if s.Metrics != nil {
		s.Metrics.ObserveScrape(elapsed, true)
		s.Metrics.SetGeneration(gen.Sequence())
	}
}

// LatestSequence is a convenience accessor for callers (e.g. a health
// endpoint) that only care about the live generation's sequence
// number, not the Scheduler's own counters.
func LatestSequence(rs *store.ResourceStore) uint64 {
	return rs.Snapshot().Sequence()
}
