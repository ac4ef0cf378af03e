// Copyright 2026 The Sentinel Authors
// SPDX-License-Identifier: Apache-2.0

// Package poll coordinates periodic refresh for a console view. A
// Scheduler enforces two rules the views rely on:
//
//   - Single flight: at most one refresh is in flight at a time. A
//     tick or a manual refresh that lands while one is running is a
//     no-op rather than a second concurrent request.
//
//   - Stale suppression: every refresh is issued a sequence number and
//     captures the scheduler's phase. A response applies only when it
//     is still the newest issued refresh and the phase has not moved
//     since it was issued. Resetting the phase (on view switch or
//     manual refresh) therefore silently discards whatever was in
//     flight, and invalidates any timer ticks scheduled before the
//     reset.
//
// The scheduler holds no timers itself. Views ask Wait for a channel
// from the injected clock and carry the current phase alongside it;
// when the tick fires they check ValidTick before refreshing.
package poll

import (
	"sync"
	"time"

	"github.com/sentinel-ops/sentinel/lib/clock"
)

// Scheduler tracks the refresh state for one view. Safe for use from
// multiple goroutines, though the console drives it from the model
// goroutine only.
type Scheduler struct {
	clk      clock.Clock
	interval time.Duration

	mu             sync.Mutex
	nextSequence   uint64
	latestSequence uint64
	latestPhase    uint64
	applied        uint64
	inFlight       bool
	phase          uint64
}

// NewScheduler returns a scheduler that paces refreshes at the given
// interval on the given clock.
func NewScheduler(clk clock.Clock, interval time.Duration) *Scheduler {
	return &Scheduler{clk: clk, interval: interval}
}

// Interval reports the refresh cadence.
func (scheduler *Scheduler) Interval() time.Duration {
	return scheduler.interval
}

// Wait returns a channel that fires after one refresh interval on the
// scheduler's clock.
func (scheduler *Scheduler) Wait() <-chan time.Time {
	return scheduler.clk.After(scheduler.interval)
}

// Begin claims the right to start a refresh. It returns the sequence
// number for the new refresh, or ok=false when one is already in
// flight.
func (scheduler *Scheduler) Begin() (sequence uint64, ok bool) {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	if scheduler.inFlight {
		return 0, false
	}
	scheduler.nextSequence++
	scheduler.inFlight = true
	scheduler.latestSequence = scheduler.nextSequence
	scheduler.latestPhase = scheduler.phase
	return scheduler.nextSequence, true
}

// Finish marks the refresh with the given sequence as complete,
// releasing the single-flight slot. Finishing a superseded sequence is
// a no-op.
func (scheduler *Scheduler) Finish(sequence uint64) {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	if sequence == scheduler.latestSequence {
		scheduler.inFlight = false
	}
}

// Apply reports whether the response for the given sequence should be
// folded into view state. It returns false when the refresh has been
// superseded or the phase moved after it was issued; a true return
// records the sequence so a duplicate delivery is also rejected.
func (scheduler *Scheduler) Apply(sequence uint64) bool {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	if sequence != scheduler.latestSequence {
		return false
	}
	if scheduler.latestPhase != scheduler.phase {
		return false
	}
	if sequence <= scheduler.applied {
		return false
	}
	scheduler.applied = sequence
	return true
}

// Phase returns the current phase generation. Timer ticks capture it
// when scheduled and present it back through ValidTick.
func (scheduler *Scheduler) Phase() uint64 {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	return scheduler.phase
}

// ResetPhase advances the phase generation, invalidating every
// outstanding tick and in-flight refresh, and returns the new phase.
// The single-flight slot is released so the caller can begin a fresh
// refresh immediately.
func (scheduler *Scheduler) ResetPhase() uint64 {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	scheduler.phase++
	scheduler.inFlight = false
	return scheduler.phase
}

// ValidTick reports whether a tick scheduled under the given phase is
// still current.
func (scheduler *Scheduler) ValidTick(phase uint64) bool {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	return phase == scheduler.phase
}
