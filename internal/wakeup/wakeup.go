// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package wakeup provides a level-triggered, single-shot-per-episode wakeup
// primitive whose readiness can be multiplexed in a select alongside other
// channels.
package wakeup

import "sync/atomic"

// A Signal carries one wakeup per episode from a notifying goroutine to an
// owning goroutine. The owner calls [Signal.Arm] to begin an episode, the
// notifier calls [Signal.Notify] at most once per episode (extra calls are
// ignored), and the owner observes the wakeup either by receiving from
// [Signal.Done] in a select or by blocking in [Signal.Wait].
//
// The channel returned by Done is closed rather than sent to, so any number
// of receives observe the same episode's wakeup without stealing it from
// each other. Consumption is modeled by the owner re-arming the signal when
// it begins the next episode.
//
// Arm must only be called by the owner between episodes, while no notifier
// holds the signal. Notify is safe to call concurrently with Done and Wait.
type Signal struct {
	done  chan struct{}
	fired atomic.Bool
}

// New returns a signal armed for its first episode.
func New() *Signal {
	return &Signal{done: make(chan struct{})}
}

// Arm begins a new episode, resetting the signal to not-ready.
func (s *Signal) Arm() {
	s.done = make(chan struct{})
	s.fired.Store(false)
}

// Notify marks the current episode ready and wakes every waiter. Calling it
// again before the next Arm has no effect.
func (s *Signal) Notify() {
	if s.fired.CompareAndSwap(false, true) {
		close(s.done)
	}
}

// Done returns a channel that is closed once the current episode has been
// notified.
func (s *Signal) Done() <-chan struct{} {
	return s.done
}

// Wait blocks until the current episode has been notified.
func (s *Signal) Wait() {
	<-s.done
}
