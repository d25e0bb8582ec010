// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package wakeup_test

import (
	"testing"
	"time"

	"github.com/shumlol/rowsource/internal/wakeup"
	"github.com/stretchr/testify/require"
)

func TestSignalNotifyWakesWaiter(t *testing.T) {
	chk := require.New(t)
	s := wakeup.New()

	done := make(chan struct{})
	go func() {
		s.Wait()
		close(done)
	}()

	s.Notify()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		chk.Fail("waiter was not woken")
	}
}

func TestSignalIsLevelTriggered(t *testing.T) {
	chk := require.New(t)
	s := wakeup.New()
	s.Notify()

	// Every observation sees the same episode's readiness; none consumes it.
	<-s.Done()
	<-s.Done()
	s.Wait()

	select {
	case <-s.Done():
	default:
		chk.Fail("signal lost readiness after being observed")
	}
}

func TestSignalNotifyIsIdempotent(t *testing.T) {
	chk := require.New(t)
	s := wakeup.New()

	chk.NotPanics(func() {
		s.Notify()
		s.Notify()
	})
	s.Wait()
}

func TestSignalArmBeginsNewEpisode(t *testing.T) {
	chk := require.New(t)
	s := wakeup.New()

	s.Notify()
	s.Wait()

	s.Arm()
	select {
	case <-s.Done():
		chk.Fail("armed signal reported ready")
	default:
	}

	s.Notify()
	s.Wait()
}
