// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"sync"
	"sync/atomic"
	"time"
)

// Clock returns the current unix time in seconds. The pool reads it once per call.
type Clock interface {
	Now() uint64
}

// SystemClock reads the wall clock and never goes backwards.
type SystemClock struct {
	mu   sync.Mutex
	last uint64
}

func (c *SystemClock) Now() uint64 {
	now := uint64(time.Now().Unix())

	c.mu.Lock()
	defer c.mu.Unlock()
	if now < c.last {
		return c.last
	}
	c.last = now
	return now
}

// ManualClock is moved by hand, for simulations and tests.
type ManualClock struct {
	now atomic.Uint64
}

func NewManualClock(start uint64) *ManualClock {
	c := &ManualClock{}
	c.now.Store(start)
	return c
}

func (c *ManualClock) Now() uint64 {
	return c.now.Load()
}

func (c *ManualClock) Set(t uint64) {
	c.now.Store(t)
}

func (c *ManualClock) Advance(seconds uint64) uint64 {
	return c.now.Add(seconds)
}
