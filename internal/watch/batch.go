// SPDX-License-Identifier: MPL-2.0

package watch

import (
	"maps"
	"slices"
	"sync"
	"sync/atomic"
	"time"
)

// batch collects changed paths until delay passes with no new path, then
// hands the sorted set to flush. A flush that is still running when the
// next one is due postpones it by another delay.
type batch struct {
	delay time.Duration
	flush func(changed []string)

	mu    sync.Mutex
	paths map[string]struct{}
	timer *time.Timer
	busy  atomic.Bool
}

func newBatch(delay time.Duration, flush func([]string)) *batch {
	return &batch{delay: delay, flush: flush, paths: make(map[string]struct{})}
}

func (b *batch) add(rel string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.paths[rel] = struct{}{}
	if b.timer == nil {
		b.timer = time.AfterFunc(b.delay, b.fire)
		return
	}
	b.timer.Reset(b.delay)
}

func (b *batch) fire() {
	if !b.busy.CompareAndSwap(false, true) {
		b.mu.Lock()
		b.timer.Reset(b.delay)
		b.mu.Unlock()
		return
	}
	defer b.busy.Store(false)

	b.mu.Lock()
	if len(b.paths) == 0 {
		b.mu.Unlock()
		return
	}
	changed := slices.Sorted(maps.Keys(b.paths))
	clear(b.paths)
	b.mu.Unlock()

	b.flush(changed)
}

func (b *batch) stop() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.timer != nil {
		b.timer.Stop()
	}
}
