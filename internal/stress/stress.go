// Package stress burns CPU on purpose so the reactor has real load to react to.
package stress

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"
)

// Generator runs busy-loop workers until stopped. It shares nothing with the
// simulation beyond the load it puts on the host.
type Generator struct {
	Workers int
	// Rest is the pause between bursts, keeping a worker just short of 100%.
	Rest time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New returns a generator with the given number of workers (at least one).
func New(workers int) *Generator {
	if workers < 1 {
		workers = 1
	}
	return &Generator{Workers: workers, Rest: time.Millisecond}
}

// Start launches the workers. It is a no-op if they are already running.
func (g *Generator) Start(ctx context.Context) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.cancel != nil {
		return
	}
	ctx, g.cancel = context.WithCancel(ctx)

	log.Printf("stress: starting %d worker(s)", g.Workers)
	for i := 0; i < g.Workers; i++ {
		g.wg.Add(1)
		go func() {
			defer g.wg.Done()
			burn(ctx, g.Rest)
		}()
	}
}

// Stop signals the workers to exit. It does not wait for them; use Wait for that.
func (g *Generator) Stop() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.cancel == nil {
		return
	}
	g.cancel()
	g.cancel = nil
	log.Printf("stress: stopped")
}

// Wait blocks until every worker has returned.
func (g *Generator) Wait() {
	g.wg.Wait()
}

// Running reports whether the workers have been started and not stopped.
func (g *Generator) Running() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.cancel != nil
}

// sink keeps the busy loop from being optimised away.
var sink atomic.Uint64

func burn(ctx context.Context, rest time.Duration) {
	var acc uint64
	for {
		select {
		case <-ctx.Done():
			sink.Add(acc)
			return
		default:
		}

		for i := uint64(0); i < 5_000_000; i++ {
			acc = acc*6364136223846793005 + i
		}

		if rest > 0 {
			time.Sleep(rest)
		}
	}
}
