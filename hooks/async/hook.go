// usage:
//
// import (
//
//	"log/slog"
//
//	"github.com/unkn0wn-root/hexbytes"
//	"github.com/unkn0wn-root/hexbytes/hooks/async"
//	"github.com/unkn0wn-root/hexbytes/sloghooks"
//
// )
//
//	raw := sloghooks.New(slog.Default(), sloghooks.Options{
//	    SelfHealEvery: 10, // sample logs: ~every 10th self-heal
//	})
//
// hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
// defer hooks.Close()
//
//	codec, _ := hexbytes.New(hexbytes.Options{
//	    VerifyEvery: 1000,
//	    Hooks:       hooks, // or `raw` if you don’t want async
//	})
package asynchook

import (
	"sync"

	"github.com/unkn0wn-root/hexbytes"
)

// Hooks forwards events to inner on worker goroutines. Events are dropped
// when the queue is full so callers on hot paths never block.
type Hooks struct {
	inner hexbytes.Hooks
	q     chan func()
	wg    sync.WaitGroup
	once  sync.Once

	mu     sync.RWMutex
	closed bool
}

var _ hexbytes.Hooks = (*Hooks)(nil)

func New(inner hexbytes.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

// Close drains queued events and stops the workers. Events sent after Close
// are dropped.
func (h *Hooks) Close() {
	h.once.Do(func() {
		h.mu.Lock()
		h.closed = true
		close(h.q)
		h.mu.Unlock()
		h.wg.Wait()
	})
}

func (h *Hooks) try(f func()) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.closed {
		return
	}
	select {
	case h.q <- f:
	default: // drop
	}
}

func (h *Hooks) Divergence(op, strategy string, n int) {
	h.try(func() { h.inner.Divergence(op, strategy, n) })
}
func (h *Hooks) MemoSelfHeal(k, r string) { h.try(func() { h.inner.MemoSelfHeal(k, r) }) }
func (h *Hooks) MemoSetRejected(k string)  { h.try(func() { h.inner.MemoSetRejected(k) }) }
func (h *Hooks) MemoProviderError(op string, err error) {
	h.try(func() { h.inner.MemoProviderError(op, err) })
}
