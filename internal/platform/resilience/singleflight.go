package resilience

import "sync"

// SingleFlight collapses concurrent calls for the same key into one
// execution; followers block and receive the leader's result. Settlement
// uses it as the single-writer-per-slate guarantee.
type SingleFlight struct {
	mu     sync.Mutex
	flight map[string]*flightCall
}

type flightCall struct {
	done chan struct{}
	val  any
	err  error
}

// Do runs fn once per in-flight key. The bool reports whether the caller
// shared another caller's execution.
func (g *SingleFlight) Do(key string, fn func() (any, error)) (any, error, bool) {
	g.mu.Lock()
	if g.flight == nil {
		g.flight = make(map[string]*flightCall)
	}
	if c, ok := g.flight[key]; ok {
		g.mu.Unlock()
		<-c.done
		return c.val, c.err, true
	}

	c := &flightCall{done: make(chan struct{})}
	g.flight[key] = c
	g.mu.Unlock()

	c.val, c.err = fn()
	close(c.done)

	g.mu.Lock()
	delete(g.flight, key)
	g.mu.Unlock()

	return c.val, c.err, false
}
