package resilience

import "sync"

// Group hands out one Breaker per key, created lazily with shared settings.
// The HTTP client keys breakers by host so one failing publisher does not
// block lookups against the others.
type Group struct {
	settings Settings
	breakers sync.Map // key -> *Breaker
}

// NewGroup creates an empty group
func NewGroup(settings Settings) *Group {
	return &Group{settings: settings}
}

// Get returns the breaker for key, creating it on first use
func (g *Group) Get(key string) *Breaker {
	if b, ok := g.breakers.Load(key); ok {
		return b.(*Breaker)
	}
	b, _ := g.breakers.LoadOrStore(key, New(key, g.settings))
	return b.(*Breaker)
}

// States snapshots the state of every breaker created so far
func (g *Group) States() map[string]State {
	out := make(map[string]State)
	g.breakers.Range(func(key, value any) bool {
		out[key.(string)] = value.(*Breaker).State()
		return true
	})
	return out
}
