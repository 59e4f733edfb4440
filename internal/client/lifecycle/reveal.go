package lifecycle

import (
	"slices"
	"sync"
)

// RevealObserver reveals observed sections the first time they become
// visible past a threshold. A revealed section stays revealed.
type RevealObserver struct {
	threshold float64
	onReveal  func(section string)

	mu        sync.Mutex
	observed  map[string]bool
	order     []string
	connected bool
}

// NewRevealObserver returns a connected observer. threshold is the visible
// fraction, in (0, 1], at which a section is revealed. onReveal may be nil.
func NewRevealObserver(threshold float64, onReveal func(section string)) *RevealObserver {
	if threshold <= 0 || threshold > 1 {
		threshold = 0.1
	}
	return &RevealObserver{
		threshold: threshold,
		onReveal:  onReveal,
		observed:  make(map[string]bool),
		connected: true,
	}
}

// Observe starts watching sections. Already observed sections keep their
// state. It has no effect once disconnected.
func (o *RevealObserver) Observe(sections ...string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.connected {
		return
	}
	for _, s := range sections {
		if _, ok := o.observed[s]; ok {
			continue
		}
		o.observed[s] = false
		o.order = append(o.order, s)
	}
}

// Intersect reports that section is visible by ratio. Sections that are not
// observed, or an observer that was disconnected, ignore it.
func (o *RevealObserver) Intersect(section string, ratio float64) {
	o.mu.Lock()
	revealed, ok := o.observed[section]
	if !o.connected || !ok || revealed || ratio < o.threshold {
		o.mu.Unlock()
		return
	}
	o.observed[section] = true
	o.mu.Unlock()

	if o.onReveal != nil {
		o.onReveal(section)
	}
}

func (o *RevealObserver) Revealed(section string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.observed[section]
}

// Observed returns the watched sections in the order they were added.
func (o *RevealObserver) Observed() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return slices.Clone(o.order)
}

func (o *RevealObserver) Connected() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.connected
}

// Disconnect stops observing everything. Safe to call more than once.
func (o *RevealObserver) Disconnect() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.connected = false
	o.observed = make(map[string]bool)
	o.order = nil
	return nil
}

// Observe creates an observer watching sections and ties it to scope, so it
// is disconnected when the scope closes.
func Observe(scope *Scope, threshold float64, onReveal func(string), sections ...string) (*RevealObserver, error) {
	o := NewRevealObserver(threshold, onReveal)
	o.Observe(sections...)
	if err := scope.Defer(o.Disconnect); err != nil {
		return nil, err
	}
	return o, nil
}
