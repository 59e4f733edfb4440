package views

import (
	"slices"
	"sync"

	"github.com/dmitrijs2005/fraudsentry/internal/client/lifecycle"
	"github.com/dmitrijs2005/fraudsentry/internal/client/provider"
)

// Section is a block of the landing page revealed on scroll.
type Section struct {
	ID    string
	Title string
	Body  string
}

var landingSections = []Section{
	{ID: "hero", Title: "Blockchain Sentry", Body: "Detect and stop fraudulent transactions before they settle."},
	{ID: "features", Title: "Features", Body: "Device-bound accounts, OTP password recovery and a full transaction history."},
	{ID: "cta", Title: "Ready to Secure Your Blockchain Transactions?", Body: "Join thousands of users who trust our platform to protect their digital assets from fraud."},
	{ID: "footer", Title: "Blockchain Sentry", Body: "Securing digital assets since 2023"},
}

const revealThreshold = 0.1

// Landing is the public start page. Its reveal observer lives exactly as
// long as the view is mounted.
type Landing struct {
	mu       sync.Mutex
	scope    *lifecycle.Scope
	observer *lifecycle.RevealObserver
	next     provider.Route
}

func NewLanding() *Landing { return &Landing{} }

func (v *Landing) Sections() []Section { return slices.Clone(landingSections) }

// Mount acquires the reveal observer. Mounting twice keeps the first one.
func (v *Landing) Mount() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.scope != nil {
		return nil
	}

	ids := make([]string, len(landingSections))
	for i, s := range landingSections {
		ids[i] = s.ID
	}
	scope := &lifecycle.Scope{}
	obs, err := lifecycle.Observe(scope, revealThreshold, nil, ids...)
	if err != nil {
		return err
	}
	v.scope, v.observer = scope, obs
	return nil
}

// Scroll reports how much of a section is in view.
func (v *Landing) Scroll(sectionID string, visible float64) {
	v.mu.Lock()
	obs := v.observer
	v.mu.Unlock()
	if obs != nil {
		obs.Intersect(sectionID, visible)
	}
}

func (v *Landing) Revealed(sectionID string) bool {
	v.mu.Lock()
	obs := v.observer
	v.mu.Unlock()
	return obs != nil && obs.Revealed(sectionID)
}

// Observing reports whether the reveal observer is held.
func (v *Landing) Observing() bool {
	v.mu.Lock()
	obs := v.observer
	v.mu.Unlock()
	return obs != nil && obs.Connected()
}

// GetStarted leads to registration.
func (v *Landing) GetStarted() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.next = provider.RouteRegister
}

func (v *Landing) Next() provider.Route {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.next
}

// Unmount releases the observer.
func (v *Landing) Unmount() error {
	v.mu.Lock()
	scope := v.scope
	v.scope, v.observer = nil, nil
	v.mu.Unlock()
	if scope == nil {
		return nil
	}
	return scope.Close()
}
