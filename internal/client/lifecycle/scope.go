// Package lifecycle ties resources acquired by a view to the view's mount
// lifetime. Whatever is registered on a Scope is released exactly once when
// the scope closes.
package lifecycle

import (
	"errors"
	"sync"
)

// Scope collects release functions and runs them in reverse order on Close.
// The zero value is ready to use.
type Scope struct {
	mu       sync.Mutex
	releases []func() error
	closed   bool
}

// Defer registers release. If the scope is already closed, release runs
// immediately and its error is returned.
func (s *Scope) Defer(release func() error) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return release()
	}
	s.releases = append(s.releases, release)
	s.mu.Unlock()
	return nil
}

// Close runs every registered release, newest first, and joins their errors.
// Subsequent calls do nothing.
func (s *Scope) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	releases := s.releases
	s.releases = nil
	s.mu.Unlock()

	var errs []error
	for i := len(releases) - 1; i >= 0; i-- {
		if err := releases[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *Scope) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
