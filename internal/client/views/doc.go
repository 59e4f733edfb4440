// Package views holds the screen view-models of the client: form state,
// field errors, a banner message, a loading flag and the route to show next.
//
// Views never panic on gateway failures. Every failure becomes view state
// and is also returned to the caller. A view serializes its own operations:
// a second submit while one is in flight returns ErrBusy without any
// network call. Results that arrive after Unmount are discarded.
package views
