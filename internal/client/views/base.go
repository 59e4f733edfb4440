package views

import (
	"context"
	"errors"
	"maps"
	"sync"

	"github.com/dmitrijs2005/fraudsentry/internal/client/gateway"
	"github.com/dmitrijs2005/fraudsentry/internal/client/models"
	"github.com/dmitrijs2005/fraudsentry/internal/client/provider"
	"github.com/dmitrijs2005/fraudsentry/internal/client/validate"
)

var (
	// ErrBusy is returned when an operation is already in flight.
	ErrBusy = errors.New("operation in progress")
	// ErrInvalidInput is returned when field validation blocks a submit.
	ErrInvalidInput = errors.New("invalid input")
)

// SessionProvider is the part of provider.Provider the views use.
type SessionProvider interface {
	Session() (models.Session, bool)
	DeviceID() string
	Login(ctx context.Context, email, password string) error
	Register(ctx context.Context, fields models.ProfileFields, password string) error
	Logout(ctx context.Context) error
	UpdateProfile(ctx context.Context, fields models.ProfileFields) error
	Refresh(ctx context.Context) error
	Authorized(ctx context.Context, fn func(ctx context.Context, s models.Session) error) error
}

var _ SessionProvider = (*provider.Provider)(nil)

// base is the state shared by every view. Fields are guarded by mu; the
// apply funcs passed to finish run with mu held.
type base struct {
	mu      sync.Mutex
	gen     uint64
	loading bool
	banner  string
	notice  string
	fields  validate.FieldErrors
	next    provider.Route
}

func (b *base) Loading() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.loading
}

// Banner is the single human-readable error of the last operation.
func (b *base) Banner() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.banner
}

// Notice is the last success message.
func (b *base) Notice() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.notice
}

func (b *base) FieldError(field string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.fields.Get(field)
}

func (b *base) FieldErrors() validate.FieldErrors {
	b.mu.Lock()
	defer b.mu.Unlock()
	return maps.Clone(b.fields)
}

// Next is the route the view asks to navigate to, or RouteNone.
func (b *base) Next() provider.Route {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.next
}

// Unmount discards the results of operations still in flight.
func (b *base) Unmount() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.gen++
	b.loading = false
}

// check records field errors. It fails with ErrBusy while loading and with
// ErrInvalidInput when errs is not empty.
func (b *base) check(errs validate.FieldErrors) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.loading {
		return ErrBusy
	}
	b.fields = errs
	if !errs.OK() {
		return ErrInvalidInput
	}
	return nil
}

// begin starts an operation and returns its generation.
func (b *base) begin() (uint64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.loading {
		return 0, ErrBusy
	}
	b.loading = true
	b.banner = ""
	b.notice = ""
	return b.gen, nil
}

// finish ends the operation started at gen and runs apply, unless the view
// was unmounted in between. It reports whether apply ran.
func (b *base) finish(gen uint64, apply func()) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if gen != b.gen {
		return false
	}
	b.loading = false
	if apply != nil {
		apply()
	}
	return true
}

// fail sets the banner for err and redirects to the login screen when the
// session is gone. Callers hold mu.
func (b *base) fail(err error) {
	b.banner = describe(err)
	if errors.Is(err, gateway.ErrUnauthorized) || errors.Is(err, provider.ErrNotAuthenticated) {
		b.next = provider.RouteLogin
	}
}

// requireSession redirects to the login screen when there is no session.
func (b *base) requireSession(p SessionProvider) (models.Session, error) {
	s, ok := p.Session()
	if !ok {
		b.mu.Lock()
		b.next = provider.RouteLogin
		b.mu.Unlock()
		return models.Session{}, provider.ErrNotAuthenticated
	}
	return s, nil
}
