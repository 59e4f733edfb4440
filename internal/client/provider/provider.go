package provider

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/fraudsentry/internal/client/gateway"
	"github.com/dmitrijs2005/fraudsentry/internal/client/models"
	"github.com/dmitrijs2005/fraudsentry/internal/client/session"
	"github.com/dmitrijs2005/fraudsentry/internal/logging"
)

// ErrNotAuthenticated is returned by privileged operations when there is no
// current session. No API call is made in that case.
var ErrNotAuthenticated = errors.New("not authenticated")

type Option func(*Provider)

func WithLogger(l logging.Logger) Option {
	return func(p *Provider) { p.log = l }
}

// Provider is safe for concurrent use. State is guarded by an RWMutex that
// is never held across I/O. Every store write runs under wmu together with
// its precondition check and the state swap, so storage and memory always
// agree. No lock is held while the gateway is called.
type Provider struct {
	store    session.Store
	gw       gateway.Gateway
	log      logging.Logger
	deviceID string

	wmu sync.Mutex

	mu      sync.RWMutex
	sess    models.Session
	authed  bool
	loading int
	subs    map[int]func(Event)
	nextSub int
}

// New hydrates the provider from store. Only storage failures are returned;
// a missing or unusable persisted session starts the provider
// Unauthenticated. No network call is made.
func New(ctx context.Context, store session.Store, gw gateway.Gateway, deviceID string, opts ...Option) (*Provider, error) {
	p := &Provider{
		store:    store,
		gw:       gw,
		log:      logging.Discard(),
		deviceID: deviceID,
		subs:     make(map[int]func(Event)),
	}
	for _, opt := range opts {
		opt(p)
	}

	sess, ok, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if ok {
		p.sess, p.authed = sess, true
		p.log.Debug(ctx, "session restored", "user_id", sess.UserID)
	}
	return p, nil
}

// Session returns the current session with the device id attached.
func (p *Provider) Session() (models.Session, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if !p.authed {
		return models.Session{}, false
	}
	s := p.sess
	s.DeviceID = p.deviceID
	return s, true
}

func (p *Provider) State() State {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.authed {
		return Authenticated
	}
	return Unauthenticated
}

// IsLoading reports whether a login, registration or profile update is in
// flight.
func (p *Provider) IsLoading() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.loading > 0
}

func (p *Provider) DeviceID() string { return p.deviceID }

// Subscribe registers fn for state transitions and returns a function that
// removes it. fn is called without the provider's lock held.
func (p *Provider) Subscribe(fn func(Event)) (unsubscribe func()) {
	p.mu.Lock()
	id := p.nextSub
	p.nextSub++
	p.subs[id] = fn
	p.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			p.mu.Lock()
			delete(p.subs, id)
			p.mu.Unlock()
		})
	}
}

func (p *Provider) Login(ctx context.Context, email, password string) error {
	defer p.busy()()

	sess, err := p.gw.Login(ctx, email, password)
	if err != nil {
		return err
	}
	if err := p.establish(ctx, sess, EventLoggedIn); err != nil {
		return err
	}
	p.log.Info(ctx, "login succeeded", "user_id", sess.UserID)
	return nil
}

// Register creates the account and signs it in. The device id travels with
// the request.
func (p *Provider) Register(ctx context.Context, fields models.ProfileFields, password string) error {
	defer p.busy()()

	sess, err := p.gw.Register(ctx, gateway.RegisterInput{Profile: fields, Password: password, DeviceID: p.deviceID})
	if err != nil {
		return err
	}
	if err := p.establish(ctx, sess, EventRegistered); err != nil {
		return err
	}
	p.log.Info(ctx, "registration succeeded", "user_id", sess.UserID)
	return nil
}

// Logout clears both persisted slots and signals a redirect to the login
// screen. Logging out without a session is a no-op apart from the store
// clear.
func (p *Provider) Logout(ctx context.Context) error {
	p.wmu.Lock()
	if err := p.store.Clear(ctx); err != nil {
		p.wmu.Unlock()
		return fmt.Errorf("clear session: %w", err)
	}

	p.mu.Lock()
	userID := p.sess.UserID
	p.sess, p.authed = models.Session{}, false
	p.mu.Unlock()
	p.wmu.Unlock()

	p.log.Info(ctx, "logged out", "user_id", userID)
	p.emit(Event{Kind: EventLoggedOut, State: Unauthenticated, UserID: userID, Redirect: RouteLogin})
	return nil
}

// UpdateProfile replaces the profile fields. The user id and token are kept.
func (p *Provider) UpdateProfile(ctx context.Context, fields models.ProfileFields) error {
	defer p.busy()()

	return p.Authorized(ctx, func(ctx context.Context, s models.Session) error {
		profile, err := p.gw.UpdateProfile(ctx, s.UserID, fields)
		if err != nil {
			return err
		}
		return p.replaceProfile(ctx, s, profile)
	})
}

// Refresh re-reads the profile, including the balance, from the API.
func (p *Provider) Refresh(ctx context.Context) error {
	return p.Authorized(ctx, func(ctx context.Context, s models.Session) error {
		profile, err := p.gw.FetchProfile(ctx, s.UserID)
		if err != nil {
			return err
		}
		return p.replaceProfile(ctx, s, profile)
	})
}

// Authorized runs a privileged call with the session's token bound to ctx.
// When fn fails with gateway.ErrUnauthorized the session is considered
// stale: the store is cleared and EventSessionExpired is emitted. fn's error
// is returned either way.
func (p *Provider) Authorized(ctx context.Context, fn func(ctx context.Context, s models.Session) error) error {
	s, ok := p.Session()
	if !ok {
		return ErrNotAuthenticated
	}

	err := fn(gateway.WithToken(ctx, s.Token), s)
	if err != nil && errors.Is(err, gateway.ErrUnauthorized) {
		p.expire(ctx, s)
	}
	return err
}

func (p *Provider) establish(ctx context.Context, sess models.Session, kind EventKind) error {
	if !sess.Valid() {
		return fmt.Errorf("incomplete session from api: %w", gateway.ErrMalformedResponse)
	}

	p.wmu.Lock()
	if err := p.store.Save(ctx, sess); err != nil {
		p.wmu.Unlock()
		return fmt.Errorf("save session: %w", err)
	}
	p.mu.Lock()
	p.sess, p.authed = sess, true
	p.mu.Unlock()
	p.wmu.Unlock()

	p.emit(Event{Kind: kind, State: Authenticated, UserID: sess.UserID})
	return nil
}

// current reports whether s is still the signed-in session.
func (p *Provider) current(s models.Session) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.authed && p.sess.UserID == s.UserID && p.sess.Token == s.Token
}

// replaceProfile stores profile for the session snapshot s, unless the
// session changed while the call was in flight.
func (p *Provider) replaceProfile(ctx context.Context, s models.Session, profile models.Profile) error {
	p.wmu.Lock()
	if !p.current(s) {
		p.wmu.Unlock()
		return ErrNotAuthenticated
	}

	next := models.Session{UserID: s.UserID, Token: s.Token, Profile: profile}
	if err := p.store.Save(ctx, next); err != nil {
		p.wmu.Unlock()
		return fmt.Errorf("save session: %w", err)
	}
	p.mu.Lock()
	p.sess.Profile = profile
	p.mu.Unlock()
	p.wmu.Unlock()

	p.emit(Event{Kind: EventProfileUpdated, State: Authenticated, UserID: s.UserID})
	return nil
}

// expire drops the session s if it is still the current one. When the store
// cannot be cleared the session is kept, as Logout does.
func (p *Provider) expire(ctx context.Context, s models.Session) {
	p.wmu.Lock()
	if !p.current(s) {
		p.wmu.Unlock()
		return
	}

	if err := p.store.Clear(ctx); err != nil {
		p.wmu.Unlock()
		p.log.Error(ctx, "failed to clear stale session", "user_id", s.UserID, "error", err)
		return
	}
	p.mu.Lock()
	p.sess, p.authed = models.Session{}, false
	p.mu.Unlock()
	p.wmu.Unlock()

	p.log.Warn(ctx, "session rejected by api", "user_id", s.UserID)
	p.emit(Event{Kind: EventSessionExpired, State: Unauthenticated, UserID: s.UserID, Redirect: RouteLogin})
}

// busy marks an auth operation in flight and returns its release.
func (p *Provider) busy() func() {
	p.mu.Lock()
	p.loading++
	p.mu.Unlock()
	return func() {
		p.mu.Lock()
		p.loading--
		p.mu.Unlock()
	}
}

func (p *Provider) emit(ev Event) {
	p.mu.RLock()
	subs := make([]func(Event), 0, len(p.subs))
	for _, fn := range p.subs {
		subs = append(subs, fn)
	}
	p.mu.RUnlock()

	for _, fn := range subs {
		fn(ev)
	}
}
