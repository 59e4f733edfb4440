package views

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/fraudsentry/internal/client/gateway/gatewaytest"
	"github.com/dmitrijs2005/fraudsentry/internal/client/models"
	"github.com/dmitrijs2005/fraudsentry/internal/client/provider"
)

// memStore is an in-memory session.Store.
type memStore struct {
	mu   sync.Mutex
	sess *models.Session
}

func (m *memStore) Save(_ context.Context, s models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sess = &s
	return nil
}

func (m *memStore) Load(context.Context) (models.Session, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sess == nil {
		return models.Session{}, false, nil
	}
	return *m.sess, true, nil
}

func (m *memStore) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sess = nil
	return nil
}

func me() models.Session {
	return models.Session{
		UserID: "me",
		Token:  "tok-me",
		Profile: models.Profile{
			Name:            "Maya",
			Email:           "maya@example.com",
			Address:         "7 Park Lane",
			MobileNumber:    "9876543210",
			AmountAvailable: decimal.NewFromInt(500),
		},
	}
}

// signedIn returns a provider that already holds me(). Unless the test set
// one, profile fetches answer with me().Profile.
func signedIn(t *testing.T, gw *gatewaytest.Fake) (*provider.Provider, *memStore) {
	t.Helper()
	if gw.FetchProfileFn == nil {
		gw.FetchProfileFn = func(context.Context, string) (models.Profile, error) { return me().Profile, nil }
	}
	s := me()
	store := &memStore{sess: &s}
	p, err := provider.New(context.Background(), store, gw, "dev-1")
	require.NoError(t, err)
	return p, store
}

func signedOut(t *testing.T, gw *gatewaytest.Fake) *provider.Provider {
	t.Helper()
	p, err := provider.New(context.Background(), &memStore{}, gw, "dev-1")
	require.NoError(t, err)
	return p
}

// gate blocks a fake gateway call until released.
type gate struct {
	started chan struct{}
	release chan struct{}
}

func newGate() *gate {
	return &gate{started: make(chan struct{}, 1), release: make(chan struct{})}
}

func (g *gate) wait() {
	g.started <- struct{}{}
	<-g.release
}
