package views

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/fraudsentry/internal/client/gateway"
	"github.com/dmitrijs2005/fraudsentry/internal/client/gateway/gatewaytest"
	"github.com/dmitrijs2005/fraudsentry/internal/client/models"
	"github.com/dmitrijs2005/fraudsentry/internal/client/provider"
	"github.com/dmitrijs2005/fraudsentry/internal/client/validate"
)

func TestLogin_ValidationBlocksNetwork(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		field    string
		msg      string
	}{
		{"missing email", "", "secret1", validate.FieldEmail, "Email is required"},
		{"bad email", "maya.example.com", "secret1", validate.FieldEmail, "Email is invalid"},
		{"missing password", "maya@example.com", "", validate.FieldPassword, "Password is required"},
		{"short password", "maya@example.com", "12345", validate.FieldPassword, "Password must be at least 6 characters"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := &gatewaytest.Fake{}
			v := NewLogin(signedOut(t, gw))
			v.Email, v.Password = tt.email, tt.password

			err := v.Submit(context.Background())
			require.ErrorIs(t, err, ErrInvalidInput)
			assert.Equal(t, tt.msg, v.FieldError(tt.field))
			assert.Empty(t, gw.Calls())
			assert.Equal(t, provider.RouteNone, v.Next())
		})
	}
}

func TestLogin_Success(t *testing.T) {
	gw := &gatewaytest.Fake{
		LoginFn: func(context.Context, string, string) (models.Session, error) { return me(), nil },
	}
	p := signedOut(t, gw)
	v := NewLogin(p)
	v.Email, v.Password = "maya@example.com", "secret1"

	require.NoError(t, v.Submit(context.Background()))

	assert.Equal(t, provider.Authenticated, p.State())
	assert.Equal(t, provider.RouteProfile, v.Next())
	assert.Empty(t, v.Banner())
	assert.Empty(t, v.FieldErrors())
	assert.Empty(t, v.Password)
	assert.False(t, v.Loading())
}

func TestLogin_FailureShowsBanner(t *testing.T) {
	gw := &gatewaytest.Fake{
		LoginFn: func(context.Context, string, string) (models.Session, error) {
			return models.Session{}, &gateway.Error{Op: "login", Status: 401, Kind: gateway.ErrInvalidCredentials, Message: "secret server detail"}
		},
	}
	v := NewLogin(signedOut(t, gw))
	v.Email, v.Password = "maya@example.com", "secret1"

	require.ErrorIs(t, v.Submit(context.Background()), gateway.ErrInvalidCredentials)
	assert.Equal(t, "Invalid email or password", v.Banner())
	assert.NotContains(t, v.Banner(), "secret server detail")
	assert.Equal(t, provider.RouteNone, v.Next())
	assert.False(t, v.Loading())
}

func TestLogin_SecondSubmitWhileLoadingIsBusy(t *testing.T) {
	g := newGate()
	gw := &gatewaytest.Fake{
		LoginFn: func(context.Context, string, string) (models.Session, error) {
			g.wait()
			return me(), nil
		},
	}
	v := NewLogin(signedOut(t, gw))
	v.Email, v.Password = "maya@example.com", "secret1"

	done := make(chan error, 1)
	go func() { done <- v.Submit(context.Background()) }()
	<-g.started

	assert.True(t, v.Loading())
	assert.ErrorIs(t, v.Submit(context.Background()), ErrBusy)

	close(g.release)
	require.NoError(t, <-done)
	assert.Len(t, gw.Calls("login"), 1)
}

func TestLogin_ResultAfterUnmountIsDiscarded(t *testing.T) {
	g := newGate()
	gw := &gatewaytest.Fake{
		LoginFn: func(context.Context, string, string) (models.Session, error) {
			g.wait()
			return models.Session{}, &gateway.Error{Op: "login", Kind: gateway.ErrInvalidCredentials}
		},
	}
	v := NewLogin(signedOut(t, gw))
	v.Email, v.Password = "maya@example.com", "secret1"

	done := make(chan error, 1)
	go func() { done <- v.Submit(context.Background()) }()
	<-g.started
	v.Unmount()
	close(g.release)

	require.Error(t, <-done)
	assert.Empty(t, v.Banner())
	assert.False(t, v.Loading())
}
