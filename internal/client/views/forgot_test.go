package views

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/fraudsentry/internal/client/gateway"
	"github.com/dmitrijs2005/fraudsentry/internal/client/gateway/gatewaytest"
	"github.com/dmitrijs2005/fraudsentry/internal/client/provider"
	"github.com/dmitrijs2005/fraudsentry/internal/client/validate"
)

func TestForgotPassword_FullFlow(t *testing.T) {
	gw := &gatewaytest.Fake{}
	v := NewForgotPassword(gw)
	ctx := context.Background()

	v.Email = "maya@example.com"
	require.NoError(t, v.Submit(ctx))
	assert.Equal(t, StepOTP, v.Step())

	v.OTP = "123456"
	require.NoError(t, v.Submit(ctx))
	assert.Equal(t, StepNewPassword, v.Step())

	v.NewPassword = "newsecret"
	require.NoError(t, v.Submit(ctx))
	assert.Equal(t, StepDone, v.Step())
	assert.Equal(t, provider.RouteLogin, v.Next())
	assert.NotEmpty(t, v.Notice())

	calls := gw.Calls()
	require.Len(t, calls, 3)
	assert.Equal(t, []any{"maya@example.com"}, calls[0].Args)
	assert.Equal(t, []any{"maya@example.com", "123456"}, calls[1].Args)
	assert.Equal(t, []any{"maya@example.com", "newsecret"}, calls[2].Args)

	require.NoError(t, v.Submit(ctx), "submitting a finished flow does nothing")
	assert.Len(t, gw.Calls(), 3)
}

func TestForgotPassword_StepErrors(t *testing.T) {
	ctx := context.Background()

	gw := &gatewaytest.Fake{
		RequestPasswordResetFn: func(context.Context, string) error {
			return &gateway.Error{Op: "forgot_password", Status: 404, Kind: gateway.ErrNotFound}
		},
		VerifyOTPFn: func(context.Context, string, string) error {
			return &gateway.Error{Op: "verify_otp", Status: 400, Kind: gateway.ErrInvalidOTP}
		},
		ResetPasswordFn: func(context.Context, string, string) error {
			return &gateway.Error{Op: "reset_password", Status: 400, Kind: gateway.ErrResetFailed}
		},
	}

	v := NewForgotPassword(gw)
	v.Email = "nobody@example.com"
	require.Error(t, v.Submit(ctx))
	assert.Equal(t, "Email not found", v.Banner())
	assert.Equal(t, StepEmail, v.Step())

	gw.RequestPasswordResetFn = nil
	require.NoError(t, v.Submit(ctx))
	assert.Empty(t, v.Banner(), "a new attempt clears the banner")

	v.OTP = "000000"
	require.Error(t, v.Submit(ctx))
	assert.Equal(t, "Invalid OTP", v.Banner())
	assert.Equal(t, StepOTP, v.Step())

	gw.VerifyOTPFn = nil
	require.NoError(t, v.Submit(ctx))

	v.NewPassword = "newsecret"
	require.Error(t, v.Submit(ctx))
	assert.Equal(t, "Password reset failed", v.Banner())
	assert.Equal(t, StepNewPassword, v.Step())
	assert.Equal(t, provider.RouteNone, v.Next())
}

func TestForgotPassword_TransportErrorIsGeneric(t *testing.T) {
	gw := &gatewaytest.Fake{
		RequestPasswordResetFn: func(context.Context, string) error {
			return &gateway.Error{Op: "forgot_password", Kind: gateway.ErrUnavailable}
		},
	}
	v := NewForgotPassword(gw)
	v.Email = "maya@example.com"

	require.ErrorIs(t, v.Submit(context.Background()), gateway.ErrUnavailable)
	assert.Equal(t, msgOffline, v.Banner())
}

func TestForgotPassword_Validation(t *testing.T) {
	gw := &gatewaytest.Fake{}
	v := NewForgotPassword(gw)
	ctx := context.Background()

	v.Email = "bad"
	require.ErrorIs(t, v.Submit(ctx), ErrInvalidInput)
	assert.Equal(t, "Email is invalid", v.FieldError(validate.FieldEmail))

	v.Email = "maya@example.com"
	require.NoError(t, v.Submit(ctx))
	require.ErrorIs(t, v.Submit(ctx), ErrInvalidInput)
	assert.Equal(t, "OTP is required", v.FieldError(validate.FieldOTP))

	v.OTP = "1"
	require.NoError(t, v.Submit(ctx))
	v.NewPassword = "123"
	require.ErrorIs(t, v.Submit(ctx), ErrInvalidInput)
	assert.Equal(t, "Password must be at least 6 characters", v.FieldError(validate.FieldNewPassword))

	assert.Len(t, gw.Calls(), 2)
}

func TestStep_String(t *testing.T) {
	assert.Equal(t, "otp", StepOTP.String())
	assert.Equal(t, "step(9)", Step(9).String())
}
