package views

import (
	"errors"

	"github.com/dmitrijs2005/fraudsentry/internal/client/gateway"
	"github.com/dmitrijs2005/fraudsentry/internal/client/provider"
)

const (
	msgGeneric = "Something went wrong. Please try again."
	msgOffline = "Unable to reach the server. Please try again."
)

var kindMessages = []struct {
	kind error
	msg  string
}{
	{gateway.ErrInvalidCredentials, "Invalid email or password"},
	{gateway.ErrEmailTaken, "An account with this email already exists"},
	{gateway.ErrValidationFailed, "Please check the details you entered"},
	{gateway.ErrNotFound, "Not found"},
	{gateway.ErrInvalidOTP, "Invalid OTP"},
	{gateway.ErrResetFailed, "Password reset failed"},
	{gateway.ErrUnauthorized, "Your session has expired. Please sign in again."},
	{gateway.ErrInsufficientFunds, "Insufficient funds"},
	{gateway.ErrUnavailable, msgOffline},
	{gateway.ErrServer, msgGeneric},
	{gateway.ErrMalformedResponse, "Unexpected response from the server"},
	{provider.ErrNotAuthenticated, "Please sign in to continue"},
}

// describe turns err into the message shown to the user. Server-provided
// text is never shown.
func describe(err error) string {
	for _, km := range kindMessages {
		if errors.Is(err, km.kind) {
			return km.msg
		}
	}
	return msgGeneric
}

// transient reports whether err is a transport or server fault rather than
// an answer about the user's input.
func transient(err error) bool {
	return errors.Is(err, gateway.ErrUnavailable) ||
		errors.Is(err, gateway.ErrServer) ||
		errors.Is(err, gateway.ErrMalformedResponse)
}
