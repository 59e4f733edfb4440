package gateway

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/dmitrijs2005/fraudsentry/internal/client/models"
)

// Gateway is the contract of the remote API as seen by the client.
type Gateway interface {
	Login(ctx context.Context, email, password string) (models.Session, error)
	Register(ctx context.Context, in RegisterInput) (models.Session, error)
	RequestPasswordReset(ctx context.Context, email string) error
	VerifyOTP(ctx context.Context, email, otp string) error
	ResetPassword(ctx context.Context, email, newPassword string) error
	FetchProfile(ctx context.Context, userID string) (models.Profile, error)
	UpdateProfile(ctx context.Context, userID string, fields models.ProfileFields) (models.Profile, error)
	ListUsers(ctx context.Context, excludingUserID string) ([]models.UserSummary, error)
	FetchTransactions(ctx context.Context, userID string) ([]models.Transaction, error)
	SendTransaction(ctx context.Context, senderID, recipientID string, amount decimal.Decimal) (models.Transaction, error)
}

// RegisterInput is everything the API needs to create an account.
type RegisterInput struct {
	Profile  models.ProfileFields
	Password string
	DeviceID string
}

type tokenKey struct{}

// WithToken returns a context whose requests carry token as bearer credential.
// An empty token removes any credential set by a parent context.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFromContext returns the bearer token bound to ctx, or "".
func TokenFromContext(ctx context.Context) string {
	tok, _ := ctx.Value(tokenKey{}).(string)
	return tok
}
