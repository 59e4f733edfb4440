// Package gatewaytest provides an in-memory gateway.Gateway for tests of the
// layers above the HTTP client.
package gatewaytest

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/dmitrijs2005/fraudsentry/internal/client/gateway"
	"github.com/dmitrijs2005/fraudsentry/internal/client/models"
)

// Call is one recorded invocation.
type Call struct {
	Op    string
	Token string
	Args  []any
}

// Fake answers each operation with the matching func field. A nil field
// yields a zero result and no error. Every invocation is recorded.
type Fake struct {
	LoginFn                func(ctx context.Context, email, password string) (models.Session, error)
	RegisterFn             func(ctx context.Context, in gateway.RegisterInput) (models.Session, error)
	RequestPasswordResetFn func(ctx context.Context, email string) error
	VerifyOTPFn            func(ctx context.Context, email, otp string) error
	ResetPasswordFn        func(ctx context.Context, email, newPassword string) error
	FetchProfileFn         func(ctx context.Context, userID string) (models.Profile, error)
	UpdateProfileFn        func(ctx context.Context, userID string, f models.ProfileFields) (models.Profile, error)
	ListUsersFn            func(ctx context.Context, excludingUserID string) ([]models.UserSummary, error)
	FetchTransactionsFn    func(ctx context.Context, userID string) ([]models.Transaction, error)
	SendTransactionFn      func(ctx context.Context, senderID, recipientID string, amount decimal.Decimal) (models.Transaction, error)

	mu    sync.Mutex
	calls []Call
}

var _ gateway.Gateway = (*Fake)(nil)

func (f *Fake) record(ctx context.Context, op string, args ...any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, Call{Op: op, Token: gateway.TokenFromContext(ctx), Args: args})
}

// Calls returns a copy of the recorded calls, optionally filtered by op.
func (f *Fake) Calls(op ...string) []Call {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]Call, 0, len(f.calls))
	for _, c := range f.calls {
		if len(op) == 0 || contains(op, c.Op) {
			out = append(out, c)
		}
	}
	return out
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}

func (f *Fake) Login(ctx context.Context, email, password string) (models.Session, error) {
	f.record(ctx, "login", email, password)
	if f.LoginFn == nil {
		return models.Session{}, nil
	}
	return f.LoginFn(ctx, email, password)
}

func (f *Fake) Register(ctx context.Context, in gateway.RegisterInput) (models.Session, error) {
	f.record(ctx, "register", in)
	if f.RegisterFn == nil {
		return models.Session{}, nil
	}
	return f.RegisterFn(ctx, in)
}

func (f *Fake) RequestPasswordReset(ctx context.Context, email string) error {
	f.record(ctx, "forgot_password", email)
	if f.RequestPasswordResetFn == nil {
		return nil
	}
	return f.RequestPasswordResetFn(ctx, email)
}

func (f *Fake) VerifyOTP(ctx context.Context, email, otp string) error {
	f.record(ctx, "verify_otp", email, otp)
	if f.VerifyOTPFn == nil {
		return nil
	}
	return f.VerifyOTPFn(ctx, email, otp)
}

func (f *Fake) ResetPassword(ctx context.Context, email, newPassword string) error {
	f.record(ctx, "reset_password", email, newPassword)
	if f.ResetPasswordFn == nil {
		return nil
	}
	return f.ResetPasswordFn(ctx, email, newPassword)
}

func (f *Fake) FetchProfile(ctx context.Context, userID string) (models.Profile, error) {
	f.record(ctx, "fetch_profile", userID)
	if f.FetchProfileFn == nil {
		return models.Profile{}, nil
	}
	return f.FetchProfileFn(ctx, userID)
}

func (f *Fake) UpdateProfile(ctx context.Context, userID string, fields models.ProfileFields) (models.Profile, error) {
	f.record(ctx, "update_profile", userID, fields)
	if f.UpdateProfileFn == nil {
		return models.Profile{}.WithFields(fields), nil
	}
	return f.UpdateProfileFn(ctx, userID, fields)
}

func (f *Fake) ListUsers(ctx context.Context, excludingUserID string) ([]models.UserSummary, error) {
	f.record(ctx, "list_users", excludingUserID)
	if f.ListUsersFn == nil {
		return []models.UserSummary{}, nil
	}
	return f.ListUsersFn(ctx, excludingUserID)
}

func (f *Fake) FetchTransactions(ctx context.Context, userID string) ([]models.Transaction, error) {
	f.record(ctx, "fetch_transactions", userID)
	if f.FetchTransactionsFn == nil {
		return []models.Transaction{}, nil
	}
	return f.FetchTransactionsFn(ctx, userID)
}

func (f *Fake) SendTransaction(ctx context.Context, senderID, recipientID string, amount decimal.Decimal) (models.Transaction, error) {
	f.record(ctx, "send_transaction", senderID, recipientID, amount)
	if f.SendTransactionFn == nil {
		return models.Transaction{}, nil
	}
	return f.SendTransactionFn(ctx, senderID, recipientID, amount)
}

// Unauthorized is a ready-made gateway error for stale-session tests.
func Unauthorized(op string) error {
	return &gateway.Error{Op: op, Status: 401, Kind: gateway.ErrUnauthorized}
}
