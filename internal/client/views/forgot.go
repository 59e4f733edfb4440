package views

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/fraudsentry/internal/client/gateway"
	"github.com/dmitrijs2005/fraudsentry/internal/client/provider"
	"github.com/dmitrijs2005/fraudsentry/internal/client/validate"
)

// Step is a stage of the password recovery flow.
type Step int

const (
	StepEmail Step = iota
	StepOTP
	StepNewPassword
	StepDone
)

func (s Step) String() string {
	switch s {
	case StepEmail:
		return "email"
	case StepOTP:
		return "otp"
	case StepNewPassword:
		return "new password"
	case StepDone:
		return "done"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}

// ForgotPassword walks through email, OTP and new password. Each step only
// advances on success; a failure keeps the step and shows its message.
type ForgotPassword struct {
	base
	gw gateway.Gateway

	step Step

	Email       string
	OTP         string
	NewPassword string
}

func NewForgotPassword(gw gateway.Gateway) *ForgotPassword {
	return &ForgotPassword{gw: gw}
}

func (v *ForgotPassword) Step() Step {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.step
}

// Submit runs the current step.
func (v *ForgotPassword) Submit(ctx context.Context) error {
	switch v.Step() {
	case StepEmail:
		return v.run(ctx, validate.FieldEmail, validate.Email(v.Email), "Email not found", StepOTP,
			func(ctx context.Context) error { return v.gw.RequestPasswordReset(ctx, v.Email) })
	case StepOTP:
		return v.run(ctx, validate.FieldOTP, validate.OTP(v.OTP), "Invalid OTP", StepNewPassword,
			func(ctx context.Context) error { return v.gw.VerifyOTP(ctx, v.Email, v.OTP) })
	case StepNewPassword:
		return v.run(ctx, validate.FieldNewPassword, validate.Password(v.NewPassword), "Password reset failed", StepDone,
			func(ctx context.Context) error { return v.gw.ResetPassword(ctx, v.Email, v.NewPassword) })
	default:
		return nil
	}
}

func (v *ForgotPassword) run(ctx context.Context, field, invalid, failure string, next Step, call func(context.Context) error) error {
	errs := validate.FieldErrors{}
	errs.Set(field, invalid)
	if err := v.check(errs); err != nil {
		return err
	}
	gen, err := v.begin()
	if err != nil {
		return err
	}

	err = call(ctx)
	v.finish(gen, func() {
		if err != nil {
			if transient(err) {
				v.banner = describe(err)
			} else {
				v.banner = failure
			}
			return
		}
		v.step = next
		if next == StepDone {
			v.OTP, v.NewPassword = "", ""
			v.notice = "Password reset successful. Please sign in."
			v.next = provider.RouteLogin
		}
	})
	return err
}
