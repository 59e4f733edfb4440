package views

import (
	"context"

	"github.com/dmitrijs2005/fraudsentry/internal/client/provider"
	"github.com/dmitrijs2005/fraudsentry/internal/client/validate"
)

type Login struct {
	base
	p SessionProvider

	Email    string
	Password string
}

func NewLogin(p SessionProvider) *Login {
	return &Login{p: p}
}

// Submit validates the form and signs in. On success Next is RouteProfile.
func (v *Login) Submit(ctx context.Context) error {
	if err := v.check(validate.Login(v.Email, v.Password)); err != nil {
		return err
	}
	gen, err := v.begin()
	if err != nil {
		return err
	}

	err = v.p.Login(ctx, v.Email, v.Password)
	v.finish(gen, func() {
		if err != nil {
			v.fail(err)
			return
		}
		v.Password = ""
		v.next = provider.RouteProfile
	})
	return err
}
