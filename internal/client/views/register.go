package views

import (
	"context"

	"github.com/dmitrijs2005/fraudsentry/internal/client/models"
	"github.com/dmitrijs2005/fraudsentry/internal/client/provider"
	"github.com/dmitrijs2005/fraudsentry/internal/client/validate"
	"github.com/dmitrijs2005/fraudsentry/internal/common"
)

type Register struct {
	base
	p SessionProvider

	Profile         models.ProfileFields
	Password        string
	ConfirmPassword string
}

func NewRegister(p SessionProvider) *Register {
	return &Register{p: p}
}

// DeviceID is the identifier sent along with the registration.
func (v *Register) DeviceID() string {
	if id := v.p.DeviceID(); id != "" {
		return id
	}
	return common.UnknownDeviceID
}

// Submit validates every field and creates the account. No request is made
// while any field is invalid. On success Next is RouteProfile.
func (v *Register) Submit(ctx context.Context) error {
	if err := v.check(validate.Registration(v.Profile, v.Password, v.ConfirmPassword)); err != nil {
		return err
	}
	gen, err := v.begin()
	if err != nil {
		return err
	}

	err = v.p.Register(ctx, v.Profile, v.Password)
	v.finish(gen, func() {
		if err != nil {
			v.fail(err)
			return
		}
		v.Password, v.ConfirmPassword = "", ""
		v.next = provider.RouteProfile
	})
	return err
}
