package cli

import (
	"context"

	"github.com/dmitrijs2005/fraudsentry/internal/client/views"
)

// Profile shows the signed-in profile after refreshing it from the API.
func (a *App) Profile(ctx context.Context) error {
	v := views.NewProfile(a.prov)
	defer v.Unmount()

	if err := v.Mount(ctx); err != nil {
		a.renderFailure(err, nil, v.Banner())
		return err
	}

	p, _ := v.Current()
	renderProfile(a.out, p, v.DeviceID())
	return nil
}

// EditProfile prompts for each profile field. An empty answer keeps the
// current value.
func (a *App) EditProfile(ctx context.Context) error {
	v := views.NewProfile(a.prov)
	defer v.Unmount()

	if err := v.Mount(ctx); err != nil {
		a.renderFailure(err, nil, v.Banner())
		return err
	}
	v.Edit()

	prompts := []struct {
		label string
		dst   *string
	}{
		{"Name", &v.Form.Name},
		{"Email", &v.Form.Email},
		{"Address", &v.Form.Address},
		{"Mobile number", &v.Form.MobileNumber},
	}
	for _, p := range prompts {
		answer, err := a.ask(p.label + " [" + *p.dst + "]")
		if err != nil {
			v.Cancel()
			return err
		}
		if answer != "" {
			*p.dst = answer
		}
	}

	if err := v.Save(ctx); err != nil {
		a.renderFailure(err, v.FieldErrors(), v.Banner())
		if v.Next() != "" {
			return a.follow(ctx, v.Next())
		}
		return err
	}

	a.println(v.Notice())
	p, _ := v.Current()
	renderProfile(a.out, p, v.DeviceID())
	return nil
}
