package views

import (
	"context"

	"github.com/dmitrijs2005/fraudsentry/internal/client/models"
	"github.com/dmitrijs2005/fraudsentry/internal/client/provider"
	"github.com/dmitrijs2005/fraudsentry/internal/client/validate"
)

// Profile shows the signed-in account. The form is read-only until Edit.
type Profile struct {
	base
	p SessionProvider

	editing bool
	Form    models.ProfileFields
}

func NewProfile(p SessionProvider) *Profile {
	return &Profile{p: p}
}

// Mount fills the form from the session and refreshes the profile from the
// API. Without a session Next is RouteLogin.
func (v *Profile) Mount(ctx context.Context) error {
	s, err := v.requireSession(v.p)
	if err != nil {
		return err
	}
	v.mu.Lock()
	v.Form = s.Profile.Fields()
	v.mu.Unlock()

	gen, err := v.begin()
	if err != nil {
		return err
	}
	err = v.p.Refresh(ctx)
	v.finish(gen, func() {
		if err != nil {
			v.fail(err)
			return
		}
		if !v.editing {
			v.resetForm()
		}
	})
	return err
}

// Current is the profile as last confirmed by the API.
func (v *Profile) Current() (models.Profile, bool) {
	s, ok := v.p.Session()
	return s.Profile, ok
}

func (v *Profile) DeviceID() string { return v.p.DeviceID() }

func (v *Profile) Editing() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.editing
}

func (v *Profile) Edit() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.editing = true
}

// Cancel leaves edit mode and drops unsaved changes.
func (v *Profile) Cancel() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.editing = false
	v.fields = nil
	v.resetForm()
}

// Save validates the form and updates the profile. Outside edit mode it
// only enters edit mode.
func (v *Profile) Save(ctx context.Context) error {
	if !v.Editing() {
		v.Edit()
		return nil
	}
	if err := v.check(validate.Profile(v.Form)); err != nil {
		return err
	}
	gen, err := v.begin()
	if err != nil {
		return err
	}

	err = v.p.UpdateProfile(ctx, v.Form)
	v.finish(gen, func() {
		if err != nil {
			v.fail(err)
			if v.next != provider.RouteLogin {
				v.banner = "Failed to update profile"
			}
			return
		}
		v.editing = false
		v.notice = "Profile updated successfully"
		v.resetForm()
	})
	return err
}

// SignOut ends the session. Next is RouteLogin.
func (v *Profile) SignOut(ctx context.Context) error {
	gen, err := v.begin()
	if err != nil {
		return err
	}
	err = v.p.Logout(ctx)
	v.finish(gen, func() {
		if err != nil {
			v.fail(err)
			return
		}
		v.editing = false
		v.Form = models.ProfileFields{}
		v.next = provider.RouteLogin
	})
	return err
}

// resetForm copies the session profile into the form. Callers hold mu.
func (v *Profile) resetForm() {
	if s, ok := v.p.Session(); ok {
		v.Form = s.Profile.Fields()
	}
}
