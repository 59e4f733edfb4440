package cli

import (
	"context"

	"github.com/dmitrijs2005/fraudsentry/internal/client/views"
)

// Home shows the landing page. Sections are printed as they are revealed.
func (a *App) Home(ctx context.Context) error {
	v := views.NewLanding()
	if err := v.Mount(); err != nil {
		return err
	}
	defer func() {
		if err := v.Unmount(); err != nil {
			a.log.Warn(ctx, "landing unmount", "err", err)
		}
	}()

	for _, s := range v.Sections() {
		v.Scroll(s.ID, 1)
		if !v.Revealed(s.ID) {
			continue
		}
		a.printf("== %s ==\n%s\n\n", s.Title, s.Body)
	}

	if a.isLoggedIn() {
		return nil
	}
	ok, err := getConfirmation(a.reader, "Get started?", a.out)
	if err != nil || !ok {
		return err
	}
	v.GetStarted()
	return a.follow(ctx, v.Next())
}
