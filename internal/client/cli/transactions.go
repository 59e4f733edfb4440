package cli

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/fraudsentry/internal/client/models"
	"github.com/dmitrijs2005/fraudsentry/internal/client/views"
)

// sendView returns the long-lived send money view. It outlives a single
// command so that notices from background transfers are still delivered.
func (a *App) sendView() *views.CreateTransaction {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.send == nil {
		a.send = views.NewCreateTransaction(a.prov, a.gw, a.config.ConfirmMode)
	}
	return a.send
}

// Send lists the other accounts, asks for a recipient and an amount and
// confirms the transfer.
func (a *App) Send(ctx context.Context) error {
	v := a.sendView()
	if err := v.Mount(ctx); err != nil {
		a.renderFailure(err, nil, v.Banner())
		return err
	}

	users := v.Users()
	if len(users) == 0 {
		a.println("No recipients available.")
		return nil
	}
	renderUsers(a.out, users)

	choice, err := a.ask("Recipient (# or id)")
	if err != nil {
		return err
	}
	amount, err := a.ask("Amount")
	if err != nil {
		return err
	}

	modal, err := v.SendMoney(resolveRecipient(users, choice), amount)
	if err != nil {
		if errors.Is(err, views.ErrBusy) {
			a.println("Another transfer is awaiting confirmation.")
			return err
		}
		a.renderFailure(err, v.FieldErrors(), v.Banner())
		return err
	}
	a.track(modal)

	return a.confirm(ctx, modal)
}

// confirm asks the user until the modal is confirmed, canceled or a
// blocking transfer fails and the user declines to retry.
func (a *App) confirm(ctx context.Context, modal *views.TransactionModal) error {
	for modal.Open() {
		ok, err := getConfirmation(a.reader, modal.Summary(), a.out)
		if err != nil {
			modal.Cancel()
			return err
		}
		if !ok {
			modal.Cancel()
			a.println("Transaction cancelled.")
			return nil
		}

		if err := modal.Confirm(ctx); err != nil {
			if msg := modal.Err(); msg != "" {
				a.println(msg)
			}
			if !a.isLoggedIn() {
				modal.Cancel()
			}
			if !modal.Open() {
				a.flushNotices()
				return err
			}
			a.println("Retry?")
			continue
		}
	}
	a.flushNotices()
	return nil
}

// resolveRecipient maps a list number to the user id. Anything else is
// taken as an id.
func resolveRecipient(users []models.UserSummary, choice string) string {
	choice = strings.TrimSpace(choice)
	if n, err := strconv.Atoi(choice); err == nil && n >= 1 && n <= len(users) {
		return users[n-1].ID
	}
	return choice
}

func (a *App) track(m *views.TransactionModal) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.modals = append(a.modals, m)
}

// flushNotices prints the pending transfer notices.
func (a *App) flushNotices() {
	a.mu.Lock()
	v := a.send
	a.mu.Unlock()
	if v == nil {
		return
	}
	for _, n := range v.Notices() {
		a.println(n)
	}
}

// History prints the signed-in user's transactions.
func (a *App) History(ctx context.Context) error {
	v := views.NewTransactionHistory(a.prov, a.gw)
	defer v.Unmount()

	if err := v.Mount(ctx); err != nil {
		a.renderFailure(err, nil, v.Banner())
		return err
	}
	if v.Empty() {
		a.println(views.NoTransactionsMessage)
		return nil
	}
	renderTransactions(a.out, v.Transactions())
	return nil
}
