package views

import (
	"context"
	"slices"

	"github.com/dmitrijs2005/fraudsentry/internal/client/gateway"
	"github.com/dmitrijs2005/fraudsentry/internal/client/models"
	"github.com/dmitrijs2005/fraudsentry/internal/client/validate"
)

// FieldRecipient is the field error key for the recipient selection.
const FieldRecipient = "recipient"

// CreateTransaction lists the other accounts and sends money to one of them
// through a TransactionModal.
type CreateTransaction struct {
	base
	p    SessionProvider
	gw   gateway.Gateway
	mode ConfirmMode

	users   []models.UserSummary
	modal   *TransactionModal
	notices []string
}

func NewCreateTransaction(p SessionProvider, gw gateway.Gateway, mode ConfirmMode) *CreateTransaction {
	return &CreateTransaction{p: p, gw: gw, mode: mode}
}

// Mount loads the directory, excluding the signed-in user.
func (v *CreateTransaction) Mount(ctx context.Context) error {
	if _, err := v.requireSession(v.p); err != nil {
		return err
	}
	gen, err := v.begin()
	if err != nil {
		return err
	}

	var users []models.UserSummary
	err = v.p.Authorized(ctx, func(ctx context.Context, s models.Session) error {
		var err error
		users, err = v.gw.ListUsers(ctx, s.UserID)
		return err
	})
	v.finish(gen, func() {
		if err != nil {
			v.users = nil
			v.fail(err)
			return
		}
		v.users = users
	})
	return err
}

func (v *CreateTransaction) Users() []models.UserSummary {
	v.mu.Lock()
	defer v.mu.Unlock()
	return slices.Clone(v.users)
}

// SendMoney opens the confirmation modal for amount to recipientID.
func (v *CreateTransaction) SendMoney(recipientID, amount string) (*TransactionModal, error) {
	s, err := v.requireSession(v.p)
	if err != nil {
		return nil, err
	}

	errs := validate.FieldErrors{}
	value, msg := validate.Amount(amount)
	errs.Set(validate.FieldAmount, msg)

	v.mu.Lock()
	idx := slices.IndexFunc(v.users, func(u models.UserSummary) bool { return u.ID == recipientID })
	var recipient models.UserSummary
	if idx >= 0 {
		recipient = v.users[idx]
	}
	v.mu.Unlock()
	if idx < 0 {
		errs.Set(FieldRecipient, "Select a recipient")
	}

	if err := v.check(errs); err != nil {
		return nil, err
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.modal != nil && v.modal.Open() {
		return nil, ErrBusy
	}

	gen := v.gen
	v.modal = NewTransactionModal(Transfer{
		SenderID:      s.UserID,
		RecipientID:   recipient.ID,
		RecipientName: recipient.Name,
		Amount:        value,
	}, v.mode, v.transfer, func(msg string) { v.push(gen, msg) })
	return v.modal, nil
}

// Modal returns the open modal, or nil.
func (v *CreateTransaction) Modal() *TransactionModal {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.modal == nil || !v.modal.Open() {
		return nil
	}
	return v.modal
}

// Notices returns and clears the pending toast messages.
func (v *CreateTransaction) Notices() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := v.notices
	v.notices = nil
	return out
}

func (v *CreateTransaction) transfer(ctx context.Context, t Transfer) error {
	return v.p.Authorized(ctx, func(ctx context.Context, s models.Session) error {
		_, err := v.gw.SendTransaction(ctx, s.UserID, t.RecipientID, t.Amount)
		return err
	})
}

func (v *CreateTransaction) push(gen uint64, msg string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if gen != v.gen {
		return
	}
	v.notice = msg
	v.notices = append(v.notices, msg)
}
