package views

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
)

// ConfirmMode selects how the transaction modal treats its callback.
type ConfirmMode string

const (
	// ConfirmOptimistic closes the modal and reports success at once. The
	// transfer runs afterwards; its failure is reported as a later notice.
	ConfirmOptimistic ConfirmMode = "optimistic"
	// ConfirmBlocking waits for the transfer. On failure the modal stays
	// open and shows the error.
	ConfirmBlocking ConfirmMode = "blocking"
)

func ParseConfirmMode(s string) (ConfirmMode, error) {
	switch m := ConfirmMode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return ConfirmOptimistic, nil
	case ConfirmOptimistic, ConfirmBlocking:
		return m, nil
	default:
		return "", fmt.Errorf("unknown confirm mode %q", s)
	}
}

// ErrModalClosed is returned by Confirm on a modal that is no longer open.
var ErrModalClosed = errors.New("modal is closed")

// Transfer is what the modal asks the user to confirm.
type Transfer struct {
	SenderID      string
	RecipientID   string
	RecipientName string
	Amount        decimal.Decimal
}

// TransactionModal is the confirmation step of "send money". It owns no
// state beyond its own visibility; the transfer itself is the caller's
// onConfirm.
type TransactionModal struct {
	transfer  Transfer
	mode      ConfirmMode
	onConfirm func(ctx context.Context, t Transfer) error
	notify    func(msg string)

	mu         sync.Mutex
	open       bool
	confirming bool
	errMsg     string
	inflight   sync.WaitGroup
}

// NewTransactionModal returns an open modal. notify receives the success
// and failure notices and may be nil.
func NewTransactionModal(t Transfer, mode ConfirmMode, onConfirm func(ctx context.Context, t Transfer) error, notify func(msg string)) *TransactionModal {
	if mode == "" {
		mode = ConfirmOptimistic
	}
	if notify == nil {
		notify = func(string) {}
	}
	return &TransactionModal{transfer: t, mode: mode, onConfirm: onConfirm, notify: notify, open: true}
}

func (m *TransactionModal) Transfer() Transfer { return m.transfer }

func (m *TransactionModal) Mode() ConfirmMode { return m.mode }

func (m *TransactionModal) Open() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.open
}

// Err is the failure shown inside the modal, blocking mode only.
func (m *TransactionModal) Err() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.errMsg
}

// Summary is the confirmation text.
func (m *TransactionModal) Summary() string {
	return fmt.Sprintf("Send %s to %s (%s)?", FormatAmount(m.transfer.Amount), m.transfer.RecipientName, m.transfer.RecipientID)
}

// Confirm invokes onConfirm exactly once per call.
//
// In optimistic mode the modal closes and the success notice is sent before
// onConfirm runs in the background with ctx's values but without its
// cancellation; Wait blocks until it returns. In blocking mode Confirm
// returns onConfirm's error and the modal closes only on success.
func (m *TransactionModal) Confirm(ctx context.Context) error {
	m.mu.Lock()
	if !m.open {
		m.mu.Unlock()
		return ErrModalClosed
	}
	if m.confirming {
		m.mu.Unlock()
		return ErrBusy
	}

	if m.mode == ConfirmOptimistic {
		m.open = false
		m.inflight.Add(1)
		m.mu.Unlock()

		m.notify(m.sentNotice())
		go func() {
			defer m.inflight.Done()
			if err := m.onConfirm(context.WithoutCancel(ctx), m.transfer); err != nil {
				m.notify(m.failedNotice(err))
			}
		}()
		return nil
	}

	m.confirming = true
	m.errMsg = ""
	m.mu.Unlock()

	err := m.onConfirm(ctx, m.transfer)

	m.mu.Lock()
	m.confirming = false
	if err != nil {
		m.errMsg = describe(err)
		m.mu.Unlock()
		return err
	}
	m.open = false
	m.mu.Unlock()

	m.notify(m.sentNotice())
	return nil
}

// Cancel closes the modal without side effects.
func (m *TransactionModal) Cancel() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.confirming {
		m.open = false
	}
}

// Wait blocks until a background transfer started by Confirm has finished.
func (m *TransactionModal) Wait() {
	m.inflight.Wait()
}

func (m *TransactionModal) sentNotice() string {
	return "Transaction sent to " + m.transfer.RecipientName
}

func (m *TransactionModal) failedNotice(err error) string {
	return fmt.Sprintf("Transaction to %s failed: %s", m.transfer.RecipientName, describe(err))
}
