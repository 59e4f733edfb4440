package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dmitrijs2005/fraudsentry/internal/client/models"
)

// validator is implemented by response schemas that check their own shape
// after decoding.
type validator interface {
	validate() error
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Address      string `json:"address"`
	MobileNumber string `json:"mobileNumber"`
	Password     string `json:"password"`
	MacAddresses string `json:"macAddresses"`
}

type emailRequest struct {
	Email string `json:"email"`
}

type verifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type resetPasswordRequest struct {
	Email       string `json:"email"`
	NewPassword string `json:"newPassword"`
}

type sendRequest struct {
	SenderID   string      `json:"senderId"`
	ReceiverID string      `json:"receiverId"`
	Amount     json.Number `json:"amount"`
}

// errorBody is the optional failure payload. It is only used to refine the
// classification and for logs.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
	Code    string `json:"code"`
}

func (b errorBody) text() string {
	if b.Message != "" {
		return b.Message
	}
	return b.Error
}

type wireTransaction struct {
	TxnID string `json:"txnId"`
	// the API spells it "recieverId"; "receiverId" is accepted too
	RecieverID string           `json:"recieverId"`
	ReceiverID string           `json:"receiverId"`
	Amount     *decimal.Decimal `json:"amount"`
	Date       string           `json:"date"`
}

func (t wireTransaction) recipient() string {
	if t.RecieverID != "" {
		return t.RecieverID
	}
	return t.ReceiverID
}

func (t wireTransaction) toModel() (models.Transaction, error) {
	if t.TxnID == "" {
		return models.Transaction{}, errors.New("transaction without txnId")
	}
	if t.recipient() == "" {
		return models.Transaction{}, fmt.Errorf("transaction %s without recipient", t.TxnID)
	}
	if t.Amount == nil {
		return models.Transaction{}, fmt.Errorf("transaction %s without amount", t.TxnID)
	}
	if t.Amount.IsNegative() {
		return models.Transaction{}, fmt.Errorf("transaction %s has negative amount %s", t.TxnID, t.Amount)
	}
	date, err := parseDate(t.Date)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("transaction %s: bad date: %w", t.TxnID, err)
	}
	return models.Transaction{TxnID: t.TxnID, RecipientID: t.recipient(), Amount: *t.Amount, Date: date}, nil
}

// dateLayouts are tried in order. Layouts without a zone are read as UTC.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	time.DateTime,
	time.DateOnly,
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

type wireUser struct {
	ID              string            `json:"id"`
	MongoID         string            `json:"_id"`
	Name            string            `json:"name"`
	Email           string            `json:"email"`
	Address         string            `json:"address"`
	MobileNumber    string            `json:"mobileNumber"`
	AmountAvailable *decimal.Decimal  `json:"amountAvailable"`
	Transactions    []wireTransaction `json:"transactions"`
}

func (u wireUser) id() string {
	if u.MongoID != "" {
		return u.MongoID
	}
	return u.ID
}

func (u wireUser) amount() decimal.Decimal {
	if u.AmountAvailable == nil {
		return decimal.Zero
	}
	return *u.AmountAvailable
}

func (u wireUser) profile() models.Profile {
	return models.Profile{
		Name:            u.Name,
		Email:           u.Email,
		Address:         u.Address,
		MobileNumber:    u.MobileNumber,
		AmountAvailable: u.amount(),
	}
}

func (u wireUser) summary() models.UserSummary {
	return models.UserSummary{
		ID:              u.id(),
		Name:            u.Name,
		Email:           u.Email,
		MobileNumber:    u.MobileNumber,
		AmountAvailable: u.amount(),
	}
}

type authResponse struct {
	AccessToken string    `json:"accessToken"`
	Token       string    `json:"token"`
	User        *wireUser `json:"user"`
}

func (r *authResponse) token() string {
	if r.AccessToken != "" {
		return r.AccessToken
	}
	return r.Token
}

func (r *authResponse) validate() error {
	if r.token() == "" {
		return errors.New("missing access token")
	}
	if r.User == nil || r.User.id() == "" {
		return errors.New("missing user id")
	}
	return nil
}

func (r *authResponse) session() models.Session {
	return models.Session{UserID: r.User.id(), Token: r.token(), Profile: r.User.profile()}
}

type userResponse struct {
	User *wireUser `json:"user"`
}

func (r *userResponse) validate() error {
	if r.User == nil {
		return errors.New("missing user")
	}
	return nil
}

type usersResponse struct {
	Users *[]wireUser `json:"users"`
}

func (r *usersResponse) validate() error {
	if r.Users == nil {
		return errors.New("missing users")
	}
	seen := make(map[string]struct{}, len(*r.Users))
	for _, u := range *r.Users {
		id := u.id()
		if id == "" {
			return errors.New("user without id")
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("duplicate user id %s", id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

type transactionResponse struct {
	Transaction *wireTransaction `json:"transaction"`
}

func (r *transactionResponse) validate() error {
	if r.Transaction == nil {
		return errors.New("missing transaction")
	}
	_, err := r.Transaction.toModel()
	return err
}
