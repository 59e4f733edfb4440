package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	"github.com/dmitrijs2005/fraudsentry/internal/client/models"
	"github.com/dmitrijs2005/fraudsentry/internal/common"
	"github.com/dmitrijs2005/fraudsentry/internal/logging"
)

// maxBodySize caps how much of a response body is read.
const maxBodySize = 1 << 20

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

type Option func(*HTTPClient)

// WithHTTPClient replaces the default *http.Client.
func WithHTTPClient(d httpDoer) Option {
	return func(c *HTTPClient) { c.http = d }
}

// WithRegisterer registers the client's metrics on reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(c *HTTPClient) { c.reg = reg }
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.log = l }
}

// HTTPClient implements Gateway over HTTP/JSON.
type HTTPClient struct {
	baseURL *url.URL
	http    httpDoer
	reg     prometheus.Registerer
	metrics *metrics
	log     logging.Logger
}

var _ Gateway = (*HTTPClient)(nil)

// New returns a client for the API rooted at baseURL, e.g.
// "http://localhost:3001/api".
func New(baseURL string, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse api base url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("api base url %q must be an absolute http(s) url", baseURL)
	}

	c := &HTTPClient{baseURL: u, http: &http.Client{}, log: logging.Discard()}
	for _, opt := range opts {
		opt(c)
	}
	c.metrics = newMetrics(c.reg)
	return c, nil
}

// call describes one exchange with the API.
type call struct {
	op     string
	method string
	path   []string
	body   any
	out    any
	policy policy
}

func (c *HTTPClient) do(ctx context.Context, cl call) error {
	started := time.Now()
	status, err := c.roundTrip(ctx, cl)
	c.metrics.observe(cl.op, started, err)

	if err != nil {
		c.log.Warn(ctx, "api call failed", "op", cl.op, "status", status, "error", err)
		return err
	}
	c.log.Debug(ctx, "api call succeeded", "op", cl.op, "status", status)
	return nil
}

func (c *HTTPClient) roundTrip(ctx context.Context, cl call) (int, error) {
	segments := make([]string, len(cl.path))
	for i, s := range cl.path {
		segments[i] = url.PathEscape(s)
	}
	endpoint := c.baseURL.JoinPath(segments...)

	var body io.Reader
	if cl.body != nil {
		raw, err := json.Marshal(cl.body)
		if err != nil {
			return 0, &Error{Op: cl.op, Kind: ErrValidationFailed, Err: err}
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, endpoint.String(), body)
	if err != nil {
		return 0, &Error{Op: cl.op, Kind: ErrUnavailable, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if cl.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := TokenFromContext(ctx); tok != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+" "+tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, &Error{Op: cl.op, Kind: ErrUnavailable, Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return resp.StatusCode, &Error{Op: cl.op, Status: resp.StatusCode, Kind: ErrUnavailable, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		_ = json.Unmarshal(raw, &eb)
		return resp.StatusCode, &Error{
			Op:      cl.op,
			Status:  resp.StatusCode,
			Kind:    cl.policy.classify(resp.StatusCode, eb.Code),
			Message: eb.text(),
		}
	}

	if cl.out == nil {
		return resp.StatusCode, nil
	}
	if err := json.Unmarshal(raw, cl.out); err != nil {
		return resp.StatusCode, &Error{Op: cl.op, Status: resp.StatusCode, Kind: ErrMalformedResponse, Err: err}
	}
	if v, ok := cl.out.(validator); ok {
		if err := v.validate(); err != nil {
			return resp.StatusCode, &Error{Op: cl.op, Status: resp.StatusCode, Kind: ErrMalformedResponse, Err: err}
		}
	}
	return resp.StatusCode, nil
}

func malformed(op string, err error) error {
	return &Error{Op: op, Status: http.StatusOK, Kind: ErrMalformedResponse, Err: err}
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (models.Session, error) {
	var resp authResponse
	err := c.do(ctx, call{
		op: "login", method: http.MethodPost, path: []string{"auth", "login"},
		body: loginRequest{Email: email, Password: password}, out: &resp, policy: loginPolicy,
	})
	if err != nil {
		return models.Session{}, err
	}
	return resp.session(), nil
}

func (c *HTTPClient) Register(ctx context.Context, in RegisterInput) (models.Session, error) {
	deviceID := in.DeviceID
	if deviceID == "" {
		deviceID = common.UnknownDeviceID
	}

	var resp authResponse
	err := c.do(ctx, call{
		op: "register", method: http.MethodPost, path: []string{"auth", "register"},
		body: registerRequest{
			Name:         in.Profile.Name,
			Email:        in.Profile.Email,
			Address:      in.Profile.Address,
			MobileNumber: in.Profile.MobileNumber,
			Password:     in.Password,
			MacAddresses: deviceID,
		},
		out: &resp, policy: registerPolicy,
	})
	if err != nil {
		return models.Session{}, err
	}
	return resp.session(), nil
}

func (c *HTTPClient) RequestPasswordReset(ctx context.Context, email string) error {
	return c.do(ctx, call{
		op: "forgot_password", method: http.MethodPost, path: []string{"auth", "forgot-password"},
		body: emailRequest{Email: email}, policy: forgotPolicy,
	})
}

func (c *HTTPClient) VerifyOTP(ctx context.Context, email, otp string) error {
	return c.do(ctx, call{
		op: "verify_otp", method: http.MethodPost, path: []string{"auth", "verify-otp"},
		body: verifyOTPRequest{Email: email, OTP: otp}, policy: verifyPolicy,
	})
}

func (c *HTTPClient) ResetPassword(ctx context.Context, email, newPassword string) error {
	return c.do(ctx, call{
		op: "reset_password", method: http.MethodPost, path: []string{"auth", "reset-password"},
		body: resetPasswordRequest{Email: email, NewPassword: newPassword}, policy: resetPolicy,
	})
}

func (c *HTTPClient) FetchProfile(ctx context.Context, userID string) (models.Profile, error) {
	var resp userResponse
	err := c.do(ctx, call{
		op: "fetch_profile", method: http.MethodGet, path: []string{"auth", userID},
		out: &resp, policy: fetchProfilePolicy,
	})
	if err != nil {
		return models.Profile{}, err
	}
	return resp.User.profile(), nil
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, userID string, fields models.ProfileFields) (models.Profile, error) {
	var resp userResponse
	err := c.do(ctx, call{
		op: "update_profile", method: http.MethodPut, path: []string{"auth", userID},
		body: fields, out: &resp, policy: updateProfilePolicy,
	})
	if err != nil {
		return models.Profile{}, err
	}
	return resp.User.profile(), nil
}

// ListUsers returns the directory without the caller's own entry, in API order.
func (c *HTTPClient) ListUsers(ctx context.Context, excludingUserID string) ([]models.UserSummary, error) {
	var resp usersResponse
	err := c.do(ctx, call{
		op: "list_users", method: http.MethodGet, path: []string{"auth", "users", excludingUserID},
		out: &resp, policy: listUsersPolicy,
	})
	if err != nil {
		return nil, err
	}

	out := make([]models.UserSummary, 0, len(*resp.Users))
	for _, u := range *resp.Users {
		if u.id() == excludingUserID {
			continue
		}
		out = append(out, u.summary())
	}
	return out, nil
}

// FetchTransactions returns the user's history in the order the API sent it.
func (c *HTTPClient) FetchTransactions(ctx context.Context, userID string) ([]models.Transaction, error) {
	const op = "fetch_transactions"

	var resp userResponse
	err := c.do(ctx, call{
		op: op, method: http.MethodGet, path: []string{"auth", userID},
		out: &resp, policy: historyPolicy,
	})
	if err != nil {
		return nil, err
	}

	out := make([]models.Transaction, 0, len(resp.User.Transactions))
	for _, t := range resp.User.Transactions {
		m, err := t.toModel()
		if err != nil {
			return nil, malformed(op, err)
		}
		out = append(out, m)
	}
	return out, nil
}

func (c *HTTPClient) SendTransaction(ctx context.Context, senderID, recipientID string, amount decimal.Decimal) (models.Transaction, error) {
	const op = "send_transaction"

	if amount.Sign() <= 0 {
		return models.Transaction{}, &Error{Op: op, Kind: ErrValidationFailed, Err: errors.New("amount must be positive")}
	}

	var resp transactionResponse
	err := c.do(ctx, call{
		op: op, method: http.MethodPost, path: []string{"auth", "transactions"},
		body:   sendRequest{SenderID: senderID, ReceiverID: recipientID, Amount: json.Number(amount.String())},
		out:    &resp,
		policy: sendPolicy,
	})
	if err != nil {
		return models.Transaction{}, err
	}

	// already validated by transactionResponse.validate
	m, _ := resp.Transaction.toModel()
	return m, nil
}
