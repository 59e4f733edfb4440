package gateway

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrValidationFailed   = errors.New("validation failed")
	ErrEmailTaken         = errors.New("email already registered")
	ErrNotFound           = errors.New("not found")
	ErrInvalidOTP         = errors.New("invalid otp")
	ErrResetFailed        = errors.New("password reset failed")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInsufficientFunds  = errors.New("insufficient funds")

	// ErrUnavailable means the request never produced an HTTP response.
	ErrUnavailable = errors.New("server unavailable")
	// ErrServer covers 5xx responses.
	ErrServer = errors.New("server error")
	// ErrMalformedResponse is a 2xx response that does not match the schema.
	ErrMalformedResponse = errors.New("malformed response")
)

// Error is a classified gateway failure.
type Error struct {
	// Op is the gateway operation, e.g. "login".
	Op string
	// Status is the HTTP status, 0 when no response was received.
	Status int
	// Kind is one of the package's sentinel errors.
	Kind error
	// Message is the server-provided message, if any. For logs only.
	Message string
	// Err is the underlying cause (transport or decoding error), if any.
	Err error
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %v", e.Op, e.Kind)
	if e.Status != 0 {
		fmt.Fprintf(&b, " (status %d)", e.Status)
	}
	if e.Message != "" {
		fmt.Fprintf(&b, ": %s", e.Message)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// Kind returns the classification of err, or nil when err is not a gateway error.
func Kind(err error) error {
	var gwErr *Error
	if errors.As(err, &gwErr) {
		return gwErr.Kind
	}
	return nil
}

// policy maps failure statuses of one operation to error kinds. Body codes
// only refine 4xx replies. Statuses not listed fall back to clientErr for 4xx
// and ErrServer for everything else.
type policy struct {
	byStatus  map[int]error
	byCode    map[string]error
	clientErr error
}

func (p policy) classify(status int, code string) error {
	clientSide := status >= 400 && status < 500
	if k, ok := p.byCode[code]; ok && code != "" && clientSide {
		return k
	}
	if k, ok := p.byStatus[status]; ok {
		return k
	}
	if clientSide && p.clientErr != nil {
		return p.clientErr
	}
	return ErrServer
}

var privileged = map[int]error{401: ErrUnauthorized, 403: ErrUnauthorized}

func withPrivileged(extra map[int]error) map[int]error {
	m := make(map[int]error, len(privileged)+len(extra))
	for k, v := range privileged {
		m[k] = v
	}
	for k, v := range extra {
		m[k] = v
	}
	return m
}

var (
	loginPolicy    = policy{clientErr: ErrInvalidCredentials}
	registerPolicy = policy{byStatus: map[int]error{409: ErrEmailTaken}, byCode: map[string]error{"email_taken": ErrEmailTaken}, clientErr: ErrValidationFailed}
	forgotPolicy   = policy{clientErr: ErrNotFound}
	verifyPolicy   = policy{clientErr: ErrInvalidOTP}
	resetPolicy    = policy{clientErr: ErrResetFailed}

	fetchProfilePolicy  = policy{byStatus: withPrivileged(map[int]error{404: ErrNotFound}), clientErr: ErrNotFound}
	updateProfilePolicy = policy{byStatus: withPrivileged(nil), byCode: map[string]error{"email_taken": ErrEmailTaken}, clientErr: ErrValidationFailed}
	listUsersPolicy     = policy{byStatus: withPrivileged(map[int]error{404: ErrNotFound}), clientErr: ErrValidationFailed}
	historyPolicy       = policy{byStatus: withPrivileged(map[int]error{404: ErrNotFound}), clientErr: ErrNotFound}
	sendPolicy          = policy{
		byStatus:  withPrivileged(map[int]error{402: ErrInsufficientFunds, 404: ErrNotFound}),
		byCode:    map[string]error{"insufficient_funds": ErrInsufficientFunds},
		clientErr: ErrValidationFailed,
	}
)
