// Package gateway is the only caller of the remote fraud-sentry API.
//
// # Overview
//
// Gateway is the transport-agnostic contract used by the session provider
// and the page views; HTTPClient implements it over HTTP/JSON. Every
// operation is one request/response exchange: no retries, no caching and no
// client-side timeout beyond the caller's context.
//
// # Authentication
//
// Privileged calls carry the bearer token found in the context:
//
//	ctx = gateway.WithToken(ctx, sess.Token)
//	txns, err := gw.FetchTransactions(ctx, sess.UserID)
//
// # Error Handling
//
// Failures are returned as *Error values whose Kind is one of the sentinel
// errors (ErrInvalidCredentials, ErrUnauthorized, ErrMalformedResponse, ...).
// Match them with errors.Is. Any non-2xx status is a failure regardless of
// the body; a 2xx whose body does not match the expected schema is
// ErrMalformedResponse.
//
// # Metrics
//
// When built WithRegisterer, the client records request counts by operation
// and outcome, and request latency by operation.
package gateway
