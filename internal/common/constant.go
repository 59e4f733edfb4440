// Package common contains constants and tiny helpers shared by the client
// packages.
package common

const (
	// AuthorizationHeaderName carries the bearer credential on privileged requests.
	AuthorizationHeaderName = "Authorization"

	// BearerScheme is the scheme prefix of the Authorization header value.
	BearerScheme = "Bearer"

	// UnknownDeviceID is sent when no device identifier could be derived.
	UnknownDeviceID = "unknown"
)
