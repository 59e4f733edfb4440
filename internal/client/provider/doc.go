// Package provider owns the client's authentication state.
//
// Provider is the only component that writes the session store. Views read
// the current session through it and run privileged gateway calls through
// Provider.Authorized, which binds the bearer token and invalidates the
// session when the API rejects it.
package provider
