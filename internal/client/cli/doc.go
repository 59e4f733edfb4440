// Package cli provides the interactive fraudsentry terminal client.
//
// It wires configuration, the local session database, the API gateway and
// the session provider, then drives the page views from a simple REPL:
//
//   - home: landing page with a "get started" shortcut
//   - register / login / forgot: account access and password recovery
//   - profile / edit: show and update the signed-in profile
//   - send: pick a recipient, enter an amount and confirm the transfer
//   - history: list past transactions
//   - stats: request counters and the local session slots
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
