// Package cli provides the interactive rectrade terminal client.
//
// It wires configuration, the local credential store, the HTTP API client,
// and an interactive REPL over the session, recovery, and dashboard services.
// Typical flow: restore a previous session from the stored token, then
// execute user commands until exit.
//
// Key features:
//   - login / signup / logout against the platform identity service
//   - password recovery (email, 6-character code, password reset)
//   - profile inspection and partial updates
//   - dashboard summary refresh and role-gated section listing
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
