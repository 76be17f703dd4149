// Package server implements the listener and per-connection dispatch for
// sshell.
//
// Features:
//   - TCP listener with periodic accept deadlines so shutdown requests
//     are noticed promptly
//   - One goroutine per accepted connection; connection state is
//     strictly local to its Session
//   - Tracking of authenticated sessions with concurrency-safe counters
//   - Signal-driven shutdown (SIGINT/SIGTERM)
//
// A failed or misbehaving client only ever costs its own Session; errors
// during negotiation or the shell loop never reach the accept loop.
package server
