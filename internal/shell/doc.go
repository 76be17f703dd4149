// Package shell implements the line-oriented command interpreter served to
// authenticated SSH clients.
//
// Features:
//   - Static command table mapping command names to handler functions
//   - Read-dispatch-respond loop over any bidirectional text stream
//   - CRLF-terminated, immediately flushed output writes
//   - Silent no-op writes once the output stream is closed
//
// The interpreter is independent of networking: it operates on an arbitrary
// io.ReadWriter, so it can be bound to an SSH channel in production and to an
// in-memory buffer in tests. A session terminates when a command handler
// signals termination (the "bye" command) or when the input stream closes.
package shell
