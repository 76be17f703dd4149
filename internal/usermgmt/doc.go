// Package usermgmt provides the file-backed credential store for sshell.
//
// Accounts are persisted as JSON with bcrypt password hashes and written
// atomically (temp file + rename). The Store satisfies the server's
// credential policy interface, so it can replace the built-in demo
// credential pair without touching connection handling.
package usermgmt
