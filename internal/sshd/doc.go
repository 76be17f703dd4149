// Package sshd provides the SSH server functionality for sshell.
//
// Features:
//   - Password authentication behind a pluggable CredentialPolicy
//     (static pair, user store, or PAM)
//   - Host key loading with optional passphrase, plus RSA key
//     generation for first-time setup
//   - SSH server configuration with banner and version customization
//   - Per-connection handshake and single session-channel handling
//     bound to the interactive shell
//
// Usage:
//  1. Load the host identity with LoadHostKey (fatal at startup on failure)
//  2. Pick a CredentialPolicy and build a server config with NewConfig
//  3. Accept incoming connections and hand each one to ServeConn
//
// The SSH wire protocol itself (key exchange, encryption, framing) is
// delegated entirely to golang.org/x/crypto/ssh.
package sshd
