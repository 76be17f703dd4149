package sshd

import (
	"fmt"
	"log"

	"golang.org/x/crypto/ssh"
)

// CredentialPolicy decides whether a username/password pair may open a
// session. Implementations must be pure: no side effects, the same
// decision for the same pair on every call, and safe for concurrent use
// from multiple connection handlers.
type CredentialPolicy interface {
	Authenticate(username, password string) bool
}

// StaticPolicy accepts exactly one configured credential pair. It is the
// demo default; a production deployment replaces it with a user store or
// PAM without touching connection handling.
type StaticPolicy struct {
	Username string
	Password string
}

// Authenticate reports whether the pair matches the configured credential.
func (p StaticPolicy) Authenticate(username, password string) bool {
	return username == p.Username && password == p.Password
}

// DefaultPolicy returns the built-in demo credential pair.
func DefaultPolicy() StaticPolicy {
	return StaticPolicy{Username: "admin", Password: "password"}
}

// PasswordAuth adapts a CredentialPolicy to an ssh.PasswordCallback.
// The SSH layer calls it during negotiation; rejection surfaces to the
// client as a failed authentication attempt, never as a dropped
// connection.
func PasswordAuth(policy CredentialPolicy) func(ssh.ConnMetadata, []byte) (*ssh.Permissions, error) {
	return func(c ssh.ConnMetadata, password []byte) (*ssh.Permissions, error) {
		if policy.Authenticate(c.User(), string(password)) {
			log.Printf("PasswordAuth: successful login for user '%s'", c.User())
			return nil, nil
		}
		log.Printf("PasswordAuth: failed login attempt for user '%s'", c.User())
		return nil, fmt.Errorf("invalid credentials")
	}
}
