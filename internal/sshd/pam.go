package sshd

import (
	"log"

	pam "github.com/msteinert/pam/v2"
)

// PAMPolicy authenticates users against the system's PAM stack. Selected
// with --auth pam; requires the server to run with enough privilege to
// consult the configured PAM service.
type PAMPolicy struct {
	// Service is the PAM service name. Empty means "sshd".
	Service string
}

// Authenticate runs a PAM transaction for the given credentials.
func (p PAMPolicy) Authenticate(username, password string) bool {
	service := p.Service
	if service == "" {
		service = "sshd"
	}
	// Start PAM authentication session with callback for password prompt.
	t, err := pam.StartFunc(service, username, func(s pam.Style, msg string) (string, error) {
		switch s {
		case pam.PromptEchoOff:
			// Password prompt (hidden input).
			return password, nil
		case pam.TextInfo:
			// Informational message, no input needed.
			return "", nil
		default:
			return "", nil
		}
	})
	if err != nil {
		log.Printf("PAMPolicy: PAM error for user '%s'", username)
		return false
	}
	return t.Authenticate(0) == nil
}
