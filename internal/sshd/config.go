package sshd

import (
	"golang.org/x/crypto/ssh"
)

// ServerConfig is a type alias for ssh.ServerConfig, re-exported so the
// server package can carry the configuration without directly importing
// golang.org/x/crypto/ssh.
type ServerConfig = ssh.ServerConfig

// Banner is shown to clients before authentication happens. This is
// different from the shell's intro text, which is displayed after
// authentication.
const Banner = "My SSH Server\r\n"

// ServerVersion is the identification string sent during the protocol
// version exchange.
const ServerVersion = "SSH-2.0-sshell_1.0"

// NewConfig builds the SSH server configuration: password authentication
// via the given credential policy, the pre-auth banner, the version
// string, and the host identity proven to clients during key exchange.
func NewConfig(hostKey ssh.Signer, policy CredentialPolicy) *ssh.ServerConfig {
	config := &ssh.ServerConfig{
		PasswordCallback: PasswordAuth(policy),
		BannerCallback: func(conn ssh.ConnMetadata) string {
			return Banner
		},
	}
	config.ServerVersion = ServerVersion
	config.AddHostKey(hostKey)
	return config
}
