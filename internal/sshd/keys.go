package sshd

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"os"

	"golang.org/x/crypto/ssh"
)

// HostKeyBits is the RSA key size used when generating a new host key.
const HostKeyBits = 4096

// LoadHostKey reads and parses the server's host identity from a PEM
// private key file. The passphrase is used only when the key is
// encrypted; an empty passphrase with an encrypted key is an error.
//
// The host key is loaded once at startup and is immutable for the
// lifetime of the process. A load failure must prevent the server from
// starting.
func LoadHostKey(path, passphrase string) (ssh.Signer, error) {
	pemBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read host key %s: %w", path, err)
	}
	if passphrase != "" {
		signer, err := ssh.ParsePrivateKeyWithPassphrase(pemBytes, []byte(passphrase))
		if err != nil {
			return nil, fmt.Errorf("failed to decrypt host key %s: %w", path, err)
		}
		return signer, nil
	}
	signer, err := ssh.ParsePrivateKey(pemBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse host key %s: %w", path, err)
	}
	return signer, nil
}

// NewRSAPrivateKey generates a new RSA private key of the specified bit
// size and validates it for correctness before returning.
func NewRSAPrivateKey(bitSize int) (*rsa.PrivateKey, error) {
	privateKey, err := rsa.GenerateKey(rand.Reader, bitSize)
	if err != nil {
		return nil, err
	}
	if err := privateKey.Validate(); err != nil {
		return nil, err
	}
	return privateKey, nil
}

// RSAPrivateKeyPEM encodes an RSA private key to PEM (PKCS#1) format,
// suitable for saving to disk as a host key file.
func RSAPrivateKeyPEM(privateKey *rsa.PrivateKey) []byte {
	privDER := x509.MarshalPKCS1PrivateKey(privateKey)
	privBlock := &pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: privDER,
	}
	return pem.EncodeToMemory(privBlock)
}

// GenerateHostKey creates a fresh RSA host key and writes it to path
// with owner-only permissions. It refuses to overwrite an existing file
// so an established host identity cannot be clobbered by accident.
func GenerateHostKey(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("host key %s already exists", path)
	}
	privateKey, err := NewRSAPrivateKey(HostKeyBits)
	if err != nil {
		return fmt.Errorf("failed to generate private key: %v", err)
	}
	if err := os.WriteFile(path, RSAPrivateKeyPEM(privateKey), 0600); err != nil {
		return fmt.Errorf("failed to save host key: %v", err)
	}
	return nil
}
