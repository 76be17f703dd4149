// Package config defines the runtime configuration for the sshell server
// and resolves platform-specific configuration paths.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Auth backend names accepted by --auth.
const (
	AuthStatic = "static" // built-in demo credential pair
	AuthFile   = "file"   // JSON user store with bcrypt hashes
	AuthPAM    = "pam"    // system PAM stack
)

// Default listen endpoint, matching standard SSH on loopback.
const (
	DefaultHost = "127.0.0.1"
	DefaultPort = 22
)

// Config holds every tuneable for one sshell server process.
type Config struct {
	Host        string // listen address
	Port        int    // listen port
	HostKeyPath string // PEM private key proving the server's identity
	Passphrase  string // host key passphrase, empty for unencrypted keys
	AuthBackend string // static, file, or pam
	UserDBPath  string // user store path, used with --auth file
}

// Default returns the configuration used when no flags are given.
func Default() *Config {
	return &Config{
		Host:        DefaultHost,
		Port:        DefaultPort,
		HostKeyPath: "host_key",
		AuthBackend: AuthStatic,
	}
}

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("listen address is required")
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range 1-65535", c.Port)
	}
	if c.HostKeyPath == "" {
		return fmt.Errorf("host key path is required")
	}
	switch c.AuthBackend {
	case AuthStatic, AuthFile, AuthPAM:
	default:
		return fmt.Errorf("unknown auth backend %q (expected %s, %s, or %s)",
			c.AuthBackend, AuthStatic, AuthFile, AuthPAM)
	}
	return nil
}

// EnsureDir resolves the configuration directory for sshell and creates
// it if necessary, following platform conventions:
//   - $XDG_CONFIG_HOME/sshell when XDG_CONFIG_HOME is set
//   - %APPDATA%\sshell on Windows
//   - $HOME/.config/sshell otherwise
func EnsureDir() (string, error) {
	var dir string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		dir = filepath.Join(xdg, "sshell")
	} else if appData := os.Getenv("APPDATA"); appData != "" {
		dir = filepath.Join(appData, "sshell")
	} else if home, err := os.UserHomeDir(); err == nil {
		dir = filepath.Join(home, ".config", "sshell")
	} else {
		return "", err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}

// UserDBPath returns the default path of the user store inside the
// configuration directory.
func UserDBPath() (string, error) {
	dir, err := EnsureDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "users.json"), nil
}
