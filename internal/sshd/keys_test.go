package sshd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadHostKeyRoundTrip(t *testing.T) {
	key, err := NewRSAPrivateKey(2048)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "host_key")
	require.NoError(t, os.WriteFile(path, RSAPrivateKeyPEM(key), 0600))

	signer, err := LoadHostKey(path, "")
	require.NoError(t, err)
	assert.Equal(t, "ssh-rsa", signer.PublicKey().Type())
}

func TestLoadHostKeyMissingFile(t *testing.T) {
	_, err := LoadHostKey(filepath.Join(t.TempDir(), "nope"), "")
	assert.Error(t, err)
}

func TestLoadHostKeyCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "host_key")
	require.NoError(t, os.WriteFile(path, []byte("not a key"), 0600))

	_, err := LoadHostKey(path, "")
	assert.Error(t, err)
}

func TestGenerateHostKeyRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "host_key")
	require.NoError(t, os.WriteFile(path, []byte("existing"), 0600))

	assert.Error(t, GenerateHostKey(path))
}
