package server

import (
	"io"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ssh"

	"sshell/internal/config"
	"sshell/internal/sshd"
)

// startTestServer runs a server on an ephemeral loopback port with the
// default static credential policy and returns its address.
func startTestServer(t *testing.T) string {
	t.Helper()

	key, err := sshd.NewRSAPrivateKey(2048)
	require.NoError(t, err)
	signer, err := ssh.NewSignerFromKey(key)
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	s := New(config.Default(), sshd.NewConfig(signer, sshd.DefaultPolicy()))
	go s.Serve(ln)
	t.Cleanup(func() {
		s.Shutdown()
		ln.Close()
	})
	return ln.Addr().String()
}

func clientConfig(user, pass string) *ssh.ClientConfig {
	return &ssh.ClientConfig{
		User:            user,
		Auth:            []ssh.AuthMethod{ssh.Password(pass)},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         5 * time.Second,
	}
}

func TestShellSessionEndToEnd(t *testing.T) {
	addr := startTestServer(t)

	client, err := ssh.Dial("tcp", addr, clientConfig("admin", "password"))
	require.NoError(t, err)
	defer client.Close()

	sess, err := client.NewSession()
	require.NoError(t, err)

	stdin, err := sess.StdinPipe()
	require.NoError(t, err)
	stdout, err := sess.StdoutPipe()
	require.NoError(t, err)

	// A pty is granted unconditionally.
	require.NoError(t, sess.RequestPty("xterm", 40, 80, ssh.TerminalModes{}))
	require.NoError(t, sess.Shell())

	_, err = io.WriteString(stdin, "greet Alice\nfoo bar\nbye\n")
	require.NoError(t, err)

	out, err := io.ReadAll(stdout)
	require.NoError(t, err)
	got := string(out)

	assert.Contains(t, got, "Custom SSH Shell\r\n")
	assert.Contains(t, got, "My Shell> ")
	assert.Contains(t, got, "Hey Alice! Nice to see you!\r\n")
	assert.Contains(t, got, "*** Unknown syntax: foo bar\r\n")
	assert.Contains(t, got, "See you later!\r\n")

	// The bye command reports a clean exit.
	assert.NoError(t, sess.Wait())
}

func TestBannerSentBeforeAuth(t *testing.T) {
	addr := startTestServer(t)

	var banner string
	cfg := clientConfig("admin", "password")
	cfg.BannerCallback = func(message string) error {
		banner = message
		return nil
	}

	client, err := ssh.Dial("tcp", addr, cfg)
	require.NoError(t, err)
	client.Close()

	assert.Equal(t, "My SSH Server\r\n", banner)
}

func TestRejectedCredentials(t *testing.T) {
	addr := startTestServer(t)

	cases := []struct{ user, pass string }{
		{"admin", "wrong"},
		{"eve", "password"},
	}
	for _, tc := range cases {
		_, err := ssh.Dial("tcp", addr, clientConfig(tc.user, tc.pass))
		assert.Error(t, err, "pair (%q, %q)", tc.user, tc.pass)
	}
}

func TestNonSessionChannelIsProhibited(t *testing.T) {
	addr := startTestServer(t)

	client, err := ssh.Dial("tcp", addr, clientConfig("admin", "password"))
	require.NoError(t, err)
	defer client.Close()

	_, _, err = client.OpenChannel("direct-tcpip", nil)
	var openErr *ssh.OpenChannelError
	require.ErrorAs(t, err, &openErr)
	assert.Equal(t, ssh.Prohibited, openErr.Reason)
}

func TestRawSocketDisconnectDoesNotKillListener(t *testing.T) {
	addr := startTestServer(t)

	// A client that never speaks SSH and hangs up mid-negotiation must
	// only cost its own connection.
	raw, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	raw.Write([]byte("not ssh\r\n"))
	raw.Close()

	// The listener must still serve well-behaved clients afterwards.
	client, err := ssh.Dial("tcp", addr, clientConfig("admin", "password"))
	require.NoError(t, err)
	client.Close()
}
