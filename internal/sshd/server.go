package sshd

import (
	"net"

	"golang.org/x/crypto/ssh"
)

// ServeConn handles an incoming connection for the sshell server.
//
// It performs the SSH handshake over the accepted socket, serves the
// single interactive session channel, and closes the transport when the
// shell completes. Handshake failures (bad protocol exchange, rejected
// auth, client disconnect mid-negotiation) abandon only this connection;
// nothing propagates to the listener.
//
// The optional onAuthSuccess callback is invoked after a successful
// handshake, allowing the caller to track authenticated sessions.
func ServeConn(conn net.Conn, config *ssh.ServerConfig, onAuthSuccess func()) {
	sshConn, chans, reqs, err := ssh.NewServerConn(conn, config)
	if err != nil {
		conn.Close()
		return
	}
	defer sshConn.Close()

	if onAuthSuccess != nil {
		onAuthSuccess()
	}

	// Global requests are not used by the shell session.
	go ssh.DiscardRequests(reqs)
	ServeChannels(chans)
}
