package server

import (
	"log"
	"net"

	"sshell/internal/sshd"
)

// Session owns the full lifecycle of one client connection: SSH
// negotiation, the interactive shell, and teardown. State is entirely
// local to the session; nothing is shared across connections except the
// immutable server configuration.
type Session struct {
	client net.Conn
	server *Server
	id     string
}

// Handle runs the session to completion, blocking its goroutine. Any
// negotiation failure abandons only this connection.
func (s *Session) Handle() {
	log.Println(s.id + " - connection opened")

	authenticated := false
	sshd.ServeConn(s.client, s.server.sshConfig, func() {
		authenticated = true
		s.server.Add(s)
	})

	if authenticated {
		s.server.Remove(s)
	}
	log.Println(s.id + " - connection closed")
}
