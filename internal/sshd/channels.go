package sshd

import (
	"encoding/binary"
	"log"

	"golang.org/x/crypto/ssh"

	"sshell/internal/shell"
)

// acceptChannelKind reports whether a channel open request of the given
// kind is allowed. Only interactive "session" channels are served;
// port forwarding and subsystem channels are administratively prohibited.
func acceptChannelKind(kind string) bool {
	return kind == "session"
}

// ServeChannels processes incoming SSH channels for one connection.
//
// It rejects everything but "session" channels and serves the first
// session channel it accepts, blocking until the shell completes. One
// connection carries exactly one shell session; further channels are
// never accepted (the original protocol model is single-channel, see
// the channel/session notes in the package docs).
func ServeChannels(chans <-chan ssh.NewChannel) {
	for newChannel := range chans {
		if !acceptChannelKind(newChannel.ChannelType()) {
			newChannel.Reject(ssh.Prohibited, "only session channels are allowed")
			continue
		}

		ch, reqs, err := newChannel.Accept()
		if err != nil {
			log.Printf("ServeChannels: error accepting channel: %v", err)
			return
		}
		serveSession(ch, reqs)
		return
	}
}

// serveSession answers the channel requests that set up an interactive
// session. A pty is granted unconditionally, and a "shell" request binds
// the command interpreter to the channel and runs it to completion.
func serveSession(ch ssh.Channel, reqs <-chan *ssh.Request) {
	defer ch.Close()
	for req := range reqs {
		switch req.Type {
		case "pty-req":
			req.Reply(true, nil)
		case "shell":
			req.Reply(true, nil)
			shell.New(ch).Run()
			sendExitStatus(ch, 0)
			return
		default:
			if req.WantReply {
				req.Reply(false, nil)
			}
		}
	}
}

// sendExitStatus reports the session's exit status to the client so
// well-behaved clients close cleanly instead of reporting an abnormal
// disconnect.
func sendExitStatus(ch ssh.Channel, status uint32) {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], status)
	ch.SendRequest("exit-status", false, buf[:])
}
