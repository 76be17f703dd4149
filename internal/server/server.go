package server

import (
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"sshell/internal/config"
	"sshell/internal/sshd"
)

// acceptPollInterval bounds how long a shutdown request can go unnoticed
// while the listener blocks in Accept.
const acceptPollInterval = 2 * time.Second

// Server accepts incoming TCP connections and spawns a Session per
// client. It tracks authenticated sessions; all other state lives in the
// sessions themselves.
type Server struct {
	cfg       *config.Config
	sshConfig *sshd.ServerConfig

	running     atomic.Bool
	sessions    sync.Map // map[*Session]struct{}
	activeCount int32
}

// New constructs a Server from the runtime configuration and a prepared
// SSH server configuration.
func New(cfg *config.Config, sshConfig *sshd.ServerConfig) *Server {
	return &Server{cfg: cfg, sshConfig: sshConfig}
}

// Add records an authenticated session.
func (s *Server) Add(sess *Session) {
	s.sessions.Store(sess, struct{}{})
	log.Println("Session added. Active:", atomic.AddInt32(&s.activeCount, 1))
}

// Remove drops a session from the active set.
func (s *Server) Remove(sess *Session) {
	s.sessions.Delete(sess)
	log.Println("Session removed. Active:", atomic.AddInt32(&s.activeCount, -1))
}

// ListenAndServe binds the configured TCP endpoint and serves it until
// Shutdown is called or the listener fails.
func (s *Server) ListenAndServe() error {
	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %v", addr, err)
	}
	log.Printf("Listening on %s", ln.Addr())
	return s.Serve(ln)
}

// Serve accepts connections on ln and spawns a Session per client. The
// accept deadline is refreshed each iteration so the running flag is
// polled even when no clients arrive.
func (s *Server) Serve(ln net.Listener) error {
	defer ln.Close()
	s.running.Store(true)
	for s.running.Load() {
		if tcpLn, ok := ln.(*net.TCPListener); ok {
			tcpLn.SetDeadline(time.Now().Add(acceptPollInterval))
		}
		conn, err := ln.Accept()
		if err != nil {
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				continue
			}
			if !s.running.Load() {
				return nil
			}
			return fmt.Errorf("accept failed: %v", err)
		}
		sess := &Session{client: conn, server: s, id: conn.RemoteAddr().String()}
		go sess.Handle()
	}
	return nil
}

// Shutdown asks the accept loop to stop. In-flight sessions are not
// interrupted; their connections close when their shells complete.
func (s *Server) Shutdown() {
	s.running.Store(false)
}

// Run starts the server and blocks until a shutdown signal arrives or
// the listener fails.
func Run(cfg *config.Config, sshConfig *sshd.ServerConfig) error {
	s := New(cfg, sshConfig)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	errc := make(chan error, 1)
	go func() {
		errc <- s.ListenAndServe()
	}()

	select {
	case <-sig:
		log.Println("Shutting down...")
		s.Shutdown()
		return nil
	case err := <-errc:
		return err
	}
}
