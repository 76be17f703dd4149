package shell

import (
	"bufio"
	"io"
	"strings"
)

// Intro is the one-time greeting written when the interpreter starts.
// This is shown after authentication, unlike the SSH banner which is
// shown before credentials are exchanged.
const Intro = "Custom SSH Shell"

// Prompt is written at the start of every input line. It is never part
// of the input the interpreter reads back.
const Prompt = "My Shell> "

// Shell is a line-oriented command interpreter bound to a single
// bidirectional stream. One Shell serves exactly one session; it holds no
// state shared with other sessions.
type Shell struct {
	in       *bufio.Reader
	out      io.Writer
	intro    string
	prompt   string
	commands map[string]Command
	closed   bool
	skipLF   bool // a CR just ended a line; swallow one following LF
}

// New returns a Shell reading from and writing to rw, using the default
// prompt, intro and command table.
func New(rw io.ReadWriter) *Shell {
	return &Shell{
		in:       bufio.NewReader(rw),
		out:      rw,
		intro:    Intro,
		prompt:   Prompt,
		commands: DefaultCommands(),
	}
}

// Run executes the read-dispatch-respond loop until a command handler
// signals termination or the input stream closes. It blocks the calling
// goroutine; the read is the sole suspension point per iteration.
func (s *Shell) Run() {
	if s.intro != "" {
		s.Printline(s.intro)
	}
	for {
		s.Print(s.prompt)
		line, err := s.readLine()
		// A partial line before EOF is still dispatched, so a client
		// that sends "bye" without a trailing newline gets a farewell.
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			if s.dispatch(trimmed) {
				return
			}
		}
		if err != nil {
			return
		}
	}
}

// readLine reads the next input line in universal-newline fashion: LF,
// CRLF, and a bare CR all terminate a line. Interactive clients send a
// bare CR on Enter once the granted pty puts their terminal in raw
// mode, so CR must complete a line without waiting for more input.
func (s *Shell) readLine() (string, error) {
	var b strings.Builder
	for {
		c, err := s.in.ReadByte()
		if err != nil {
			return b.String(), err
		}
		if c == '\n' && s.skipLF && b.Len() == 0 {
			s.skipLF = false
			continue
		}
		s.skipLF = false
		switch c {
		case '\n':
			return b.String(), nil
		case '\r':
			s.skipLF = true
			return b.String(), nil
		default:
			b.WriteByte(c)
		}
	}
}

// dispatch interprets the first whitespace-delimited token of line as a
// command name and invokes the matching handler with the remainder of the
// line as its argument. It reports whether the session should terminate.
func (s *Shell) dispatch(line string) bool {
	name, arg, _ := strings.Cut(line, " ")
	cmd, ok := s.commands[name]
	if !ok {
		s.Printline("*** Unknown syntax: " + line)
		return false
	}
	return cmd.Run(s, strings.TrimSpace(arg))
}

// Print writes value to the output stream, flushing immediately. Writing
// to a closed stream is a silent no-op, and a failed write marks the
// stream closed so a client disconnecting mid-response cannot fault the
// interpreter.
func (s *Shell) Print(value string) {
	if s.closed {
		return
	}
	if _, err := io.WriteString(s.out, value); err != nil {
		s.closed = true
	}
}

// Printline writes value terminated by a carriage-return+line-feed pair.
func (s *Shell) Printline(value string) {
	s.Print(value + "\r\n")
}

// Close marks the output stream closed. Subsequent writes are discarded.
func (s *Shell) Close() {
	s.closed = true
}
