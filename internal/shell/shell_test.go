package shell

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// stream pairs a canned input with a capture buffer so a Shell can be
// exercised without any networking.
type stream struct {
	io.Reader
	out bytes.Buffer
}

func (s *stream) Write(p []byte) (int, error) { return s.out.Write(p) }

// newBareShell returns a Shell with no prompt and no intro so tests can
// assert the exact bytes produced by command handlers.
func newBareShell(rw io.ReadWriter) *Shell {
	return &Shell{
		in:       bufio.NewReader(rw),
		out:      rw,
		commands: DefaultCommands(),
	}
}

func runShell(input string) string {
	rw := &stream{Reader: strings.NewReader(input)}
	newBareShell(rw).Run()
	return rw.out.String()
}

func TestGreetWithName(t *testing.T) {
	assert.Equal(t, "Hey Alice! Nice to see you!\r\n", runShell("greet Alice\n"))
}

func TestGreetWithoutName(t *testing.T) {
	assert.Equal(t, "Hello there!\r\n", runShell("greet\n"))
}

func TestLineTerminators(t *testing.T) {
	// LF, CRLF, and bare CR must all terminate a line; interactive
	// clients in raw mode send a bare CR on Enter.
	cases := []struct {
		name  string
		input string
	}{
		{"LF", "greet Alice\n"},
		{"CRLF", "greet Alice\r\n"},
		{"CR", "greet Alice\r"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, "Hey Alice! Nice to see you!\r\n", runShell(tc.input))
		})
	}
}

func TestMixedTerminatorsAcrossLines(t *testing.T) {
	got := runShell("greet Bob\rgreet Bob\r\ngreet Bob\n")
	assert.Equal(t, "Hey Bob! Nice to see you!\r\nHey Bob! Nice to see you!\r\nHey Bob! Nice to see you!\r\n", got)
}

func TestCRTerminatedByeWhileStreamStaysOpen(t *testing.T) {
	// The line must be dispatched as soon as the CR arrives, not when
	// the connection eventually closes.
	pr, pw := io.Pipe()
	rw := &stream{Reader: pr}
	s := newBareShell(rw)

	done := make(chan struct{})
	go func() {
		s.Run()
		close(done)
	}()

	_, err := io.WriteString(pw, "bye\r")
	assert.NoError(t, err)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("shell did not terminate on a CR-terminated bye")
	}
	pw.Close()
	assert.Equal(t, "See you later!\r\n", rw.out.String())
}

func TestByeTerminatesSession(t *testing.T) {
	// Lines after "bye" must never be dispatched.
	got := runShell("bye\ngreet Alice\n")
	assert.Equal(t, "See you later!\r\n", got)
}

func TestByeWithoutTrailingNewline(t *testing.T) {
	assert.Equal(t, "See you later!\r\n", runShell("bye"))
}

func TestUnknownCommandKeepsSessionOpen(t *testing.T) {
	got := runShell("foo bar\nbye\n")
	assert.Equal(t, "*** Unknown syntax: foo bar\r\nSee you later!\r\n", got)
}

func TestGreetIsIdempotent(t *testing.T) {
	got := runShell("greet Bob\ngreet Bob\n")
	assert.Equal(t, "Hey Bob! Nice to see you!\r\nHey Bob! Nice to see you!\r\n", got)
}

func TestBlankLinesAreIgnored(t *testing.T) {
	assert.Equal(t, "See you later!\r\n", runShell("\n   \nbye\n"))
}

func TestIntroAndPromptWrittenOnce(t *testing.T) {
	rw := &stream{Reader: strings.NewReader("")}
	New(rw).Run()
	assert.Equal(t, Intro+"\r\n"+Prompt, rw.out.String())
}

func TestWriteAfterCloseIsNoOp(t *testing.T) {
	rw := &stream{Reader: strings.NewReader("")}
	s := newBareShell(rw)
	s.Close()
	s.Print("dropped")
	s.Printline("also dropped")
	assert.Empty(t, rw.out.String())
}

// failWriter refuses every write, simulating a client that disconnected
// mid-response.
type failWriter struct{ io.Reader }

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestFailedWriteMarksStreamClosed(t *testing.T) {
	s := newBareShell(failWriter{strings.NewReader("")})
	s.Print("first write fails")
	assert.True(t, s.closed)
	// Must not panic once closed.
	s.Printline("silently discarded")
}

func TestDispatchSplitsCommandAndArgument(t *testing.T) {
	cases := []struct {
		line string
		want string
	}{
		{"greet Alice Smith", "Hey Alice Smith! Nice to see you!\r\n"},
		{"greet   Carol", "Hey Carol! Nice to see you!\r\n"},
		{"greetings", "*** Unknown syntax: greetings\r\n"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, runShell(tc.line+"\n"), "input %q", tc.line)
	}
}
