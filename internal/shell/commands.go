package shell

// Command is a single entry in the interpreter's command table. Run
// receives the remainder of the input line as its argument and reports
// whether the session should terminate.
type Command struct {
	Name string
	Help string
	Run  func(s *Shell, arg string) bool
}

// DefaultCommands builds the command table served to clients. The table
// is constructed once per Shell and never mutated afterwards, so it is
// safe for any number of concurrent sessions to hold their own copy.
func DefaultCommands() map[string]Command {
	table := make(map[string]Command)
	for _, cmd := range []Command{
		{Name: "greet", Help: "greet [name] - say hello", Run: cmdGreet},
		{Name: "bye", Help: "bye - end the session", Run: cmdBye},
	} {
		table[cmd.Name] = cmd
	}
	return table
}

func cmdGreet(s *Shell, arg string) bool {
	if arg != "" {
		s.Printline("Hey " + arg + "! Nice to see you!")
	} else {
		s.Printline("Hello there!")
	}
	return false
}

func cmdBye(s *Shell, arg string) bool {
	s.Printline("See you later!")
	return true
}
