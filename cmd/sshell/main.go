// Package main is the entry point for the sshell server.
//
// It provides the command-line interface for running the demo SSH shell
// server and managing the optional user store.
//
// Usage:
//
//	sshell [flags]              # Start the server
//	sshell keygen [path]        # Generate a host key
//	sshell add-user ...         # Add a user to the store
//	sshell remove-user ...      # Remove a user
//	sshell help                 # Show help
package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	flag "github.com/spf13/pflag"
	"golang.org/x/crypto/ssh"
	"golang.org/x/term"

	"sshell/internal/config"
	"sshell/internal/server"
	"sshell/internal/sshd"
	"sshell/internal/usermgmt"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "keygen":
			path := "host_key"
			if len(os.Args) > 2 {
				path = os.Args[2]
			}
			if err := sshd.GenerateHostKey(path); err != nil {
				fmt.Printf("Error generating host key: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("Host key written to %s\n", path)
			return

		case "add-user":
			if len(os.Args) != 4 {
				fmt.Println("Usage: sshell add-user <username> <password>")
				os.Exit(1)
			}
			store := openStore()
			if err := store.Add(os.Args[2], os.Args[3]); err != nil {
				fmt.Printf("Error adding user: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("User '%s' added successfully!\n", os.Args[2])
			return

		case "remove-user":
			if len(os.Args) != 3 {
				fmt.Println("Usage: sshell remove-user <username>")
				os.Exit(1)
			}
			store := openStore()
			if err := store.Remove(os.Args[2]); err != nil {
				fmt.Printf("Error removing user: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("User '%s' removed successfully!\n", os.Args[2])
			return

		case "list-users":
			store := openStore()
			for _, name := range store.Names() {
				fmt.Println(name)
			}
			return

		case "enable-user", "disable-user":
			if len(os.Args) != 3 {
				fmt.Printf("Usage: sshell %s <username>\n", os.Args[1])
				os.Exit(1)
			}
			store := openStore()
			enable := os.Args[1] == "enable-user"
			if err := store.SetEnabled(os.Args[2], enable); err != nil {
				fmt.Printf("Error updating user: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("User '%s' updated successfully!\n", os.Args[2])
			return

		case "help", "-h", "--help":
			printUsage()
			return
		}
	}

	serve(os.Args[1:])
}

// serve parses the server flags and runs the listener until shutdown.
func serve(args []string) {
	cfg := config.Default()
	fs := flag.NewFlagSet("sshell", flag.ExitOnError)
	fs.StringVarP(&cfg.Host, "listen", "l", cfg.Host, "Listen address")
	fs.IntVarP(&cfg.Port, "port", "p", cfg.Port, "Listen port")
	fs.StringVarP(&cfg.HostKeyPath, "host-key", "k", cfg.HostKeyPath, "Host private key file (PEM)")
	fs.StringVar(&cfg.Passphrase, "passphrase", "", "Host key passphrase")
	fs.StringVar(&cfg.AuthBackend, "auth", cfg.AuthBackend, "Auth backend: static, file, or pam")
	fs.StringVar(&cfg.UserDBPath, "users", "", "User store path (with --auth file)")
	fs.Usage = printUsage
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	hostKey := loadHostKey(cfg)
	policy, err := buildPolicy(cfg)
	if err != nil {
		log.Fatalf("Failed to set up authentication: %v", err)
	}

	if err := server.Run(cfg, sshd.NewConfig(hostKey, policy)); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// loadHostKey loads the host identity, prompting interactively for a
// passphrase when the key is encrypted and none was supplied. Any
// failure here is fatal: the server must not start without its identity.
func loadHostKey(cfg *config.Config) ssh.Signer {
	signer, err := sshd.LoadHostKey(cfg.HostKeyPath, cfg.Passphrase)

	var missing *ssh.PassphraseMissingError
	if err != nil && cfg.Passphrase == "" && errors.As(err, &missing) && term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintf(os.Stderr, "Enter passphrase for %s: ", cfg.HostKeyPath)
		secret, perr := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if perr == nil {
			signer, err = sshd.LoadHostKey(cfg.HostKeyPath, string(secret))
		}
	}
	if err != nil {
		log.Fatalf("Failed to load host key: %v (run 'sshell keygen' to create one)", err)
	}
	return signer
}

// buildPolicy selects the credential policy for the configured backend.
func buildPolicy(cfg *config.Config) (sshd.CredentialPolicy, error) {
	switch cfg.AuthBackend {
	case config.AuthFile:
		path := cfg.UserDBPath
		if path == "" {
			var err error
			if path, err = config.UserDBPath(); err != nil {
				return nil, err
			}
		}
		store, err := usermgmt.Open(path)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.AuthPAM:
		return sshd.PAMPolicy{}, nil
	default:
		return sshd.DefaultPolicy(), nil
	}
}

// openStore opens the user store at its default location for the user
// management subcommands.
func openStore() *usermgmt.Store {
	path, err := config.UserDBPath()
	if err != nil {
		fmt.Printf("Error resolving user store path: %v\n", err)
		os.Exit(1)
	}
	store, err := usermgmt.Open(path)
	if err != nil {
		fmt.Printf("Error opening user store: %v\n", err)
		os.Exit(1)
	}
	return store
}

// printUsage prints usage information for the sshell CLI.
func printUsage() {
	fmt.Println("sshell - demo SSH command-shell server")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  sshell [flags]                    - Start the server")
	fmt.Println("  sshell keygen [path]              - Generate an RSA host key")
	fmt.Println("  sshell add-user <user> <pass>     - Add a user")
	fmt.Println("  sshell remove-user <user>         - Remove a user")
	fmt.Println("  sshell list-users                 - List all users")
	fmt.Println("  sshell enable-user <user>         - Enable a user")
	fmt.Println("  sshell disable-user <user>        - Disable a user")
	fmt.Println("  sshell help                       - Show this help")
	fmt.Println()
	fmt.Println("Flags:")
	fmt.Println("  -l, --listen ADDR     Listen address (default 127.0.0.1)")
	fmt.Println("  -p, --port PORT       Listen port (default 22)")
	fmt.Println("  -k, --host-key PATH   Host private key file (default host_key)")
	fmt.Println("      --passphrase STR  Host key passphrase")
	fmt.Println("      --auth BACKEND    static, file, or pam (default static)")
	fmt.Println("      --users PATH      User store path (with --auth file)")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  sshell keygen")
	fmt.Println("  sshell -p 2222")
	fmt.Println("  sshell --auth file --users ./users.json")
}
