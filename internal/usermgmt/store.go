package usermgmt

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the shortest password Add and SetPassword accept.
const MinPasswordLength = 4

// Account is a single user record as persisted on disk.
type Account struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
	Enabled      bool      `json:"enabled"`
}

// Store manages user accounts with thread-safe operations backed by a
// JSON file. It implements the server's CredentialPolicy interface.
type Store struct {
	mu       sync.RWMutex
	accounts map[string]*Account
	path     string
}

// Open loads the store at path, creating an empty one if the file does
// not exist yet.
func Open(path string) (*Store, error) {
	s := &Store{
		accounts: make(map[string]*Account),
		path:     path,
	}
	if err := s.load(); err != nil {
		return nil, fmt.Errorf("failed to load user store %s: %v", path, err)
	}
	return s, nil
}

// Add creates a new account with a bcrypt-hashed password and persists
// the store.
func (s *Store) Add(username, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if username == "" {
		return fmt.Errorf("username cannot be empty")
	}
	if len(password) < MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters long", MinPasswordLength)
	}
	if _, exists := s.accounts[username]; exists {
		return fmt.Errorf("user '%s' already exists", username)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %v", err)
	}
	s.accounts[username] = &Account{
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
		Enabled:      true,
	}
	if err := s.save(); err != nil {
		delete(s.accounts, username)
		return fmt.Errorf("failed to save user store: %v", err)
	}
	return nil
}

// Remove deletes an account and persists the store.
func (s *Store) Remove(username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[username]; !exists {
		return fmt.Errorf("user '%s' does not exist", username)
	}
	delete(s.accounts, username)
	if err := s.save(); err != nil {
		return fmt.Errorf("failed to save user store: %v", err)
	}
	return nil
}

// SetPassword replaces an account's password hash and persists the store.
func (s *Store) SetPassword(username, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, exists := s.accounts[username]
	if !exists {
		return fmt.Errorf("user '%s' does not exist", username)
	}
	if len(password) < MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters long", MinPasswordLength)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %v", err)
	}
	account.PasswordHash = string(hash)
	if err := s.save(); err != nil {
		return fmt.Errorf("failed to save user store: %v", err)
	}
	return nil
}

// SetEnabled switches an account on or off without touching its password.
func (s *Store) SetEnabled(username string, enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, exists := s.accounts[username]
	if !exists {
		return fmt.Errorf("user '%s' does not exist", username)
	}
	account.Enabled = enabled
	if err := s.save(); err != nil {
		return fmt.Errorf("failed to save user store: %v", err)
	}
	return nil
}

// Authenticate verifies credentials against the stored hash. Disabled
// and unknown accounts are rejected. The decision has no side effects,
// so it satisfies the server's CredentialPolicy contract.
func (s *Store) Authenticate(username, password string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, exists := s.accounts[username]
	if !exists || !account.Enabled {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) == nil
}

// Names returns all usernames in sorted order.
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.accounts))
	for username := range s.accounts {
		names = append(names, username)
	}
	sort.Strings(names)
	return names
}

// save writes the store to disk. Write to a temporary file first, then
// rename, so a crash mid-write cannot corrupt the store.
func (s *Store) save() error {
	data, err := json.MarshalIndent(s.accounts, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return err
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// load reads the store from disk. A missing file means an empty store.
func (s *Store) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, &s.accounts)
}
