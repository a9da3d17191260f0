package handler

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// User is one account known to the fake session daemon.
type User struct {
	Name string `yaml:"name"`
	// PasswordHash is a bcrypt hash.
	PasswordHash string `yaml:"password_hash"`
	// Banner, when set, is sent as an info message before the password
	// prompt.
	Banner string `yaml:"banner,omitempty"`
	// OTP, when set, is asked for with a visible prompt after the password.
	OTP string `yaml:"otp,omitempty"`
}

type usersFile struct {
	Users []User `yaml:"users"`
}

// UserDirectory is a read-only set of users keyed by name.
type UserDirectory struct {
	users map[string]User
}

// LoadUsers reads and parses a YAML users file.
func LoadUsers(path string) (*UserDirectory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read users file %s: %w", path, err)
	}
	return ParseUsers(data)
}

// ParseUsers parses YAML users data.
func ParseUsers(data []byte) (*UserDirectory, error) {
	var f usersFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidUsersFile, err)
	}

	dir := &UserDirectory{users: make(map[string]User, len(f.Users))}
	for i, u := range f.Users {
		u.Name = strings.TrimSpace(u.Name)
		if u.Name == "" {
			return nil, fmt.Errorf("%w: entry %d has no name", ErrInvalidUsersFile, i)
		}
		if u.PasswordHash == "" {
			return nil, fmt.Errorf("%w: user %q has no password_hash", ErrInvalidUsersFile, u.Name)
		}
		if _, dup := dir.users[u.Name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateUser, u.Name)
		}
		dir.users[u.Name] = u
	}
	return dir, nil
}

// Lookup returns the user called name.
func (d *UserDirectory) Lookup(name string) (User, bool) {
	u, ok := d.users[name]
	return u, ok
}

// Len returns the number of users.
func (d *UserDirectory) Len() int { return len(d.users) }
