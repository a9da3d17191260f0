package handler

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testUsersYAML = `
users:
  - name: alice
    password_hash: "$2a$04$hash-alice"
    banner: "Welcome back"
  - name: bob
    password_hash: "$2a$04$hash-bob"
    otp: "123456"
`

func TestParseUsers(t *testing.T) {
	dir, err := ParseUsers([]byte(testUsersYAML))
	require.NoError(t, err)
	assert.Equal(t, 2, dir.Len())

	alice, ok := dir.Lookup("alice")
	require.True(t, ok)
	assert.Equal(t, "Welcome back", alice.Banner)
	assert.Empty(t, alice.OTP)

	bob, ok := dir.Lookup("bob")
	require.True(t, ok)
	assert.Equal(t, "123456", bob.OTP)

	_, ok = dir.Lookup("mallory")
	assert.False(t, ok)
}

func TestParseUsers_Errors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr error
	}{
		{
			name:    "not yaml",
			data:    "users: [",
			wantErr: ErrInvalidUsersFile,
		},
		{
			name:    "missing name",
			data:    "users:\n  - password_hash: x\n",
			wantErr: ErrInvalidUsersFile,
		},
		{
			name:    "missing hash",
			data:    "users:\n  - name: alice\n",
			wantErr: ErrInvalidUsersFile,
		},
		{
			name:    "duplicate",
			data:    "users:\n  - name: alice\n    password_hash: x\n  - name: ' alice '\n    password_hash: y\n",
			wantErr: ErrDuplicateUser,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseUsers([]byte(tt.data))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParseUsers_Empty(t *testing.T) {
	dir, err := ParseUsers(nil)
	require.NoError(t, err)
	assert.Zero(t, dir.Len())
}

func TestLoadUsers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testUsersYAML), 0o600))

	dir, err := LoadUsers(path)
	require.NoError(t, err)
	assert.Equal(t, 2, dir.Len())
}

func TestLoadUsers_Missing(t *testing.T) {
	_, err := LoadUsers(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
