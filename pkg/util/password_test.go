package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{
			name:     "Valid password",
			password: "password-1234",
			wantErr:  false,
		},
		{
			name:     "Too short",
			password: "short",
			wantErr:  true,
		},
		{
			name:     "Long password",
			password: "this-is-a-very-long-password-with-special-chars!@#$%^&*()",
			wantErr:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := HashPassword(tt.password)

			if tt.wantErr {
				assert.ErrorIs(t, err, ErrPasswordTooShort)
				assert.Empty(t, hash)
			} else {
				assert.NoError(t, err)
				assert.NotEqual(t, tt.password, hash)
				assert.Contains(t, hash, "$2a$")
			}
		})
	}
}

func TestVerifyCredentials(t *testing.T) {
	hash, err := HashPassword("gallery-admin-pass")
	require.NoError(t, err)

	assert.True(t, VerifyCredentials("admin", hash, "admin", "gallery-admin-pass"))
	assert.False(t, VerifyCredentials("admin", hash, "admin", "wrong-password"))
	assert.False(t, VerifyCredentials("admin", hash, "root", "gallery-admin-pass"))
	assert.False(t, VerifyCredentials("admin", "", "admin", "gallery-admin-pass"))
}
