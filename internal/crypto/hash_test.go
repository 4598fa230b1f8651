package crypto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	tests := []struct {
		name     string
		errMsg   string
		password string
		wantErr  bool
	}{
		{
			name:     "successful hash",
			password: "secret1",
		},
		{
			name:     "empty password",
			password: "",
			wantErr:  true,
			errMsg:   "password cannot be empty",
		},
		{
			name:     "longer than bcrypt limit",
			password: strings.Repeat("a", 73),
			wantErr:  true,
			errMsg:   "failed to hash password",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := hashPasswordWithCost(tt.password, bcrypt.MinCost)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				assert.Empty(t, hash)
				return
			}

			require.NoError(t, err)
			assert.NotEqual(t, tt.password, hash, "пароль не должен храниться в открытом виде")
			assert.True(t, strings.HasPrefix(hash, "$2a$"))
		})
	}
}

func TestHashPassword_Salted(t *testing.T) {
	// Один и тот же пароль дает разные хеши из-за соли
	h1, err := hashPasswordWithCost("secret1", bcrypt.MinCost)
	require.NoError(t, err)
	h2, err := hashPasswordWithCost("secret1", bcrypt.MinCost)
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
	assert.NoError(t, VerifyPassword("secret1", h1))
	assert.NoError(t, VerifyPassword("secret1", h2))
}

func TestHashPassword_DefaultCost(t *testing.T) {
	hash, err := HashPassword("secret1")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, PasswordCost, cost)
}

func TestVerifyPassword(t *testing.T) {
	hash, err := hashPasswordWithCost("correct horse", bcrypt.MinCost)
	require.NoError(t, err)

	tests := []struct {
		name      string
		password  string
		hash      string
		wantErrIs error
		wantErr   bool
	}{
		{name: "match", password: "correct horse", hash: hash},
		{name: "mismatch", password: "wrong horse", hash: hash, wantErr: true, wantErrIs: ErrPasswordMismatch},
		{name: "case matters", password: "Correct horse", hash: hash, wantErr: true, wantErrIs: ErrPasswordMismatch},
		{name: "empty hash", password: "correct horse", hash: "", wantErr: true},
		{name: "garbage hash", password: "correct horse", hash: "not-a-bcrypt-hash", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := VerifyPassword(tt.password, tt.hash)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			if tt.wantErrIs != nil {
				assert.ErrorIs(t, err, tt.wantErrIs)
			} else {
				assert.NotErrorIs(t, err, ErrPasswordMismatch)
			}
		})
	}
}

func TestVerifyDummy(t *testing.T) {
	cost, err := bcrypt.Cost([]byte(dummyHash()))
	require.NoError(t, err)
	assert.Equal(t, PasswordCost, cost)

	for _, password := range []string{"secret1", "promptpal-dummy-password", ""} {
		assert.ErrorIs(t, VerifyDummy(password), ErrPasswordMismatch)
	}
}
