package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		errMsg  string
		wantErr bool
	}{
		{name: "simple", email: "alice@x.com"},
		{name: "plus addressing", email: "alice+prompts@example.org"},
		{name: "subdomain", email: "bob@mail.example.co.uk"},
		{name: "empty", email: "", wantErr: true, errMsg: "email cannot be empty"},
		{name: "no at sign", email: "alice.example.com", wantErr: true, errMsg: "not a valid address"},
		{name: "no local part", email: "@example.com", wantErr: true, errMsg: "not a valid address"},
		{name: "no dot in domain", email: "alice@localhost", wantErr: true, errMsg: "domain is not valid"},
		{name: "trailing dot", email: "alice@example.", wantErr: true},
		{name: "display name", email: "Alice <alice@x.com>", wantErr: true, errMsg: "not a valid address"},
		{name: "spaces", email: "alice @x.com", wantErr: true},
		{name: "too long", email: strings.Repeat("a", 250) + "@x.com", wantErr: true, errMsg: "must not exceed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.wantErr {
				require.Error(t, err)
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "alice@x.com", NormalizeEmail("  Alice@X.com "))
	assert.Equal(t, "", NormalizeEmail("   "))
}
