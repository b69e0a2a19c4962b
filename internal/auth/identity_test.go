package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "a@b.com", Normalize("  A@B.Com "))
	assert.Equal(t, "acme", Normalize("Acme "))
	assert.Equal(t, "", Normalize("   "))
}

func TestValidateEmail(t *testing.T) {
	cases := []struct {
		email string
		valid bool
	}{
		{"user@example.com", true},
		{"first.last@sub.domain.co.il", true},
		{"user-name@my-host.org", true},
		{"no-at-sign", false},
		{"@missing-local.com", false},
		{"user@no-tld", false},
		{"user@domain.", false},
		{"two@@example.com", false},
		{"", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.valid, ValidateEmail(tc.email), "email %q", tc.email)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", 10)
	session := Session{Username: "admin@example.com", Name: "Admin", Role: "admin"}

	token, exp, err := tm.GenerateToken(session)
	assert.NoError(t, err)
	assert.False(t, exp.IsZero())

	parsed, err := tm.ParseToken(token)
	assert.NoError(t, err)
	assert.Equal(t, session, parsed)

	_, err = tm.ParseToken("garbage.token.value")
	assert.Error(t, err)
}
