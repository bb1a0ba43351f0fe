package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestHashAndCompare(t *testing.T) {
	req := require.New(t)
	password := "correct horse battery staple"

	hash, err := HashPassword(password)
	req.NoError(err)
	req.True(strings.HasPrefix(hash, "$argon2id$"))

	match, err := ComparePassword(password, hash)
	req.NoError(err)
	req.True(match)

	match, err = ComparePassword("wrong password", hash)
	req.NoError(err)
	req.False(match)
}

func TestComparePassword_Malformed_Hash(t *testing.T) {
	req := require.New(t)

	_, err := ComparePassword("whatever", "not-a-hash")
	req.Error(err)
}

func TestTokenIssuer_RoundTrip(t *testing.T) {
	req := require.New(t)
	issuer := NewTokenIssuer("test-secret", time.Hour)

	token, err := issuer.Generate("user-1", "alice")
	req.NoError(err)
	req.NotEmpty(token)

	claims, err := issuer.Validate(token)
	req.NoError(err)
	req.Equal("user-1", claims.UserID)
	req.Equal("alice", claims.Username)
	req.Equal("chat-relay", claims.Issuer)
}

func TestTokenIssuer_Rejects_Expired_Token(t *testing.T) {
	req := require.New(t)
	issuer := NewTokenIssuer("test-secret", -time.Minute)

	token, err := issuer.Generate("user-1", "alice")
	req.NoError(err)

	_, err = issuer.Validate(token)
	req.Error(err)
}

func TestTokenIssuer_Rejects_Wrong_Secret(t *testing.T) {
	req := require.New(t)

	token, err := NewTokenIssuer("secret-a", time.Hour).Generate("user-1", "alice")
	req.NoError(err)

	_, err = NewTokenIssuer("secret-b", time.Hour).Validate(token)
	req.Error(err)
}

func TestRegistrationValidation(t *testing.T) {
	req := require.New(t)
	tests := []struct {
		name    string
		req     RegisterRequest
		wantErr bool
	}{
		{"Valid request", RegisterRequest{"test@example.com", "alice", "longenough"}, false},
		{"Invalid email", RegisterRequest{"notanemail", "alice", "longenough"}, true},
		{"Username too short", RegisterRequest{"test@example.com", "al", "longenough"}, true},
		{"Password too short", RegisterRequest{"test@example.com", "alice", "short"}, true},
		{"Password too long", RegisterRequest{"test@example.com", "alice", strings.Repeat("a", 73)}, true},
		{"Missing everything", RegisterRequest{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRegister(tt.req)
			if tt.wantErr {
				req.Error(err)
			} else {
				req.NoError(err)
			}
		})
	}
}

func TestLoginValidation(t *testing.T) {
	req := require.New(t)

	req.NoError(ValidateLogin(LoginRequest{Email: "test@example.com", Password: "whatever"}))
	req.Error(ValidateLogin(LoginRequest{Email: "", Password: "whatever"}))
	req.Error(ValidateLogin(LoginRequest{Email: "test@example.com", Password: ""}))
}

func BenchmarkHashPassword(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = HashPassword("a-long-enough-password-for-bench")
	}
}
