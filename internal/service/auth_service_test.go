package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"concursos/internal/config"
	"concursos/internal/domain"
)

func testAuthService(t *testing.T) AuthService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	require.NoError(t, err)

	return NewAuthService(
		config.AdminConfig{Email: "admin@example.com", PasswordHash: string(hash)},
		config.JWTConfig{Secret: "test-secret", AccessTokenExpiry: time.Hour, Issuer: "concursos"},
	)
}

func TestLogin_Success(t *testing.T) {
	svc := testAuthService(t)

	token, err := svc.Login(context.Background(), LoginInput{
		Email:    "admin@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token.AccessToken)
	assert.True(t, token.ExpiresAt.After(time.Now()))

	claims, err := svc.ValidateToken(token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, "concursos", claims.Issuer)
}

func TestLogin_EmailIsCaseInsensitive(t *testing.T) {
	svc := testAuthService(t)

	_, err := svc.Login(context.Background(), LoginInput{
		Email:    "Admin@Example.COM",
		Password: "s3cret-pass",
	})
	assert.NoError(t, err)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := testAuthService(t)

	_, err := svc.Login(context.Background(), LoginInput{
		Email:    "admin@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc := testAuthService(t)

	_, err := svc.Login(context.Background(), LoginInput{
		Email:    "intruder@example.com",
		Password: "s3cret-pass",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestValidateToken_Garbage(t *testing.T) {
	svc := testAuthService(t)
	_, err := svc.ValidateToken("not.a.jwt")
	assert.Error(t, err)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	svc := testAuthService(t)
	token, err := svc.Login(context.Background(), LoginInput{
		Email:    "admin@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	other := NewAuthService(
		config.AdminConfig{Email: "admin@example.com", PasswordHash: "x"},
		config.JWTConfig{Secret: "different-secret", AccessTokenExpiry: time.Hour, Issuer: "concursos"},
	)
	_, err = other.ValidateToken(token.AccessToken)
	assert.Error(t, err)
}
