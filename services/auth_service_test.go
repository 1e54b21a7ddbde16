package services

import (
	"context"
	"testing"
	"time"

	"github.com/Dosada05/referee-review/models"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestAuthService_RegisterValidation(t *testing.T) {
	tests := []struct {
		name    string
		input   RegisterInput
		wantErr error
	}{
		{"missing nickname", RegisterInput{Email: "a@b.io", Password: "password1"}, ErrNicknameRequired},
		{"missing email", RegisterInput{Nickname: "var_fan", Password: "password1"}, ErrEmailRequired},
		{"bad email", RegisterInput{Nickname: "var_fan", Email: "not-an-email", Password: "password1"}, ErrValidationFailed},
		{"short password", RegisterInput{Nickname: "var_fan", Email: "a@b.io", Password: "1234567"}, ErrPasswordTooShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewAuthService(&fakeUserRepo{}, NewTokenIssuer(testSecret, 0))
			_, err := svc.Register(context.Background(), tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	users := &fakeUserRepo{}
	svc := NewAuthService(users, NewTokenIssuer(testSecret, time.Hour))
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterInput{Nickname: " var_fan ", Email: "Fan@Example.com", Password: "offside123"})
	require.NoError(t, err)
	assert.Equal(t, "var_fan", user.Nickname)
	assert.Equal(t, "fan@example.com", user.Email)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.NotEqual(t, "offside123", user.PasswordHash)

	_, err = svc.Register(ctx, RegisterInput{Nickname: "other", Email: "fan@example.com", Password: "offside123"})
	assert.ErrorIs(t, err, ErrUserEmailConflict)
	_, err = svc.Register(ctx, RegisterInput{Nickname: "var_fan", Email: "other@example.com", Password: "offside123"})
	assert.ErrorIs(t, err, ErrUserNicknameConflict)

	_, _, err = svc.Login(ctx, LoginInput{Email: "fan@example.com", Password: "wrong-pass"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = svc.Login(ctx, LoginInput{Email: "nobody@example.com", Password: "offside123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	loggedIn, token, err := svc.Login(ctx, LoginInput{Email: "FAN@example.com", Password: "offside123"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, float64(user.ID), claims["user_id"])
	assert.Equal(t, "user", claims["role"])
}
