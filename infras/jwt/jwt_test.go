package jwt_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"dinebook/config"
	"dinebook/infras/jwt"
	"dinebook/infras/otel/mocks"
	"dinebook/shared/constant"
)

func newService() jwt.JWT {
	cfg := &config.Config{}
	cfg.App.Name = "dinebook"
	cfg.JWT.AccessSecret = "access-secret"
	cfg.JWT.RefreshSecret = "refresh-secret"
	cfg.JWT.AccessExpireMin = 15
	cfg.JWT.RefreshExpireMin = 60

	return jwt.New(cfg, mocks.NewOtel())
}

func TestService_GenerateAndValidate(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	pair, err := svc.GenerateTokenPair(ctx, "user-1", "diner@example.com", constant.RoleUser)
	assert.NoError(t, err)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.Equal(t, int64(15*60), pair.ExpiresIn)

	claims, err := svc.ValidateToken(ctx, pair.AccessToken, jwt.AccessToken)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, constant.RoleUser, claims.Role)

	_, err = svc.ValidateToken(ctx, pair.AccessToken, jwt.RefreshToken)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)

	_, err = svc.ValidateToken(ctx, "not-a-token", jwt.AccessToken)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestService_RefreshTokenReissue(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	pair, err := svc.GenerateTokenPair(ctx, "user-1", "diner@example.com", constant.RoleAdmin)
	assert.NoError(t, err)

	claims, err := svc.ValidateToken(ctx, pair.RefreshToken, jwt.RefreshToken)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)

	_, err = svc.ValidateToken(ctx, pair.AccessToken, jwt.RefreshToken)
	assert.Error(t, err)
}

func TestService_ValidateToken_Rejections(t *testing.T) {
	ctx := context.Background()

	t.Run("expired", func(t *testing.T) {
		cfg := &config.Config{}
		cfg.App.Name = "dinebook"
		cfg.JWT.AccessSecret = "access-secret"
		cfg.JWT.RefreshSecret = "refresh-secret"
		cfg.JWT.AccessExpireMin = -5
		cfg.JWT.RefreshExpireMin = 60
		svc := jwt.New(cfg, mocks.NewOtel())

		pair, err := svc.GenerateTokenPair(ctx, "user-1", "diner@example.com", constant.RoleUser)
		assert.NoError(t, err)

		_, err = svc.ValidateToken(ctx, pair.AccessToken, jwt.AccessToken)
		assert.ErrorIs(t, err, jwt.ErrExpiredToken)
	})

	t.Run("other issuer", func(t *testing.T) {
		cfg := &config.Config{}
		cfg.App.Name = "someone-else"
		cfg.JWT.AccessSecret = "access-secret"
		cfg.JWT.RefreshSecret = "refresh-secret"
		cfg.JWT.AccessExpireMin = 15
		other := jwt.New(cfg, mocks.NewOtel())

		pair, err := other.GenerateTokenPair(ctx, "user-1", "diner@example.com", constant.RoleUser)
		assert.NoError(t, err)

		_, err = newService().ValidateToken(ctx, pair.AccessToken, jwt.AccessToken)
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := newService().ValidateToken(ctx, "a.b.c", jwt.TokenType("id"))
		assert.Error(t, err)
	})
}

func TestExtractTokenFromHeader(t *testing.T) {
	tests := []struct {
		header  string
		want    string
		wantErr error
	}{
		{header: "Bearer abc.def", want: "abc.def"},
		{header: "bearer  abc.def ", want: "abc.def"},
		{header: "Token abc", wantErr: jwt.ErrBearerFormat},
		{header: "Bearer", wantErr: jwt.ErrBearerFormat},
		{header: "", wantErr: jwt.ErrMissingHeader},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			got, err := jwt.ExtractTokenFromHeader(tt.header)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.want, got)
		})
	}
}
