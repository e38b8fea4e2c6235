package dto_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dinebook/infras/jwt"
	"dinebook/internal/domains/auth/model/dto"
	"dinebook/shared/constant"
)

func TestLoginResponse_FlattensTokens(t *testing.T) {
	var res dto.LoginResponse
	res.FromTokenPair(&jwt.TokenPair{AccessToken: "a", RefreshToken: "r", TokenType: "Bearer", ExpiresIn: 900})
	res.User.ID = "user-1"

	raw, err := json.Marshal(res)
	require.NoError(t, err)

	body := map[string]any{}
	require.NoError(t, json.Unmarshal(raw, &body))

	assert.Equal(t, "a", body["access_token"])
	assert.Equal(t, "r", body["refresh_token"])
	assert.Equal(t, "Bearer", body["token_type"])
	assert.InDelta(t, 900, body["expires_in"], 0)
	assert.Contains(t, body, "user")
	assert.NotContains(t, body, "Tokens")
}

func TestTokens_FromTokenPairOverwrites(t *testing.T) {
	res := dto.RefreshTokenResponse{Tokens: dto.Tokens{ExpiresIn: 60, TokenType: "stale"}}

	res.FromTokenPair(&jwt.TokenPair{AccessToken: "new-access", RefreshToken: "new-refresh"})

	assert.Equal(t, dto.Tokens{AccessToken: "new-access", RefreshToken: "new-refresh"}, res.Tokens)
}

func TestRegisterRequest_ToUserModel(t *testing.T) {
	name := "Ana Silva"
	req := dto.RegisterRequest{Email: "  Ana@Example.COM ", Password: "secret123", FullName: &name}

	user := req.ToUserModel("hashed")

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "ana@example.com", user.Email)
	assert.Equal(t, "hashed", user.Password)
	assert.Equal(t, constant.RoleUser, user.Level)
	assert.Equal(t, &name, user.FullName)
	assert.True(t, user.Active)
	assert.False(t, user.IsVerified)
	assert.Equal(t, user.ID, user.CreatedBy)
}
