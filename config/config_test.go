package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"dinebook/config"
)

func valid() config.Config {
	cfg := config.Config{}
	cfg.JWT.AccessSecret = "access"
	cfg.JWT.RefreshSecret = "refresh"
	cfg.JWT.AccessExpireMin = 15
	cfg.JWT.RefreshExpireMin = 10080
	cfg.DB.Postgres.Write.Host = "localhost"

	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   error
	}{
		{name: "valid", mutate: func(*config.Config) {}},
		{name: "missing secret", mutate: func(c *config.Config) { c.JWT.RefreshSecret = "" }, want: config.ErrJWTSecret},
		{name: "shared secret", mutate: func(c *config.Config) { c.JWT.RefreshSecret = c.JWT.AccessSecret }, want: config.ErrJWTSecret},
		{name: "zero expiry", mutate: func(c *config.Config) { c.JWT.AccessExpireMin = 0 }, want: config.ErrJWTExpiry},
		{name: "limiter without window", mutate: func(c *config.Config) {
			c.App.RateLimiter.Enable = true
			c.App.RateLimiter.MaxRequests = 100
		}, want: config.ErrRateWindow},
		{name: "disabled limiter ignores window", mutate: func(c *config.Config) { c.App.RateLimiter.MaxRequests = 0 }},
		{name: "no database", mutate: func(c *config.Config) { c.DB.Postgres.Write.Host = "" }, want: config.ErrDatabase},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)

			assert.ErrorIs(t, cfg.Validate(), tt.want)
		})
	}
}

func TestGet(t *testing.T) {
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("RESERVATION_DEFAULT_DURATION_MINUTES", "90")

	cfg := config.Get()

	assert.Same(t, cfg, config.Get())
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 90, cfg.Reservation.DefaultDurationMinutes)
	assert.Equal(t, "http://localhost:3000", cfg.App.PublicURL)
}
