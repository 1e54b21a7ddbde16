package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envFrom(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func baseEnv() map[string]string {
	return map[string]string{
		"DATABASE_URL":   "postgres://localhost/refs",
		"JWT_SECRET_KEY": "secret",
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv(envFrom(baseEnv()))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, "Asia/Seoul", cfg.Location.String())
	assert.True(t, cfg.SchedulerEnabled)
	assert.Equal(t, "@every 15m", cfg.MatchStatusSchedule)
	assert.Equal(t, "@every 15m", cfg.RoundFocusSchedule)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.CronSecret)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.False(t, cfg.R2.Enabled())
}

func TestFromEnv_Overrides(t *testing.T) {
	env := baseEnv()
	env["SERVER_PORT"] = "9090"
	env["APP_TIMEZONE"] = "Europe/London"
	env["CRON_SECRET"] = "tick"
	env["SCHEDULER_ENABLED"] = "false"
	env["CORS_ALLOWED_ORIGINS"] = "https://a.example, https://b.example ,"

	cfg, err := FromEnv(envFrom(env))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, "Europe/London", cfg.Location.String())
	assert.Equal(t, "tick", cfg.CronSecret)
	assert.False(t, cfg.SchedulerEnabled)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
}

func TestFromEnv_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(env map[string]string)
	}{
		{"missing database url", func(env map[string]string) { delete(env, "DATABASE_URL") }},
		{"missing jwt secret", func(env map[string]string) { delete(env, "JWT_SECRET_KEY") }},
		{"port not a number", func(env map[string]string) { env["SERVER_PORT"] = "http" }},
		{"port out of range", func(env map[string]string) { env["SERVER_PORT"] = "70000" }},
		{"unknown timezone", func(env map[string]string) { env["APP_TIMEZONE"] = "Mars/Olympus" }},
		{"bad bool", func(env map[string]string) { env["SCHEDULER_ENABLED"] = "maybe" }},
		{"partial r2", func(env map[string]string) { env["R2_BUCKET_NAME"] = "photos" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := baseEnv()
			tt.mutate(env)
			_, err := FromEnv(envFrom(env))
			assert.Error(t, err)
		})
	}
}
