package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func parse(t *testing.T, args ...string) Config {
	t.Helper()
	var cfg Config
	app := &cli.App{
		Flags: Flags(),
		Action: func(c *cli.Context) error {
			cfg = FromContext(c)
			return nil
		},
	}
	require.NoError(t, app.Run(append([]string{"lovematch"}, args...)))
	return cfg
}

func TestDefaults(t *testing.T) {
	cfg := parse(t)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, 7*24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "lovematch.events", cfg.AMQPExchange)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.StreamConfigured())
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("S3_BUCKET_NAME", "photos")
	t.Setenv("STREAM_API_KEY", "key")
	t.Setenv("STREAM_API_SECRET", "secret")
	t.Setenv("SESSION_TTL", "1h")

	cfg := parse(t)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "photos", cfg.S3Bucket)
	assert.Equal(t, time.Hour, cfg.SessionTTL)
	assert.True(t, cfg.StreamConfigured())
}

func TestFlagBeatsEnv(t *testing.T) {
	t.Setenv("PORT", "9090")

	cfg := parse(t, "--port", "7070")

	assert.Equal(t, "7070", cfg.Port)
}

func TestValidate(t *testing.T) {
	valid := Config{Port: "8080", JWTSecret: "s", SessionTTL: time.Hour}
	require.NoError(t, valid.Validate())

	t.Run("missing secret", func(t *testing.T) {
		cfg := valid
		cfg.JWTSecret = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("zero session ttl", func(t *testing.T) {
		cfg := valid
		cfg.SessionTTL = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing port", func(t *testing.T) {
		cfg := valid
		cfg.Port = ""
		assert.Error(t, cfg.Validate())
	})
}
