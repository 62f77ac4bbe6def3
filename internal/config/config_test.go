package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "LOG_LEVEL", "LOG_PRETTY", "STORE", "DB_PATH", "WORDS_FILE",
		"SESSION_SECRET", "SESSION_TTL_HOURS", "CLIENT_ORIGIN", "DAILY_SALT"} {
		t.Setenv(k, "")
	}
	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "5175", c.Port)
	assert.Equal(t, "sqlite", c.Store)
	assert.Equal(t, 24*time.Hour, c.SessionTTL)
	assert.True(t, c.UsingDevSecret())
	assert.Empty(t, c.WordsFile)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("STORE", "Memory")
	t.Setenv("LOG_PRETTY", "true")
	t.Setenv("SESSION_SECRET", "s3cret")
	t.Setenv("SESSION_TTL_HOURS", "2")

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9000", c.Port)
	assert.Equal(t, "memory", c.Store)
	assert.True(t, c.LogPretty)
	assert.False(t, c.UsingDevSecret())
	assert.Equal(t, 2*time.Hour, c.SessionTTL)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("STORE", "redis")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("STORE", "memory")
	t.Setenv("SESSION_TTL_HOURS", "0")
	_, err = Load()
	assert.Error(t, err)
}
