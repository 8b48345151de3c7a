package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{"PORT", "LOG_LEVEL", "CLIENT_ORIGIN", "JWT_SECRET",
		"ROUNDS_SOURCE", "ROUNDS_FILE", "DB_PATH", "REQUEST_TIMEOUT_SEC"} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "5175", c.Port)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, SourceEmbedded, c.RoundsSource)
	assert.Equal(t, "./data/rounds.db", c.DBPath)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("ROUNDS_SOURCE", SourceFile)
	t.Setenv("ROUNDS_FILE", "/etc/rounds.txt")
	t.Setenv("REQUEST_TIMEOUT_SEC", "3")

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", c.Port)
	assert.Equal(t, "/etc/rounds.txt", c.RoundsFile)
	assert.Equal(t, 3*time.Second, c.RequestTimeout)
}

func TestLoadRejects(t *testing.T) {
	cases := map[string]map[string]string{
		"unknown source":   {"ROUNDS_SOURCE": "redis"},
		"file w/o path":    {"ROUNDS_SOURCE": SourceFile},
		"zero timeout":     {"REQUEST_TIMEOUT_SEC": "0"},
		"negative timeout": {"REQUEST_TIMEOUT_SEC": "-5"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestEnvIntFallsBack(t *testing.T) {
	t.Setenv("REQUEST_TIMEOUT_SEC", "soon")
	assert.Equal(t, 10, envInt("REQUEST_TIMEOUT_SEC", 10))
}
