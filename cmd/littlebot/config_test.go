package main

import (
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig(nil, env(nil))
	require.NoError(t, err)
	assert.Equal(t, "guard", cfg.Policy)
	assert.False(t, cfg.Sanitize)
	assert.Empty(t, cfg.Connect)
	assert.Empty(t, cfg.Listen)
	assert.Empty(t, cfg.Redis)
	assert.NotEmpty(t, cfg.Session)
	assert.Equal(t, log.InfoLevel, cfg.LogLevel)
}

func TestLoadConfigEnvAndFlags(t *testing.T) {
	e := env(map[string]string{
		"LITTLEBOT_POLICY":    "center",
		"LITTLEBOT_SANITIZE":  "true",
		"LITTLEBOT_REDIS":     "localhost:6379",
		"LITTLEBOT_LOG_LEVEL": "debug",
		"LITTLEBOT_SESSION":   "from-env",
	})
	cfg, err := loadConfig([]string{"-session", "from-flag", "-connect", "ws://ref:8080/play"}, e)
	require.NoError(t, err)
	assert.Equal(t, "center", cfg.Policy)
	assert.True(t, cfg.Sanitize)
	assert.Equal(t, "localhost:6379", cfg.Redis)
	assert.Equal(t, "from-flag", cfg.Session)
	assert.Equal(t, "ws://ref:8080/play", cfg.Connect)
	assert.Equal(t, log.DebugLevel, cfg.LogLevel)
}

func TestLoadConfigRejects(t *testing.T) {
	for _, args := range [][]string{
		{"-policy", "random"},
		{"-log-level", "loud"},
		{"-connect", "ws://a/play", "-listen", ":8080"},
		{"-no-such-flag"},
	} {
		_, err := loadConfig(args, env(nil))
		assert.Error(t, err, "%v", args)
	}
}

func TestBoolEnvFallsBack(t *testing.T) {
	assert.True(t, boolEnv(env(map[string]string{"X": "yes?"}), "X", true))
	assert.False(t, boolEnv(env(map[string]string{"X": "0"}), "X", true))
}
