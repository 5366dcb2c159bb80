package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jsphweid/fretnot/chord"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fretnot.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

// clearEnv keeps the developer's own environment out of the defaults.
func clearEnv(t *testing.T) {
	for _, key := range []string{"FRETNOT_ADDR", "CORS_ORIGIN", "GEMINI_API_KEY", "GEMINI_MODEL"} {
		t.Setenv(key, "")
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
weights:
  bass: 6
  seventh: 0.5
engine:
  top_n: 5
server:
  addr: ":9090"
coach:
  timeout: 5s
  max_retries: 2
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert := assert.New(t)
	want := chord.DefaultWeights()
	want.Bass = 6
	want.Seventh = 0.5
	assert.Equal(want, cfg.Weights)
	assert.Equal(5, cfg.Engine.TopN)
	assert.Equal(15, cfg.Engine.MaxFret)
	assert.Equal(":9090", cfg.Server.Addr)
	assert.Equal("*", cfg.Server.CORSOrigin)
	assert.Equal(5*time.Second, cfg.Coach.Timeout)
	assert.Equal(2, cfg.Coach.MaxRetries)
	assert.Equal(float32(0.65), cfg.Coach.Temperature)
}

func TestEnvironmentWins(t *testing.T) {
	path := writeConfig(t, "server:\n  addr: \":9090\"\n")
	t.Setenv("FRETNOT_ADDR", ":7070")
	t.Setenv("CORS_ORIGIN", "https://fretnot.example")
	t.Setenv("GEMINI_API_KEY", "secret")
	t.Setenv("GEMINI_MODEL", "gemini-test")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal(":7070", cfg.Server.Addr)
	assert.Equal("https://fretnot.example", cfg.Server.CORSOrigin)
	assert.Equal("secret", cfg.Coach.APIKey)
	assert.Equal("gemini-test", cfg.Coach.Model)
}

func TestLoadRejectsBadConfig(t *testing.T) {
	cases := map[string]string{
		"broken yaml":   "weights: [",
		"tiny window":   "engine:\n  max_fret: 4\n",
		"past the neck": "engine:\n  max_fret: 20\n",
		"no labels":     "engine:\n  top_n: 0\n",
		"no attempts":   "coach:\n  max_retries: 0\n",
		"bad durations": "coach:\n  timeout: soon\n",
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}
