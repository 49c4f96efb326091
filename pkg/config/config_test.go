package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, []string{"high", "critical"}, cfg.Severities)
	assert.Equal(t, "text", cfg.Output)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gate.yml")
	require.NoError(t, os.WriteFile(path, []byte("severities: [moderate, high, critical]\noutput: json\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"moderate", "high", "critical"}, cfg.Severities)
	assert.Equal(t, "json", cfg.Output)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	assert.Error(t, err)
}

func TestMergeFlagsOverridesOutputOnlyWhenSet(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("output", "text", "")

	cfg := Default()
	cfg.Output = "json"
	cfg = MergeFlags(cfg, flags)
	assert.Equal(t, "json", cfg.Output, "unset flag must not clobber config")

	require.NoError(t, flags.Set("output", "sarif"))
	cfg = MergeFlags(cfg, flags)
	assert.Equal(t, "sarif", cfg.Output)
}
