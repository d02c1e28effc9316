package config

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfg, err := Load()
	require.NoError(t, err)

	def := Default()
	assert.Equal(t, def.SampleCap, cfg.SampleCap)
	assert.Equal(t, 1000, cfg.SampleCap)
	assert.Equal(t, 50, cfg.ReportCap)
	assert.Equal(t, 3, cfg.MinProfileSamples)
	assert.Equal(t, def.Thresholds(), cfg.Thresholds())
	assert.Equal(t, 0.2, cfg.SecondaryThreshold)
	assert.Equal(t, "driftwatch.db", filepath.Base(cfg.DBPath))
	assert.Equal(t, zerolog.WarnLevel, cfg.Level())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DRIFTWATCH_DB", "/tmp/custom.db")
	t.Setenv("DRIFTWATCH_SAMPLE_CAP", "10")
	t.Setenv("DRIFTWATCH_DIVERGENCE_THRESHOLD", "0.25")
	t.Setenv("DRIFTWATCH_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom.db", cfg.DBPath)
	assert.Equal(t, 10, cfg.Limits().Samples)
	assert.Equal(t, 50, cfg.Limits().Reports)
	assert.Equal(t, 0.25, cfg.Thresholds().Divergence)
	assert.Equal(t, zerolog.DebugLevel, cfg.Level())
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]string{
		"DRIFTWATCH_SAMPLE_CAP":            "0",
		"DRIFTWATCH_REPORT_CAP":            "abc",
		"DRIFTWATCH_DEVIATION_THRESHOLD":   "-1",
		"DRIFTWATCH_LOG_LEVEL":             "loud",
		"DRIFTWATCH_MIN_PROFILE_SAMPLES":   "-3",
		"DRIFTWATCH_CONSISTENCY_THRESHOLD": "x",
	}
	for key, val := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, val)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
