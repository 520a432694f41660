package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/voice-blob/internal/blob"
)

func writePreset(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "preset.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	p := Default()
	assert.NoError(t, p.Validate())
	assert.Equal(t, 50.0, p.MaxLevel)
	assert.Equal(t, blob.Range{Min: 0.55, Max: 1}, p.Big)
}

func TestLoad(t *testing.T) {
	path := writePreset(t, `
max_level = 80
tint = "#FF8800"

[medium]
min = 0.5
max = 0.9
`)
	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 80.0, p.MaxLevel)
	assert.Equal(t, "#FF8800", p.Tint)
	assert.Equal(t, blob.Range{Min: 0.5, Max: 0.9}, p.Medium)
	assert.Equal(t, Default().Small, p.Small)
}

func TestLoadInvalid(t *testing.T) {
	_, err := Load(writePreset(t, "max_level = 0"))
	assert.ErrorContains(t, err, "max_level")

	_, err = Load(writePreset(t, "[big]\nmin = 1\nmax = 0.5"))
	assert.ErrorContains(t, err, "big scale range")

	_, err = Load(writePreset(t, "max_level = ["))
	assert.ErrorContains(t, err, "parse preset")

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidateReportsFirstLayer(t *testing.T) {
	p := Default()
	p.Small = blob.Range{Min: -1, Max: 1}
	p.Medium = blob.Range{Min: 1, Max: 0}
	p.Big = blob.Range{Min: 1, Max: 0}
	for range 20 {
		assert.EqualError(t, p.Validate(), "small scale range [-1, 1] is invalid")
	}

	p.Small = Default().Small
	assert.ErrorContains(t, p.Validate(), "medium scale range")
}
