package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleConfig struct {
	APIKey  string        `split_words:"true" required:"true"`
	Units   string        `split_words:"true" default:"imperial"`
	Timeout time.Duration `split_words:"true" default:"10s"`
}

func TestExportEnvironmentKeepsExistingValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(path, []byte("GALA_CFG_TEST_FROM_FILE=file\nGALA_CFG_TEST_SHADOWED=file\n"), 0o600))

	t.Setenv("GALA_CFG_TEST_SHADOWED", "env")
	t.Setenv("GALA_CFG_TEST_FROM_FILE", "")
	require.NoError(t, os.Unsetenv("GALA_CFG_TEST_FROM_FILE"))

	require.NoError(t, exportEnvironment(path))
	t.Cleanup(func() { _ = os.Unsetenv("GALA_CFG_TEST_FROM_FILE") })

	assert.Equal(t, "file", os.Getenv("GALA_CFG_TEST_FROM_FILE"))
	assert.Equal(t, "env", os.Getenv("GALA_CFG_TEST_SHADOWED"))
}

func TestExportEnvironmentIfExistsMissingFile(t *testing.T) {
	t.Parallel()

	err := exportEnvironmentIfExists(filepath.Join(t.TempDir(), "missing.env"))
	assert.NoError(t, err)
}

func TestProcessRequiredAndDefaults(t *testing.T) {
	t.Setenv("SAMPLE_API_KEY", "secret")

	conf, err := Process[sampleConfig]("SAMPLE")
	require.NoError(t, err)
	assert.Equal(t, "secret", conf.APIKey)
	assert.Equal(t, "imperial", conf.Units)
	assert.Equal(t, 10*time.Second, conf.Timeout)
}

func TestProcessMissingRequired(t *testing.T) {
	t.Setenv("MISSING_API_KEY", "")
	require.NoError(t, os.Unsetenv("MISSING_API_KEY"))

	_, err := Process[sampleConfig]("MISSING")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing:")
	assert.Contains(t, err.Error(), "MISSING_API_KEY")
}

func TestProcessIgnoresUnprefixedKey(t *testing.T) {
	t.Setenv("API_KEY", "bare")
	t.Setenv("BARE_API_KEY", "")
	require.NoError(t, os.Unsetenv("BARE_API_KEY"))

	_, err := Process[sampleConfig]("BARE")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BARE_API_KEY")
}

func TestExportDefaultReadsWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("GALA_CFG_TEST_DEFAULT=dotenv\n"), 0o600))
	t.Chdir(dir)

	t.Setenv("GALA_CFG_TEST_DEFAULT", "")
	require.NoError(t, os.Unsetenv("GALA_CFG_TEST_DEFAULT"))
	t.Cleanup(func() { _ = os.Unsetenv("GALA_CFG_TEST_DEFAULT") })

	require.NoError(t, ExportDefault())
	assert.Equal(t, "dotenv", os.Getenv("GALA_CFG_TEST_DEFAULT"))
}
