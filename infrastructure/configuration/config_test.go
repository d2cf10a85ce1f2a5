package configuration

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("ENV", "unittest-missing")
	t.Setenv("APP_PORT", "")
	t.Setenv("PORT", "")
	t.Setenv("GEMINI_MODEL", "")
	t.Setenv("PUBLISH_FAILURE_RATE", "")

	LoadConfig()

	assert.Equal(t, 10001, C.App.Port)
	assert.Equal(t, "gemini-2.5-flash", C.Gemini.Model)
	assert.InDelta(t, 0.7, float64(C.Gemini.Temperature), 1e-6)
	assert.Equal(t, 60*time.Second, C.Gemini.Timeout())
	assert.Equal(t, 2*time.Second, C.Publish.MinDelay())
	assert.Equal(t, 5*time.Second, C.Publish.MaxDelay())
	assert.Zero(t, C.Publish.FailureRate)
	assert.Equal(t, "gemini_api_key", C.Credential.Key)
	assert.Equal(t, 2*time.Hour, C.Session.MaxIdle())
	assert.Equal(t, time.Minute, C.Session.SweepInterval())
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("ENV", "unittest-missing")
	t.Setenv("APP_PORT", "8088")
	t.Setenv("GEMINI_MODEL", "gemini-2.5-flash-lite")
	t.Setenv("PUBLISH_FAILURE_RATE", "0.25")
	t.Setenv("REDIS_HOST", "cache.internal")
	t.Setenv("LOG_LEVEL", "warn")

	LoadConfig()

	assert.Equal(t, "warn", C.Logger.Level)
	assert.Equal(t, 8088, C.App.Port)
	assert.Equal(t, "gemini-2.5-flash-lite", C.Gemini.Model)
	assert.InDelta(t, 0.25, C.Publish.FailureRate, 1e-9)
	assert.Equal(t, "cache.internal:6379", C.RedisClient.Addr())
}

func TestLoadConfig_RejectsOutOfRangeFailureRate(t *testing.T) {
	t.Setenv("ENV", "unittest-missing")
	t.Setenv("PUBLISH_FAILURE_RATE", "3")

	LoadConfig()

	assert.Zero(t, C.Publish.FailureRate)
}

func TestLoadEnvFromFile_DoesNotOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(path, []byte("# comment\nVD_TEST_NEW=from-file\nVD_TEST_EXISTING=from-file\n"), 0o600))

	t.Setenv("VD_TEST_EXISTING", "from-env")
	t.Cleanup(func() { _ = os.Unsetenv("VD_TEST_NEW") })

	loaded := LoadEnvFromFile(filepath.Join(dir, "missing.env"), path)

	assert.Equal(t, []string{path}, loaded)
	assert.Equal(t, "from-file", os.Getenv("VD_TEST_NEW"))
	assert.Equal(t, "from-env", os.Getenv("VD_TEST_EXISTING"))
}
