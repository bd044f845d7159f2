package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
	assert.Empty(t, cfg.Database.URL)
	assert.Equal(t, "medhope:", cfg.Redis.KeyPrefix)
	assert.Empty(t, cfg.Kafka.Brokers)
	assert.Equal(t, "sandbox", cfg.Payment.Mode)
	assert.True(t, cfg.UsesDevSigningKey())
}

func TestLoadFileAndEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "medhope.yaml")
	content := []byte(`
server:
  addr: ":9090"
database:
  url: "postgres://medhope@localhost:5432/medhope"
  max_open_conns: 7
logging:
  level: debug
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))
	t.Setenv("MEDHOPE_LOGGING_LEVEL", "warn")
	t.Setenv("MEDHOPE_AUTH_JWT_SIGNING_KEY", "prod-key")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 7, cfg.Database.MaxOpenConns)
	assert.Equal(t, "warn", cfg.Logging.Level, "env must win over the file")
	assert.False(t, cfg.UsesDevSigningKey())
}

func TestValidate(t *testing.T) {
	t.Chdir(t.TempDir())

	t.Run("unknown payment mode", func(t *testing.T) {
		t.Setenv("MEDHOPE_PAYMENT_MODE", "stripe")
		_, err := Load("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "payment.mode")
	})

	t.Run("missing config file path is an error", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
	})
}
