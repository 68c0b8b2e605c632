package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bargainbay/internal/config"
	"bargainbay/internal/services"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.LoadArgs(nil)
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.Port)
	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, services.DefaultCoupons, cfg.Coupons)

	cfg.Coupons["FREE"] = 100
	assert.NotContains(t, services.DefaultCoupons, "FREE")
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bargainbay.yaml")
	yaml := `
port: "9000"
api_base: http://catalog.internal/api
request_timeout: 3s
store:
  driver: redis
  redis_addr: cache:6379
coupons:
  SAVE10: 10
  WELCOME5: 5
  HALF: 50
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))
	t.Setenv("BARGAINBAY_PORT", "9100")

	cfg, err := config.LoadArgs([]string{"--config", path})
	require.NoError(t, err)

	assert.Equal(t, "9100", cfg.Port, "env wins over file")
	assert.Equal(t, "http://catalog.internal/api", cfg.APIBase)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "redis", cfg.Store.Driver)
	assert.Equal(t, "cache:6379", cfg.Store.RedisAddr)
	assert.Len(t, cfg.Coupons, 3)
	assert.NotContains(t, cfg.Coupons, "save20")
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("BARGAINBAY_STORE_DRIVER", "mongo")
	_, err := config.LoadArgs(nil)
	require.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.LoadArgs([]string{"--config", filepath.Join(t.TempDir(), "nope.yaml")})
	require.Error(t, err)
}
