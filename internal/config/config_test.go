package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

const minimalConfig = `
[database]
host = "localhost"
user = "booking"
password = "secret"
dbname = "space_booking"

[space_service]
url = "http://space-service:8081"

[user_service]
url = "http://user-service:8082"
`

func TestLoad_AppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, "info", cfg.Logs.Level)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, 90, cfg.Engine.SlotHorizonDays)
	assert.Equal(t, time.Minute, cfg.Engine.ExpirySweepInterval())
	assert.Equal(t, 5*time.Second, cfg.UserService.TimeoutDuration())
	assert.Equal(t,
		"host=localhost port=5432 user=booking password=secret dbname=space_booking sslmode=disable",
		cfg.Database.DSN())
}

func TestLoad_ExplicitValues(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig+`
[server]
http_port = 9090

[engine]
slot_horizon_days = 30
expiry_sweep_interval_seconds = 5
max_slots_per_request = 10
`))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 30, cfg.Engine.SlotHorizonDays)
	assert.Equal(t, 5*time.Second, cfg.Engine.ExpirySweepInterval())
	assert.Equal(t, 10, cfg.Engine.MaxSlotsPerRequest)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, ErrConfigNotFound)

	_, err = Load(writeConfig(t, `[database`))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, `
[database]
host = "localhost"
dbname = "x"
max_open_conns = 2
max_idle_conns = 4

[space_service]
url = "not a url"

[user_service]
url = "http://user-service"
`))
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "max_idle_conns")
	assert.Contains(t, err.Error(), "space_service.url")
}
