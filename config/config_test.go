package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "8080", cfg.ApiServer.Port)
	require.Equal(t, 50, cfg.ApiServer.MaxLimit)
	require.Equal(t, 10, cfg.ApiServer.DefaultLimit)
	require.Equal(t, 5*time.Minute, cfg.Auth.AccessToken.Expiration)
	require.Equal(t, int64(1), cfg.Reward.SnowflakeNode)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("API_PORT", "9000")
	t.Setenv("API_MAX_LIMIT", "20")
	t.Setenv("LOCK_TTL", "3s")
	t.Setenv("STORAGE_SSL_DISABLED", "true")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":9000", cfg.ApiServer.Address())
	require.Equal(t, 20, cfg.ApiServer.MaxLimit)
	require.Equal(t, 3*time.Second, cfg.Reward.LockTTL)
	require.True(t, cfg.Storage.SSLDisabled)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("API_MAX_LIMIT", "many")

	_, err := Load()
	require.Error(t, err)
}

func TestDatabaseConfigs_ConnectionString(t *testing.T) {
	d := DatabaseConfigs{User: "u", Password: "p", Host: "h", Port: "1", Database: "d"}
	require.Equal(t,
		"u:p@tcp(h:1)/d?charset=utf8mb4&parseTime=True&loc=Local&multiStatements=true",
		d.ConnectionString())
}
