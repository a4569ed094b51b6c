package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "0.0.0.0:5000", cfg.HTTP.Addr())
	assert.Equal(t, "https://report.yooga.com.br", cfg.Upstream.BaseURL)
	assert.Equal(t, 300*time.Millisecond, cfg.Upstream.PageDelay)
	assert.Empty(t, cfg.ReportAPI.BaseURL, "sin REPORT_API_URL se usa el colector en proceso")
	assert.False(t, cfg.DB.CacheEnabled)
	assert.Equal(t, "10000", cfg.Goals.Monthly.String())
	assert.Equal(t, "500", cfg.Goals.Daily.String())
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("HTTP_PORT", "8081")
	v.Set("YOOGA_PAGE_DELAY", "0s")
	v.Set("YOOGA_TIMEOUT", "45")
	v.Set("GOAL_MONTHLY", "25000.50")
	v.Set("CACHE_ENABLED", "true")

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.HTTP.Port)
	assert.Equal(t, time.Duration(0), cfg.Upstream.PageDelay)
	assert.Equal(t, 45*time.Second, cfg.Upstream.Timeout)
	assert.Equal(t, "25000.5", cfg.Goals.Monthly.String())
	assert.True(t, cfg.DB.CacheEnabled)
}

func TestFromViper_MetaInvalida(t *testing.T) {
	v := viper.New()
	v.Set("GOAL_DAILY", "quinhentos")

	_, err := fromViper(v)
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss", DBName: "painel", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss@db:5432/painel?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgresql://x/y"
	assert.Equal(t, "postgresql://x/y", c.ConnectionString())
}
