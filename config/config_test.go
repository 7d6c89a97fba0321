package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, OrderSourceDatabase, cfg.OrderSource.Kind)
	assert.Empty(t, cfg.Redis.URL)
	assert.Equal(t, "06:00", cfg.Email.SendAt)
	assert.True(t, cfg.Report.TaxRate.IsZero())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("TAX_RATE", "0.0825")
	t.Setenv("REPORT_CACHE_TTL", "30m")
	t.Setenv("DAILY_SUMMARY_RECIPIENTS", "ops@example.com, ,chef@example.com")
	t.Setenv("ORDER_SOURCE", OrderSourceRemote)
	t.Setenv("TIMEZONE", "America/Chicago")

	cfg := Load()

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.True(t, cfg.Report.TaxRate.Equal(decimal.RequireFromString("0.0825")))
	assert.Equal(t, 30*time.Minute, cfg.Report.CacheTTL)
	assert.Equal(t, []string{"ops@example.com", "chef@example.com"}, cfg.Email.Recipients)
	assert.Equal(t, OrderSourceRemote, cfg.OrderSource.Kind)

	loc, err := cfg.Report.Location()
	require.NoError(t, err)
	assert.Equal(t, "America/Chicago", loc.String())
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-port")
	t.Setenv("TAX_RATE", "ten percent")

	cfg := Load()

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.True(t, cfg.Report.TaxRate.IsZero())
}

func TestReportConfig_InvalidTimezone(t *testing.T) {
	_, err := ReportConfig{Timezone: "Mars/Olympus"}.Location()
	assert.Error(t, err)
}
