package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := load(viper.New())

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "fbaplan", cfg.Database.DBName)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, 300, cfg.Cache.ForecastTTLSeconds)

	transport := cfg.Planning.TransportDefaults()
	assert.Equal(t, 25, transport.StandardShippingDays)
	assert.Equal(t, 10, transport.StandardShelfDays)
	assert.Equal(t, 35, transport.OversizedShippingDays)
	assert.Equal(t, 10, transport.OversizedShelfDays)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("PLANNING_OVERSIZED_SHIPPING_DAYS", "50")
	t.Setenv("PLANNING_TIMEZONE", "UTC")
	t.Setenv("CACHE_ENABLED", "true")

	cfg := load(viper.New())

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 50, cfg.Planning.TransportDefaults().OversizedShippingDays)
	assert.Equal(t, "UTC", cfg.Planning.Location().String())
}

func TestPlanningConfig_InvalidTimezone(t *testing.T) {
	p := PlanningConfig{Timezone: "Nowhere/Special"}
	assert.Equal(t, time.Local, p.Location())
}

func TestDatabaseConfig_DSN(t *testing.T) {
	c := DatabaseConfig{Host: "db", Port: "5432", User: "u", Password: "p", DBName: "n", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=n sslmode=disable", c.DSN())
}
