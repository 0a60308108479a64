package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_ValoresPorDefecto(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, StoragePostgres, cfg.Storage.Driver)
	assert.False(t, cfg.Ledger.AllowNegative, "por defecto las salidas son estrictas")
	assert.False(t, cfg.Ledger.ReconcileOverwrites)
	assert.Equal(t, 5, cfg.Ledger.DefaultPageSize)
	assert.Equal(t, 10*time.Second, cfg.Inspection.Timeout)
	assert.Equal(t, 24*time.Hour, cfg.Redis.IdempotencyTTL)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestFromViper_LeeValoresComoTexto(t *testing.T) {
	v := viper.New()
	v.Set("LEDGER_ALLOW_NEGATIVE", "true")
	v.Set("LEDGER_DEFAULT_PAGE_SIZE", "12")
	v.Set("HTTP_RATE_LIMIT_RPS", "2.5")
	v.Set("STORAGE_DRIVER", "MEMORY")
	v.Set("APP_TIMEZONE", "America/Bogota")

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.True(t, cfg.Ledger.AllowNegative)
	assert.Equal(t, 12, cfg.Ledger.DefaultPageSize)
	assert.Equal(t, 2.5, cfg.HTTP.RateLimitRPS)
	assert.Equal(t, StorageMemory, cfg.Storage.Driver)

	loc, err := cfg.App.Location()
	require.NoError(t, err)
	assert.Equal(t, "America/Bogota", loc.String())
}

func TestFromViper_RechazaDriverDesconocido(t *testing.T) {
	v := viper.New()
	v.Set("STORAGE_DRIVER", "mongo")
	_, err := fromViper(v)
	assert.Error(t, err)
}

func TestFromViper_RechazaZonaHorariaInvalida(t *testing.T) {
	v := viper.New()
	v.Set("APP_TIMEZONE", "Marte/Olympus")
	_, err := fromViper(v)
	assert.Error(t, err)
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:w/rd", DBName: "stock", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aw%2Frd@db:5432/stock?sslmode=disable", c.DSN())

	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}
