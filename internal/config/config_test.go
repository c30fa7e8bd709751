package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, k := range []string{"APP_PORT", "DB_DRIVER", "JWT_SECRET", "JWT_TTL", "CACHE_TTL", "CORS_ORIGINS", "IS_PROD"} {
		t.Setenv(k, "")
	}
	cfg := LoadConfig()
	assert.Equal(t, "5000", cfg.AppPort)
	assert.Equal(t, DriverMySQL, cfg.DBDriver)
	assert.Equal(t, defaultJWTSecret, cfg.JWTSecret)
	assert.Equal(t, 7*24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 60*time.Second, cfg.CacheTTL)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.False(t, cfg.IsProd)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("APP_PORT", "8080")
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("DB_PATH", "/tmp/x.db")
	t.Setenv("JWT_TTL", "2h")
	t.Setenv("CACHE_TTL", "nonsense")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test,")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("IS_PROD", "true")

	cfg := LoadConfig()
	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, 2*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 60*time.Second, cfg.CacheTTL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.True(t, cfg.IsProd)

	dsn, err := cfg.DSN()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/x.db", dsn)
}

func TestLoadConfigEmptyCORSOrigins(t *testing.T) {
	for _, v := range []string{" , ", ",", "  "} {
		t.Setenv("CORS_ORIGINS", v)
		cfg := LoadConfig()
		assert.Equal(t, []string{"*"}, cfg.CORSOrigins, "CORS_ORIGINS=%q", v)
	}
}

func TestDSN(t *testing.T) {
	cfg := &Config{DBDriver: DriverMySQL, DBUser: "u", DBPassword: "p", DBHost: "db", DBName: "fin"}
	dsn, err := cfg.DSN()
	require.NoError(t, err)
	assert.Equal(t, "u:p@tcp(db:3306)/fin?parseTime=true&loc=UTC", dsn)

	cfg.DBDriver = DriverPostgres
	cfg.DBPort = "6543"
	dsn, err = cfg.DSN()
	require.NoError(t, err)
	assert.Equal(t, "host=db user=u password=p dbname=fin port=6543 sslmode=disable TimeZone=UTC", dsn)

	cfg.DBDriver = "oracle"
	_, err = cfg.DSN()
	assert.Error(t, err)
}
