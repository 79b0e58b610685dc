package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("GO_ENV", "dev")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DATABASE_URL", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 168*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, 10*time.Second, cfg.GSTTimeout)
	assert.Equal(t, 24*time.Hour, cfg.GSTCacheTTL)
	assert.Equal(t, devJWTSecret, cfg.JWTSecret)
	assert.True(t, cfg.DBAutoMigrate)
	assert.Equal(t, []string{"*"}, cfg.AllowOrigins())
}

func TestLoad_JWTSecretRequiredOutsideDev(t *testing.T) {
	t.Setenv("GO_ENV", "prod")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("GO_ENV", "prod")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_TTL", "1h")
	t.Setenv("BCRYPT_COST", "4")
	t.Setenv("FE_URL", "http://a.example, http://b.example")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, time.Hour, cfg.JWTTTL)
	assert.Equal(t, 4, cfg.BcryptCost)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.AllowOrigins())
	assert.False(t, cfg.IsDev())
}

func TestLoad_InvalidBcryptCost(t *testing.T) {
	t.Setenv("GO_ENV", "dev")
	t.Setenv("BCRYPT_COST", "2")

	_, err := Load()
	require.Error(t, err)
}

func TestDSN(t *testing.T) {
	c := Config{
		PostgresHost: "db", PostgresPort: 5433, PostgresUser: "u",
		PostgresPassword: "p", PostgresDB: "shop", PostgresSSLMode: "disable",
	}
	assert.Equal(t, "host=db port=5433 user=u password=p dbname=shop sslmode=disable", c.DSN())

	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.DSN())
}
