package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "DB_DRIVER", "DB_DSN", "JWT_EXPIRES_IN", "AUTH_COOKIE_NAME", "BCRYPT_COST", "LOG_LEVEL"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Equal(t, time.Hour, cfg.JWT.TTL)
	assert.Equal(t, "authToken", cfg.Auth.CookieName)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.NotEmpty(t, cfg.JWT.Secret)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_EXPIRES_IN", "15m")
	t.Setenv("JWT_SECRET", "s3cr3t")
	t.Setenv("BCRYPT_COST", "4")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 15*time.Minute, cfg.JWT.TTL)
	assert.Equal(t, "s3cr3t", cfg.JWT.Secret)
	assert.Equal(t, 4, cfg.Auth.BcryptCost)
}

func TestLoad_BadDuration(t *testing.T) {
	t.Setenv("JWT_EXPIRES_IN", "one hour")
	_, err := Load()
	assert.Error(t, err)
}

func TestSqliteDSN(t *testing.T) {
	assert.Equal(t, "app.db?_pragma=foreign_keys(1)", sqliteDSN("app.db"))
	assert.Equal(t, "file:x?mode=memory&_pragma=foreign_keys(1)", sqliteDSN("file:x?mode=memory"))
	assert.Equal(t, "x.db?_pragma=foreign_keys(0)", sqliteDSN("x.db?_pragma=foreign_keys(0)"))
}

func TestOpenDB_UnknownDriver(t *testing.T) {
	_, err := OpenDB(DBConfig{Driver: "oracle"})
	assert.Error(t, err)
}

func TestOpenDB_MigrateSqlite(t *testing.T) {
	db, err := OpenDB(DBConfig{Driver: "sqlite", DSN: "file:config_test?mode=memory&cache=shared"})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	assert.True(t, db.Migrator().HasTable("order_items"))
	assert.True(t, db.Migrator().HasTable("order_status_histories"))
}

func TestNewLogger(t *testing.T) {
	log, err := NewLogger(LogConfig{Level: "debug", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, log)

	_, err = NewLogger(LogConfig{Level: "loud", Format: "json"})
	assert.Error(t, err)
}
