package config_test

import (
	"testing"
	"time"

	"github.com/Flaque/filet"
	"github.com/RajatSinghRajawat/maanvibackend/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_MustLoadFromEnv(t *testing.T) {
	t.Setenv("APP_ENV", "local")
	t.Setenv("HTTP_PORT", "5001")
	t.Setenv("JWT_SECRET", "someSecret")
	t.Setenv("JWT_EXPIRE", "7d")
	t.Setenv("APP_TIMEZONE", "UTC")
	t.Setenv("DB_HOST", "testHost")
	t.Setenv("DB_PORT", "12345")
	t.Setenv("DB_USERNAME", "admin")
	t.Setenv("DB_PASSWORD", "adminpass")
	t.Setenv("DB_NAME", "testName")
	t.Setenv("TELEGRAM_TOKEN", "someTelegramToken")
	t.Setenv("TELEGRAM_CHAT_IDS", "101, -2002")
	t.Setenv("LOGIN_RATE_LIMIT", "0")

	cfg := config.MustLoad()

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "5001", cfg.HTTPPort)
	assert.Equal(t, "8080", cfg.MonitoringPort)
	assert.Equal(t, "someSecret", cfg.JWT.Secret)
	assert.Equal(t, 7*24*time.Hour, cfg.JWT.TTL)
	assert.Equal(t, time.UTC, cfg.Location)
	assert.Equal(t, "testHost", cfg.Database.Host)
	assert.Equal(t, "12345", cfg.Database.Port)
	assert.Equal(t, "admin", cfg.Database.User)
	assert.Equal(t, "adminpass", cfg.Database.Password)
	assert.Equal(t, "testName", cfg.Database.Name)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, "someTelegramToken", cfg.Telegram.Token)
	assert.Equal(t, []int64{101, -2002}, cfg.Telegram.ChatIDs)
	assert.True(t, cfg.Telegram.Enabled())
	assert.Equal(t, 0, cfg.LoginRateLimit)
	assert.False(t, cfg.Seed.Enabled())
}

func TestMustLoad_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	assert.PanicsWithValue(t, "JWT_SECRET is required", func() {
		config.MustLoad()
	})
}

func TestMustLoad_ExpireError(t *testing.T) {
	t.Setenv("JWT_SECRET", "someSecret")
	t.Setenv("JWT_EXPIRE", "error_value")

	assert.PanicsWithValue(t, "failed to parse JWT_EXPIRE from configuration", func() {
		config.MustLoad()
	})
}

func TestMustLoad_TimezoneError(t *testing.T) {
	t.Setenv("JWT_SECRET", "someSecret")
	t.Setenv("APP_TIMEZONE", "Mars/Olympus_Mons")

	assert.PanicsWithValue(t, "failed to load APP_TIMEZONE from configuration", func() {
		config.MustLoad()
	})
}

func TestMustLoad_ChatIDsError(t *testing.T) {
	t.Setenv("JWT_SECRET", "someSecret")
	t.Setenv("TELEGRAM_CHAT_IDS", "12,abc")

	assert.PanicsWithValue(t, "failed to parse TELEGRAM_CHAT_IDS from configuration", func() {
		config.MustLoad()
	})
}

func TestMustLoad_FileNotExist(t *testing.T) {
	t.Setenv("CONFIG_PATH", "./invalid/path")

	assert.PanicsWithValue(t, "config file does not exist: ./invalid/path", func() {
		config.MustLoad()
	})
}

func TestMustLoad_ReadError(t *testing.T) {
	tmpFile := filet.TmpFile(t, "", "::::bad_yaml")
	defer filet.CleanUp(t)

	t.Setenv("CONFIG_PATH", tmpFile.Name())

	assert.Panics(t, func() {
		config.MustLoad()
	})
}

func TestMustLoad_FromFile(t *testing.T) {
	configContent := `
---
app_env: "development"
http_port: "7000"
jwt_secret: "file-secret"
jwt_expire: "12h"
app_timezone: "UTC"
admin_seed_email: "root@example.com"
admin_seed_password: "changeme"
`
	filet.File(t, "conf.yaml", configContent)
	defer filet.CleanUp(t)

	t.Setenv("CONFIG_PATH", "conf.yaml")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("HTTP_PORT", "9000")

	cfg := config.MustLoad()

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "9000", cfg.HTTPPort, "environment wins over the file")
	assert.Equal(t, "file-secret", cfg.JWT.Secret)
	assert.Equal(t, 12*time.Hour, cfg.JWT.TTL)
	assert.True(t, cfg.Seed.Enabled())
	assert.Equal(t, "Super Admin", cfg.Seed.Name)
}

func TestParseTTL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		value   string
		want    time.Duration
		wantErr bool
	}{
		{name: "empty selects default", value: "", want: 30 * 24 * time.Hour},
		{name: "days", value: "30d", want: 30 * 24 * time.Hour},
		{name: "go duration", value: "90m", want: 90 * time.Minute},
		{name: "zero days", value: "0d", wantErr: true},
		{name: "negative duration", value: "-1h", wantErr: true},
		{name: "garbage", value: "soon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := config.ParseTTL(tt.value)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPostgresConfig_DSN(t *testing.T) {
	t.Parallel()

	pg := config.PostgresConfig{
		Host:     "db",
		Port:     "5432",
		User:     "admin",
		Password: "secret",
		Name:     "maanvi",
		SSLMode:  "disable",
	}
	assert.Equal(t, "postgres://admin:secret@db:5432/maanvi?sslmode=disable", pg.DSN())

	pg.URL = "postgres://other@host/db"
	assert.Equal(t, "postgres://other@host/db", pg.DSN())
}
