package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const defaultTokenTTL = 30 * 24 * time.Hour

// Config holds the configuration settings for the application.
// Values come from the environment (optionally seeded from a .env file) and,
// when CONFIG_PATH is set, from a YAML file. The environment wins over the file.
type Config struct {
	Env            string         // Env is the current environment: local, development, production.
	HTTPPort       string         // HTTPPort is the port of the public API.
	MonitoringPort string         // MonitoringPort is the port of the /healthz and /metrics server.
	Database       PostgresConfig // Database holds the postgres database configuration
	JWT            JWTConfig      // JWT holds the bearer token settings.
	Location       *time.Location // Location is where calendar days start and end.
	CORSOrigins    string         // CORSOrigins is a comma separated list of allowed origins.
	LoginRateLimit int            // LoginRateLimit is the per-IP requests/minute on login and register, 0 disables it.
	Telegram       TelegramConfig // Telegram configures enquiry notifications.
	Seed           SeedConfig     // Seed is the admin created at startup when absent.
}

// PostgresConfig struct holds the configuration details for connecting to a PostgreSQL database.
type PostgresConfig struct {
	URL      string // URL is a full connection string, it takes precedence over the other fields.
	Host     string // Host is the database server address.
	Port     string // Port is the database server port.
	User     string // User is the database user.
	Password string // Password is the database user's password.
	Name     string // Name is the name of the database.
	SSLMode  string // SSLMode is passed through as the sslmode parameter.
}

// DSN returns the connection string for pgx.
func (p PostgresConfig) DSN() string {
	if p.URL != "" {
		return p.URL
	}

	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(p.User, p.Password),
		Host:     net.JoinHostPort(p.Host, p.Port),
		Path:     "/" + p.Name,
		RawQuery: url.Values{"sslmode": []string{p.SSLMode}}.Encode(),
	}
	return dsn.String()
}

// JWTConfig holds the token signing settings.
type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

// TelegramConfig holds the bot token and the chats that receive notifications.
type TelegramConfig struct {
	Token   string
	ChatIDs []int64
}

// Enabled reports whether notifications can be sent.
func (t TelegramConfig) Enabled() bool {
	return t.Token != "" && len(t.ChatIDs) > 0
}

// SeedConfig describes the admin account ensured at startup.
type SeedConfig struct {
	Name     string
	Email    string
	Password string
}

// Enabled reports whether both credentials of the seed admin are configured.
func (s SeedConfig) Enabled() bool {
	return s.Email != "" && s.Password != ""
}

// MustLoad loads the configuration and panics on any invalid or missing required value.
func MustLoad() *Config {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("app_env", "local")
	v.SetDefault("http_port", "5000")
	v.SetDefault("monitoring_port", "8080")
	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", "5432")
	v.SetDefault("db_sslmode", "disable")
	v.SetDefault("jwt_expire", "30d")
	v.SetDefault("app_timezone", "Local")
	v.SetDefault("cors_origins", "*")
	v.SetDefault("login_rate_limit", 10)
	v.SetDefault("admin_seed_name", "Super Admin")

	if configPath := os.Getenv("CONFIG_PATH"); configPath != "" {
		if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
			panic("config file does not exist: " + configPath)
		}

		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			panic("config error: " + err.Error())
		}
	}

	secret := v.GetString("jwt_secret")
	if secret == "" {
		panic("JWT_SECRET is required")
	}

	ttl, err := ParseTTL(v.GetString("jwt_expire"))
	if err != nil {
		panic("failed to parse JWT_EXPIRE from configuration")
	}

	loc, err := time.LoadLocation(v.GetString("app_timezone"))
	if err != nil {
		panic("failed to load APP_TIMEZONE from configuration")
	}

	chatIDs, err := parseChatIDs(v.GetString("telegram_chat_ids"))
	if err != nil {
		panic("failed to parse TELEGRAM_CHAT_IDS from configuration")
	}

	return &Config{
		Env:            v.GetString("app_env"),
		HTTPPort:       v.GetString("http_port"),
		MonitoringPort: v.GetString("monitoring_port"),
		Database: PostgresConfig{
			URL:      v.GetString("database_url"),
			Host:     v.GetString("db_host"),
			Port:     v.GetString("db_port"),
			User:     v.GetString("db_username"),
			Password: v.GetString("db_password"),
			Name:     v.GetString("db_name"),
			SSLMode:  v.GetString("db_sslmode"),
		},
		JWT:            JWTConfig{Secret: secret, TTL: ttl},
		Location:       loc,
		CORSOrigins:    v.GetString("cors_origins"),
		LoginRateLimit: v.GetInt("login_rate_limit"),
		Telegram: TelegramConfig{
			Token:   v.GetString("telegram_token"),
			ChatIDs: chatIDs,
		},
		Seed: SeedConfig{
			Name:     v.GetString("admin_seed_name"),
			Email:    v.GetString("admin_seed_email"),
			Password: v.GetString("admin_seed_password"),
		},
	}
}

// ParseTTL parses a token lifetime. It accepts Go durations ("12h") and whole days ("30d").
// An empty value selects the 30 day default.
func ParseTTL(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return defaultTokenTTL, nil
	}

	if days, ok := strings.CutSuffix(value, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil || n <= 0 {
			return 0, fmt.Errorf("invalid day count %q", value)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}

	ttl, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", value, err)
	}
	if ttl <= 0 {
		return 0, fmt.Errorf("duration %q must be positive", value)
	}
	return ttl, nil
}

func parseChatIDs(value string) ([]int64, error) {
	var ids []int64
	for _, raw := range strings.Split(value, ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid chat id %q: %w", raw, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
