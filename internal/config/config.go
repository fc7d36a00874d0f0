package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// MinTokenSecretLen is the shortest AUTH_TOKEN_SECRET accepted for HS256 signing.
const MinTokenSecretLen = 32

const (
	BackendMySQL    = "mysql"
	BackendWorkbook = "workbook"
	BackendMongo    = "mongo"
)

type Config struct {
	Server   ServerConfig
	Store    StoreConfig
	Database DatabaseConfig
	Workbook WorkbookConfig
	Mongo    MongoConfig
	Redis    RedisConfig
	Order    OrderConfig
	Auth     AuthConfig
	Log      LogConfig
}

type ServerConfig struct {
	Port            int
	ShutdownTimeout time.Duration
}

type StoreConfig struct {
	Backend string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	Location        *time.Location
}

type WorkbookConfig struct {
	Path string
}

type MongoConfig struct {
	URI      string
	Database string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

func (c RedisConfig) Enabled() bool {
	return c.Addr != ""
}

type OrderConfig struct {
	Location         *time.Location
	Locale           string
	WriteTimeout     time.Duration
	// MaxRetryAttempts bounds retries of a submission that hit a MySQL deadlock.
	MaxRetryAttempts int
}

type AuthConfig struct {
	CredentialsFile string
	TokenSecret     string
	TokenTTL        time.Duration
}

type LogConfig struct {
	Level  string
	Format string
}

// Load reads the environment, optionally layered over a YAML file at path.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
	v.SetDefault("STORE_BACKEND", BackendMySQL)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 3306)
	v.SetDefault("DB_USER", "orderdesk")
	v.SetDefault("DB_PASSWORD", "secret")
	v.SetDefault("DB_NAME", "orderdesk")
	v.SetDefault("DB_MAX_OPEN_CONNS", 25)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "5m")
	v.SetDefault("WORKBOOK_PATH", "orders.xlsx")
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017/?replicaSet=rs0")
	v.SetDefault("MONGO_DATABASE", "orderdesk")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("DROPDOWN_CACHE_TTL", "5m")
	v.SetDefault("TIMEZONE", "Local")
	v.SetDefault("LOCALE", "en")
	v.SetDefault("ORDER_WRITE_TIMEOUT", "5s")
	v.SetDefault("ORDER_MAX_RETRY_ATTEMPTS", 3)
	v.SetDefault("AUTH_CREDENTIALS_FILE", "config/employees.yaml")
	v.SetDefault("AUTH_TOKEN_TTL", "12h")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	durations := map[string]time.Duration{}
	for _, key := range []string{"SHUTDOWN_TIMEOUT", "DB_CONN_MAX_LIFETIME", "DROPDOWN_CACHE_TTL", "ORDER_WRITE_TIMEOUT", "AUTH_TOKEN_TTL"} {
		d, err := time.ParseDuration(v.GetString(key))
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", key, err)
		}
		durations[key] = d
	}

	loc, err := time.LoadLocation(v.GetString("TIMEZONE"))
	if err != nil {
		return nil, fmt.Errorf("loading TIMEZONE: %w", err)
	}

	backend := strings.ToLower(v.GetString("STORE_BACKEND"))
	switch backend {
	case BackendMySQL, BackendWorkbook, BackendMongo:
	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q", backend)
	}

	secret := v.GetString("AUTH_TOKEN_SECRET")
	if err := checkTokenSecret(secret); err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            v.GetInt("SERVER_PORT"),
			ShutdownTimeout: durations["SHUTDOWN_TIMEOUT"],
		},
		Store: StoreConfig{
			Backend: backend,
		},
		Database: DatabaseConfig{
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			Name:            v.GetString("DB_NAME"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: durations["DB_CONN_MAX_LIFETIME"],
			Location:        loc,
		},
		Workbook: WorkbookConfig{
			Path: v.GetString("WORKBOOK_PATH"),
		},
		Mongo: MongoConfig{
			URI:      v.GetString("MONGO_URI"),
			Database: v.GetString("MONGO_DATABASE"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
			TTL:      durations["DROPDOWN_CACHE_TTL"],
		},
		Order: OrderConfig{
			Location:         loc,
			Locale:           v.GetString("LOCALE"),
			WriteTimeout:     durations["ORDER_WRITE_TIMEOUT"],
			MaxRetryAttempts: v.GetInt("ORDER_MAX_RETRY_ATTEMPTS"),
		},
		Auth: AuthConfig{
			CredentialsFile: v.GetString("AUTH_CREDENTIALS_FILE"),
			TokenSecret:     secret,
			TokenTTL:        durations["AUTH_TOKEN_TTL"],
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: strings.ToLower(v.GetString("LOG_FORMAT")),
		},
	}

	return cfg, nil
}

var placeholderSecrets = map[string]bool{
	"change-me": true,
	"changeme":  true,
	"secret":    true,
}

func checkTokenSecret(secret string) error {
	switch {
	case secret == "":
		return fmt.Errorf("AUTH_TOKEN_SECRET is required")
	case placeholderSecrets[strings.ToLower(secret)]:
		return fmt.Errorf("AUTH_TOKEN_SECRET is a placeholder value")
	case len(secret) < MinTokenSecretLen:
		return fmt.Errorf("AUTH_TOKEN_SECRET must be at least %d bytes", MinTokenSecretLen)
	}
	return nil
}
