package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage drivers accepted by STORAGE_DRIVER.
const (
	DriverBolt     = "bolt"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config aggregates all runtime settings required by the application.
type Config struct {
	AppName      string
	Environment  string
	HTTP         HTTPConfig
	Storage      StorageConfig
	Bolt         BoltConfig
	Redis        RedisConfig
	Database     DatabaseConfig
	SQLite       SQLiteConfig
	Migrations   MigrationsConfig
	Suggestions  SuggestionsConfig
	Weather      WeatherConfig
	Breaker      BreakerConfig
	Monitor      MonitorConfig
	Context      ContextConfig
	Logger       LoggerConfig
	ChildProfile ChildProfileConfig
}

type HTTPConfig struct {
	Host          string
	Port          string
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
	IdleTimeout   time.Duration
	MaxConn       int
	EnableMetrics bool
}

// StorageConfig selects the durable slot backend and how snapshots are read back.
type StorageConfig struct {
	Driver          string
	ActivitiesKey   string
	TasksKey        string
	HydrationPolicy string
	SaveTimeout     time.Duration
}

type BoltConfig struct {
	Path   string
	Bucket string
}

type RedisConfig struct {
	URL      string
	Password string
	DB       int
	Prefix   string
}

type DatabaseConfig struct {
	URL             string
	Host            string
	Port            string
	Name            string
	User            string
	Password        string
	MaxOpenConns    int
	MaxIdleConns    int
	MaxConnLifetime time.Duration
	SSLMode         string
}

type SQLiteConfig struct {
	Path string
}

type MigrationsConfig struct {
	Enabled bool
	Path    string
}

type SuggestionsConfig struct {
	BaseURL string
	Limit   int
	Timeout time.Duration
}

type WeatherConfig struct {
	BaseURL         string
	Latitude        float64
	Longitude       float64
	Timeout         time.Duration
	RefreshInterval time.Duration
}

// BreakerConfig tunes the circuit breaker in front of each remote API.
type BreakerConfig struct {
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	FailureThreshold uint32
}

type MonitorConfig struct {
	Interval time.Duration
}

type ContextConfig struct {
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

type LoggerConfig struct {
	Level    string
	Encoding string
	Output   string
}

type ChildProfileConfig struct {
	Path string
}

// Load reads configuration from environment variables (optionally .env)
// and applies defaults that run the tracker against a local bolt file.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := &Config{
		AppName:     getString("APP_NAME", "careconnect"),
		Environment: getString("APP_ENV", "development"),
		HTTP: HTTPConfig{
			Host:          getString("SERVER_HOST", "0.0.0.0"),
			Port:          getString("SERVER_PORT", "8080"),
			ReadTimeout:   getDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:  getDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
			IdleTimeout:   getDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
			MaxConn:       getInt("SERVER_MAX_CONN", 0),
			EnableMetrics: getBool("SERVER_ENABLE_METRICS", true),
		},
		Storage: StorageConfig{
			Driver:          strings.ToLower(getString("STORAGE_DRIVER", DriverBolt)),
			ActivitiesKey:   getString("STORAGE_ACTIVITIES_KEY", "careconnect_activities_v1"),
			TasksKey:        getString("STORAGE_TASKS_KEY", "careconnect_tasks_v1"),
			HydrationPolicy: getString("STORAGE_HYDRATION_POLICY", "lenient"),
			SaveTimeout:     getDuration("STORAGE_SAVE_TIMEOUT", 3*time.Second),
		},
		Bolt: BoltConfig{
			Path:   getString("BOLTDB_PATH", "./data/careconnect.db"),
			Bucket: getString("BOLTDB_BUCKET", "slots"),
		},
		Redis: RedisConfig{
			URL:      getString("REDIS_URL", "redis://localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getInt("REDIS_DB", 0),
			Prefix:   getString("REDIS_SLOT_PREFIX", "slot:"),
		},
		Database: DatabaseConfig{
			URL:             os.Getenv("DATABASE_URL"),
			Host:            getString("DB_HOST", "localhost"),
			Port:            getString("DB_PORT", "5432"),
			Name:            getString("DB_NAME", "careconnect"),
			User:            getString("DB_USER", "careconnect"),
			Password:        os.Getenv("DB_PASSWORD"),
			MaxOpenConns:    getInt("DB_MAX_OPEN_CONNS", 5),
			MaxIdleConns:    getInt("DB_MAX_IDLE_CONNS", 1),
			MaxConnLifetime: getDuration("DB_CONN_LIFETIME", time.Hour),
			SSLMode:         getString("DB_SSLMODE", "disable"),
		},
		SQLite: SQLiteConfig{
			Path: getString("SQLITE_PATH", "./data/careconnect.sqlite"),
		},
		Migrations: MigrationsConfig{
			Enabled: getBool("RUN_MIGRATIONS", true),
			Path:    getString("MIGRATIONS_PATH", "./assets/migrations"),
		},
		Suggestions: SuggestionsConfig{
			BaseURL: getString("SUGGESTIONS_BASE_URL", "https://jsonplaceholder.typicode.com"),
			Limit:   getInt("SUGGESTIONS_LIMIT", 5),
			Timeout: getDuration("SUGGESTIONS_TIMEOUT", 5*time.Second),
		},
		Weather: WeatherConfig{
			BaseURL:         getString("WEATHER_BASE_URL", "https://api.open-meteo.com"),
			Latitude:        getFloat("WEATHER_LATITUDE", 33.5313),
			Longitude:       getFloat("WEATHER_LONGITUDE", -117.7076),
			Timeout:         getDuration("WEATHER_TIMEOUT", 5*time.Second),
			RefreshInterval: getDuration("WEATHER_REFRESH_INTERVAL", 0),
		},
		Breaker: BreakerConfig{
			MaxRequests:      uint32(getInt("BREAKER_MAX_REQUESTS", 1)),
			Interval:         getDuration("BREAKER_INTERVAL", time.Minute),
			Timeout:          getDuration("BREAKER_TIMEOUT", 30*time.Second),
			FailureThreshold: uint32(getInt("BREAKER_FAILURE_THRESHOLD", 3)),
		},
		Monitor: MonitorConfig{
			Interval: getDuration("MONITOR_INTERVAL", 15*time.Second),
		},
		Context: ContextConfig{
			RequestTimeout:  getDuration("REQUEST_TIMEOUT_SECONDS", 5*time.Second),
			ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT_SECONDS", 15*time.Second),
		},
		Logger: LoggerConfig{
			Level:    getString("LOG_LEVEL", "info"),
			Encoding: getString("LOG_ENCODING", "json"),
			Output:   getString("LOG_OUTPUT", "stdout"),
		},
		ChildProfile: ChildProfileConfig{
			Path: os.Getenv("CHILD_PROFILE_PATH"),
		},
	}

	if cfg.Database.URL == "" {
		cfg.Database.URL = buildPostgresURL(cfg)
	}

	switch cfg.Storage.Driver {
	case DriverBolt, DriverRedis, DriverPostgres, DriverSQLite:
	default:
		return nil, fmt.Errorf("unsupported STORAGE_DRIVER %q", cfg.Storage.Driver)
	}
	if cfg.Storage.ActivitiesKey == cfg.Storage.TasksKey {
		return nil, fmt.Errorf("activities and tasks slots must differ, both are %q", cfg.Storage.TasksKey)
	}
	if cfg.Suggestions.Limit <= 0 {
		cfg.Suggestions.Limit = 5
	}

	return cfg, nil
}

// MustLoad panics if configuration cannot be loaded.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

func buildPostgresURL(cfg *Config) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.Name,
		cfg.Database.SSLMode,
	)
}

func getString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getFloat(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseFloat(val, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
		if seconds, err := strconv.Atoi(val); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return fallback
}

// Address returns the HTTP listen address for the fasthttp server.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%s", c.HTTP.Host, c.HTTP.Port)
}

// SlotKeys lists the durable slots owned by the application.
func (c *Config) SlotKeys() []string {
	return []string{c.Storage.ActivitiesKey, c.Storage.TasksKey}
}
