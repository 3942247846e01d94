package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App       AppConfig
	Store     StoreConfig
	Remote    RemoteConfig
	Auth      AuthConfig
	Sync      SyncConfig
	Logging   LoggingConfig
	Server    ServerConfig
	CORS      CORSConfig
	Security  SecurityConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Name        string
	Environment string
	Port        int
}

// StoreConfig configures the durable record store. The default driver is a
// local sqlite file; postgres is used when several instances share one store.
type StoreConfig struct {
	// Driver selects the storage backend: "sqlite" or "postgres"
	Driver string
	// Path is the sqlite database file path (sqlite driver only)
	Path string
	// BackupDir is where the auto-backup job writes snapshots
	BackupDir string

	Host            string
	Port            int
	Name            string
	User            string
	Password        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int
}

// RemoteConfig configures the optional remote quote collection. The remote
// store is a read-priority mirror: reads prefer it when reachable, writes
// are best-effort, and the app runs fine without it.
type RemoteConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Name     string
	User     string
	Password string
	SSLMode  string
	// QueryTimeout is the per-call timeout for remote reads (seconds)
	QueryTimeout int
}

// AuthConfig configures the admin password gate.
type AuthConfig struct {
	// AdminHash is the hex SHA-256 digest of the shared admin secret
	AdminHash string
	// SessionSecret signs the admin session token
	SessionSecret string
	// SessionTimeout is the session validity window (minutes)
	SessionTimeout int
	// MaxAttempts is the number of consecutive failures before lockout
	MaxAttempts int
	// LockoutWindow is the failure-counting and lockout window (minutes)
	LockoutWindow int
}

// SyncConfig configures the change-detection coordinator.
type SyncConfig struct {
	// PollInterval is the cross-process polling fallback interval (seconds).
	// In-process changes are pushed over the store's change bus; polling only
	// bounds staleness for writes made by other processes.
	PollInterval int
}

type LoggingConfig struct {
	Level  string
	Format string
}

type ServerConfig struct {
	ReadTimeout    int
	WriteTimeout   int
	RequestTimeout int
}

// CORSConfig holds CORS configuration
type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

// SecurityConfig holds security header configuration
type SecurityConfig struct {
	EnableHSTS            bool
	HSTSMaxAge            int
	HSTSIncludeSubdomains bool
	ContentSecurityPolicy string
	FrameOptions          string
	ContentTypeNosniff    bool
	ReferrerPolicy        string
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Enabled           bool
	RequestsPerMinute int
	WhitelistIPs      []string
	WhitelistPaths    []string
}

// ConnectionString builds the postgres connection string for the record store
func (s *StoreConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		s.Host, s.Port, s.User, s.Password, s.Name, s.SSLMode,
	)
}

// ConnectionString builds the postgres connection string for the remote mirror
func (r *RemoteConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		r.Host, r.Port, r.User, r.Password, r.Name, r.SSLMode,
	)
}

// QueryTimeoutDuration returns the remote query timeout as a duration
func (r *RemoteConfig) QueryTimeoutDuration() time.Duration {
	return time.Duration(r.QueryTimeout) * time.Second
}

// SessionTimeoutDuration returns the session validity window as a duration
func (a *AuthConfig) SessionTimeoutDuration() time.Duration {
	return time.Duration(a.SessionTimeout) * time.Minute
}

// LockoutWindowDuration returns the lockout window as a duration
func (a *AuthConfig) LockoutWindowDuration() time.Duration {
	return time.Duration(a.LockoutWindow) * time.Minute
}

// PollIntervalDuration returns the polling fallback interval as a duration
func (s *SyncConfig) PollIntervalDuration() time.Duration {
	return time.Duration(s.PollInterval) * time.Second
}

// ReadTimeoutDuration returns read timeout as duration
func (s *ServerConfig) ReadTimeoutDuration() time.Duration {
	return time.Duration(s.ReadTimeout) * time.Second
}

// WriteTimeoutDuration returns write timeout as duration
func (s *ServerConfig) WriteTimeoutDuration() time.Duration {
	return time.Duration(s.WriteTimeout) * time.Second
}

// ConnMaxLifetimeDuration returns connection max lifetime as duration
func (s *StoreConfig) ConnMaxLifetimeDuration() time.Duration {
	return time.Duration(s.ConnMaxLifetime) * time.Second
}

// Load loads configuration from file and environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Environment variables override config file
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Sensitive values come from the environment, never the config file
	if hash := v.GetString("ADMIN_PASSWORD_HASH"); hash != "" {
		cfg.Auth.AdminHash = hash
	}
	if secret := v.GetString("SESSION_SECRET"); secret != "" {
		cfg.Auth.SessionSecret = secret
	}
	if pw := v.GetString("REMOTE_DB_PASSWORD"); pw != "" {
		cfg.Remote.Password = pw
	}
	if v.GetBool("REMOTE_ENABLED") {
		cfg.Remote.Enabled = true
	}

	if cfg.Auth.AdminHash == "" {
		return nil, fmt.Errorf("ADMIN_PASSWORD_HASH is required")
	}
	if cfg.Auth.SessionSecret == "" {
		return nil, fmt.Errorf("SESSION_SECRET is required")
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "Studio API")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.port", 8080)

	// Record store defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.path", "./data/studio.db")
	v.SetDefault("store.backupDir", "./data/backups")
	v.SetDefault("store.host", "localhost")
	v.SetDefault("store.port", 5432)
	v.SetDefault("store.name", "studio")
	v.SetDefault("store.user", "studio_user")
	v.SetDefault("store.password", "studio_password")
	v.SetDefault("store.sslMode", "disable")
	v.SetDefault("store.maxOpenConns", 25)
	v.SetDefault("store.maxIdleConns", 5)
	v.SetDefault("store.connMaxLifetime", 300)

	// Remote mirror defaults (optional, fail-soft)
	v.SetDefault("remote.enabled", false)
	v.SetDefault("remote.port", 5432)
	v.SetDefault("remote.name", "quotes")
	v.SetDefault("remote.sslMode", "require")
	v.SetDefault("remote.queryTimeout", 10)

	// Auth defaults: 30-minute sessions, 3 attempts per 5-minute window
	v.SetDefault("auth.sessionTimeout", 30)
	v.SetDefault("auth.maxAttempts", 3)
	v.SetDefault("auth.lockoutWindow", 5)

	// Sync defaults
	v.SetDefault("sync.pollInterval", 5)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	// Server defaults
	v.SetDefault("server.readTimeout", 30)
	v.SetDefault("server.writeTimeout", 30)
	v.SetDefault("server.requestTimeout", 60)

	// CORS defaults
	v.SetDefault("cors.allowedOrigins", []string{})
	v.SetDefault("cors.allowedMethods", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	v.SetDefault("cors.allowedHeaders", []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"})
	v.SetDefault("cors.exposedHeaders", []string{"Location", "X-Request-ID"})
	v.SetDefault("cors.allowCredentials", true)
	v.SetDefault("cors.maxAge", 300)

	// Security header defaults
	v.SetDefault("security.enableHSTS", false)
	v.SetDefault("security.hstsMaxAge", 31536000)
	v.SetDefault("security.hstsIncludeSubdomains", true)
	v.SetDefault("security.contentSecurityPolicy", "default-src 'self'")
	v.SetDefault("security.frameOptions", "DENY")
	v.SetDefault("security.contentTypeNosniff", true)
	v.SetDefault("security.referrerPolicy", "strict-origin-when-cross-origin")

	// Rate limiting defaults
	v.SetDefault("rateLimit.enabled", true)
	v.SetDefault("rateLimit.requestsPerMinute", 60)
	v.SetDefault("rateLimit.whitelistIPs", []string{"127.0.0.1", "::1"})
	v.SetDefault("rateLimit.whitelistPaths", []string{"/health", "/health/store"})
}
