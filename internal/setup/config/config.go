package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

var (
	ErrConfigFileNotFound    = errors.New("could not find config file in any config path")
	ErrConfigVersionMissing  = errors.New("config file is missing version field")
	ErrConfigVersionMismatch = errors.New("config file version mismatch")
)

// RepositoryVersion is the repository version tag for config file references.
const RepositoryVersion = "v0.3.0"

// Current version of the config file.
const (
	CurrentCommonVersion = 1
	CurrentAPIVersion    = 1
)

// Config represents the entire application configuration.
type Config struct {
	Common CommonConfig
	API    APIConfig
}

// CommonConfig contains configuration shared between the API and the tools.
type CommonConfig struct {
	// Version of the common config.
	Version    int        `koanf:"version"`
	Debug      Debug      `koanf:"debug"`
	PostgreSQL PostgreSQL `koanf:"postgresql"`
	Redis      Redis      `koanf:"redis"`
	Telemetry  Telemetry  `koanf:"telemetry"`
	Engine     Engine     `koanf:"engine"`
}

// APIConfig contains REST server specific configuration.
type APIConfig struct {
	// Version of the api config.
	Version   int       `koanf:"version"`
	Server    Server    `koanf:"server"`
	Auth      Auth      `koanf:"auth"`
	Cache     Cache     `koanf:"cache"`
	RateLimit RateLimit `koanf:"rate_limit"`
	Reports   Reports   `koanf:"reports"`
}

// Debug contains debug-related configuration.
type Debug struct {
	// Log level (debug, info, warn, error).
	LogLevel string `koanf:"log_level"`
	// Maximum log sessions to keep.
	MaxLogsToKeep int `koanf:"max_logs_to_keep"`
	// Maximum lines per log file.
	MaxLogLines int `koanf:"max_log_lines"`
	// Enable pprof debugging.
	EnablePprof bool `koanf:"enable_pprof"`
	// pprof server port.
	PprofPort int `koanf:"pprof_port"`
}

// PostgreSQL contains database connection configuration.
type PostgreSQL struct {
	// Database hostname.
	Host string `koanf:"host"`
	// Database port.
	Port int `koanf:"port"`
	// Database username.
	User string `koanf:"user"`
	// Database password.
	Password string `koanf:"password"`
	// Database name.
	DBName string `koanf:"db_name"`
	// Use TLS for the connection.
	TLS bool `koanf:"tls"`
	// Maximum open connections.
	MaxOpenConns int `koanf:"max_open_conns"`
	// Maximum idle connections.
	MaxIdleConns int `koanf:"max_idle_conns"`
	// Connection lifetime in minutes.
	MaxLifetime int `koanf:"max_lifetime"`
	// Idle timeout in minutes.
	MaxIdleTime int `koanf:"max_idle_time"`
}

// Redis contains Redis connection configuration.
type Redis struct {
	// Redis hostname.
	Host string `koanf:"host"`
	// Redis port.
	Port int `koanf:"port"`
	// Redis username.
	Username string `koanf:"username"`
	// Redis password.
	Password string `koanf:"password"`
	// Disable server-assisted client side caching (needed for Redis < 6).
	DisableClientCache bool `koanf:"disable_client_cache"`
}

// Telemetry contains tracing configuration.
type Telemetry struct {
	// Uptrace DSN. Tracing export is disabled when empty.
	UptraceDSN string `koanf:"uptrace_dsn"`
	// Deployment environment reported with every span.
	Environment string `koanf:"environment"`
}

// Engine contains the tunable constants of the consensus engines.
type Engine struct {
	// Minutes before closing at which a pub reports closing soon.
	ClosingSoonMinutes int `koanf:"closing_soon_minutes"`
	// Minutes before opening at which the detail counts down instead of naming the time.
	OpeningSoonMinutes int `koanf:"opening_soon_minutes"`
	// Minimum total votes before amenity consensus may decide.
	AmenityQuorum int `koanf:"amenity_quorum"`
	// Lead the winning side needs over the losing side.
	AmenityMargin int `koanf:"amenity_margin"`
	// Lead needed to flip an already decided amenity. Zero disables hysteresis.
	AmenityFlipMargin int `koanf:"amenity_flip_margin"`
	// Days a verification counts as recent.
	ConfidenceWindowDays int `koanf:"confidence_window_days"`
	// Recent accurate verifications needed for high confidence.
	ConfidenceHighThreshold int `koanf:"confidence_high_threshold"`
	// Recent dissenters that must agree on an amount before it is proposed.
	CorrectionQuorum int `koanf:"correction_quorum"`
	// Maximum concurrent reconciliations when re-running a whole pub.
	ReconcileConcurrency int `koanf:"reconcile_concurrency"`
}

// ConfidenceWindow returns the recency window as a duration.
func (e Engine) ConfidenceWindow() time.Duration {
	return time.Duration(e.ConfidenceWindowDays) * 24 * time.Hour
}

// Server contains the REST listener configuration.
type Server struct {
	// Host to bind.
	Host string `koanf:"host"`
	// Port to bind.
	Port int `koanf:"port"`
	// Request timeout in milliseconds.
	RequestTimeout int `koanf:"request_timeout"`
	// Graceful shutdown timeout in milliseconds.
	ShutdownTimeout int `koanf:"shutdown_timeout"`
	// Trust X-Forwarded-For from these proxy CIDRs.
	TrustedProxies []string `koanf:"trusted_proxies"`
}

// Auth contains bearer token verification configuration.
type Auth struct {
	// HMAC secret the tokens are signed with.
	JWTSecret string `koanf:"jwt_secret"`
	// Expected token issuer. Not checked when empty.
	Issuer string `koanf:"issuer"`
	// Expected token audience. Not checked when empty.
	Audience string `koanf:"audience"`
}

// Cache contains read-through cache configuration.
type Cache struct {
	// Enable the Redis cache.
	Enabled bool `koanf:"enabled"`
	// Entry lifetime in seconds.
	TTL int `koanf:"ttl"`
}

// RateLimit contains per-client rate limiting configuration.
type RateLimit struct {
	// Requests per second for anonymous clients.
	RequestsPerSecond float64 `koanf:"requests_per_second"`
	// Burst size for anonymous clients.
	BurstSize int `koanf:"burst_size"`
	// Requests per second for authenticated clients.
	AuthRequestsPerSecond float64 `koanf:"auth_requests_per_second"`
	// Burst size for authenticated clients.
	AuthBurstSize int `koanf:"auth_burst_size"`
	// Violations before a client is blocked.
	StrikeLimit int `koanf:"strike_limit"`
	// Block duration in seconds.
	BlockDuration int `koanf:"block_duration"`
}

// Reports contains report intake configuration.
type Reports struct {
	// Key mixed into anonymous reporter fingerprints.
	FingerprintKey string `koanf:"fingerprint_key"`
	// Reports one reporter may file per window. Zero disables the limit.
	FloodLimit int `koanf:"flood_limit"`
	// Flood window in minutes.
	FloodWindow int `koanf:"flood_window"`
}

// LoadConfig loads the configuration files.
// Returns the config along with the used config directory.
func LoadConfig() (*Config, string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return LoadConfigFrom([]string{
		".pintwise",
		homeDir + "/.pintwise/config",
		"/etc/pintwise/config",
		"/app/config",
		"config",
		".",
	})
}

// LoadConfigFrom loads the configuration files from the first matching search path.
func LoadConfigFrom(configPaths []string) (*Config, string, error) {
	k := koanf.New(".")

	var usedConfigPath string

	configFiles := []string{"common", "api"}
	for _, configName := range configFiles {
		configLoaded := false

		for _, path := range configPaths {
			configPath := fmt.Sprintf("%s/%s.toml", path, configName)
			if err := k.Load(file.Provider(configPath), toml.Parser()); err == nil {
				configLoaded = true

				if usedConfigPath == "" {
					usedConfigPath = path
				}

				break
			}
		}

		if !configLoaded {
			return nil, "", fmt.Errorf("%w: %s.toml", ErrConfigFileNotFound, configName)
		}
	}

	var config Config
	if err := k.Unmarshal("", &config); err != nil {
		return nil, "", fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := checkConfigVersion("common", config.Common.Version, CurrentCommonVersion); err != nil {
		return nil, "", err
	}

	if err := checkConfigVersion("api", config.API.Version, CurrentAPIVersion); err != nil {
		return nil, "", err
	}

	return &config, usedConfigPath, nil
}

// checkConfigVersion checks if the config file version is correct.
func checkConfigVersion(name string, current, expected int) error {
	if current == 0 {
		return fmt.Errorf("%w: %s.toml", ErrConfigVersionMissing, name)
	}

	if current != expected {
		return fmt.Errorf(
			"%w: %s.toml (got: %d, expected: %d)\n"+
				"Please update your config file from: https://github.com/pintwise/pintwise/tree/%s/config/%s.toml",
			ErrConfigVersionMismatch,
			name,
			current,
			expected,
			RepositoryVersion,
			name,
		)
	}

	return nil
}
