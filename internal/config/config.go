package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	defaultHTTPHost           = "0.0.0.0"
	defaultHTTPPort           = 8080
	defaultShutdownTimeout    = 10 * time.Second
	defaultSessionIdleTimeout = 30 * time.Minute
	defaultCellSize           = 30
	defaultCellGap            = 3
	defaultLogLevel           = "info"
	defaultSSHHost            = "0.0.0.0"
	defaultSSHPort            = 2222
	defaultHostKeyPath        = ".data/host_ed25519"
	defaultIdleTimeout        = 120 * time.Second
	defaultMaxSessions        = 32
	defaultRateLimitPerSecond = 20
	minimumRateLimit          = 1
	maximumConfiguredSessions = 1024
	maximumCellSize           = 200
	maximumCellGap            = 100

	// MinSessionKeyBytes is the shortest accepted cookie hash key.
	MinSessionKeyBytes = 32
)

// Config captures startup settings for the heart server.
type Config struct {
	Environment     string
	HTTPHost        string
	HTTPPort        int
	ShutdownTimeout time.Duration
	LogLevel        string

	// SessionHashKey signs browser session cookies. Empty means a random
	// key is generated at startup.
	SessionHashKey     []byte
	SessionIdleTimeout time.Duration

	CellSize int
	CellGap  int

	SSH SSHConfig
}

// SSHConfig captures settings for the optional terminal surface.
type SSHConfig struct {
	Enabled            bool
	Host               string
	Port               int
	HostKeyPath        string
	IdleTimeout        time.Duration
	MaxSessions        int
	RateLimitPerSecond int
}

// HTTPAddress returns host:port for the web listener.
func (c Config) HTTPAddress() string {
	return fmt.Sprintf("%s:%d", c.HTTPHost, c.HTTPPort)
}

// Address returns host:port for the SSH listener.
func (c SSHConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// LoadFromEnv loads runtime configuration from environment variables.
func LoadFromEnv() (Config, error) {
	environment, err := readRequiredOrDefault("HEART_ENV", EnvDevelopment)
	if err != nil {
		return Config{}, err
	}
	environment = strings.ToLower(environment)
	if environment != EnvDevelopment && environment != EnvProduction {
		return Config{}, fmt.Errorf("HEART_ENV must be %s or %s", EnvDevelopment, EnvProduction)
	}

	httpHost, err := readRequiredOrDefault("HEART_HTTP_HOST", defaultHTTPHost)
	if err != nil {
		return Config{}, err
	}

	httpPort, err := readInt("HEART_HTTP_PORT", defaultHTTPPort, 1, 65535)
	if err != nil {
		return Config{}, err
	}

	shutdownTimeout, err := readDuration("HEART_SHUTDOWN_TIMEOUT", defaultShutdownTimeout)
	if err != nil {
		return Config{}, err
	}

	logLevel, err := readRequiredOrDefault("HEART_LOG_LEVEL", defaultLogLevel)
	if err != nil {
		return Config{}, err
	}

	var hashKey []byte
	if raw, ok := os.LookupEnv("HEART_SESSION_HASH_KEY"); ok {
		if len(raw) < MinSessionKeyBytes {
			return Config{}, fmt.Errorf("HEART_SESSION_HASH_KEY must be at least %d bytes", MinSessionKeyBytes)
		}
		hashKey = []byte(raw)
	} else if environment == EnvProduction {
		return Config{}, fmt.Errorf("HEART_SESSION_HASH_KEY must be set in %s", EnvProduction)
	}

	sessionIdle, err := readDuration("HEART_SESSION_IDLE_TIMEOUT", defaultSessionIdleTimeout)
	if err != nil {
		return Config{}, err
	}

	cellSize, err := readInt("HEART_CELL_SIZE", defaultCellSize, 1, maximumCellSize)
	if err != nil {
		return Config{}, err
	}

	cellGap, err := readInt("HEART_CELL_GAP", defaultCellGap, 0, maximumCellGap)
	if err != nil {
		return Config{}, err
	}

	sshCfg, err := loadSSH()
	if err != nil {
		return Config{}, err
	}

	return Config{
		Environment:        environment,
		HTTPHost:           httpHost,
		HTTPPort:           httpPort,
		ShutdownTimeout:    shutdownTimeout,
		LogLevel:           logLevel,
		SessionHashKey:     hashKey,
		SessionIdleTimeout: sessionIdle,
		CellSize:           cellSize,
		CellGap:            cellGap,
		SSH:                sshCfg,
	}, nil
}

func loadSSH() (SSHConfig, error) {
	enabled, err := readBool("HEART_SSH_ENABLED", false)
	if err != nil {
		return SSHConfig{}, err
	}

	host, err := readRequiredOrDefault("HEART_SSH_HOST", defaultSSHHost)
	if err != nil {
		return SSHConfig{}, err
	}

	port, err := readInt("HEART_SSH_PORT", defaultSSHPort, 1, 65535)
	if err != nil {
		return SSHConfig{}, err
	}

	hostKeyPath, err := readRequiredOrDefault("HEART_SSH_HOST_KEY_PATH", defaultHostKeyPath)
	if err != nil {
		return SSHConfig{}, err
	}
	cleanHostKeyPath := filepath.Clean(hostKeyPath)
	if cleanHostKeyPath == "." {
		return SSHConfig{}, fmt.Errorf("HEART_SSH_HOST_KEY_PATH must not resolve to current directory")
	}

	idleTimeout, err := readDuration("HEART_SSH_IDLE_TIMEOUT", defaultIdleTimeout)
	if err != nil {
		return SSHConfig{}, err
	}

	maxSessions, err := readInt("HEART_SSH_MAX_SESSIONS", defaultMaxSessions, 1, maximumConfiguredSessions)
	if err != nil {
		return SSHConfig{}, err
	}

	rateLimitPerSecond, err := readInt("HEART_SSH_RATE_LIMIT_PER_SECOND", defaultRateLimitPerSecond, minimumRateLimit, 10000)
	if err != nil {
		return SSHConfig{}, err
	}

	return SSHConfig{
		Enabled:            enabled,
		Host:               host,
		Port:               port,
		HostKeyPath:        cleanHostKeyPath,
		IdleTimeout:        idleTimeout,
		MaxSessions:        maxSessions,
		RateLimitPerSecond: rateLimitPerSecond,
	}, nil
}

func readRequiredOrDefault(key, fallback string) (string, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return fallback, nil
	}
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", fmt.Errorf("%s must not be empty", key)
	}

	return trimmed, nil
}

func readInt(key string, fallback, min, max int) (int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return fallback, nil
	}

	parsed, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	if parsed < min || parsed > max {
		return 0, fmt.Errorf("%s must be between %d and %d", key, min, max)
	}

	return parsed, nil
}

func readBool(key string, fallback bool) (bool, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return fallback, nil
	}

	parsed, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean: %w", key, err)
	}
	return parsed, nil
}

func readDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return fallback, nil
	}

	parsed, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid duration: %w", key, err)
	}
	if parsed <= 0 {
		return 0, fmt.Errorf("%s must be greater than 0", key)
	}

	return parsed, nil
}
