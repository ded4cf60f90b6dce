package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/jonwraymond/dockwatch/check"
)

// defaultErrorPatterns is used when ERROR_PATTERNS is unset or malformed.
var defaultErrorPatterns = []string{"ERROR", "FATAL", "Exception"}

// APIConfig configures the API health check.
type APIConfig struct {
	Enabled   bool
	Timeout   time.Duration
	Endpoints []string // defaults to the self-probe /health URL
}

// BrokerConfig configures the RabbitMQ management client.
type BrokerConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Username string
	Password string
}

// MonitoringConfig configures the scheduler and metrics exporter.
type MonitoringConfig struct {
	MetricsPort     int // base of the bounded port scan
	MaxPortAttempts int
	CheckInterval   time.Duration
	Exporter        string // prometheus|stdout|otlp|none
}

// ProbeConfig configures the embedded status-probe endpoint.
type ProbeConfig struct {
	Port int
}

// LogConfig configures logging and report output files.
type LogConfig struct {
	Level       string
	OutputDir   string
	File        string
	SaveReports bool
}

// Config is the full monitor configuration. It is loaded once at startup
// and treated as immutable after validation.
type Config struct {
	ContainerName string
	Thresholds    check.Thresholds
	API           APIConfig
	Broker        BrokerConfig
	Monitoring    MonitoringConfig
	Probe         ProbeConfig
	Log           LogConfig
	ErrorPatterns []string
}

// Load reads configuration from the environment, applying defaults for
// anything unset. A .env file in the working directory is honored when
// present. Broker credentials may reference other variables with ${VAR};
// missing references are an error.
func Load() (*Config, error) {
	// Best-effort, matching dotenv semantics: absence is not an error.
	_ = godotenv.Load()

	cfg := &Config{
		ContainerName: getEnv("CONTAINER_NAME", "test_container"),
		Thresholds: check.Thresholds{
			CPUPercent:      parseFloat("CPU_PERCENT_THRESHOLD", 75.0),
			MemoryPercent:   parseFloat("MEMORY_PERCENT_THRESHOLD", 80.0),
			DiskPercent:     parseFloat("DISK_PERCENT_THRESHOLD", 90.0),
			ResponseTime:    parseSeconds("RESPONSE_TIME_THRESHOLD", 1.5),
			RestartCountMax: parseInt("RESTART_COUNT_THRESHOLD", 3),
		},
		API: APIConfig{
			Enabled:   parseBool("API_CHECK_ENABLED", false),
			Timeout:   parseSeconds("API_TIMEOUT", 5),
			Endpoints: parseList("API_ENDPOINTS"),
		},
		Broker: BrokerConfig{
			Enabled:  parseBool("RABBITMQ_CHECK_ENABLED", true),
			Host:     getEnv("RABBITMQ_HOST", "localhost"),
			Port:     parseInt("RABBITMQ_PORT", 15672),
			Username: getEnv("RABBITMQ_USERNAME", "admin"),
			Password: getEnv("RABBITMQ_PASSWORD", "admin"),
		},
		Monitoring: MonitoringConfig{
			MetricsPort:     parseInt("PROMETHEUS_PORT", 8000),
			MaxPortAttempts: parseInt("MAX_PORT_ATTEMPTS", 10),
			CheckInterval:   parseSeconds("CHECK_INTERVAL", 60),
			Exporter:        getEnv("METRICS_EXPORTER", "prometheus"),
		},
		Probe: ProbeConfig{
			Port: parseInt("PROBE_PORT", 5001),
		},
		Log: LogConfig{
			Level:       getEnv("LOG_LEVEL", "info"),
			OutputDir:   getEnv("OUTPUT_DIR", "./output"),
			File:        getEnv("LOG_FILE", "dockwatch.log"),
			SaveReports: parseBool("SAVE_OUTPUT_FILES", false),
		},
		ErrorPatterns: parsePatterns("ERROR_PATTERNS"),
	}

	// Credentials may reference other environment variables.
	var err error
	if cfg.Broker.Username, err = expandStrict(cfg.Broker.Username); err != nil {
		return nil, fmt.Errorf("config: RABBITMQ_USERNAME: %w", err)
	}
	if cfg.Broker.Password, err = expandStrict(cfg.Broker.Password); err != nil {
		return nil, fmt.Errorf("config: RABBITMQ_PASSWORD: %w", err)
	}

	if len(cfg.API.Endpoints) == 0 {
		cfg.API.Endpoints = []string{fmt.Sprintf("http://127.0.0.1:%d/health", cfg.Probe.Port)}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks all configured values. Any failure is fatal at startup.
func (c *Config) Validate() error {
	if c.ContainerName == "" {
		return errors.New("config: container name cannot be empty")
	}

	if err := c.Thresholds.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	if c.Monitoring.CheckInterval < time.Second {
		return errors.New("config: check interval must be at least one second")
	}

	if err := validatePort("prometheus port", c.Monitoring.MetricsPort); err != nil {
		return err
	}
	if err := validatePort("probe port", c.Probe.Port); err != nil {
		return err
	}

	if c.Monitoring.MaxPortAttempts < 1 {
		return errors.New("config: max port attempts must be positive")
	}
	if c.Monitoring.MetricsPort+c.Monitoring.MaxPortAttempts-1 > 65535 {
		return errors.New("config: port range exceeds maximum valid port number (65535)")
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log level %q", c.Log.Level)
	}

	switch c.Monitoring.Exporter {
	case "prometheus", "stdout", "otlp", "none":
	default:
		return fmt.Errorf("config: unknown metrics exporter %q", c.Monitoring.Exporter)
	}

	return nil
}

// LogFilePath returns the full path of the log file.
func (c *Config) LogFilePath() string {
	return filepath.Join(c.Log.OutputDir, c.Log.File)
}

func validatePort(name string, port int) error {
	if port < 1024 || port > 65535 {
		return fmt.Errorf("config: invalid %s %d", name, port)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func parseInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnv(key, strconv.Itoa(defaultValue)))
	if err != nil {
		return defaultValue
	}
	return value
}

func parseFloat(key string, defaultValue float64) float64 {
	value, err := strconv.ParseFloat(getEnv(key, strconv.FormatFloat(defaultValue, 'f', -1, 64)), 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func parseBool(key string, defaultValue bool) bool {
	value := strings.ToLower(getEnv(key, strconv.FormatBool(defaultValue)))
	return value == "true"
}

// parseSeconds reads a duration expressed as a (possibly fractional)
// number of seconds.
func parseSeconds(key string, defaultValue float64) time.Duration {
	return time.Duration(parseFloat(key, defaultValue) * float64(time.Second))
}

// parseList reads a comma-separated list, dropping empty elements.
func parseList(key string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	var out []string
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

// parsePatterns reads the JSON-encoded pattern list, falling back to the
// defaults on absence or malformed input.
func parsePatterns(key string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultErrorPatterns
	}
	var patterns []string
	if err := json.Unmarshal([]byte(raw), &patterns); err != nil {
		return defaultErrorPatterns
	}
	return patterns
}
