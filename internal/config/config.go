package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/nbanima/pickem/internal/platform/logging"
	"github.com/nbanima/pickem/internal/platform/resilience"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv             string
	ServiceName        string
	ServiceVersion     string
	HTTPAddr           string
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	DBURL              string
	CacheEnabled       bool
	CacheTTL           time.Duration
	CORSAllowedOrigins []string

	SlateLockBuffer    time.Duration
	ResettleWindowDays int

	PprofEnabled bool
	PprofAddr    string

	UptraceEnabled bool
	UptraceDSN     string

	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration

	BallDontLieEnabled bool
	BallDontLieBaseURL string
	BallDontLieAPIKey  string
	BallDontLieTimeout time.Duration
	BallDontLieCircuit resilience.CircuitBreakerConfig

	InternalJobToken    string
	QStashEnabled       bool
	QStashBaseURL       string
	QStashToken         string
	QStashTargetBaseURL string
	QStashRetries       int
	QStashSettleDelay   time.Duration
	QStashCircuit       resilience.CircuitBreakerConfig

	LogLevel logging.Level
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}
	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "60s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_TTL: %w", err)
	}
	if cacheTTL <= 0 {
		return Config{}, fmt.Errorf("CACHE_TTL must be > 0")
	}

	slateLockBuffer, err := time.ParseDuration(getEnv("SLATE_LOCK_BUFFER", "5m"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SLATE_LOCK_BUFFER: %w", err)
	}
	if slateLockBuffer <= 0 {
		return Config{}, fmt.Errorf("SLATE_LOCK_BUFFER must be > 0")
	}
	resettleWindowDays, err := getEnvAsInt("RESETTLE_WINDOW_DAYS", 3)
	if err != nil {
		return Config{}, fmt.Errorf("parse RESETTLE_WINDOW_DAYS: %w", err)
	}
	if resettleWindowDays < 1 {
		return Config{}, fmt.Errorf("RESETTLE_WINDOW_DAYS must be >= 1")
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	ballDontLieEnabled, err := strconv.ParseBool(getEnv("BALLDONTLIE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse BALLDONTLIE_ENABLED: %w", err)
	}
	ballDontLieTimeout, err := time.ParseDuration(getEnv("BALLDONTLIE_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse BALLDONTLIE_TIMEOUT: %w", err)
	}
	if ballDontLieTimeout <= 0 {
		return Config{}, fmt.Errorf("BALLDONTLIE_TIMEOUT must be > 0")
	}
	ballDontLieAPIKey := strings.TrimSpace(getEnv("BALLDONTLIE_API_KEY", ""))
	if ballDontLieEnabled && ballDontLieAPIKey == "" {
		return Config{}, fmt.Errorf("BALLDONTLIE_API_KEY is required when BALLDONTLIE_ENABLED=true")
	}
	ballDontLieCircuit, err := loadCircuitConfig("BALLDONTLIE")
	if err != nil {
		return Config{}, err
	}

	qstashEnabled, err := strconv.ParseBool(getEnv("QSTASH_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse QSTASH_ENABLED: %w", err)
	}
	qstashRetries, err := getEnvAsInt("QSTASH_RETRIES", 3)
	if err != nil {
		return Config{}, fmt.Errorf("parse QSTASH_RETRIES: %w", err)
	}
	if qstashRetries < 0 {
		return Config{}, fmt.Errorf("QSTASH_RETRIES must be >= 0")
	}
	qstashSettleDelay, err := time.ParseDuration(getEnv("QSTASH_SETTLE_DELAY", "2m"))
	if err != nil {
		return Config{}, fmt.Errorf("parse QSTASH_SETTLE_DELAY: %w", err)
	}
	if qstashSettleDelay < 0 {
		return Config{}, fmt.Errorf("QSTASH_SETTLE_DELAY must be >= 0")
	}
	qstashCircuit, err := loadCircuitConfig("QSTASH")
	if err != nil {
		return Config{}, err
	}
	qstashBaseURL := strings.TrimSpace(getEnv("QSTASH_BASE_URL", "https://qstash.upstash.io"))
	qstashToken := strings.TrimSpace(getEnv("QSTASH_TOKEN", ""))
	qstashTargetBaseURL := strings.TrimSpace(getEnv("QSTASH_TARGET_BASE_URL", ""))
	internalJobToken := strings.TrimSpace(getEnv("INTERNAL_JOB_TOKEN", ""))
	if qstashEnabled {
		if qstashToken == "" {
			return Config{}, fmt.Errorf("QSTASH_TOKEN is required when QSTASH_ENABLED=true")
		}
		if qstashTargetBaseURL == "" {
			return Config{}, fmt.Errorf("QSTASH_TARGET_BASE_URL is required when QSTASH_ENABLED=true")
		}
		if internalJobToken == "" {
			return Config{}, fmt.Errorf("INTERNAL_JOB_TOKEN is required when QSTASH_ENABLED=true")
		}
	}

	cfg := Config{
		AppEnv:             appEnv,
		ServiceName:        getEnv("APP_SERVICE_NAME", "pickem-api"),
		ServiceVersion:     getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:           getEnv("APP_HTTP_ADDR", ":8080"),
		ReadTimeout:        readTimeout,
		WriteTimeout:       writeTimeout,
		DBURL:              getEnv("DB_URL", ""),
		CacheEnabled:       cacheEnabled,
		CacheTTL:           cacheTTL,
		CORSAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),

		SlateLockBuffer:    slateLockBuffer,
		ResettleWindowDays: resettleWindowDays,

		PprofEnabled: pprofEnabled,
		PprofAddr:    pprofAddr,

		UptraceEnabled: uptraceEnabled,
		UptraceDSN:     uptraceDSN,

		PyroscopeEnabled:           pyroscopeEnabled,
		PyroscopeServerAddress:     pyroscopeServerAddress,
		PyroscopeAuthToken:         strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:     strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword: strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:        pyroscopeUploadRate,

		BallDontLieEnabled: ballDontLieEnabled,
		BallDontLieBaseURL: strings.TrimSpace(getEnv("BALLDONTLIE_BASE_URL", "https://api.balldontlie.io/v1")),
		BallDontLieAPIKey:  ballDontLieAPIKey,
		BallDontLieTimeout: ballDontLieTimeout,
		BallDontLieCircuit: ballDontLieCircuit,

		InternalJobToken:    internalJobToken,
		QStashEnabled:       qstashEnabled,
		QStashBaseURL:       qstashBaseURL,
		QStashToken:         qstashToken,
		QStashTargetBaseURL: qstashTargetBaseURL,
		QStashRetries:       qstashRetries,
		QStashSettleDelay:   qstashSettleDelay,
		QStashCircuit:       qstashCircuit,

		LogLevel: logging.ParseLevel(getEnv("APP_LOG_LEVEL", "info")),
	}

	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	return cfg, nil
}

func loadCircuitConfig(prefix string) (resilience.CircuitBreakerConfig, error) {
	enabled, err := strconv.ParseBool(getEnv(prefix+"_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return resilience.CircuitBreakerConfig{}, fmt.Errorf("parse %s_CIRCUIT_ENABLED: %w", prefix, err)
	}
	failureThreshold, err := getEnvAsInt(prefix+"_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return resilience.CircuitBreakerConfig{}, fmt.Errorf("parse %s_CIRCUIT_FAILURE_COUNT: %w", prefix, err)
	}
	if failureThreshold < 1 {
		return resilience.CircuitBreakerConfig{}, fmt.Errorf("%s_CIRCUIT_FAILURE_COUNT must be >= 1", prefix)
	}
	openTimeout, err := time.ParseDuration(getEnv(prefix+"_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return resilience.CircuitBreakerConfig{}, fmt.Errorf("parse %s_CIRCUIT_OPEN_TIMEOUT: %w", prefix, err)
	}
	if openTimeout <= 0 {
		return resilience.CircuitBreakerConfig{}, fmt.Errorf("%s_CIRCUIT_OPEN_TIMEOUT must be > 0", prefix)
	}
	halfOpenMaxReq, err := getEnvAsInt(prefix+"_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return resilience.CircuitBreakerConfig{}, fmt.Errorf("parse %s_CIRCUIT_HALF_OPEN_MAX_REQ: %w", prefix, err)
	}
	if halfOpenMaxReq < 1 {
		return resilience.CircuitBreakerConfig{}, fmt.Errorf("%s_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1", prefix)
	}

	return resilience.CircuitBreakerConfig{
		Enabled:          enabled,
		FailureThreshold: failureThreshold,
		OpenTimeout:      openTimeout,
		HalfOpenMaxReq:   halfOpenMaxReq,
	}, nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
