package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/f1mates/league-api/internal/platform/logging"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                      string
	ServiceName                 string
	ServiceVersion              string
	HTTPAddr                    string
	DBURL                       string
	DBDisablePreparedBinary     bool
	CacheEnabled                bool
	CacheTTL                    time.Duration
	CORSAllowedOrigins          []string
	ReadTimeout                 time.Duration
	WriteTimeout                time.Duration
	PprofEnabled                bool
	PprofAddr                   string
	AuthGateBaseURL             string
	AuthGateIntrospectPath      string
	AuthGateTimeout             time.Duration
	UptraceEnabled              bool
	UptraceDSN                  string
	UptraceLogsEnabled          bool
	BetterStackEnabled          bool
	BetterStackEndpoint         string
	BetterStackToken            string
	BetterStackTimeout          time.Duration
	BetterStackMinLevel         logging.Level
	PyroscopeEnabled            bool
	PyroscopeServerAddress      string
	PyroscopeAppName            string
	PyroscopeAuthToken          string
	PyroscopeBasicAuthUser      string
	PyroscopeBasicAuthPassword  string
	PyroscopeUploadRate         time.Duration
	MailerEnabled               bool
	MailerBaseURL               string
	MailerToken                 string
	MailerFromName              string
	MailerFromEmail             string
	MailerTimeout               time.Duration
	MailerRetries               int
	MailerCircuitEnabled        bool
	MailerCircuitFailureCount   int
	MailerCircuitOpenTimeout    time.Duration
	MailerCircuitHalfOpenMaxReq int
	ScoringWorkers              int
	ScoringRetryAttempts        int
	ScoringRetryBaseBackoff     time.Duration
	LogLevel                    logging.Level
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}

	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}
	uptraceLogsEnabled, err := strconv.ParseBool(getEnv("UPTRACE_LOGS_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_LOGS_ENABLED: %w", err)
	}

	betterStackEnabled, err := strconv.ParseBool(getEnv("BETTERSTACK_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse BETTERSTACK_ENABLED: %w", err)
	}
	betterStackEndpoint := strings.TrimSpace(getEnv("BETTERSTACK_ENDPOINT", ""))
	if betterStackEnabled && betterStackEndpoint == "" {
		return Config{}, fmt.Errorf("BETTERSTACK_ENDPOINT is required when BETTERSTACK_ENABLED=true")
	}
	betterStackTimeout, err := time.ParseDuration(getEnv("BETTERSTACK_TIMEOUT", "3s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse BETTERSTACK_TIMEOUT: %w", err)
	}
	if betterStackTimeout <= 0 {
		return Config{}, fmt.Errorf("BETTERSTACK_TIMEOUT must be > 0")
	}
	betterStackMinLevel := parseLogLevel(getEnv("BETTERSTACK_MIN_LEVEL", "error"))

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
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

	mailerEnabled, err := strconv.ParseBool(getEnv("MAILER_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse MAILER_ENABLED: %w", err)
	}
	mailerBaseURL := strings.TrimSpace(getEnv("MAILER_BASE_URL", ""))
	mailerToken := strings.TrimSpace(getEnv("MAILER_TOKEN", ""))
	if mailerEnabled {
		if mailerBaseURL == "" {
			return Config{}, fmt.Errorf("MAILER_BASE_URL is required when MAILER_ENABLED=true")
		}
		if mailerToken == "" {
			return Config{}, fmt.Errorf("MAILER_TOKEN is required when MAILER_ENABLED=true")
		}
	}
	mailerTimeout, err := time.ParseDuration(getEnv("MAILER_TIMEOUT", "5s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse MAILER_TIMEOUT: %w", err)
	}
	if mailerTimeout <= 0 {
		return Config{}, fmt.Errorf("MAILER_TIMEOUT must be > 0")
	}
	mailerRetries, err := getEnvAsInt("MAILER_RETRIES", 3)
	if err != nil {
		return Config{}, fmt.Errorf("parse MAILER_RETRIES: %w", err)
	}
	if mailerRetries < 1 {
		return Config{}, fmt.Errorf("MAILER_RETRIES must be >= 1")
	}
	mailerCircuitEnabled, err := strconv.ParseBool(getEnv("MAILER_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse MAILER_CIRCUIT_ENABLED: %w", err)
	}
	mailerCircuitFailureCount, err := getEnvAsInt("MAILER_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse MAILER_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if mailerCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("MAILER_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	mailerCircuitOpenTimeout, err := time.ParseDuration(getEnv("MAILER_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse MAILER_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if mailerCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("MAILER_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	mailerCircuitHalfOpenMaxReq, err := getEnvAsInt("MAILER_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse MAILER_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if mailerCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("MAILER_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	scoringWorkers, err := getEnvAsInt("SCORING_WORKERS", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse SCORING_WORKERS: %w", err)
	}
	if scoringWorkers < 1 {
		return Config{}, fmt.Errorf("SCORING_WORKERS must be >= 1")
	}
	scoringRetryAttempts, err := getEnvAsInt("SCORING_RETRY_ATTEMPTS", 3)
	if err != nil {
		return Config{}, fmt.Errorf("parse SCORING_RETRY_ATTEMPTS: %w", err)
	}
	if scoringRetryAttempts < 1 {
		return Config{}, fmt.Errorf("SCORING_RETRY_ATTEMPTS must be >= 1")
	}
	scoringRetryBaseBackoff, err := time.ParseDuration(getEnv("SCORING_RETRY_BASE_BACKOFF", "100ms"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SCORING_RETRY_BASE_BACKOFF: %w", err)
	}
	if scoringRetryBaseBackoff <= 0 {
		return Config{}, fmt.Errorf("SCORING_RETRY_BASE_BACKOFF must be > 0")
	}

	cfg := Config{
		AppEnv:                      appEnv,
		ServiceName:                 getEnv("APP_SERVICE_NAME", "league-api"),
		ServiceVersion:              getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                    getEnv("APP_HTTP_ADDR", ":8080"),
		DBURL:                       getEnv("DB_URL", ""),
		CORSAllowedOrigins:          splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		PprofEnabled:                pprofEnabled,
		PprofAddr:                   pprofAddr,
		AuthGateBaseURL:             getEnv("AUTHGATE_BASE_URL", "http://localhost:8081"),
		AuthGateIntrospectPath:      getEnv("AUTHGATE_INTROSPECT_PATH", "/v1/auth/introspect"),
		UptraceEnabled:              uptraceEnabled,
		UptraceDSN:                  uptraceDSN,
		UptraceLogsEnabled:          uptraceLogsEnabled,
		BetterStackEnabled:          betterStackEnabled,
		BetterStackEndpoint:         betterStackEndpoint,
		BetterStackToken:            strings.TrimSpace(getEnv("BETTERSTACK_TOKEN", "")),
		BetterStackTimeout:          betterStackTimeout,
		BetterStackMinLevel:         betterStackMinLevel,
		PyroscopeEnabled:            pyroscopeEnabled,
		PyroscopeServerAddress:      pyroscopeServerAddress,
		PyroscopeAuthToken:          strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:      strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword:  strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:         pyroscopeUploadRate,
		MailerEnabled:               mailerEnabled,
		MailerBaseURL:               mailerBaseURL,
		MailerToken:                 mailerToken,
		MailerFromName:              getEnv("MAILER_FROM_NAME", "F1 Mates League"),
		MailerFromEmail:             getEnv("MAILER_FROM_EMAIL", "no-reply@f1mates.app"),
		MailerTimeout:               mailerTimeout,
		MailerRetries:               mailerRetries,
		MailerCircuitEnabled:        mailerCircuitEnabled,
		MailerCircuitFailureCount:   mailerCircuitFailureCount,
		MailerCircuitOpenTimeout:    mailerCircuitOpenTimeout,
		MailerCircuitHalfOpenMaxReq: mailerCircuitHalfOpenMaxReq,
		ScoringWorkers:              scoringWorkers,
		ScoringRetryAttempts:        scoringRetryAttempts,
		ScoringRetryBaseBackoff:     scoringRetryBaseBackoff,
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	dbDisablePreparedBinary, err := strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}
	cfg.DBDisablePreparedBinary = dbDisablePreparedBinary

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
	cfg.CacheEnabled = cacheEnabled
	cfg.CacheTTL = cacheTTL

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}

	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	authGateTimeout, err := time.ParseDuration(getEnv("AUTHGATE_TIMEOUT", "3s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse AUTHGATE_TIMEOUT: %w", err)
	}
	if authGateTimeout <= 0 {
		return Config{}, fmt.Errorf("AUTHGATE_TIMEOUT must be > 0")
	}

	cfg.ReadTimeout = readTimeout
	cfg.WriteTimeout = writeTimeout
	cfg.AuthGateTimeout = authGateTimeout
	cfg.LogLevel = parseLogLevel(getEnv("APP_LOG_LEVEL", "info"))

	return cfg, nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
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

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
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
