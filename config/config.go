package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // zone database for minimal images

	"github.com/joho/godotenv"
)

const (
	defaultServerPort          = 8080
	defaultTimezone            = "Asia/Seoul"
	defaultMatchStatusSchedule = "@every 15m"
	defaultRoundFocusSchedule  = "@every 15m"
)

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	DatabaseURL  string
	JWTSecretKey string
	ServerPort   int

	// Location is the reference zone for "today" in the match gate and the
	// round focus job.
	Location *time.Location
	// CronSecret protects the trigger endpoints; empty leaves them open.
	CronSecret          string
	SchedulerEnabled    bool
	MatchStatusSchedule string
	RoundFocusSchedule  string

	LogLevel  string
	LogPretty bool

	CORSAllowedOrigins []string

	R2 R2Config
}

// R2Config is optional; uploads are disabled when it is empty.
type R2Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	PublicBaseURL   string
}

// Enabled reports whether any R2 field is set.
func (c R2Config) Enabled() bool {
	return c.AccountID != "" || c.AccessKeyID != "" || c.SecretAccessKey != "" ||
		c.BucketName != "" || c.PublicBaseURL != ""
}

func (c R2Config) complete() bool {
	return c.AccountID != "" && c.AccessKeyID != "" && c.SecretAccessKey != "" &&
		c.BucketName != "" && c.PublicBaseURL != ""
}

// Load загружает конфигурацию из переменных окружения.
// Опционально подгружает .env файл (полезно для локальной разработки).
func Load() (*Config, error) {
	// Загружаем .env файл, если он есть. Ошибку не считаем фатальной.
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from an environment lookup function.
func FromEnv(getenv func(string) string) (*Config, error) {
	dbURL := getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	jwtKey := getenv("JWT_SECRET_KEY")
	if jwtKey == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY environment variable is not set")
	}

	port := defaultServerPort
	if portStr := getenv("SERVER_PORT"); portStr != "" {
		var err error
		port, err = strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid SERVER_PORT environment variable: %w", err)
		}
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	tzName := valueOrDefault(getenv("APP_TIMEZONE"), defaultTimezone)
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("invalid APP_TIMEZONE %q: %w", tzName, err)
	}

	schedulerEnabled, err := parseBool(getenv("SCHEDULER_ENABLED"), true)
	if err != nil {
		return nil, fmt.Errorf("invalid SCHEDULER_ENABLED environment variable: %w", err)
	}
	logPretty, err := parseBool(getenv("LOG_PRETTY"), false)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_PRETTY environment variable: %w", err)
	}

	r2 := R2Config{
		AccountID:       getenv("R2_ACCOUNT_ID"),
		AccessKeyID:     getenv("R2_ACCESS_KEY_ID"),
		SecretAccessKey: getenv("R2_SECRET_ACCESS_KEY"),
		BucketName:      getenv("R2_BUCKET_NAME"),
		PublicBaseURL:   getenv("R2_PUBLIC_BASE_URL"),
	}
	if r2.Enabled() && !r2.complete() {
		return nil, fmt.Errorf("incomplete R2 configuration: set all R2_* variables or none")
	}

	cfg := &Config{
		DatabaseURL:         dbURL,
		JWTSecretKey:        jwtKey,
		ServerPort:          port,
		Location:            loc,
		CronSecret:          getenv("CRON_SECRET"),
		SchedulerEnabled:    schedulerEnabled,
		MatchStatusSchedule: valueOrDefault(getenv("MATCH_STATUS_SCHEDULE"), defaultMatchStatusSchedule),
		RoundFocusSchedule:  valueOrDefault(getenv("ROUND_FOCUS_SCHEDULE"), defaultRoundFocusSchedule),
		LogLevel:            valueOrDefault(getenv("LOG_LEVEL"), "info"),
		LogPretty:           logPretty,
		CORSAllowedOrigins:  splitList(getenv("CORS_ALLOWED_ORIGINS")),
		R2:                  r2,
	}

	return cfg, nil
}

func valueOrDefault(value, def string) string {
	if value == "" {
		return def
	}
	return value
}

func parseBool(value string, def bool) (bool, error) {
	if value == "" {
		return def, nil
	}
	return strconv.ParseBool(value)
}

func splitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return []string{"*"}
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
