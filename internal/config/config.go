package config

import (
	"fmt"
	"os"
	"strconv"

	"user_portal/internal/utils"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// AppConfig holds everything except the database settings
type AppConfig struct {
	ServerPort      string
	LogLevel        logrus.Level
	BcryptCost      int
	SessionMode     string
	SessionSecret   string
	SessionTTLHours int64
	AdminUsername   string
	AdminPassword   string
}

// LoadAppConfig reads the application settings from the environment
func LoadAppConfig() (*AppConfig, error) {
	level, err := logrus.ParseLevel(lookupEnvOrString("LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	cost, err := lookupEnvInt("BCRYPT_COST", bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	ttl, err := lookupEnvInt("SESSION_TTL_HOURS", 24)
	if err != nil {
		return nil, err
	}

	cfg := &AppConfig{
		ServerPort:      lookupEnvOrString("SERVER_PORT", "8080"),
		LogLevel:        level,
		BcryptCost:      cost,
		SessionMode:     lookupEnvOrString("SESSION_MODE", utils.SessionModePlain),
		SessionSecret:   os.Getenv("SESSION_SECRET"),
		SessionTTLHours: int64(ttl),
		AdminUsername:   lookupEnvOrString("ADMIN_USERNAME", "admin"),
		AdminPassword:   lookupEnvOrString("ADMIN_PASSWORD", "adminpassword"),
	}

	switch cfg.SessionMode {
	case utils.SessionModePlain:
	case utils.SessionModeSigned:
		if cfg.SessionSecret == "" {
			return nil, fmt.Errorf("SESSION_SECRET is required when SESSION_MODE=%s", utils.SessionModeSigned)
		}
	default:
		return nil, fmt.Errorf("invalid SESSION_MODE %q (want %q or %q)", cfg.SessionMode, utils.SessionModePlain, utils.SessionModeSigned)
	}
	if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
		return nil, fmt.Errorf("ADMIN_USERNAME and ADMIN_PASSWORD must not be empty")
	}
	return cfg, nil
}

// NewLogger builds the JSON logger shared by the whole process
func NewLogger(level logrus.Level) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)
	logger.SetLevel(level)
	return logger
}

func lookupEnvOrString(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return defaultVal
}

func lookupEnvInt(key string, defaultVal int) (int, error) {
	val, ok := os.LookupEnv(key)
	if !ok || val == "" {
		return defaultVal, nil
	}
	v, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}
