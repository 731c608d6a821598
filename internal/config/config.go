package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Storage drivers
const (
	StorageJSON  = "json"
	StorageMySQL = "mysql"
)

// Notifier drivers
const (
	NotifierConsole = "console"
	NotifierKafka   = "kafka"
)

// Fee policies
const (
	FeePolicyLate = "late"
	FeePolicyFlat = "flat"
)

// Config holds all configuration for the application
type Config struct {
	AppMode     string
	Port        string
	SeedOnStart bool
	Storage     StorageConfig
	Database    DatabaseConfig
	Fees        FeeConfig
	Notifier    NotifierConfig
	Reminder    ReminderConfig
}

// StorageConfig selects where books and members live
type StorageConfig struct {
	Driver  string
	DataDir string
	Key     string
}

// DatabaseConfig holds database configuration (mysql driver only)
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// FeeConfig holds checkout fee settings
type FeeConfig struct {
	Policy    string
	FreeDays  int
	DailyRate float64
	FlatFee   float64
}

// NotifierConfig holds notification settings
type NotifierConfig struct {
	Driver       string
	KafkaBrokers []string
	KafkaTopic   string
}

// ReminderConfig holds the fee reminder schedule; empty disables it
type ReminderConfig struct {
	Schedule string
}

// Global config instance
var AppConfig *Config

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	// Get APP_MODE (default to "dev") - trim spaces for Windows compatibility
	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	seedOnStart, _ := strconv.ParseBool(getEnv("SEED_ON_START", "false"))

	config := &Config{
		AppMode:     appMode,
		Port:        getEnv("PORT", "3000"),
		SeedOnStart: seedOnStart,
		Storage:     loadStorageConfig(),
		Database:    loadDatabaseConfig(appMode),
		Fees:        loadFeeConfig(),
		Notifier:    loadNotifierConfig(),
		Reminder:    loadReminderConfig(),
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	// Set global config
	AppConfig = config

	log.Printf("✅ Configuration loaded successfully [MODE: %s, STORAGE: %s]", appMode, config.Storage.Driver)
	return config, nil
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case StorageJSON, StorageMySQL:
	default:
		return fmt.Errorf("invalid STORAGE_DRIVER: '%s' (must be 'json' or 'mysql')", c.Storage.Driver)
	}

	switch c.Fees.Policy {
	case FeePolicyLate, FeePolicyFlat:
	default:
		return fmt.Errorf("invalid FEE_POLICY: '%s' (must be 'late' or 'flat')", c.Fees.Policy)
	}

	switch c.Notifier.Driver {
	case NotifierConsole:
	case NotifierKafka:
		if len(c.Notifier.KafkaBrokers) == 0 {
			return fmt.Errorf("KAFKA_BROKERS is required when NOTIFIER_DRIVER=kafka")
		}
	default:
		return fmt.Errorf("invalid NOTIFIER_DRIVER: '%s' (must be 'console' or 'kafka')", c.Notifier.Driver)
	}
	return nil
}

func loadStorageConfig() StorageConfig {
	return StorageConfig{
		Driver:  strings.ToLower(strings.TrimSpace(getEnv("STORAGE_DRIVER", StorageJSON))),
		DataDir: getEnv("DATA_DIR", "./data"),
		Key:     getEnv("STORAGE_KEY", "LIB_DATA"),
	}
}

// loadDatabaseConfig loads database config based on mode
func loadDatabaseConfig(mode string) DatabaseConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	return DatabaseConfig{
		Host:     getEnv(prefix+"DB_HOST", "localhost"),
		Port:     getEnv(prefix+"DB_PORT", "3306"),
		User:     getEnv(prefix+"DB_USER", "root"),
		Password: getEnv(prefix+"DB_PASS", ""),
		DBName:   getEnv(prefix+"DB_NAME", "library_desk"),
	}
}

func loadFeeConfig() FeeConfig {
	freeDays, err := strconv.Atoi(getEnv("FREE_DAYS", "14"))
	if err != nil || freeDays < 0 {
		freeDays = 14
	}
	dailyRate, err := strconv.ParseFloat(getEnv("DAILY_RATE", "0.5"), 64)
	if err != nil || dailyRate < 0 {
		dailyRate = 0.5
	}
	flatFee, err := strconv.ParseFloat(getEnv("FLAT_FEE", "1"), 64)
	if err != nil || flatFee < 0 {
		flatFee = 1
	}

	return FeeConfig{
		Policy:    strings.ToLower(strings.TrimSpace(getEnv("FEE_POLICY", FeePolicyLate))),
		FreeDays:  freeDays,
		DailyRate: dailyRate,
		FlatFee:   flatFee,
	}
}

func loadNotifierConfig() NotifierConfig {
	var brokers []string
	for _, b := range strings.Split(getEnv("KAFKA_BROKERS", ""), ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}

	return NotifierConfig{
		Driver:       strings.ToLower(strings.TrimSpace(getEnv("NOTIFIER_DRIVER", NotifierConsole))),
		KafkaBrokers: brokers,
		KafkaTopic:   getEnv("KAFKA_TOPIC", "library.notifications"),
	}
}

// loadReminderConfig defaults to 08:30 daily; REMINDER_CRON set to an empty value disables reminders
func loadReminderConfig() ReminderConfig {
	schedule, ok := os.LookupEnv("REMINDER_CRON")
	if !ok {
		schedule = "30 8 * * *"
	}
	return ReminderConfig{Schedule: strings.TrimSpace(schedule)}
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" {
		if c.IsDev() {
			return "*"
		}
		return "http://localhost:" + c.Port
	}
	return origins
}
