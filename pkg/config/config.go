package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Storage   StorageConfig
	Ledger    LedgerConfig
	Converter ConverterConfig
	RateLimit RateLimitConfig
	Logger    LoggerConfig
}

type LoggerConfig struct {
	Level  string
	Format string // json or console
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	UploadDir    string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// StorageConfig selects the key-value backend behind the token registry.
type StorageConfig struct {
	Driver     string // memory, sqlite or postgres
	SQLitePath string
	CacheSize  int
	CacheTTL   time.Duration
}

// LedgerConfig tunes the simulated network latency of ledger operations.
type LedgerConfig struct {
	IssueDelay     time.Duration
	PurchaseDelay  time.Duration
	TransferDelay  time.Duration
	AssociateDelay time.Duration
	RateFetchDelay time.Duration
	NodeID         int64
}

type ConverterConfig struct {
	CacheWindow time.Duration
	Fluctuate   bool
}

type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

func Load() (*Config, error) {
	// .env is optional; plain environment variables work for Docker/K8s
	envFiles := []string{".env", "../.env", "../../.env"}
	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	readTimeout := getEnvInt("SERVER_READ_TIMEOUT", 30)
	writeTimeout := getEnvInt("SERVER_WRITE_TIMEOUT", 30)

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  time.Duration(readTimeout) * time.Second,
			WriteTimeout: time.Duration(writeTimeout) * time.Second,
			UploadDir:    getEnv("UPLOAD_DIR", "uploads"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "agrotoken"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Storage: StorageConfig{
			Driver:     strings.ToLower(getEnv("STORAGE_DRIVER", "sqlite")),
			SQLitePath: getEnv("SQLITE_PATH", "data/agrotoken.db"),
			CacheSize:  getEnvInt("TOKEN_CACHE_SIZE", 1024),
			CacheTTL:   getEnvDuration("TOKEN_CACHE_TTL", 10*time.Minute),
		},
		Ledger: LedgerConfig{
			IssueDelay:     getEnvDuration("LEDGER_ISSUE_DELAY", 3*time.Second),
			PurchaseDelay:  getEnvDuration("LEDGER_PURCHASE_DELAY", 2*time.Second),
			TransferDelay:  getEnvDuration("LEDGER_TRANSFER_DELAY", 2*time.Second),
			AssociateDelay: getEnvDuration("LEDGER_ASSOCIATE_DELAY", 1500*time.Millisecond),
			RateFetchDelay: getEnvDuration("RATE_FETCH_DELAY", time.Second),
			NodeID:         int64(getEnvInt("LEDGER_NODE_ID", 1)),
		},
		Converter: ConverterConfig{
			CacheWindow: getEnvDuration("RATE_CACHE_WINDOW", 5*time.Minute),
			Fluctuate:   getEnv("RATE_FLUCTUATE", "true") == "true",
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: getEnvFloat("RATE_LIMIT_RPS", 20),
			Burst:             getEnvInt("RATE_LIMIT_BURST", 40),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value, err := strconv.ParseFloat(getEnv(key, ""), 64)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvDuration accepts Go duration strings ("1500ms", "5m").
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}
