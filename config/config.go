package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/jrbgold/jrb-backend/internal/pricing"
)

type Config struct {
	Server   ServerConfig
	Log      LogConfig
	Database DatabaseConfig
	JWT      JWTConfig
	CORS     CORSConfig
	Redis    RedisConfig
	Rates    RatesConfig
	Store    StoreConfig
	Kafka    KafkaConfig
	S3       S3Config
}

type ServerConfig struct {
	Port        string
	GinMode     string
	Environment string
}

type LogConfig struct {
	Level  string
	Format string
}

type DatabaseConfig struct {
	Driver   string // sqlite, postgres
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	Path     string // sqlite 파일 경로 (기본: 메모리)
}

type JWTConfig struct {
	Secret             string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
}

type RatesConfig struct {
	APIURL         string
	APIKey         string
	Currency       string
	InterCallDelay time.Duration
	Schedule       string // cron 표현식
	CacheTTL       time.Duration
	Fallback       pricing.RateTable
}

type StoreConfig struct {
	Name  string
	State string // 주 간 거래 판단 기준 주
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

type S3Config struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	BaseURL         string // CloudFront or S3 direct URL
}

func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	def := pricing.DefaultFallbackRates

	config := &Config{
		Server: ServerConfig{
			Port:        getEnv("SERVER_PORT", "8080"),
			GinMode:     getEnv("GIN_MODE", "debug"),
			Environment: getEnv("ENVIRONMENT", "development"),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", ""),
			Format: getEnv("LOG_FORMAT", "console"),
		},
		Database: DatabaseConfig{
			Driver:   getEnv("DB_DRIVER", "sqlite"),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "jrb"),
			Password: getEnv("DB_PASSWORD", "jrb"),
			DBName:   getEnv("DB_NAME", "jrbgold"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			Path:     getEnv("DB_PATH", "file::memory:?cache=shared"),
		},
		JWT: JWTConfig{
			Secret:             getEnv("JWT_SECRET", "your-secret-key"),
			AccessTokenExpiry:  parseDuration(getEnv("JWT_ACCESS_TOKEN_EXPIRY", "15m"), 15*time.Minute),
			RefreshTokenExpiry: parseDuration(getEnv("JWT_REFRESH_TOKEN_EXPIRY", "168h"), 168*time.Hour),
		},
		CORS: CORSConfig{
			AllowedOrigins: parseSlice(getEnv("ALLOWED_ORIGINS", "http://localhost:5173")),
		},
		Redis: RedisConfig{
			Enabled:  parseBool(getEnv("REDIS_ENABLED", "false")),
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       parseInt(getEnv("REDIS_DB", "0"), 0),
		},
		Rates: RatesConfig{
			APIURL:         getEnv("METAL_API_URL", "https://www.goldapi.io/api"),
			APIKey:         getEnv("METAL_API_KEY", ""),
			Currency:       getEnv("METAL_API_CURRENCY", "INR"),
			InterCallDelay: parseDuration(getEnv("METAL_API_CALL_DELAY", "2s"), 2*time.Second),
			Schedule:       getEnv("METAL_RATE_SCHEDULE", "@every 30m"),
			CacheTTL:       parseDuration(getEnv("METAL_RATE_CACHE_TTL", "6h"), 6*time.Hour),
			Fallback: pricing.RateTable{
				Gold: pricing.GoldRates{
					K24: parseFloat(getEnv("FALLBACK_GOLD_24K", ""), def.Gold.K24),
					K22: parseFloat(getEnv("FALLBACK_GOLD_22K", ""), def.Gold.K22),
					K18: parseFloat(getEnv("FALLBACK_GOLD_18K", ""), def.Gold.K18),
				},
				Silver: pricing.SilverRates{
					Pure: parseFloat(getEnv("FALLBACK_SILVER_PURE", ""), def.Silver.Pure),
					S925: parseFloat(getEnv("FALLBACK_SILVER_925", ""), def.Silver.S925),
				},
				Platinum: pricing.PlatinumRates{
					Pure: parseFloat(getEnv("FALLBACK_PLATINUM", ""), def.Platinum.Pure),
				},
			},
		},
		Store: StoreConfig{
			Name:  getEnv("STORE_NAME", "JRB Gold Store"),
			State: getEnv("STORE_STATE", "Tamil Nadu"),
		},
		Kafka: KafkaConfig{
			Brokers: parseSlice(getEnv("KAFKA_BROKERS", "")),
			Topic:   getEnv("KAFKA_TOPIC", "jrb.storefront.events"),
		},
		S3: S3Config{
			Region:          getEnv("AWS_REGION", "ap-south-1"),
			Bucket:          getEnv("AWS_S3_BUCKET", ""),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			BaseURL:         getEnv("AWS_S3_BASE_URL", ""),
		},
	}

	if err := config.Rates.Fallback.Validate(); err != nil {
		return nil, fmt.Errorf("invalid fallback metal rates: %w", err)
	}

	return config, nil
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func (c *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(s)
	if err != nil {
		log.Printf("Invalid duration %s, using default %s", s, fallback)
		return fallback
	}
	return duration
}

func parseFloat(s string, fallback float64) float64 {
	if s == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		log.Printf("Invalid number %s, using default %v", s, fallback)
		return fallback
	}
	return v
}

func parseInt(s string, fallback int) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return v
}

func parseBool(s string) bool {
	v, _ := strconv.ParseBool(s)
	return v
}

func parseSlice(s string) []string {
	if s == "" {
		return []string{}
	}
	var result []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
