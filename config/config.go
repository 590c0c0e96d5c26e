package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Configs struct {
	Env      string
	LogLevel string

	Database         DatabaseConfigs
	ApiServer        APIServerConfigs
	PrometheusServer ServerConfigs
	Auth             AuthConfigs
	Storage          S3Configs
	File             FileConfigs
	Reward           RewardConfigs
	Redis            RedisConfigs
	Kafka            KafkaConfigs
}

type DatabaseConfigs struct {
	Host     string
	Port     string
	Database string
	User     string
	Password string
	LogLevel string
}

func (d DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local&multiStatements=true",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type ServerConfigs struct {
	Host string
	Port string
}

func (c ServerConfigs) Address() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

type APIServerConfigs struct {
	ServerConfigs

	MaxLimit       int
	DefaultLimit   int
	AllowedOrigins []string
}

type AuthConfigs struct {
	TokenSecret string
	AccessToken TokenConfigs
}

type TokenConfigs struct {
	Name       string
	Expiration time.Duration
}

type S3Configs struct {
	Region         string
	Endpoint       string
	PublicEndpoint string
	AccessKey      string
	SecretKey      string
	SSLDisabled    bool
	Bucket         string
}

type FileConfigs struct {
	MaxSize        int64
	MaxEvidenceDim int
}

type RewardConfigs struct {
	// SnowflakeNode identifies this process when generating ledger entry ids.
	SnowflakeNode int64
	LockTTL       time.Duration
}

type RedisConfigs struct {
	Addr string
}

type KafkaConfigs struct {
	Addr     string
	ClientID string
}

// Load reads the configuration from the environment. A .env file in the
// working directory is loaded first when present.
func Load() (Configs, error) {
	_ = godotenv.Load()

	var err error
	cfg := Configs{
		Env:      getEnv("ENV", "local"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Database: DatabaseConfigs{
			Host:     getEnv("MYSQL_HOST", "localhost"),
			Port:     getEnv("MYSQL_PORT", "3306"),
			Database: getEnv("MYSQL_DATABASE", "taskreward"),
			User:     getEnv("MYSQL_USER", "mysql"),
			Password: getEnv("MYSQL_PASSWORD", "mysql"),
			LogLevel: getEnv("DATABASE_LOG_LEVEL", "error"),
		},
		ApiServer: APIServerConfigs{
			ServerConfigs: ServerConfigs{
				Host: getEnv("API_HOST", ""),
				Port: getEnv("API_PORT", "8080"),
			},
			AllowedOrigins: strings.Split(getEnv("API_ALLOWED_ORIGINS", "*"), ","),
		},
		PrometheusServer: ServerConfigs{
			Host: getEnv("PROMETHEUS_HOST", ""),
			Port: getEnv("PROMETHEUS_PORT", "9090"),
		},
		Auth: AuthConfigs{
			TokenSecret: getEnv("TOKEN_SECRET", "token_secret"),
			AccessToken: TokenConfigs{
				Name: getEnv("ACCESS_TOKEN_NAME", "access_token"),
			},
		},
		Storage: S3Configs{
			Region:         getEnv("STORAGE_REGION", "auto"),
			Endpoint:       getEnv("STORAGE_ENDPOINT", "http://localhost:9000"),
			PublicEndpoint: getEnv("STORAGE_PUBLIC_ENDPOINT", "http://localhost:9000"),
			AccessKey:      getEnv("STORAGE_ACCESS_KEY", ""),
			SecretKey:      getEnv("STORAGE_SECRET_KEY", ""),
			Bucket:         getEnv("STORAGE_BUCKET", "evidence"),
		},
		Redis: RedisConfigs{
			Addr: getEnv("REDIS_ADDRESS", ""),
		},
		Kafka: KafkaConfigs{
			Addr:     getEnv("KAFKA_ADDRESS", ""),
			ClientID: getEnv("KAFKA_CLIENT_ID", "taskreward"),
		},
	}

	if cfg.ApiServer.MaxLimit, err = getIntEnv("API_MAX_LIMIT", 50); err != nil {
		return cfg, err
	}

	if cfg.ApiServer.DefaultLimit, err = getIntEnv("API_DEFAULT_LIMIT", 10); err != nil {
		return cfg, err
	}

	if cfg.Auth.AccessToken.Expiration, err = getDurationEnv("ACCESS_TOKEN_DURATION", 5*time.Minute); err != nil {
		return cfg, err
	}

	if cfg.Storage.SSLDisabled, err = getBoolEnv("STORAGE_SSL_DISABLED", false); err != nil {
		return cfg, err
	}

	maxSize, err := getIntEnv("MAX_UPLOAD_FILE", 2*1024*1024)
	if err != nil {
		return cfg, err
	}
	cfg.File.MaxSize = int64(maxSize)

	if cfg.File.MaxEvidenceDim, err = getIntEnv("MAX_EVIDENCE_DIMENSION", 1280); err != nil {
		return cfg, err
	}

	node, err := getIntEnv("SNOWFLAKE_NODE", 1)
	if err != nil {
		return cfg, err
	}
	cfg.Reward.SnowflakeNode = int64(node)

	if cfg.Reward.LockTTL, err = getDurationEnv("LOCK_TTL", 10*time.Second); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getIntEnv(key string, fallback int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback, nil
	}

	i, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}

	return i, nil
}

func getBoolEnv(key string, fallback bool) (bool, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback, nil
	}

	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}

	return b, nil
}

func getDurationEnv(key string, fallback time.Duration) (time.Duration, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback, nil
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}

	return d, nil
}
