package cmd

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config carries every runtime setting of the service. Values come from the
// environment, optionally seeded from a .env file, with working local
// defaults.
type Config struct {
	HTTPPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	RedisAddr     string
	RedisPassword string
	QueueBoardTTL time.Duration

	KafkaBrokers     []string
	KafkaEventsTopic string

	LogLevel    string
	LogEncoding string
}

// LoadConfig reads the configuration. A missing .env file is not an error;
// the environment alone is enough.
func LoadConfig() Config {
	_ = godotenv.Load(".env")

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "shopfloor")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("QUEUE_BOARD_TTL", "15s")
	v.SetDefault("KAFKA_BROKERS", "localhost:9092")
	v.SetDefault("KAFKA_EVENTS_TOPIC", "shopfloor.order.events")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_ENCODING", "json")

	return Config{
		HTTPPort:         v.GetString("HTTP_PORT"),
		DBHost:           v.GetString("DB_HOST"),
		DBPort:           v.GetString("DB_PORT"),
		DBUser:           v.GetString("DB_USER"),
		DBPassword:       v.GetString("DB_PASSWORD"),
		DBName:           v.GetString("DB_NAME"),
		DBSslMode:        v.GetString("DB_SSLMODE"),
		RedisAddr:        v.GetString("REDIS_ADDR"),
		RedisPassword:    v.GetString("REDIS_PASSWORD"),
		QueueBoardTTL:    v.GetDuration("QUEUE_BOARD_TTL"),
		KafkaBrokers:     strings.Split(v.GetString("KAFKA_BROKERS"), ","),
		KafkaEventsTopic: v.GetString("KAFKA_EVENTS_TOPIC"),
		LogLevel:         v.GetString("LOG_LEVEL"),
		LogEncoding:      v.GetString("LOG_ENCODING"),
	}
}
