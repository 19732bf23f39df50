package config

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
)

func MustInitRedis() *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: os.Getenv("REDIS_ADDR"),
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	return client
}

func NewKafkaWriter(topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:     kafka.TCP(os.Getenv("KAFKA_BROKER")),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}
}

// MenuTTL is the idle lifetime of an ephemeral menu before Redis reclaims
// the session.
func MenuTTL() time.Duration {
	minutes, err := strconv.Atoi(os.Getenv("MENU_TTL_MINUTES"))
	if err != nil || minutes <= 0 {
		minutes = 30
	}
	return time.Duration(minutes) * time.Minute
}

func CurrencyCode() string {
	return getenvOr("CURRENCY_CODE", "TWD")
}

func VoiceProfile() string {
	return getenvOr("VOICE_PROFILE", "zh-TW-standard")
}

func DefaultTravelerLang() string {
	return getenvOr("DEFAULT_TRAVELER_LANG", "en")
}

func Port() string {
	return getenvOr("PORT", "8000")
}

func getenvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
