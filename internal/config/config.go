package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	AppEnv     string

	// Persistence throttle. The variant store enforces a request-rate
	// ceiling, so bulk writes are serialized through a limiter.
	WriteRPS        float64
	WriteBurst      int
	WriteMaxRetries int

	// Upper bound on combinations per generation request, checked
	// before the generator runs.
	MaxCombinations int
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DBHost:          os.Getenv("DB_HOST"),
		DBUser:          os.Getenv("DB_USER"),
		DBPassword:      os.Getenv("DB_PASSWORD"),
		DBName:          os.Getenv("DB_NAME"),
		DBPort:          os.Getenv("DB_PORT"),
		AppEnv:          os.Getenv("APP_ENV"),
		WriteRPS:        envFloat("WRITE_RPS", 2),
		WriteBurst:      envInt("WRITE_BURST", 1),
		WriteMaxRetries: envInt("WRITE_MAX_RETRIES", 3),
		MaxCombinations: envInt("MAX_COMBINATIONS", 500),
	}

	if cfg.DBHost == "" {
		log.Fatal("Environment variables not loaded properly")
	}

	return cfg
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func envFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}
