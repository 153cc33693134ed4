package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort string

	// DBDriver selects the storage backend: "jsonfile" (default) or
	// "postgres".
	DBDriver string
	DBFile   string

	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	RateLimitRPS   float64
	RateLimitBurst int
}

func Load() *Config {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		log.Printf("warning: could not load .env file: %v", err)
	}

	dbPort, _ := strconv.Atoi(getEnv("DB_PORT", "5432"))
	rps, _ := strconv.ParseFloat(getEnv("RATE_LIMIT_RPS", "50"), 64)
	burst, _ := strconv.Atoi(getEnv("RATE_LIMIT_BURST", "100"))

	return &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),

		DBDriver: getEnv("DB_DRIVER", "jsonfile"),
		DBFile:   getEnv("DB_FILE", "data/db.json"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     dbPort,
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "car_service"),
		DBSslMode:  getEnv("DB_SSLMODE", "disable"),

		RateLimitRPS:   rps,
		RateLimitBurst: burst,
	}
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
