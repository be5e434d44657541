package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config carries every environment-derived setting. It is built once in
// main and handed to the components that need it, so nothing else reads
// process-wide environment state.
type Config struct {
	Port          string
	DatabaseURL   string
	DBHost        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBPort        string
	JWTSecret     string
	CORSOrigins   string
	UploadDir     string
	TokenTTLHours int
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	return Config{
		Port:          getEnv("PORT", "3000"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBUser:        getEnv("DB_USER", "postgres"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBName:        getEnv("DB_NAME", "drugstore"),
		DBPort:        getEnv("DB_PORT", "5432"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		CORSOrigins:   getEnv("CORS_ORIGINS", "*"),
		UploadDir:     getEnv("UPLOAD_DIR", "./uploads"),
		TokenTTLHours: 24,
	}
}

// DSN assembles a postgres connection string, preferring DATABASE_URL when
// set over the individual DB_* parts.
func (c Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort,
	)
}

func (c Config) Address() string {
	return ":" + c.Port
}

func getEnv(key, fallback string) string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	return val
}
