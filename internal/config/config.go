package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	DBDSN         string
	JWTSecret     string
	RedisAddr     string
	RedisPassword string
	LogFile       string
}

func Load() Config {
	// .env is optional; deployments normally set the environment directly.
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "store.db" // sqlite file in project root
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is required")
	}
	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = "./store.log"
	}

	cfg := Config{
		Port:          port,
		DBDSN:         dsn,
		JWTSecret:     secret,
		RedisAddr:     os.Getenv("REDIS_ADDR"), // empty disables caching
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		LogFile:       logFile,
	}
	log.Printf("[config] PORT=%s DB_DSN=%s REDIS_ADDR=%s LOG_FILE=%s", cfg.Port, cfg.DBDSN, cfg.RedisAddr, cfg.LogFile)
	return cfg
}
