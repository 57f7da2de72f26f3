package config

import (
	"log"
	"os"
	"sync"

	"github.com/joho/godotenv"
)

var once sync.Once

// Config returns the value of an environment variable, loading .env first.
func Config(key string) string {
	once.Do(func() {
		if err := godotenv.Load(".env"); err != nil {
			log.Println("no .env file found, using environment")
		}
	})
	return os.Getenv(key)
}

// ConfigDefault returns the env value or a fallback when it is unset.
func ConfigDefault(key, fallback string) string {
	if v := Config(key); v != "" {
		return v
	}
	return fallback
}
