package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort    string
	StorageDriver string
	BoardFile     string
	BoardKey      string
	RedisAddr     string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
}

func Load() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("⚠️  No .env file found, using system environment variables")
	}

	return &Config{
		ServerPort:    getEnv("SERVER_PORT", "8080"),
		StorageDriver: getEnv("STORAGE_DRIVER", "file"),
		BoardFile:     getEnv("BOARD_FILE", "data/board.json"),
		BoardKey:      getEnv("BOARD_KEY", "taskboard:board"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "taskboard_user"),
		DBPassword:    getEnv("DB_PASSWORD", "taskboard_pass"),
		DBName:        getEnv("DB_NAME", "taskboard_db"),
	}
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
