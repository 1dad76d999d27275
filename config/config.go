package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

var loaded bool

// Config trả về giá trị biến môi trường, load .env nếu chưa load
func Config(key string) string {
	if !loaded {
		if err := godotenv.Load(".env"); err != nil {
			log.Println("No .env file found, using environment variables")
		}
		loaded = true
	}
	return os.Getenv(key)
}
