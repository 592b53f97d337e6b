package config

import (
	"log"

	"github.com/joho/godotenv"
)

// Load reads .env into the process environment. Settings are read with
// os.Getenv at the point of use.
func Load() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️ No .env file found — using system environment variables")
	} else {
		log.Println("✅ .env file loaded")
	}
}
