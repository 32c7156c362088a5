package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	ListenAddr string
	ElasticURL string

	SigningKey        string
	AdminUser         string
	AdminPasswordHash string

	AnalyticsURL  string
	AdSenseClient string

	SeedPath    string
	TemplateDir string
	PageSize    int
	NearbyLimit int
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		ListenAddr: getEnv("LISTEN_ADDR", ":8888"),
		ElasticURL: getEnv("ELASTIC_URL", "http://localhost:9200"),

		SigningKey:        getEnv("SIGNING_KEY", ""),
		AdminUser:         getEnv("ADMIN_USER", "admin"),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),

		AnalyticsURL:  getEnv("ANALYTICS_URL", "http://localhost:8888/api/analytics"),
		AdSenseClient: getEnv("ADSENSE_CLIENT", ""),

		SeedPath:    getEnv("SEED_PATH", ""),
		TemplateDir: getEnv("TEMPLATE_DIR", "./src/templates"),
		PageSize:    getEnvInt("PAGE_SIZE", 10),
		NearbyLimit: getEnvInt("NEARBY_LIMIT", 3),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}
