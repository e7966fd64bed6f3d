package config

import (
	"os"
	"strconv"
)

// ============================================================
// Configuration
// ============================================================

type Config struct {
	Port         string
	Environment  string
	ReadTimeout  int
	WriteTimeout int

	// Hosted backend (row API + auth)
	BackendURL    string
	BackendAPIKey string

	// Storefront
	ShippingFee  float64
	ContactPhone string
	StoreDBPath  string

	// Studio
	StudioDBPath string
	LogoDir      string
}

// Load загружает конфигурацию из переменных окружения
func Load() *Config {
	return &Config{
		Port:         getEnv("PORT", "3000"),
		Environment:  getEnv("ENV", "development"),
		ReadTimeout:  getEnvAsInt("READ_TIMEOUT", 10),
		WriteTimeout: getEnvAsInt("WRITE_TIMEOUT", 10),

		BackendURL:    getEnv("BACKEND_URL", "http://localhost:54321"),
		BackendAPIKey: getEnv("BACKEND_API_KEY", ""),

		ShippingFee:  getEnvAsFloat("SHIPPING_FEE", 10.0),
		ContactPhone: getEnv("CONTACT_PHONE", "10000000000"),
		StoreDBPath:  getEnv("STORE_DB_PATH", "data/db/store.db"),

		StudioDBPath: getEnv("STUDIO_DB_PATH", "data/db/studio.db"),
		LogoDir:      getEnv("LOGO_DIR", "data/logos"),
	}
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsFloat(key string, defaultVal float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultVal
}
