package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port string
	Env  string // development or production

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	JWTKey              string
	JWTExpireHours      int
	JWTCookieExpireDays int
	SaltRound           int

	MaxFileUpload  int // bytes
	FileUploadPath string

	SendGridKey string
	FromEmail   string
	FromName    string

	GeocoderURL string
	GeocoderKey string
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port: getEnv("PORT", "3000"),
		Env:  getEnv("GO_ENV", "development"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "devcamper"),
		DBPort:     getEnv("DB_PORT", "5432"),

		JWTKey:              getEnv("JWT_SECRET", "defaultSecret"),
		JWTExpireHours:      getEnvInt("JWT_EXPIRE_HOURS", 24),
		JWTCookieExpireDays: getEnvInt("JWT_COOKIE_EXPIRE_DAYS", 30),
		SaltRound:           getEnvInt("SALT_ROUND", 10),

		MaxFileUpload:  getEnvInt("MAX_FILE_UPLOAD", 1000000),
		FileUploadPath: getEnv("FILE_UPLOAD_PATH", "./public/uploads"),

		SendGridKey: getEnv("SENDGRID_API_KEY", ""),
		FromEmail:   getEnv("FROM_EMAIL", "noreply@devcamper.io"),
		FromName:    getEnv("FROM_NAME", "DevCamper"),

		GeocoderURL: getEnv("GEOCODER_URL", "https://geocode.maps.co/search"),
		GeocoderKey: getEnv("GEOCODER_API_KEY", ""),
	}

	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET. Update it in your environment.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}
