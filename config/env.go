package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type Config struct {
	AppEnv         string
	Port           string
	CartStorage    string
	CartStorageDir string
	DatabaseURL    string
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	DBSSLMode      string
	MigrationsPath string
	RedisURL       string
	RedisAddr      string
	RedisPassword  string
	JWTSecret      string
	JWTExpiry      time.Duration
	CatalogPath    string
	StoreName      string
	WhatsAppPhone  string
	CurrencySymbol string
	SMTPHost       string
	SMTPPort       int
	SMTPUser       string
	SMTPPass       string
	SMTPFrom       string
	CloudinaryURL  string
	OriginURL      string
}

var AppConfig *Config

func LoadConfig() {
	envErr := godotenv.Load()

	jwtExpiry, err := time.ParseDuration(getEnv("JWT_EXPIRY", "24h"))
	if err != nil {
		jwtExpiry = 24 * time.Hour
	}

	smtpPort, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		smtpPort = 587
	}

	AppConfig = &Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		Port:           getEnv("APP_PORT", getEnv("PORT", "8082")),
		CartStorage:    getEnv("CART_STORAGE", "memory"),
		CartStorageDir: getEnv("CART_STORAGE_DIR", "./storage/carts"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBUser:         getEnv("DB_USER", "postgres"),
		DBPassword:     getEnv("DB_PASSWORD", "postgres"),
		DBName:         getEnv("DB_NAME", "golden_elegance"),
		DBSSLMode:      getEnv("DB_SSLMODE", "disable"),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "database/migration"),
		RedisURL:       os.Getenv("REDIS_URL"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		JWTSecret:      getEnv("JWT_SECRET", "secret"),
		JWTExpiry:      jwtExpiry,
		CatalogPath:    os.Getenv("CATALOG_PATH"),
		StoreName:      getEnv("STORE_NAME", "Golden Elegance"),
		WhatsAppPhone:  getEnv("WHATSAPP_PHONE", "919876543210"),
		CurrencySymbol: getEnv("CURRENCY_SYMBOL", "₹"),
		SMTPHost:       os.Getenv("SMTP_HOST"),
		SMTPPort:       smtpPort,
		SMTPUser:       os.Getenv("SMTP_USER"),
		SMTPPass:       os.Getenv("SMTP_PASS"),
		SMTPFrom:       getEnv("SMTP_FROM", "no-reply@goldenelegance.in"),
		CloudinaryURL:  os.Getenv("CLOUDINARY_URL"),
		OriginURL:      os.Getenv("ORIGIN_URL"),
	}

	InitLogger(AppConfig.AppEnv)

	if envErr != nil {
		Log.Info(".env file not found, using system environment variables")
	}
	Log.Info("configuration loaded",
		zap.String("env", AppConfig.AppEnv),
		zap.String("port", AppConfig.Port),
		zap.String("cart_storage", AppConfig.CartStorage),
	)
}

// RedisEnabled reports whether any redis connection setting is present.
func (c *Config) RedisEnabled() bool {
	return c.RedisURL != "" || c.RedisAddr != ""
}

func (c *Config) SMTPEnabled() bool {
	return c.SMTPHost != "" && c.SMTPUser != "" && c.SMTPPass != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
