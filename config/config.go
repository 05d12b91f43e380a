package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds every externally-configured value the service needs.
// All values come from environment variables (or a local .env file
// loaded by main before Load is called).
type Config struct {
	Port        string
	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string

	JWTSecret   string
	AdminAPIKey string

	UploadsDir    string
	BackupDir     string
	PublicBaseURL string

	// Payment gateway (hosted checkout)
	PayBaseURL       string
	PayClientID      string
	PayClientSecret  string
	PayRedirectURL   string
	PayWebhookSecret string
	PayMode          string // "live" or "sandbox"

	// Shipping partner
	ShippingBaseURL string
	ShippingAPIKey  string

	// Signed-request object storage (optional mirror of local uploads)
	StorageBaseURL   string
	StorageAccessKey string
	StorageSecretKey string

	// Optional order-event queue
	RabbitMQURL string
}

// Load reads the configuration from the environment with sane defaults
// for local development.
func Load() Config {
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_NAME", "thejwel")
	viper.SetDefault("UPLOADS_DIR", "/var/www/thejwel/uploads")
	viper.SetDefault("BACKUP_DIR", "/var/www/thejwel/backup/uploads")
	viper.SetDefault("PAY_MODE", "sandbox")
	viper.AutomaticEnv()

	return Config{
		Port:        viper.GetString("PORT"),
		DatabaseURL: viper.GetString("DATABASE_URL"),
		DBHost:      viper.GetString("DB_HOST"),
		DBPort:      viper.GetString("DB_PORT"),
		DBUser:      viper.GetString("DB_USER"),
		DBPassword:  viper.GetString("DB_PASSWORD"),
		DBName:      viper.GetString("DB_NAME"),

		JWTSecret:   viper.GetString("JWT_SECRET"),
		AdminAPIKey: viper.GetString("ADMIN_API_KEY"),

		UploadsDir:    viper.GetString("UPLOADS_DIR"),
		BackupDir:     viper.GetString("BACKUP_DIR"),
		PublicBaseURL: viper.GetString("PUBLIC_BASE_URL"),

		PayBaseURL:       viper.GetString("PAY_API_URL"),
		PayClientID:      viper.GetString("PAY_CLIENT_ID"),
		PayClientSecret:  viper.GetString("PAY_CLIENT_SECRET"),
		PayRedirectURL:   viper.GetString("PAY_REDIRECT_URL"),
		PayWebhookSecret: viper.GetString("PAY_WEBHOOK_SECRET"),
		PayMode:          viper.GetString("PAY_MODE"),

		ShippingBaseURL: viper.GetString("SHIPPING_API_URL"),
		ShippingAPIKey:  viper.GetString("SHIPPING_API_KEY"),

		StorageBaseURL:   viper.GetString("STORAGE_BASE_URL"),
		StorageAccessKey: viper.GetString("STORAGE_ACCESS_KEY"),
		StorageSecretKey: viper.GetString("STORAGE_SECRET_KEY"),

		RabbitMQURL: viper.GetString("RABBITMQ_URL"),
	}
}

// DSN builds the Postgres connection string. DATABASE_URL wins when set.
func (c Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort,
	)
}
