package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/Jabarteley/CitizensReportApp-ionic/internal/logger"
)

// Config holds every external endpoint and credential the client core needs:
// the reports database, the Cloudinary account and the identity provider.
type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	CloudinaryCloudName    string
	CloudinaryAPIKey       string
	CloudinaryAPISecret    string
	CloudinaryUploadPreset string
	CloudinaryUploadFolder string

	IdentityBaseURL string
	IdentityAPIKey  string

	LogLevel string
}

// LoadConfig reads configuration from the environment.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "citizen_report")
	v.SetDefault("CLOUDINARY_UPLOAD_PRESET", "default")
	v.SetDefault("CLOUDINARY_UPLOAD_FOLDER", "citizen-report/reports")
	v.SetDefault("IDENTITY_BASE_URL", "https://identitytoolkit.googleapis.com/v1")
	v.SetDefault("LOG_LEVEL", "info")

	cfg := &Config{
		DBHost:     v.GetString("DB_HOST"),
		DBPort:     v.GetString("DB_PORT"),
		DBUser:     v.GetString("DB_USER"),
		DBPassword: v.GetString("DB_PASSWORD"),
		DBName:     v.GetString("DB_NAME"),

		CloudinaryCloudName:    v.GetString("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:       v.GetString("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret:    v.GetString("CLOUDINARY_API_SECRET"),
		CloudinaryUploadPreset: v.GetString("CLOUDINARY_UPLOAD_PRESET"),
		CloudinaryUploadFolder: v.GetString("CLOUDINARY_UPLOAD_FOLDER"),

		IdentityBaseURL: v.GetString("IDENTITY_BASE_URL"),
		IdentityAPIKey:  v.GetString("IDENTITY_API_KEY"),

		LogLevel: v.GetString("LOG_LEVEL"),
	}

	if cfg.DBName == "" {
		return nil, fmt.Errorf("DB_NAME must not be empty")
	}

	logger.SetLevel(cfg.LogLevel)

	return cfg, nil
}

// DSN builds the postgres connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}
