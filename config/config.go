package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"cafe-order-api/models"

	"github.com/glebarez/sqlite"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	DB        DBConfig        `mapstructure:"db"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Retention RetentionConfig `mapstructure:"retention"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type DBConfig struct {
	Path string `mapstructure:"path"`
}

type AuthConfig struct {
	JWTSecret     string        `mapstructure:"jwt_secret"`
	TokenTTL      time.Duration `mapstructure:"token_ttl"`
	AdminName     string        `mapstructure:"admin_name"`
	AdminEmail    string        `mapstructure:"admin_email"`
	AdminPassword string        `mapstructure:"admin_password"`
}

type StorageConfig struct {
	UploadDir string `mapstructure:"upload_dir"`
	PublicURL string `mapstructure:"public_url"`
}

type RetentionConfig struct {
	MaxAgeDays int `mapstructure:"max_age_days"`
}

// App holds the loaded configuration; DB the shared gorm handle. Both are set
// once by Load/InitDB at startup.
var (
	App Config
	DB  *gorm.DB
)

// JWTSecret returns the signing key for session tokens.
func JWTSecret() []byte {
	return []byte(App.Auth.JWTSecret)
}

// Load reads config.yaml (if present) and CAFE_* environment overrides.
func Load(path string) error {
	v := viper.New()
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("db.path", "cafe.db")
	v.SetDefault("auth.jwt_secret", "cafe_order_super_secret_2024")
	v.SetDefault("auth.token_ttl", 24*time.Hour)
	v.SetDefault("auth.admin_name", "Admin")
	v.SetDefault("auth.admin_email", "admin@cafe.local")
	v.SetDefault("auth.admin_password", "admin123")
	v.SetDefault("storage.upload_dir", "uploads")
	v.SetDefault("storage.public_url", "/uploads")
	v.SetDefault("retention.max_age_days", 30)

	v.SetEnvPrefix("CAFE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults plus env overrides are enough to run; a config file is optional.
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("read config: %w", err)
			}
		}
	}

	if err := v.Unmarshal(&App); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}
	return nil
}

// InitDB opens the SQLite database and migrates all models.
func InitDB() error {
	var err error
	DB, err = gorm.Open(sqlite.Open(App.DB.Path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.MenuItem{},
		&models.HomepageImage{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderStatusHistory{},
	)
	if err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	return nil
}

// SeedAdmin ensures the configured admin account exists. There is no public
// registration; staff accounts come from configuration.
func SeedAdmin() error {
	var existing models.User
	err := DB.Where("email = ?", App.Auth.AdminEmail).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(App.Auth.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	admin := models.User{
		Name:         App.Auth.AdminName,
		Email:        App.Auth.AdminEmail,
		PasswordHash: string(hash),
		IsAdmin:      true,
	}
	if err := DB.Create(&admin).Error; err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	slog.Info("seeded admin account", "email", admin.Email)
	return nil
}
