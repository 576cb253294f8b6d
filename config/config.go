package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

var DB *gorm.DB

// JWTSecret used to sign tokens, replaced by Load
var JWTSecret = []byte("food_ordering_dev_secret")

// JWTTTL is the lifetime of issued tokens
var JWTTTL = 24 * time.Hour

type Config struct {
	Port            string
	GinMode         string
	DBDriver        string
	DBSource        string
	JWTSecret       string
	JWTTTL          time.Duration
	UploadDir       string
	MaxUploadImages int
	MaxImageWidth   uint
	RedisAddr       string
	RedisPassword   string
	MenuCacheTTL    time.Duration
	LogLevel        string
	LogPretty       bool
	CORSOrigins     []string
	AdminName       string
	AdminEmail      string
	AdminPassword   string
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file, using process environment")
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("PORT", "8080")
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DB_SOURCE", "food_ordering.db")
	v.SetDefault("JWT_SECRET", string(JWTSecret))
	v.SetDefault("JWT_TTL", "24h")
	v.SetDefault("UPLOAD_DIR", "uploads")
	v.SetDefault("MAX_UPLOAD_IMAGES", 5)
	v.SetDefault("MAX_IMAGE_WIDTH", 1280)
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("MENU_CACHE_TTL", "5m")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_PRETTY", false)
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("ADMIN_NAME", "Administrator")
	v.SetDefault("ADMIN_EMAIL", "")
	v.SetDefault("ADMIN_PASSWORD", "")

	cfg := &Config{
		Port:            v.GetString("PORT"),
		GinMode:         v.GetString("GIN_MODE"),
		DBDriver:        strings.ToLower(v.GetString("DB_DRIVER")),
		DBSource:        v.GetString("DB_SOURCE"),
		JWTSecret:       v.GetString("JWT_SECRET"),
		JWTTTL:          v.GetDuration("JWT_TTL"),
		UploadDir:       v.GetString("UPLOAD_DIR"),
		MaxUploadImages: v.GetInt("MAX_UPLOAD_IMAGES"),
		MaxImageWidth:   v.GetUint("MAX_IMAGE_WIDTH"),
		RedisAddr:       v.GetString("REDIS_ADDR"),
		RedisPassword:   v.GetString("REDIS_PASSWORD"),
		MenuCacheTTL:    v.GetDuration("MENU_CACHE_TTL"),
		LogLevel:        v.GetString("LOG_LEVEL"),
		LogPretty:       v.GetBool("LOG_PRETTY"),
		CORSOrigins:     splitList(v.GetString("CORS_ORIGINS")),
		AdminName:       v.GetString("ADMIN_NAME"),
		AdminEmail:      v.GetString("ADMIN_EMAIL"),
		AdminPassword:   v.GetString("ADMIN_PASSWORD"),
	}
	if cfg.JWTTTL <= 0 {
		cfg.JWTTTL = 24 * time.Hour
	}
	if cfg.MaxUploadImages <= 0 {
		cfg.MaxUploadImages = 5
	}

	JWTSecret = []byte(cfg.JWTSecret)
	JWTTTL = cfg.JWTTTL
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
