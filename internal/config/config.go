package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	DB     DBConfig
	JWT    JWTConfig
	S3     S3Config
	Log    LogConfig
	CORS   CORSConfig
	Email  EmailConfig
	OCR    OCRConfig
	Engine EngineConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds JWT signing and expiry settings.
type JWTConfig struct {
	Secret             string        `mapstructure:"secret"`
	AccessTokenExpiry  time.Duration `mapstructure:"access_expiry"`
	RefreshTokenExpiry time.Duration `mapstructure:"refresh_expiry"`
	Issuer             string        `mapstructure:"issuer"`
}

// S3Config holds AWS S3 settings for uploaded document storage.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// EmailConfig holds report email delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
}

// OCRConfig holds text recognition settings. The recognizer shells out
// to an external OCR binary; "noop" disables recognition so every
// document degrades to the minimum-confidence result.
type OCRConfig struct {
	Provider    string `mapstructure:"provider"` // tesseract | noop
	Binary      string `mapstructure:"binary"`
	Languages   string `mapstructure:"languages"`
	PageSegMode int    `mapstructure:"page_seg_mode"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
	Concurrency int    `mapstructure:"concurrency"`
}

// EngineConfig holds extraction and scoring settings. The baselines are
// monthly reference consumptions used to derive the 0-100 efficiency
// dimensions of the ESG score.
type EngineConfig struct {
	ConfidenceBaseline float64 `mapstructure:"confidence_baseline"`
	EnergyBaselineKWh  float64 `mapstructure:"energy_baseline_kwh"`
	WaterBaselineL     float64 `mapstructure:"water_baseline_l"`
	WasteBaselineKg    float64 `mapstructure:"waste_baseline_kg"`
	CarbonBaselineKg   float64 `mapstructure:"carbon_baseline_kg"`
}

// Load reads configuration from environment variables with the GREENLENS_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("GREENLENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "greenlens")
	v.SetDefault("db.password", "greenlens_secret")
	v.SetDefault("db.name", "greenlens_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.access_expiry", "15m")
	v.SetDefault("jwt.refresh_expiry", "168h")
	v.SetDefault("jwt.issuer", "greenlens")

	// S3 defaults
	v.SetDefault("s3.region", "ap-south-1")
	v.SetDefault("s3.bucket", "greenlens-uploads")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.max_file_size_mb", 25)
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "ap-south-1")
	v.SetDefault("email.from_address", "reports@greenlens.app")
	v.SetDefault("email.from_name", "GreenLens")

	// OCR defaults
	v.SetDefault("ocr.provider", "tesseract")
	v.SetDefault("ocr.binary", "tesseract")
	v.SetDefault("ocr.languages", "eng")
	v.SetDefault("ocr.page_seg_mode", 6)
	v.SetDefault("ocr.timeout_secs", 30)
	v.SetDefault("ocr.concurrency", 4)

	// Engine defaults
	v.SetDefault("engine.confidence_baseline", 0.5)
	v.SetDefault("engine.energy_baseline_kwh", 1000)
	v.SetDefault("engine.water_baseline_l", 50000)
	v.SetDefault("engine.waste_baseline_kg", 100)
	v.SetDefault("engine.carbon_baseline_kg", 1000)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                "GREENLENS_SERVER_PORT",
		"server.read_timeout":        "GREENLENS_SERVER_READ_TIMEOUT",
		"server.write_timeout":       "GREENLENS_SERVER_WRITE_TIMEOUT",
		"server.environment":         "GREENLENS_SERVER_ENVIRONMENT",
		"db.host":                    "GREENLENS_DB_HOST",
		"db.port":                    "GREENLENS_DB_PORT",
		"db.user":                    "GREENLENS_DB_USER",
		"db.password":                "GREENLENS_DB_PASSWORD",
		"db.name":                    "GREENLENS_DB_NAME",
		"db.sslmode":                 "GREENLENS_DB_SSLMODE",
		"db.max_open":                "GREENLENS_DB_MAX_OPEN",
		"db.max_idle":                "GREENLENS_DB_MAX_IDLE",
		"jwt.secret":                 "GREENLENS_JWT_SECRET",
		"jwt.access_expiry":          "GREENLENS_JWT_ACCESS_EXPIRY",
		"jwt.refresh_expiry":         "GREENLENS_JWT_REFRESH_EXPIRY",
		"jwt.issuer":                 "GREENLENS_JWT_ISSUER",
		"s3.region":                  "GREENLENS_S3_REGION",
		"s3.bucket":                  "GREENLENS_S3_BUCKET",
		"s3.endpoint":                "GREENLENS_S3_ENDPOINT",
		"s3.access_key":              "GREENLENS_S3_ACCESS_KEY",
		"s3.secret_key":              "GREENLENS_S3_SECRET_KEY",
		"s3.max_file_size_mb":        "GREENLENS_S3_MAX_FILE_SIZE_MB",
		"s3.presign_expiry":          "GREENLENS_S3_PRESIGN_EXPIRY",
		"log.level":                  "GREENLENS_LOG_LEVEL",
		"log.format":                 "GREENLENS_LOG_FORMAT",
		"cors.allowed_origins":       "GREENLENS_CORS_ALLOWED_ORIGINS",
		"email.provider":             "GREENLENS_EMAIL_PROVIDER",
		"email.region":               "GREENLENS_EMAIL_REGION",
		"email.from_address":         "GREENLENS_EMAIL_FROM_ADDRESS",
		"email.from_name":            "GREENLENS_EMAIL_FROM_NAME",
		"ocr.provider":               "GREENLENS_OCR_PROVIDER",
		"ocr.binary":                 "GREENLENS_OCR_BINARY",
		"ocr.languages":              "GREENLENS_OCR_LANGUAGES",
		"ocr.page_seg_mode":          "GREENLENS_OCR_PAGE_SEG_MODE",
		"ocr.timeout_secs":           "GREENLENS_OCR_TIMEOUT_SECS",
		"ocr.concurrency":            "GREENLENS_OCR_CONCURRENCY",
		"engine.confidence_baseline": "GREENLENS_ENGINE_CONFIDENCE_BASELINE",
		"engine.energy_baseline_kwh": "GREENLENS_ENGINE_ENERGY_BASELINE_KWH",
		"engine.water_baseline_l":    "GREENLENS_ENGINE_WATER_BASELINE_L",
		"engine.waste_baseline_kg":   "GREENLENS_ENGINE_WASTE_BASELINE_KG",
		"engine.carbon_baseline_kg":  "GREENLENS_ENGINE_CARBON_BASELINE_KG",
	}
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("binding env %s: %w", env, err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:         v.GetString("server.port"),
			ReadTimeout:  v.GetDuration("server.read_timeout"),
			WriteTimeout: v.GetDuration("server.write_timeout"),
			Environment:  v.GetString("server.environment"),
		},
		DB: DBConfig{
			Host:     v.GetString("db.host"),
			Port:     v.GetInt("db.port"),
			User:     v.GetString("db.user"),
			Password: v.GetString("db.password"),
			Name:     v.GetString("db.name"),
			SSLMode:  v.GetString("db.sslmode"),
			MaxOpen:  v.GetInt("db.max_open"),
			MaxIdle:  v.GetInt("db.max_idle"),
		},
		JWT: JWTConfig{
			Secret:             v.GetString("jwt.secret"),
			AccessTokenExpiry:  v.GetDuration("jwt.access_expiry"),
			RefreshTokenExpiry: v.GetDuration("jwt.refresh_expiry"),
			Issuer:             v.GetString("jwt.issuer"),
		},
		S3: S3Config{
			Region:        v.GetString("s3.region"),
			Bucket:        v.GetString("s3.bucket"),
			Endpoint:      v.GetString("s3.endpoint"),
			AccessKey:     v.GetString("s3.access_key"),
			SecretKey:     v.GetString("s3.secret_key"),
			MaxFileSizeMB: v.GetInt64("s3.max_file_size_mb"),
			PresignExpiry: v.GetInt64("s3.presign_expiry"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		CORS: CORSConfig{
			AllowedOrigins: strings.Split(v.GetString("cors.allowed_origins"), ","),
		},
		Email: EmailConfig{
			Provider:    v.GetString("email.provider"),
			Region:      v.GetString("email.region"),
			FromAddress: v.GetString("email.from_address"),
			FromName:    v.GetString("email.from_name"),
		},
		OCR: OCRConfig{
			Provider:    v.GetString("ocr.provider"),
			Binary:      v.GetString("ocr.binary"),
			Languages:   v.GetString("ocr.languages"),
			PageSegMode: v.GetInt("ocr.page_seg_mode"),
			TimeoutSecs: v.GetInt("ocr.timeout_secs"),
			Concurrency: v.GetInt("ocr.concurrency"),
		},
		Engine: EngineConfig{
			ConfidenceBaseline: v.GetFloat64("engine.confidence_baseline"),
			EnergyBaselineKWh:  v.GetFloat64("engine.energy_baseline_kwh"),
			WaterBaselineL:     v.GetFloat64("engine.water_baseline_l"),
			WasteBaselineKg:    v.GetFloat64("engine.waste_baseline_kg"),
			CarbonBaselineKg:   v.GetFloat64("engine.carbon_baseline_kg"),
		},
	}

	if cfg.Server.Environment == "production" && cfg.JWT.Secret == "change-me-in-production" {
		return nil, fmt.Errorf("GREENLENS_JWT_SECRET must be set in production")
	}

	return cfg, nil
}
