package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	DB        DBConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Storage   StorageConfig
	Directory DirectoryConfig
	Mail      MailConfig
	Mock      MockConfig
	OTP       OTPConfig
	Workspace WorkspaceConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Port     string
	Env      string
	LogLevel string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret       string
	AccessExpiry time.Duration
}

// StorageConfig selects the backing of the auth storage slot and the OTP store.
type StorageConfig struct {
	Driver    string // memory | redis
	Namespace string
}

// DirectoryConfig selects where the doctor directory is loaded from.
type DirectoryConfig struct {
	Driver string // seed | postgres
}

type MailConfig struct {
	Driver         string // log | smtp | sendgrid
	From           string
	FromName       string
	SMTPHost       string
	SMTPPort       string
	SMTPUser       string
	SMTPPassword   string
	SendGridAPIKey string
}

// MockConfig holds the artificial latency of the mocked backends.
type MockConfig struct {
	BookingLatency time.Duration
	AuthLatency    time.Duration
	MailLatency    time.Duration
}

type OTPConfig struct {
	TTL             time.Duration
	ResendCountdown int
	CountdownTick   time.Duration
}

type WorkspaceConfig struct {
	IdleTimeout   time.Duration
	SweepSchedule string
}

type RateLimitConfig struct {
	RequestsPerMinute int
	Burst             int
}

const (
	StorageDriverMemory = "memory"
	StorageDriverRedis  = "redis"

	DirectoryDriverSeed     = "seed"
	DirectoryDriverPostgres = "postgres"

	MailDriverLog      = "log"
	MailDriverSMTP     = "smtp"
	MailDriverSendGrid = "sendgrid"
)

func LoadConfig() (*Config, error) {
	// .env is optional; real environment variables take precedence.
	_ = godotenv.Load()
	viper.AutomaticEnv()
	setDefaults()

	config := &Config{
		App: AppConfig{
			Port:     viper.GetString("APP_PORT"),
			Env:      viper.GetString("APP_ENV"),
			LogLevel: viper.GetString("LOG_LEVEL"),
		},
		DB: DBConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:       viper.GetString("JWT_SECRET"),
			AccessExpiry: durationOr("JWT_ACCESS_EXPIRY", 24*time.Hour),
		},
		Storage: StorageConfig{
			Driver:    viper.GetString("STORAGE_DRIVER"),
			Namespace: viper.GetString("STORAGE_NAMESPACE"),
		},
		Directory: DirectoryConfig{
			Driver: viper.GetString("DIRECTORY_DRIVER"),
		},
		Mail: MailConfig{
			Driver:         viper.GetString("MAIL_DRIVER"),
			From:           viper.GetString("MAIL_FROM"),
			FromName:       viper.GetString("MAIL_FROM_NAME"),
			SMTPHost:       viper.GetString("SMTP_HOST"),
			SMTPPort:       viper.GetString("SMTP_PORT"),
			SMTPUser:       viper.GetString("SMTP_USER"),
			SMTPPassword:   viper.GetString("SMTP_PASS"),
			SendGridAPIKey: viper.GetString("SENDGRID_API_KEY"),
		},
		Mock: MockConfig{
			BookingLatency: durationOr("MOCK_BOOKING_LATENCY", time.Second),
			AuthLatency:    durationOr("MOCK_AUTH_LATENCY", 0),
			MailLatency:    durationOr("MOCK_MAIL_LATENCY", 0),
		},
		OTP: OTPConfig{
			TTL:             durationOr("OTP_TTL", 5*time.Minute),
			ResendCountdown: viper.GetInt("OTP_RESEND_COUNTDOWN"),
			CountdownTick:   durationOr("OTP_COUNTDOWN_TICK", time.Second),
		},
		Workspace: WorkspaceConfig{
			IdleTimeout:   durationOr("WORKSPACE_IDLE_TIMEOUT", 30*time.Minute),
			SweepSchedule: viper.GetString("WORKSPACE_SWEEP_SCHEDULE"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: viper.GetInt("RATE_LIMIT_PER_MINUTE"),
			Burst:             viper.GetInt("RATE_LIMIT_BURST"),
		},
	}

	if config.OTP.ResendCountdown <= 0 {
		return nil, fmt.Errorf("OTP_RESEND_COUNTDOWN must be positive, got %d", config.OTP.ResendCountdown)
	}

	return config, nil
}

func setDefaults() {
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("JWT_SECRET", "doctor-finder-dev-secret")
	viper.SetDefault("STORAGE_DRIVER", StorageDriverMemory)
	viper.SetDefault("STORAGE_NAMESPACE", "auth-storage")
	viper.SetDefault("DIRECTORY_DRIVER", DirectoryDriverSeed)
	viper.SetDefault("MAIL_DRIVER", MailDriverLog)
	viper.SetDefault("MAIL_FROM_NAME", "Find Your Doctor")
	viper.SetDefault("SMTP_HOST", "smtp.gmail.com")
	viper.SetDefault("SMTP_PORT", "587")
	viper.SetDefault("OTP_RESEND_COUNTDOWN", 60)
	viper.SetDefault("WORKSPACE_SWEEP_SCHEDULE", "@every 5m")
	viper.SetDefault("RATE_LIMIT_PER_MINUTE", 120)
	viper.SetDefault("RATE_LIMIT_BURST", 20)
}

func durationOr(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(viper.GetString(key))
	if err != nil {
		return fallback
	}
	return d
}
