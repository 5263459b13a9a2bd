package config

import (
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Cache     CacheConfig
	Ledger    LedgerConfig
	Alerts    AlertsConfig
	Extract   ExtractConfig
	ScanInbox ScanInboxConfig
	Archive   ArchiveConfig
}

type ServerConfig struct {
	Port           string
	Mode           string
	ReadTimeout    int
	WriteTimeout   int
	AllowedOrigins []string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type CacheConfig struct {
	Enabled         bool
	RedisURL        string
	RedisHost       string
	RedisPort       string
	RedisPassword   string
	RedisDB         int
	AlertTTLSeconds int
}

// LedgerConfig holds stock ledger policy knobs.
type LedgerConfig struct {
	// DefaultExpiryDays is the expiry assigned to a perishable receipt that
	// supplies no date. Historical default: 30.
	DefaultExpiryDays int
}

type AlertsConfig struct {
	ExpiryWindowDays int
	// RecomputeCron is the schedule for the periodic alert refresh.
	RecomputeCron string
}

// ExtractConfig configures the LLM-backed invoice/WhatsApp extraction client.
type ExtractConfig struct {
	APIKey         string
	Model          string
	TimeoutSeconds int
}

// ScanInboxConfig configures the Drive folder watcher for invoice scans.
type ScanInboxConfig struct {
	Enabled         bool
	CredentialsJSON string
	FolderID        string
	PollCron        string
}

// ArchiveConfig configures the object store where processed scans are kept.
type ArchiveConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

var (
	once     sync.Once
	instance *Config
)

func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		viper.SetDefault("SERVER_PORT", "8080")
		viper.SetDefault("SERVER_MODE", "debug")
		viper.SetDefault("SERVER_READ_TIMEOUT", 15)
		viper.SetDefault("SERVER_WRITE_TIMEOUT", 15)
		viper.SetDefault("SERVER_ALLOWED_ORIGINS", []string{"*"})
		viper.SetDefault("DB_HOST", "localhost")
		viper.SetDefault("DB_PORT", "5432")
		viper.SetDefault("DB_USER", "postgres")
		viper.SetDefault("DB_PASSWORD", "postgres")
		viper.SetDefault("DB_NAME", "candyops")
		viper.SetDefault("DB_SSLMODE", "disable")
		viper.SetDefault("CACHE_ENABLED", false)
		viper.SetDefault("REDIS_URL", "")
		viper.SetDefault("REDIS_HOST", "127.0.0.1")
		viper.SetDefault("REDIS_PORT", "6379")
		viper.SetDefault("REDIS_PASSWORD", "")
		viper.SetDefault("REDIS_DB", 0)
		viper.SetDefault("CACHE_ALERT_TTL_SECONDS", 60)
		viper.SetDefault("LEDGER_DEFAULT_EXPIRY_DAYS", 30)
		viper.SetDefault("ALERT_EXPIRY_WINDOW_DAYS", 7)
		viper.SetDefault("ALERT_RECOMPUTE_CRON", "*/15 * * * *")
		viper.SetDefault("EXTRACT_API_KEY", "")
		viper.SetDefault("EXTRACT_MODEL", "claude-3-haiku-20240307")
		viper.SetDefault("EXTRACT_TIMEOUT_SECONDS", 30)
		viper.SetDefault("SCAN_INBOX_ENABLED", false)
		viper.SetDefault("SCAN_INBOX_CREDENTIALS_JSON", "")
		viper.SetDefault("SCAN_INBOX_FOLDER_ID", "")
		viper.SetDefault("SCAN_INBOX_POLL_CRON", "*/10 * * * *")
		viper.SetDefault("ARCHIVE_ENDPOINT", "")
		viper.SetDefault("ARCHIVE_ACCESS_KEY", "")
		viper.SetDefault("ARCHIVE_SECRET_KEY", "")
		viper.SetDefault("ARCHIVE_BUCKET", "invoice-scans")
		viper.SetDefault("ARCHIVE_USE_SSL", true)

		viper.AutomaticEnv()

		instance = &Config{
			Server: ServerConfig{
				Port:           viper.GetString("SERVER_PORT"),
				Mode:           viper.GetString("SERVER_MODE"),
				ReadTimeout:    viper.GetInt("SERVER_READ_TIMEOUT"),
				WriteTimeout:   viper.GetInt("SERVER_WRITE_TIMEOUT"),
				AllowedOrigins: viper.GetStringSlice("SERVER_ALLOWED_ORIGINS"),
			},
			Database: DatabaseConfig{
				Host:     viper.GetString("DB_HOST"),
				Port:     viper.GetString("DB_PORT"),
				User:     viper.GetString("DB_USER"),
				Password: viper.GetString("DB_PASSWORD"),
				DBName:   viper.GetString("DB_NAME"),
				SSLMode:  viper.GetString("DB_SSLMODE"),
			},
			Cache: CacheConfig{
				Enabled:         viper.GetBool("CACHE_ENABLED"),
				RedisURL:        viper.GetString("REDIS_URL"),
				RedisHost:       viper.GetString("REDIS_HOST"),
				RedisPort:       viper.GetString("REDIS_PORT"),
				RedisPassword:   viper.GetString("REDIS_PASSWORD"),
				RedisDB:         viper.GetInt("REDIS_DB"),
				AlertTTLSeconds: viper.GetInt("CACHE_ALERT_TTL_SECONDS"),
			},
			Ledger: LedgerConfig{
				DefaultExpiryDays: viper.GetInt("LEDGER_DEFAULT_EXPIRY_DAYS"),
			},
			Alerts: AlertsConfig{
				ExpiryWindowDays: viper.GetInt("ALERT_EXPIRY_WINDOW_DAYS"),
				RecomputeCron:    viper.GetString("ALERT_RECOMPUTE_CRON"),
			},
			Extract: ExtractConfig{
				APIKey:         viper.GetString("EXTRACT_API_KEY"),
				Model:          viper.GetString("EXTRACT_MODEL"),
				TimeoutSeconds: viper.GetInt("EXTRACT_TIMEOUT_SECONDS"),
			},
			ScanInbox: ScanInboxConfig{
				Enabled:         viper.GetBool("SCAN_INBOX_ENABLED"),
				CredentialsJSON: viper.GetString("SCAN_INBOX_CREDENTIALS_JSON"),
				FolderID:        viper.GetString("SCAN_INBOX_FOLDER_ID"),
				PollCron:        viper.GetString("SCAN_INBOX_POLL_CRON"),
			},
			Archive: ArchiveConfig{
				Endpoint:  viper.GetString("ARCHIVE_ENDPOINT"),
				AccessKey: viper.GetString("ARCHIVE_ACCESS_KEY"),
				SecretKey: viper.GetString("ARCHIVE_SECRET_KEY"),
				Bucket:    viper.GetString("ARCHIVE_BUCKET"),
				UseSSL:    viper.GetBool("ARCHIVE_USE_SSL"),
			},
		}
	})

	return instance
}
