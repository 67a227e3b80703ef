package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type Config struct {
	// HTTP Server
	Port string

	// Session and login
	SessionSecret string
	LoginUser     string
	LoginPassword string

	// Record store backend selection
	RecordBackend string
	SQLiteDBPath  string
	MySQLDSN      string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Blob store backend selection
	BlobBackend   string
	UploadDir     string
	GCSBucket     string
	DriveFolderID string

	// Upload limits
	MaxUploadBytes int64

	// Logging
	LogFormat string
}

func Load() *Config {
	cfg := &Config{
		Port: getEnv("PORT", "8080"),

		SessionSecret: getEnv("SESSION_SECRET", ""),
		LoginUser:     getEnv("LOGIN_USER", "admin"),
		LoginPassword: getEnv("LOGIN_PASSWORD", ""),

		RecordBackend: getEnv("RECORD_BACKEND", "sqlite"),
		SQLiteDBPath:  getEnv("SQLITE_DB_PATH", "./data/comprobantes.db"),
		MySQLDSN:      getEnv("MYSQL_DSN", ""),
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		BlobBackend:   getEnv("BLOB_BACKEND", "local"),
		UploadDir:     getEnv("UPLOAD_DIR", "./uploads"),
		GCSBucket:     getEnv("GCS_BUCKET", ""),
		DriveFolderID: getEnv("DRIVE_FOLDER_ID", "root"),

		MaxUploadBytes: getEnvInt64("MAX_UPLOAD_BYTES", 10<<20),

		LogFormat: getEnv("LOG_FORMAT", "text"),
	}

	return cfg
}

// Validate checks the configuration for the selected backends and returns an
// error listing every problem found. Callers treat a failure as fatal: a
// missing credential should stop the process at startup, not on first use.
func (c *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.SessionSecret == "" {
		errs = append(errs, "SESSION_SECRET is required")
	}
	if c.LoginUser == "" {
		errs = append(errs, "LOGIN_USER cannot be empty")
	}
	if c.LoginPassword == "" {
		errs = append(errs, "LOGIN_PASSWORD is required")
	}

	switch c.RecordBackend {
	case "sqlite":
		if c.SQLiteDBPath == "" {
			errs = append(errs, "SQLITE_DB_PATH cannot be empty when using sqlite backend")
		} else if dir := filepath.Dir(c.SQLiteDBPath); dir != "." && dir != "" {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				if err := os.MkdirAll(dir, 0755); err != nil {
					errs = append(errs, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
				}
			}
		}
	case "mysql":
		if c.MySQLDSN == "" {
			errs = append(errs, "MYSQL_DSN is required when using mysql backend")
		}
	case "redis":
		if c.RedisAddr == "" {
			errs = append(errs, "REDIS_ADDR is required when using redis backend")
		}
	default:
		errs = append(errs, fmt.Sprintf("invalid record backend '%s': must be one of [sqlite mysql redis]", c.RecordBackend))
	}

	switch c.BlobBackend {
	case "local":
		if c.UploadDir == "" {
			errs = append(errs, "UPLOAD_DIR cannot be empty when using local blob backend")
		} else if _, err := os.Stat(c.UploadDir); os.IsNotExist(err) {
			if err := os.MkdirAll(c.UploadDir, 0755); err != nil {
				errs = append(errs, fmt.Sprintf("cannot create upload directory '%s': %v", c.UploadDir, err))
			}
		}
	case "gcs":
		if c.GCSBucket == "" {
			errs = append(errs, "GCS_BUCKET is required when using gcs blob backend")
		}
	case "drive":
		if !hasGoogleCredentials() {
			errs = append(errs, "drive blob backend requires GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS")
		}
	default:
		errs = append(errs, fmt.Sprintf("invalid blob backend '%s': must be one of [local gcs drive]", c.BlobBackend))
	}

	if c.MaxUploadBytes < 1 {
		errs = append(errs, fmt.Sprintf("invalid max upload bytes %d: must be at least 1", c.MaxUploadBytes))
	}

	if c.LogFormat != "text" && c.LogFormat != "pretty" {
		errs = append(errs, fmt.Sprintf("invalid log format '%s': must be 'text' or 'pretty'", c.LogFormat))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}

	return nil
}

func hasGoogleCredentials() bool {
	for _, key := range []string{"GOOGLE_SERVICE_ACCOUNT_JSON", "GOOGLE_SERVICE_ACCOUNT_FILE", "GOOGLE_APPLICATION_CREDENTIALS"} {
		if strings.TrimSpace(os.Getenv(key)) != "" {
			return true
		}
	}
	return false
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.ParseInt(value, 10, 64); err == nil {
			return i
		}
	}
	return defaultValue
}
