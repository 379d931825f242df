// Package config exposes the process configuration of the inventaris panel.
// Values come from the environment, optionally seeded from a .env file.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

//go:embed version
var version string

//go:embed name
var name string

type LogLevel string

const (
	Debug  LogLevel = "debug"
	Info   LogLevel = "info"
	Notice LogLevel = "notice"
	Warn   LogLevel = "warn"
	Error  LogLevel = "error"
)

const (
	defaultPort          = 5000
	defaultFrontendURL   = "http://localhost:3000"
	defaultSessionMaxAge = 24 * 60
	defaultRetentionDays = 90
	defaultLoginLimit    = 10
)

// LoadEnv loads the first .env file found in the working directory or its parents.
// Variables already present in the environment win.
func LoadEnv() string {
	for _, p := range []string{".env", filepath.Join("..", ".env")} {
		if _, err := os.Stat(p); err == nil {
			if err := godotenv.Load(p); err == nil {
				return p
			}
		}
	}
	return ""
}

func GetVersion() string {
	return strings.TrimSpace(version)
}

func GetName() string {
	return strings.TrimSpace(name)
}

func GetLogLevel() LogLevel {
	if IsDebug() {
		return Debug
	}
	logLevel := os.Getenv("INV_LOG_LEVEL")
	if logLevel == "" {
		return Info
	}
	return LogLevel(logLevel)
}

func IsDebug() bool {
	return os.Getenv("INV_DEBUG") == "true"
}

func GetDBFolderPath() string {
	dbFolderPath := os.Getenv("INV_DB_FOLDER")
	if dbFolderPath == "" {
		if IsDebug() {
			return "db"
		}
		dbFolderPath = "/etc/inventaris"
	}
	return dbFolderPath
}

func GetDBPath() string {
	return fmt.Sprintf("%s/%s.db", GetDBFolderPath(), GetName())
}

func GetLogFolder() string {
	logFolderPath := os.Getenv("INV_LOG_FOLDER")
	if logFolderPath == "" {
		if IsDebug() {
			return "log"
		}
		logFolderPath = "/var/log"
	}
	return logFolderPath
}

func GetListen() string {
	return os.Getenv("INV_LISTEN")
}

func GetPort() int {
	return getInt("INV_PORT", defaultPort)
}

// GetBasePath returns the route prefix, always with leading and trailing slash.
func GetBasePath() string {
	basePath := os.Getenv("INV_BASE_PATH")
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	if !strings.HasSuffix(basePath, "/") {
		basePath += "/"
	}
	return basePath
}

// GetFrontendURL is the origin of the single-page frontend, without trailing slash.
// QR payloads point there.
func GetFrontendURL() string {
	u := os.Getenv("INV_FRONTEND_URL")
	if u == "" {
		u = defaultFrontendURL
	}
	return strings.TrimRight(u, "/")
}

func GetCorsOrigins() []string {
	raw := os.Getenv("INV_CORS_ORIGINS")
	if raw == "" {
		return []string{GetFrontendURL()}
	}
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, strings.TrimRight(o, "/"))
		}
	}
	return origins
}

// GetCertFile and GetKeyFile name the TLS key pair. Both empty means plain HTTP.
func GetCertFile() string {
	return os.Getenv("INV_CERT_FILE")
}

func GetKeyFile() string {
	return os.Getenv("INV_KEY_FILE")
}

func GetSessionSecret() string {
	return os.Getenv("INV_SESSION_SECRET")
}

// GetSessionMaxAge returns the session lifetime in minutes.
func GetSessionMaxAge() int {
	return getInt("INV_SESSION_MAX_AGE", defaultSessionMaxAge)
}

func GetRedisAddr() string {
	return os.Getenv("INV_REDIS_ADDR")
}

func GetAdminEmail() string {
	if v := os.Getenv("INV_ADMIN_EMAIL"); v != "" {
		return v
	}
	return "admin@example.com"
}

func GetAdminPassword() string {
	if v := os.Getenv("INV_ADMIN_PASSWORD"); v != "" {
		return v
	}
	return "admin"
}

func GetAuditRetentionDays() int {
	return getInt("INV_AUDIT_RETENTION_DAYS", defaultRetentionDays)
}

// GetLoginRateLimit returns allowed login attempts per client per minute.
func GetLoginRateLimit() int {
	return getInt("INV_LOGIN_RATE_LIMIT", defaultLoginLimit)
}

func getInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
