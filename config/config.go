package config

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"reviewhub/util/random"
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
	logLevel := os.Getenv("REVIEW_LOG_LEVEL")
	if logLevel == "" {
		return Info
	}
	return LogLevel(logLevel)
}

func IsDebug() bool {
	return os.Getenv("REVIEW_DEBUG") == "true"
}

func GetListen() string {
	listen := os.Getenv("REVIEW_LISTEN")
	if listen == "" {
		return ":8000"
	}
	return listen
}

func GetBasePath() string {
	basePath := os.Getenv("REVIEW_BASE_PATH")
	if basePath == "" {
		return "/api/v1"
	}
	return "/" + strings.Trim(basePath, "/")
}

func GetDBFolderPath() string {
	dbFolderPath := os.Getenv("REVIEW_DB_FOLDER")
	if dbFolderPath == "" {
		dbFolderPath = "data"
	}
	return dbFolderPath
}

func GetDBPath() string {
	return fmt.Sprintf("%s/%s.db", GetDBFolderPath(), GetName())
}

func GetLogFolder() string {
	logFolderPath := os.Getenv("REVIEW_LOG_FOLDER")
	if logFolderPath == "" {
		logFolderPath = "/var/log"
	}
	return logFolderPath
}

var (
	secretKey     string
	secretKeyOnce sync.Once
)

// GetSecretKey returns the key used to sign access tokens and derive
// confirmation codes. When REVIEW_SECRET_KEY is unset a random key is
// generated for the lifetime of the process, which invalidates codes and
// tokens across restarts.
func GetSecretKey() string {
	secretKeyOnce.Do(func() {
		secretKey = os.Getenv("REVIEW_SECRET_KEY")
		if secretKey == "" {
			secretKey = random.Seq(32)
			fmt.Fprintln(os.Stderr, "REVIEW_SECRET_KEY is not set, using a generated key")
		}
	})
	return secretKey
}

// GetTokenHours returns the access token lifetime in hours.
func GetTokenHours() int {
	hours, err := strconv.Atoi(os.Getenv("REVIEW_TOKEN_HOURS"))
	if err != nil || hours <= 0 {
		return 24
	}
	return hours
}

func GetSMTPHost() string {
	return os.Getenv("REVIEW_SMTP_HOST")
}

func GetSMTPPort() int {
	port, err := strconv.Atoi(os.Getenv("REVIEW_SMTP_PORT"))
	if err != nil || port <= 0 {
		return 587
	}
	return port
}

func GetSMTPUser() string {
	return os.Getenv("REVIEW_SMTP_USER")
}

func GetSMTPPassword() string {
	return os.Getenv("REVIEW_SMTP_PASSWORD")
}

// GetEmailFrom returns the From address for outbound confirmation mail.
func GetEmailFrom() string {
	from := os.Getenv("REVIEW_EMAIL_FROM")
	if from == "" {
		from = "noreply@" + GetName() + ".local"
	}
	return from
}
