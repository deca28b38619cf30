package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Telegram
	TelegramToken string
	OwnerChatID   int64 // 0 disables the nightly notification

	// OpenAI (fallback classification + voice transcription)
	OpenAIAPIKey    string
	ClassifyTimeout time.Duration

	// Ledger backend selection
	LedgerBackend string

	// Google Sheets
	GoogleSpreadsheetID      string
	GoogleSheetName          string
	GoogleServiceAccountJSON string
	GoogleServiceAccountFile string

	// SQLite
	SQLiteDBPath string

	// AMQP event publishing (optional)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string
}

func Load() *Config {
	return &Config{
		TelegramToken: getEnv("TELEGRAM_TOKEN", ""),
		OwnerChatID:   getEnvInt64("OWNER_CHAT_ID", 0),

		OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
		ClassifyTimeout: getEnvDuration("CLASSIFY_TIMEOUT", 15*time.Second),

		LedgerBackend: getEnv("LEDGER_BACKEND", "memory"),

		GoogleSpreadsheetID:      getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleSheetName:          getEnv("GOOGLE_SHEET_NAME", ""),
		GoogleServiceAccountJSON: getEnv("GOOGLE_SERVICE_ACCOUNT_JSON", ""),
		GoogleServiceAccountFile: getEnv("GOOGLE_SERVICE_ACCOUNT_FILE", ""),

		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/expenses.db"),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "expense-bot"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "ledger_events"),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if strings.TrimSpace(c.TelegramToken) == "" {
		errors = append(errors, "TELEGRAM_TOKEN must be set")
	}

	validBackends := []string{"memory", "sheets", "sqlite"}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.LedgerBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid ledger backend '%s': must be one of %v", c.LedgerBackend, validBackends))
	}

	if c.LedgerBackend == "sheets" {
		if c.GoogleSpreadsheetID == "" {
			errors = append(errors, "GOOGLE_SPREADSHEET_ID must be set when using sheets backend")
		}
		hasCreds := c.GoogleServiceAccountJSON != "" ||
			c.GoogleServiceAccountFile != "" ||
			os.Getenv("GOOGLE_APPLICATION_CREDENTIALS") != ""
		if !hasCreds {
			errors = append(errors, "service account credentials required for sheets backend (GOOGLE_SERVICE_ACCOUNT_JSON or GOOGLE_SERVICE_ACCOUNT_FILE)")
		}
		if c.GoogleServiceAccountFile != "" {
			if _, err := os.Stat(c.GoogleServiceAccountFile); os.IsNotExist(err) {
				errors = append(errors, fmt.Sprintf("service account file does not exist: %s", c.GoogleServiceAccountFile))
			}
		}
	}

	if c.LedgerBackend == "sqlite" {
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		} else {
			dir := filepath.Dir(c.SQLiteDBPath)
			if dir != "." && dir != "" {
				if _, err := os.Stat(dir); os.IsNotExist(err) {
					if err := os.MkdirAll(dir, 0755); err != nil {
						errors = append(errors, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
					}
				}
			}
		}
	}

	if c.AMQPURL != "" {
		if u, err := url.Parse(c.AMQPURL); err != nil || (u.Scheme != "amqp" && u.Scheme != "amqps") {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': must be an amqp:// or amqps:// URL", c.AMQPURL))
		}
	}

	if c.ClassifyTimeout < time.Second {
		errors = append(errors, fmt.Sprintf("invalid classify timeout %v: must be at least 1 second", c.ClassifyTimeout))
	} else if c.ClassifyTimeout > time.Minute {
		errors = append(errors, fmt.Sprintf("invalid classify timeout %v: must be at most 1 minute", c.ClassifyTimeout))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
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

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
