package config

import (
	"strings"
	"testing"
	"time"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		wantErr     bool
		errorString string
	}{
		{
			name: "valid memory backend config",
			config: Config{
				TelegramToken:   "123:abc",
				LedgerBackend:   "memory",
				ClassifyTimeout: 15 * time.Second,
			},
			wantErr: false,
		},
		{
			name: "valid sqlite backend config",
			config: Config{
				TelegramToken:   "123:abc",
				LedgerBackend:   "sqlite",
				SQLiteDBPath:    "./test.db",
				ClassifyTimeout: 15 * time.Second,
			},
			wantErr: false,
		},
		{
			name: "missing telegram token",
			config: Config{
				LedgerBackend:   "memory",
				ClassifyTimeout: 15 * time.Second,
			},
			wantErr:     true,
			errorString: "TELEGRAM_TOKEN must be set",
		},
		{
			name: "invalid backend",
			config: Config{
				TelegramToken:   "123:abc",
				LedgerBackend:   "postgres",
				ClassifyTimeout: 15 * time.Second,
			},
			wantErr:     true,
			errorString: "invalid ledger backend 'postgres'",
		},
		{
			name: "sheets backend without spreadsheet",
			config: Config{
				TelegramToken:   "123:abc",
				LedgerBackend:   "sheets",
				ClassifyTimeout: 15 * time.Second,
			},
			wantErr:     true,
			errorString: "GOOGLE_SPREADSHEET_ID must be set",
		},
		{
			name: "invalid amqp url",
			config: Config{
				TelegramToken:   "123:abc",
				LedgerBackend:   "memory",
				AMQPURL:         "http://localhost:5672",
				ClassifyTimeout: 15 * time.Second,
			},
			wantErr:     true,
			errorString: "invalid AMQP URL",
		},
		{
			name: "classify timeout too small",
			config: Config{
				TelegramToken:   "123:abc",
				LedgerBackend:   "memory",
				ClassifyTimeout: 100 * time.Millisecond,
			},
			wantErr:     true,
			errorString: "invalid classify timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !strings.Contains(err.Error(), tt.errorString) {
				t.Fatalf("Validate() error = %v, want substring %q", err, tt.errorString)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.LedgerBackend != "memory" {
		t.Errorf("LedgerBackend = %v, want memory", cfg.LedgerBackend)
	}
	if cfg.ClassifyTimeout != 15*time.Second {
		t.Errorf("ClassifyTimeout = %v, want 15s", cfg.ClassifyTimeout)
	}
	if cfg.AMQPExchange != "expense-bot" {
		t.Errorf("AMQPExchange = %v", cfg.AMQPExchange)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "123:abc")
	t.Setenv("OWNER_CHAT_ID", "987654321")
	t.Setenv("LEDGER_BACKEND", "sqlite")
	t.Setenv("CLASSIFY_TIMEOUT", "5s")

	cfg := Load()
	if cfg.TelegramToken != "123:abc" {
		t.Errorf("TelegramToken = %v", cfg.TelegramToken)
	}
	if cfg.OwnerChatID != 987654321 {
		t.Errorf("OwnerChatID = %v", cfg.OwnerChatID)
	}
	if cfg.LedgerBackend != "sqlite" {
		t.Errorf("LedgerBackend = %v", cfg.LedgerBackend)
	}
	if cfg.ClassifyTimeout != 5*time.Second {
		t.Errorf("ClassifyTimeout = %v", cfg.ClassifyTimeout)
	}
}

func TestLoadInvalidOwnerChatID(t *testing.T) {
	t.Setenv("OWNER_CHAT_ID", "not-a-number")
	if cfg := Load(); cfg.OwnerChatID != 0 {
		t.Errorf("OwnerChatID = %v, want 0 for invalid input", cfg.OwnerChatID)
	}
}
