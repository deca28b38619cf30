package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/Ilyakalimullin123/telegram-expense-bot/internal/bot"
	"github.com/Ilyakalimullin123/telegram-expense-bot/internal/classify"
	"github.com/Ilyakalimullin123/telegram-expense-bot/internal/classify/openai"
	"github.com/Ilyakalimullin123/telegram-expense-bot/internal/config"
	"github.com/Ilyakalimullin123/telegram-expense-bot/internal/events"
	"github.com/Ilyakalimullin123/telegram-expense-bot/internal/expense"
	"github.com/Ilyakalimullin123/telegram-expense-bot/internal/ledger"
	lgoogle "github.com/Ilyakalimullin123/telegram-expense-bot/internal/ledger/google"
	lmemory "github.com/Ilyakalimullin123/telegram-expense-bot/internal/ledger/memory"
	lsqlite "github.com/Ilyakalimullin123/telegram-expense-bot/internal/ledger/sqlite"
	applog "github.com/Ilyakalimullin123/telegram-expense-bot/internal/log"
	"github.com/Ilyakalimullin123/telegram-expense-bot/internal/report"
)

func main() {
	// Local development keeps secrets in tokens.env; both names are
	// tried, missing files are fine in production.
	_ = godotenv.Load("tokens.env")
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig())
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := newStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize ledger store", "error", err, "backend", cfg.LedgerBackend)
		os.Exit(1)
	}
	defer closeStore()

	var (
		completer   classify.Completer
		transcriber classify.Transcriber
	)
	if cfg.OpenAIAPIKey != "" {
		oc, err := openai.New(cfg.OpenAIAPIKey)
		if err != nil {
			logger.Error("Failed to initialize OpenAI client", "error", err)
			os.Exit(1)
		}
		completer, transcriber = oc, oc
	} else {
		logger.Warn("OPENAI_API_KEY not set, fallback classification and voice recognition disabled")
	}
	classifier := classify.NewService(completer, cfg.ClassifyTimeout)

	var publisher *events.Client
	if cfg.AMQPURL != "" {
		publisher, err = events.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, continuing without event publishing", "error", err)
			publisher = nil
		} else {
			defer publisher.Close()
			logger.Info("AMQP event publishing enabled", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
		}
	}
	var entryEvents expense.EventPublisher
	var reportEvents report.EventPublisher
	if publisher != nil {
		entryEvents, reportEvents = publisher, publisher
	}

	expenses := expense.NewService(store, classifier, entryEvents)

	api, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		logger.Error("Failed to connect to Telegram", "error", err)
		os.Exit(1)
	}
	logger.Info("Authorized on Telegram", "username", api.Self.UserName)

	channel := bot.NewChannel(api, expenses, transcriber, cfg.OwnerChatID, logger)
	if err := channel.RegisterCommands(); err != nil {
		logger.Warn("Failed to register bot commands", "error", err)
	}

	job := report.NewJob(expenses, channel, reportEvents)
	scheduler := report.NewScheduler(job)

	logger.Info("Bot started", "backend", cfg.LedgerBackend, "owner_configured", cfg.OwnerChatID != 0)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return channel.Run(gctx) })
	g.Go(func() error { return scheduler.Run(gctx) })

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Bot stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("Bot stopped gracefully")
}

func newStore(ctx context.Context, cfg *config.Config, logger *applog.Logger) (ledger.Store, func(), error) {
	noop := func() {}
	switch cfg.LedgerBackend {
	case "sheets":
		cli, err := lgoogle.New(ctx, lgoogle.Config{
			SpreadsheetID:      cfg.GoogleSpreadsheetID,
			SheetName:          cfg.GoogleSheetName,
			ServiceAccountJSON: cfg.GoogleServiceAccountJSON,
			ServiceAccountFile: cfg.GoogleServiceAccountFile,
		})
		if err != nil {
			return nil, noop, err
		}
		if err := cli.EnsureHeader(ctx); err != nil {
			logger.Warn("Failed to ensure header row", "error", err)
		}
		logger.Info("Initialized Google Sheets backend", "backend", cfg.LedgerBackend)
		return cli, noop, nil
	case "sqlite":
		store, err := lsqlite.New(cfg.SQLiteDBPath)
		if err != nil {
			return nil, noop, err
		}
		logger.Info("Initialized SQLite backend", "backend", cfg.LedgerBackend, "path", cfg.SQLiteDBPath)
		return store, func() { store.Close() }, nil
	default:
		logger.Info("Initialized memory backend", "backend", cfg.LedgerBackend)
		return lmemory.New(), noop, nil
	}
}
