// Package bot is the Telegram surface: a long-poll update loop, the
// message router and the reply/notification plumbing.
package bot

import (
	"context"
	"fmt"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Ilyakalimullin123/telegram-expense-bot/internal/classify"
	"github.com/Ilyakalimullin123/telegram-expense-bot/internal/expense"
	applog "github.com/Ilyakalimullin123/telegram-expense-bot/internal/log"
	"github.com/Ilyakalimullin123/telegram-expense-bot/internal/render"
)

const greeting = "Привет! Я готов записывать твои расходы. Просто отправь сообщение с суммой и категорией."

// BotAPI is the slice of tgbotapi.BotAPI the channel uses; an
// interface so tests can run the handlers without the network.
type BotAPI interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetFileDirectURL(fileID string) (string, error)
}

type Channel struct {
	bot         BotAPI
	expenses    *expense.Service
	transcriber classify.Transcriber
	ownerChatID int64 // 0 when no owner is configured
	httpClient  *http.Client
	logger      *applog.Logger
}

func NewChannel(bot BotAPI, expenses *expense.Service, transcriber classify.Transcriber, ownerChatID int64, logger *applog.Logger) *Channel {
	return &Channel{
		bot:         bot,
		expenses:    expenses,
		transcriber: transcriber,
		ownerChatID: ownerChatID,
		httpClient:  &http.Client{Timeout: 60 * time.Second},
		logger:      logger.WithComponent(applog.ComponentTelegram),
	}
}

// RegisterCommands publishes the command menu to Telegram.
func (c *Channel) RegisterCommands() error {
	cmds := tgbotapi.NewSetMyCommands(
		tgbotapi.BotCommand{Command: "start", Description: "Приветствие и инструкция"},
		tgbotapi.BotCommand{Command: "total", Description: "Показать сумму расходов за сегодня"},
		tgbotapi.BotCommand{Command: "chart", Description: "График расходов по дням"},
		tgbotapi.BotCommand{Command: "export", Description: "Экспорт в Excel"},
	)
	if _, err := c.bot.Request(cmds); err != nil {
		return fmt.Errorf("set bot commands: %w", err)
	}
	return nil
}

// Run consumes updates until ctx is cancelled.
func (c *Channel) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := c.bot.GetUpdatesChan(u)

	c.logger.Info("Polling started")
	for {
		select {
		case <-ctx.Done():
			c.bot.StopReceivingUpdates()
			return ctx.Err()
		case update := <-updates:
			if update.Message == nil {
				continue
			}
			c.HandleMessage(ctx, update.Message)
		}
	}
}

// HandleMessage routes one inbound message.
func (c *Channel) HandleMessage(ctx context.Context, msg *tgbotapi.Message) {
	switch {
	case msg.Voice != nil:
		c.handleVoice(ctx, msg)
	case msg.Text != "":
		c.handleText(ctx, msg.Chat.ID, msg.Text)
	}
}

func (c *Channel) handleText(ctx context.Context, chatID int64, text string) {
	c.logger.Info("Message received", "chat_id", chatID)

	switch action := Dispatch(text); action.Kind {
	case ActionStart:
		c.sendGreeting(chatID)
	case ActionTotal:
		c.sendTotal(ctx, chatID)
	case ActionChart:
		c.sendChart(ctx, chatID)
	case ActionExport:
		c.sendExport(ctx, chatID)
	case ActionLedgerText:
		c.logExpense(ctx, chatID, action.Text)
	}
}

func (c *Channel) handleVoice(ctx context.Context, msg *tgbotapi.Message) {
	text, err := c.transcribeVoice(ctx, msg.Voice.FileID)
	if err != nil {
		c.logger.Error("Voice recognition failed", "error", err)
		c.reply(msg.Chat.ID, "❌ Ошибка при распознавании")
		return
	}
	c.logger.Info("Voice recognized", "chat_id", msg.Chat.ID)

	if _, err := c.expenses.Log(ctx, text); err != nil {
		c.logger.Error("Failed to record expense", "error", err)
		c.reply(msg.Chat.ID, "❌ Не удалось записать расход, попробуй ещё раз")
		return
	}
	c.reply(msg.Chat.ID, "📄 Записано: "+text)
}

func (c *Channel) transcribeVoice(ctx context.Context, fileID string) (string, error) {
	if c.transcriber == nil {
		return "", fmt.Errorf("no transcriber configured")
	}
	url, err := c.bot.GetFileDirectURL(fileID)
	if err != nil {
		return "", fmt.Errorf("resolve voice file: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build download request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("download voice file: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download voice file: status %s", resp.Status)
	}

	return c.transcriber.Transcribe(ctx, resp.Body, "voice.ogg")
}

func (c *Channel) logExpense(ctx context.Context, chatID int64, text string) {
	if _, err := c.expenses.Log(ctx, text); err != nil {
		c.logger.Error("Failed to record expense", "error", err)
		c.reply(chatID, "❌ Не удалось записать расход, попробуй ещё раз")
		return
	}
	c.reply(chatID, "📜 Сообщение записано!")
}

func (c *Channel) sendGreeting(chatID int64) {
	msg := tgbotapi.NewMessage(chatID, greeting)
	msg.ReplyMarkup = tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("Итого за сегодня"),
			tgbotapi.NewKeyboardButton("График"),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("Экспорт"),
		),
	)
	if _, err := c.bot.Send(msg); err != nil {
		c.logger.Error("Failed to send greeting", "error", err)
	}
}

func (c *Channel) sendTotal(ctx context.Context, chatID int64) {
	total, err := c.expenses.TotalFor(ctx, c.expenses.Today())
	if err != nil {
		c.logger.Error("Failed to aggregate today", "error", err)
		c.reply(chatID, "❌ Не удалось посчитать расходы")
		return
	}
	c.reply(chatID, fmt.Sprintf("📊 Расходы за сегодня: %s тг", total.StringFixed(2)))
}

func (c *Channel) sendChart(ctx context.Context, chatID int64) {
	totals, err := c.expenses.DailyTotals(ctx)
	if err != nil {
		c.logger.Error("Failed to aggregate days", "error", err)
		c.reply(chatID, "❌ Не удалось построить график")
		return
	}
	png, err := render.DailyChart(totals)
	if err != nil {
		c.logger.Error("Failed to render chart", "error", err)
		c.reply(chatID, "❌ Не удалось построить график")
		return
	}
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: "chart.png", Bytes: png})
	if _, err := c.bot.Send(photo); err != nil {
		c.logger.Error("Failed to send chart", "error", err)
	}
}

func (c *Channel) sendExport(ctx context.Context, chatID int64) {
	rows, err := c.expenses.AllRows(ctx)
	if err != nil {
		c.logger.Error("Failed to read ledger for export", "error", err)
		c.reply(chatID, "❌ Не удалось выгрузить таблицу")
		return
	}
	data, err := render.Workbook(rows)
	if err != nil {
		c.logger.Error("Failed to render workbook", "error", err)
		c.reply(chatID, "❌ Не удалось выгрузить таблицу")
		return
	}
	name := fmt.Sprintf("export_%s.xlsx", time.Now().Format("20060102_150405"))
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: name, Bytes: data})
	if _, err := c.bot.Send(doc); err != nil {
		c.logger.Error("Failed to send export", "error", err)
	}
}

// Notify implements report.Notifier by messaging the owner chat.
func (c *Channel) Notify(_ context.Context, text string) error {
	if c.ownerChatID == 0 {
		return nil
	}
	if _, err := c.bot.Send(tgbotapi.NewMessage(c.ownerChatID, text)); err != nil {
		return fmt.Errorf("notify owner: %w", err)
	}
	return nil
}

func (c *Channel) reply(chatID int64, text string) {
	if _, err := c.bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		c.logger.Error("Failed to send reply", "error", err)
	}
}
