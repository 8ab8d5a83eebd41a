package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/rythem12/hlp-funding-fee/internal/hyperliquid"
	"github.com/rythem12/hlp-funding-fee/internal/notify"
	"github.com/rythem12/hlp-funding-fee/internal/scheduler"
	"github.com/rythem12/hlp-funding-fee/internal/store"
)

// Router wires Telegram updates to command handlers.
type Router struct {
	bot     *tgbotapi.BotAPI
	log     *zap.Logger
	users   *store.Users
	market  *hyperliquid.Client
	adminID int64

	engine *notify.Engine
	sched  *scheduler.Scheduler
}

// NewRouter creates a new Telegram router.
func NewRouter(bot *tgbotapi.BotAPI, log *zap.Logger, users *store.Users, market *hyperliquid.Client, adminID int64) *Router {
	return &Router{
		bot:     bot,
		log:     log,
		users:   users,
		market:  market,
		adminID: adminID,
	}
}

// Attach wires the notification engine and scheduler once they are built.
// Both depend on the router as their Sender, so wiring happens after New.
func (r *Router) Attach(engine *notify.Engine, sched *scheduler.Scheduler) {
	r.engine = engine
	r.sched = sched
}

// HandleUpdate routes a single update to the appropriate handler.
func (r *Router) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	if upd.Message == nil {
		return
	}
	msg := upd.Message
	chatID := msg.Chat.ID

	// Admin media relay: photo/document with a "/send USER_ID" caption.
	if len(msg.Photo) > 0 || msg.Document != nil {
		r.handleAdminMedia(chatID, msg)
		return
	}

	if !msg.IsCommand() {
		return
	}

	username := ""
	if msg.From != nil {
		username = msg.From.UserName
	}

	switch msg.Command() {
	case "start":
		r.handleStart(chatID, username)
	case "help":
		r.handleHelp(chatID)
	case "add":
		r.handleAdd(ctx, chatID, username, msg.CommandArguments())
	case "remove":
		r.handleRemove(chatID, username, msg.CommandArguments())
	case "list":
		r.handleList(chatID, username)
	case "check":
		r.handleCheck(ctx, chatID, username)
	case "userlist":
		r.handleUserList(chatID)
	case "send":
		r.handleSend(chatID, msg.CommandArguments())
	case "markdown":
		r.handleMarkdown(chatID, msg.CommandArguments())
	case "schedule":
		r.handleSchedule(ctx, chatID, msg.CommandArguments())
	default:
		// Unknown command — ignore silently
	}
}

// SendMessage sends a plain text message to the given chat.
// This makes Router satisfy notify.Sender and scheduler.Sender.
func (r *Router) SendMessage(chatID int64, text string) error {
	_, err := r.bot.Send(tgbotapi.NewMessage(chatID, text))
	return err
}

func (r *Router) isAdmin(chatID int64) bool {
	return chatID == r.adminID
}

func (r *Router) sendText(chatID int64, text string) {
	_, _ = r.bot.Send(tgbotapi.NewMessage(chatID, text))
}
