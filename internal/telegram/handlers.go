package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/rythem12/hlp-funding-fee/internal/domain"
)

// --- User commands ---

func (r *Router) handleStart(chatID int64, username string) {
	u, _, err := r.users.Register(chatID, username)
	if err != nil {
		r.log.Error("register failed", zap.Int64("chatID", chatID), zap.Error(err))
		r.sendText(chatID, "Profile initialization error. Please try again later.")
		return
	}
	r.sendText(chatID, fmt.Sprintf(welcomeFmt, strings.Join(u.Coins, ", ")))
}

func (r *Router) handleHelp(chatID int64) {
	text := helpText
	if r.isAdmin(chatID) {
		text += adminHelpText
	}
	r.sendText(chatID, text)
}

func (r *Router) handleAdd(ctx context.Context, chatID int64, username, args string) {
	symbol, err := domain.NormalizeSymbol(args)
	if err != nil {
		r.sendText(chatID, addUsageText)
		return
	}

	u, _, err := r.users.Register(chatID, username)
	if err != nil {
		r.log.Error("register failed", zap.Int64("chatID", chatID), zap.Error(err))
		r.sendText(chatID, "Could not read your settings.")
		return
	}
	if u.HasCoin(symbol) {
		r.sendText(chatID, fmt.Sprintf("ℹ️ %s is already monitored.\nUse /list to see your coins.", symbol))
		return
	}

	listed, err := r.market.Exists(ctx, symbol)
	if err != nil {
		r.log.Warn("symbol check failed", zap.String("symbol", symbol), zap.Error(err))
		r.sendText(chatID, fmt.Sprintf("❌ Could not verify %s right now. Please try again later.", symbol))
		return
	}
	if !listed {
		r.sendText(chatID, fmt.Sprintf("❌ %s is not a supported coin.\nPlease check the symbol.", symbol))
		return
	}

	u.AddCoin(symbol)
	if err := r.users.SetCoins(chatID, u.Coins); err != nil {
		r.log.Error("save coins failed", zap.Int64("chatID", chatID), zap.Error(err))
		r.sendText(chatID, "Could not save your coin list.")
		return
	}
	r.sendText(chatID, fmt.Sprintf("✅ %s added.\nMonitored coins: %s", symbol, strings.Join(u.SortedCoins(), ", ")))
	r.log.Info("coin added", zap.String("symbol", symbol), zap.Int64("chatID", chatID))
}

func (r *Router) handleRemove(chatID int64, username, args string) {
	symbol, err := domain.NormalizeSymbol(args)
	if err != nil {
		r.sendText(chatID, removeUsageText)
		return
	}

	u, _, err := r.users.Register(chatID, username)
	if err != nil {
		r.log.Error("register failed", zap.Int64("chatID", chatID), zap.Error(err))
		r.sendText(chatID, "Could not read your settings.")
		return
	}
	if !u.RemoveCoin(symbol) {
		r.sendText(chatID, fmt.Sprintf("❌ %s is not in your list.\nUse /list to see your coins.", symbol))
		return
	}
	if err := r.users.SetCoins(chatID, u.Coins); err != nil {
		r.log.Error("save coins failed", zap.Int64("chatID", chatID), zap.Error(err))
		r.sendText(chatID, "Could not save your coin list.")
		return
	}
	r.sendText(chatID, fmt.Sprintf("✅ %s removed.\nMonitored coins: %s", symbol, strings.Join(u.SortedCoins(), ", ")))
	r.log.Info("coin removed", zap.String("symbol", symbol), zap.Int64("chatID", chatID))
}

// First contact through any command registers the chat with the default
// coin set, so a brand-new user's /list already shows BTC, ETH, SOL.
func (r *Router) handleList(chatID int64, username string) {
	u, _, err := r.users.Register(chatID, username)
	if err != nil {
		r.log.Error("register failed", zap.Int64("chatID", chatID), zap.Error(err))
		r.sendText(chatID, "Could not read your settings.")
		return
	}
	if len(u.Coins) == 0 {
		r.sendText(chatID, emptyListText)
		return
	}
	var sb strings.Builder
	sb.WriteString("📋 Monitored coins:\n")
	for _, coin := range u.SortedCoins() {
		sb.WriteString("- " + coin + "\n")
	}
	sb.WriteString("\nUse /add SYMBOL or /remove SYMBOL to change the list.")
	r.sendText(chatID, sb.String())
}

func (r *Router) handleCheck(ctx context.Context, chatID int64, username string) {
	u, _, err := r.users.Register(chatID, username)
	if err != nil {
		r.log.Error("register failed", zap.Int64("chatID", chatID), zap.Error(err))
		r.sendText(chatID, "Could not read your settings.")
		return
	}
	if len(u.Coins) == 0 {
		r.sendText(chatID, emptyListText)
		return
	}
	r.sendText(chatID, checkingText)
	if err := r.engine.BroadcastOne(ctx, chatID); err != nil {
		r.log.Error("manual check failed", zap.Int64("chatID", chatID), zap.Error(err))
		r.sendText(chatID, "❌ Could not fetch funding rates right now.")
	}
}

// --- Admin commands ---
// Non-admin callers are ignored silently.

func (r *Router) handleUserList(chatID int64) {
	if !r.isAdmin(chatID) {
		return
	}
	users := r.users.List()
	if len(users) == 0 {
		r.sendText(chatID, "No registered users yet.")
		return
	}

	var sb strings.Builder
	sb.WriteString("👥 Registered users:\n\n")
	for _, u := range users {
		status := "👤"
		if u.ChatID == r.adminID {
			status = "👑"
		}
		username := ""
		if u.Username != "" {
			username = " (@" + u.Username + ")"
		}
		fmt.Fprintf(&sb, "%s ID: `%d`%s\nCoins: %s\nJoined: %s\n\n",
			status, u.ChatID, username,
			strings.Join(u.Coins, ", "),
			u.JoinedAt.Format("2006-01-02 15:04:05"),
		)
	}

	out := tgbotapi.NewMessage(chatID, sb.String())
	out.ParseMode = tgbotapi.ModeMarkdown
	if _, err := r.bot.Send(out); err != nil {
		r.log.Error("userlist send failed", zap.Error(err))
	}
}

func (r *Router) handleSend(chatID int64, args string) {
	if !r.isAdmin(chatID) {
		return
	}
	target, text, ok := splitTarget(args)
	if !ok {
		r.sendText(chatID, sendUsageText)
		return
	}
	if err := r.SendMessage(target, adminMessagePrefix+text); err != nil {
		r.sendText(chatID, "❌ Delivery failed: "+err.Error())
		return
	}
	r.sendText(chatID, fmt.Sprintf("✅ Message delivered to %d", target))
}

func (r *Router) handleMarkdown(chatID int64, args string) {
	if !r.isAdmin(chatID) {
		return
	}
	target, text, ok := splitTarget(args)
	if !ok {
		r.sendText(chatID, markdownUsageText)
		return
	}
	out := tgbotapi.NewMessage(target, adminMessagePrefix+text)
	out.ParseMode = tgbotapi.ModeMarkdown
	if _, err := r.bot.Send(out); err != nil {
		r.sendText(chatID, "❌ Formatting or delivery error: "+err.Error())
		return
	}
	r.sendText(chatID, "✅ Message delivered")
}

func (r *Router) handleSchedule(ctx context.Context, chatID int64, args string) {
	if !r.isAdmin(chatID) {
		return
	}
	parts := strings.SplitN(strings.TrimSpace(args), " ", 4)
	if len(parts) < 4 {
		r.sendText(chatID, scheduleUsageText)
		return
	}

	fireAt, err := domain.ParseScheduleTime(parts[0], parts[1])
	if err != nil {
		r.sendText(chatID, "❌ Invalid date/time format.")
		return
	}
	target, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		r.sendText(chatID, "❌ Invalid user id.")
		return
	}

	msg, err := domain.NewScheduledMessage(target, parts[3], fireAt, time.Now())
	if errors.Is(err, domain.ErrPastFireTime) {
		r.sendText(chatID, "❌ Cannot schedule a message in the past.")
		return
	}
	if err != nil {
		r.sendText(chatID, "❌ Scheduling failed: "+err.Error())
		return
	}

	stored, err := r.sched.ScheduleAt(ctx, msg)
	if err != nil {
		r.log.Error("schedule failed", zap.Error(err))
		r.sendText(chatID, "❌ Scheduling failed: "+err.Error())
		return
	}
	r.sendText(chatID, fmt.Sprintf(
		"✅ Scheduled\n📅 Fires at: %s\n👤 Target: %d\n📝 Message: %s",
		stored.FireAt.Format(domain.ScheduleTimeLayout), stored.TargetID, stored.Message,
	))
}

// handleAdminMedia relays a photo or document to the user named in a
// "/send USER_ID [caption]" caption.
func (r *Router) handleAdminMedia(chatID int64, msg *tgbotapi.Message) {
	if !r.isAdmin(chatID) {
		return
	}
	if !strings.HasPrefix(msg.Caption, "/send") {
		return
	}

	args := strings.Fields(msg.Caption)
	if len(args) < 2 {
		r.sendText(chatID, "❌ Please specify a user id.")
		return
	}
	target, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		r.sendText(chatID, "❌ Invalid user id.")
		return
	}
	caption := strings.Join(args[2:], " ")

	switch {
	case len(msg.Photo) > 0:
		// Telegram sends several sizes; the last one is the largest.
		photo := tgbotapi.NewPhoto(target, tgbotapi.FileID(msg.Photo[len(msg.Photo)-1].FileID))
		photo.Caption = caption
		_, err = r.bot.Send(photo)
	case msg.Document != nil:
		doc := tgbotapi.NewDocument(target, tgbotapi.FileID(msg.Document.FileID))
		doc.Caption = caption
		_, err = r.bot.Send(doc)
	default:
		return
	}
	if err != nil {
		r.sendText(chatID, "❌ Delivery failed: "+err.Error())
		return
	}
	r.sendText(chatID, fmt.Sprintf("✅ Media delivered to %d", target))
}

// splitTarget parses "USER_ID rest of the message".
func splitTarget(args string) (int64, string, bool) {
	parts := strings.SplitN(strings.TrimSpace(args), " ", 2)
	if len(parts) < 2 || strings.TrimSpace(parts[1]) == "" {
		return 0, "", false
	}
	target, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return 0, "", false
	}
	return target, parts[1], true
}
