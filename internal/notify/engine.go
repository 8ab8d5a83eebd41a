package notify

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/rythem12/hlp-funding-fee/internal/domain"
	"github.com/rythem12/hlp-funding-fee/internal/report"
	"github.com/rythem12/hlp-funding-fee/internal/store"
)

// Sender is a minimal interface the engine needs to deliver a text message.
// telegram.Router implements it (method: SendMessage).
type Sender interface {
	SendMessage(chatID int64, text string) error
}

// Engine builds funding reports and fans them out to registered users.
type Engine struct {
	users   *store.Users
	builder *report.Builder
	sender  Sender
	log     *zap.Logger
}

func New(users *store.Users, builder *report.Builder, sender Sender, log *zap.Logger) *Engine {
	return &Engine{users: users, builder: builder, sender: sender, log: log}
}

// BuildReport renders the funding report for one registered user.
// The builder itself does not special-case an empty subscription list;
// callers short-circuit before getting here.
func (e *Engine) BuildReport(ctx context.Context, chatID int64) (string, error) {
	u, ok := e.users.Get(chatID)
	if !ok {
		return "", fmt.Errorf("chat %d is not registered", chatID)
	}
	return e.builder.Build(ctx, u.SortedCoins()), nil
}

// BroadcastAll sends every registered user their report, one after another
// in store order. A failure for one user never stops the fan-out.
func (e *Engine) BroadcastAll(ctx context.Context) {
	for _, u := range e.users.List() {
		if len(u.Coins) == 0 {
			continue
		}
		e.broadcast(ctx, u)
	}
}

// BroadcastOne builds and sends the report for a single chat, for manual
// triggers like /check.
func (e *Engine) BroadcastOne(ctx context.Context, chatID int64) error {
	text, err := e.BuildReport(ctx, chatID)
	if err != nil {
		return err
	}
	return e.sender.SendMessage(chatID, text)
}

func (e *Engine) broadcast(ctx context.Context, u domain.User) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Error("broadcast panic", zap.Int64("chatID", u.ChatID), zap.Any("panic", r))
		}
	}()

	text := e.builder.Build(ctx, u.SortedCoins())
	if err := e.sender.SendMessage(u.ChatID, text); err != nil {
		e.log.Error("send failed", zap.Error(err), zap.Int64("chatID", u.ChatID))
		return
	}
	e.log.Info("report delivered", zap.Int64("chatID", u.ChatID))
}
