// Package botkit is a small routing layer over the Telegram Bot API:
// command views, callback views keyed by data prefix, and a default view
// for plain text messages.
package botkit

import (
	"context"
	"log"
	"runtime/debug"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// ViewFunc handles one update. Returned errors are logged and answered
// with a generic failure message; they never take the bot down.
type ViewFunc func(ctx context.Context, bot *tgbotapi.BotAPI, update tgbotapi.Update) error

type Bot struct {
	api           *tgbotapi.BotAPI
	cmdViews      map[string]ViewFunc
	callbackViews map[string]ViewFunc
	defaultView   ViewFunc
}

func New(api *tgbotapi.BotAPI) *Bot {
	return &Bot{api: api}
}

func (b *Bot) RegisterCmdView(cmd string, view ViewFunc) {
	if b.cmdViews == nil {
		b.cmdViews = make(map[string]ViewFunc)
	}
	b.cmdViews[cmd] = view
}

// RegisterCallbackView routes callback queries whose data starts with
// prefix. Prefixes must not overlap.
func (b *Bot) RegisterCallbackView(prefix string, view ViewFunc) {
	if b.callbackViews == nil {
		b.callbackViews = make(map[string]ViewFunc)
	}
	b.callbackViews[prefix] = view
}

// RegisterDefaultView handles plain text messages that are not commands.
func (b *Bot) RegisterDefaultView(view ViewFunc) {
	b.defaultView = view
}

func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case update := <-updates:
			updateCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
			b.handleUpdate(updateCtx, update)
			cancel()
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	defer func() {
		if p := recover(); p != nil {
			log.Printf("[ERROR] panic in view: %v\n%s", p, string(debug.Stack()))
		}
	}()

	view := b.resolveView(update)
	if view == nil {
		return
	}

	if err := view(ctx, b.api, update); err != nil {
		log.Printf("[ERROR] failed to handle update: %v", err)

		if chatID := updateChatID(update); chatID != 0 {
			msg := tgbotapi.NewMessage(chatID, "😔 Что-то пошло не так. Попробуйте позже.")
			if _, err := b.api.Send(msg); err != nil {
				log.Printf("[ERROR] failed to send error message: %v", err)
			}
		}
	}
}

func (b *Bot) resolveView(update tgbotapi.Update) ViewFunc {
	switch {
	case update.CallbackQuery != nil:
		for prefix, view := range b.callbackViews {
			if strings.HasPrefix(update.CallbackQuery.Data, prefix) {
				return view
			}
		}
	case update.Message != nil && update.Message.IsCommand():
		return b.cmdViews[update.Message.Command()]
	case update.Message != nil:
		return b.defaultView
	}
	return nil
}

func updateChatID(update tgbotapi.Update) int64 {
	switch {
	case update.Message != nil:
		return update.Message.Chat.ID
	case update.CallbackQuery != nil && update.CallbackQuery.Message != nil:
		return update.CallbackQuery.Message.Chat.ID
	}
	return 0
}
