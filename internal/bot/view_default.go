package bot

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ev1lbr1tan/infomonitor-newsbot-TEST/internal/botkit"
)

// ViewDefault routes free-form text to the matching command view so users
// can write "новости" instead of /news. Unmatched text gets a hint.
func ViewDefault(news, help, settings, stats botkit.ViewFunc) botkit.ViewFunc {
	return func(ctx context.Context, bot *tgbotapi.BotAPI, update tgbotapi.Update) error {
		text := strings.ToLower(strings.TrimSpace(update.Message.Text))

		switch {
		case containsAny(text, "новости", "news"):
			return news(ctx, bot, update)
		case containsAny(text, "помощь", "справка", "help"):
			return help(ctx, bot, update)
		case containsAny(text, "настройки", "категории", "settings"):
			return settings(ctx, bot, update)
		case containsAny(text, "статистика", "stats"):
			return stats(ctx, bot, update)
		}

		msg := tgbotapi.NewMessage(update.Message.Chat.ID,
			"🤔 Не понимаю. Напишите «новости» или используйте /help для списка команд.")
		_, err := bot.Send(msg)
		return err
	}
}

func containsAny(text string, keywords ...string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}
