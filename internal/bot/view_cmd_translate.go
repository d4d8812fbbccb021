package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ev1lbr1tan/infomonitor-newsbot-TEST/internal/botkit"
)

// TranslationSettings is the per-user translation toggle.
type TranslationSettings interface {
	TranslationEnabled(ctx context.Context, userID int64) bool
	SetTranslation(ctx context.Context, userID int64, enabled bool) error
}

// ViewCmdTranslate handles /translate: flips automatic translation of
// English news for this user.
func ViewCmdTranslate(settings TranslationSettings, translatorConfigured bool) botkit.ViewFunc {
	return func(ctx context.Context, bot *tgbotapi.BotAPI, update tgbotapi.Update) error {
		chatID := update.Message.Chat.ID

		if !translatorConfigured {
			msg := tgbotapi.NewMessage(chatID, "🌐 Перевод не настроен на этом сервере.")
			_, err := bot.Send(msg)
			return err
		}

		userID := update.Message.From.ID
		enabled := !settings.TranslationEnabled(ctx, userID)
		if err := settings.SetTranslation(ctx, userID, enabled); err != nil {
			return err
		}

		text := "🌐 Перевод английских новостей выключен."
		if enabled {
			text = "🌐 Перевод английских новостей включён. Заголовки и описания на английском будут переводиться на русский."
		}
		_, err := bot.Send(tgbotapi.NewMessage(chatID, text))
		return err
	}
}
