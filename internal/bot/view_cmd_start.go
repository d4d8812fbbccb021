package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ev1lbr1tan/infomonitor-newsbot-TEST/internal/botkit"
	"github.com/ev1lbr1tan/infomonitor-newsbot-TEST/internal/model"
)

// ViewCmdStart registers the user and opens the category settings
// keyboard so the first interaction ends with configured preferences.
func ViewCmdStart(feed NewsFeed, users UserRegistry) botkit.ViewFunc {
	return func(ctx context.Context, bot *tgbotapi.BotAPI, update tgbotapi.Update) error {
		from := update.Message.From
		chatID := update.Message.Chat.ID

		if err := users.Upsert(ctx, model.User{
			ID:        from.ID,
			Username:  from.UserName,
			FirstName: from.FirstName,
			LastName:  from.LastName,
		}); err != nil {
			return fmt.Errorf("register user: %w", err)
		}

		welcome := fmt.Sprintf(`🤖 *Добро пожаловать в ИнфоМонитор!*

Привет, %s! 👋

📰 *Доступные категории новостей:*
• 🏛 Политика
• 💰 Экономика
• ⚽ Спорт
• 💻 Технологии
• 🌍 Мировые новости

📱 *Команды:*
• /news — получить новости
• /settings — настроить категории
• /stats — ваша статистика
• /help — справка

Давайте настроим ваши предпочтения!`, from.FirstName)

		msg := tgbotapi.NewMessage(chatID, welcome)
		msg.ParseMode = tgbotapi.ModeMarkdown
		if _, err := bot.Send(msg); err != nil {
			return err
		}

		return sendCategoriesSettings(ctx, bot, feed, from.ID, chatID)
	}
}

// sendCategoriesSettings shows the toggle keyboard with the user's current
// selection.
func sendCategoriesSettings(ctx context.Context, bot *tgbotapi.BotAPI, feed NewsFeed, userID, chatID int64) error {
	enabled, err := feed.Preferences(ctx, userID)
	if err != nil {
		return fmt.Errorf("load preferences: %w", err)
	}

	msg := tgbotapi.NewMessage(chatID,
		"🎯 *Выберите интересующие вас категории новостей:*\n\nНажмите на категорию, чтобы включить/выключить её")
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.ReplyMarkup = categoriesKeyboard(enabled)

	_, err = bot.Send(msg)
	return err
}
