package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/samber/lo"

	"github.com/ev1lbr1tan/infomonitor-newsbot-TEST/internal/botkit"
	"github.com/ev1lbr1tan/infomonitor-newsbot-TEST/internal/model"
)

// ViewCmdSettings handles /settings: the category toggle keyboard.
func ViewCmdSettings(feed NewsFeed) botkit.ViewFunc {
	return func(ctx context.Context, bot *tgbotapi.BotAPI, update tgbotapi.Update) error {
		return sendCategoriesSettings(ctx, bot, feed, update.Message.From.ID, update.Message.Chat.ID)
	}
}

// ViewCmdCategories handles /categories: a read-only overview of the
// available categories and which ones the user has enabled.
func ViewCmdCategories(feed NewsFeed) botkit.ViewFunc {
	return func(ctx context.Context, bot *tgbotapi.BotAPI, update tgbotapi.Update) error {
		enabled, err := feed.Preferences(ctx, update.Message.From.ID)
		if err != nil {
			return fmt.Errorf("load preferences: %w", err)
		}
		isEnabled := lo.SliceToMap(enabled, func(c model.Category) (model.Category, bool) { return c, true })

		var sb strings.Builder
		sb.WriteString("📂 *ДОСТУПНЫЕ КАТЕГОРИИ НОВОСТЕЙ:*\n\n")
		for _, category := range model.Categories {
			status := "⚪"
			if isEnabled[category] {
				status = "✅"
			}
			fmt.Fprintf(&sb, "%s %s *%s*\n", status, category.Emoji(), strings.ToUpper(category.Title()))
		}
		sb.WriteString("\n💡 Используйте /settings для настройки предпочтений")

		msg := tgbotapi.NewMessage(update.Message.Chat.ID, sb.String())
		msg.ParseMode = tgbotapi.ModeMarkdown

		_, err = bot.Send(msg)
		return err
	}
}
