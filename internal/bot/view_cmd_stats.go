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

const topStoriesLimit = 5

// ViewCmdStats handles /stats: the user's preference set and feedback
// tally, plus the most viewed stories across all users.
func ViewCmdStats(feed NewsFeed) botkit.ViewFunc {
	return func(ctx context.Context, bot *tgbotapi.BotAPI, update tgbotapi.Update) error {
		userID := update.Message.From.ID

		categories, err := feed.Preferences(ctx, userID)
		if err != nil {
			return fmt.Errorf("load preferences: %w", err)
		}
		tally, err := feed.Tally(ctx, userID)
		if err != nil {
			return fmt.Errorf("load feedback tally: %w", err)
		}

		titles := lo.Map(categories, func(c model.Category, _ int) string { return c.Title() })
		configured := "Не настроены"
		if len(titles) > 0 {
			configured = strings.Join(titles, ", ")
		}

		var sb strings.Builder
		sb.WriteString("📊 *ВАША СТАТИСТИКА ИНФОМОНИТОРА*\n\n")
		fmt.Fprintf(&sb, "👤 ID пользователя: `%d`\n", userID)
		fmt.Fprintf(&sb, "📂 Настроенных категорий: %d\n", len(categories))
		fmt.Fprintf(&sb, "🎯 Предпочитаемые темы: %s\n\n", configured)
		fmt.Fprintf(&sb, "👍 Лайков поставлено: %d\n", tally.Likes)
		fmt.Fprintf(&sb, "👎 Дизлайков поставлено: %d\n", tally.Dislikes)

		if top, err := feed.TopStats(ctx, topStoriesLimit); err == nil && len(top) > 0 {
			sb.WriteString("\n🔥 *Самые просматриваемые новости:*\n")
			for i, stats := range top {
				fmt.Fprintf(&sb, "%d. %s — %d 👁\n", i+1, stats.Title, stats.ViewCount)
			}
		}

		msg := tgbotapi.NewMessage(update.Message.Chat.ID, sb.String())
		msg.ParseMode = tgbotapi.ModeMarkdown
		msg.DisableWebPagePreview = true

		_, err = bot.Send(msg)
		return err
	}
}
