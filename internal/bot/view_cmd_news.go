package bot

import (
	"context"
	"errors"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ev1lbr1tan/infomonitor-newsbot-TEST/internal/botkit"
	"github.com/ev1lbr1tan/infomonitor-newsbot-TEST/internal/model"
	"github.com/ev1lbr1tan/infomonitor-newsbot-TEST/internal/newsfeed"
)

// NewsFeed is the delivery pipeline surface the views drive.
type NewsFeed interface {
	List(ctx context.Context, userID int64, categories []model.Category) (newsfeed.Rendered, error)
	Next(ctx context.Context, userID int64) (newsfeed.Rendered, error)
	Prev(ctx context.Context, userID int64) (newsfeed.Rendered, error)
	Feedback(ctx context.Context, userID int64, index int, kind model.FeedbackKind) (model.Item, error)
	ToggleCategory(ctx context.Context, userID int64, category model.Category) ([]model.Category, error)
	Preferences(ctx context.Context, userID int64) ([]model.Category, error)
	Tally(ctx context.Context, userID int64) (model.FeedbackTally, error)
	TopStats(ctx context.Context, limit int) ([]model.NewsStats, error)
}

// UserRegistry tracks known subscribers.
type UserRegistry interface {
	Upsert(ctx context.Context, user model.User) error
	TouchActivity(ctx context.Context, userID int64) error
}

// ViewCmdNews handles /news [категория]: runs a fresh listing and shows
// the first item of the batch with navigation and feedback buttons. An
// unknown category argument is not an error; the listing falls back to the
// user's preferences (and from there to all categories).
func ViewCmdNews(feed NewsFeed, users UserRegistry) botkit.ViewFunc {
	return func(ctx context.Context, bot *tgbotapi.BotAPI, update tgbotapi.Update) error {
		userID := update.Message.From.ID
		chatID := update.Message.Chat.ID

		_ = users.TouchActivity(ctx, userID)

		var categories []model.Category
		if arg := strings.ToLower(strings.TrimSpace(update.Message.CommandArguments())); arg != "" {
			if category, ok := model.ParseCategory(arg); ok {
				categories = []model.Category{category}
			}
		}

		waiting := tgbotapi.NewMessage(chatID, "📡 Собираю последние новости...")
		if _, err := bot.Send(waiting); err != nil {
			return err
		}

		rendered, err := feed.List(ctx, userID, categories)
		if errors.Is(err, newsfeed.ErrNoNews) {
			reply := tgbotapi.NewMessage(chatID, "😔 К сожалению, не удалось получить новости. Попробуйте позже.")
			_, err = bot.Send(reply)
			return err
		}
		if err != nil {
			return err
		}

		msg := tgbotapi.NewMessage(chatID, newsItemText(rendered))
		msg.ParseMode = parseModeMarkdownV2
		msg.DisableWebPagePreview = true
		msg.ReplyMarkup = newsItemKeyboard(rendered)

		_, err = bot.Send(msg)
		return err
	}
}
