package bot

import (
	"context"
	"errors"
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ev1lbr1tan/infomonitor-newsbot-TEST/internal/botkit"
	"github.com/ev1lbr1tan/infomonitor-newsbot-TEST/internal/model"
	"github.com/ev1lbr1tan/infomonitor-newsbot-TEST/internal/newsfeed"
)

// ViewCallback handles every inline keyboard press: navigation, feedback
// and category toggles. Boundary presses answer with a toast and leave the
// message untouched; an expired session asks the user to run /news again.
func ViewCallback(feed NewsFeed) botkit.ViewFunc {
	return func(ctx context.Context, bot *tgbotapi.BotAPI, update tgbotapi.Update) error {
		query := update.CallbackQuery
		userID := query.From.ID
		chatID := query.Message.Chat.ID
		messageID := query.Message.MessageID

		action, err := DecodeAction(query.Data)
		if err != nil {
			answer(bot, query.ID, "")
			return err
		}

		switch action.Kind {
		case ActionNavNext, ActionNavPrev:
			move := feed.Next
			boundaryText := "Это последняя новость"
			if action.Kind == ActionNavPrev {
				move = feed.Prev
				boundaryText = "Это первая новость"
			}

			rendered, err := move(ctx, userID)
			switch {
			case errors.Is(err, newsfeed.ErrLastItem), errors.Is(err, newsfeed.ErrFirstItem):
				answer(bot, query.ID, boundaryText)
				return nil
			case errors.Is(err, newsfeed.ErrSessionNotFound):
				return replySessionExpired(bot, query.ID, chatID)
			case err != nil:
				answer(bot, query.ID, "")
				return err
			}

			answer(bot, query.ID, "")
			edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, newsItemText(rendered), newsItemKeyboard(rendered))
			edit.ParseMode = parseModeMarkdownV2
			edit.DisableWebPagePreview = true
			_, err = bot.Send(edit)
			return err

		case ActionLike, ActionDislike:
			kind := model.FeedbackLike
			thanks := "👍 Спасибо за обратную связь!"
			if action.Kind == ActionDislike {
				kind = model.FeedbackDislike
				thanks = "👎 Спасибо за обратную связь!"
			}

			if _, err := feed.Feedback(ctx, userID, action.Index, kind); err != nil {
				if errors.Is(err, newsfeed.ErrSessionNotFound) {
					return replySessionExpired(bot, query.ID, chatID)
				}
				answer(bot, query.ID, "")
				return err
			}
			answer(bot, query.ID, thanks)
			return nil

		case ActionToggleCategory:
			enabled, err := feed.ToggleCategory(ctx, userID, action.Category)
			if err != nil {
				answer(bot, query.ID, "")
				return fmt.Errorf("toggle category %s: %w", action.Category, err)
			}
			answer(bot, query.ID, "")
			_, err = bot.Send(tgbotapi.NewEditMessageReplyMarkup(chatID, messageID, categoriesKeyboard(enabled)))
			return err

		case ActionCategoriesDone:
			answer(bot, query.ID, "")
			edit := tgbotapi.NewEditMessageText(chatID, messageID,
				"✅ *Настройки сохранены!*\n\nТеперь используйте /news для получения новостей по выбранным категориям.")
			edit.ParseMode = tgbotapi.ModeMarkdown
			_, err = bot.Send(edit)
			return err
		}

		answer(bot, query.ID, "")
		return nil
	}
}

// answer acknowledges the callback so the client stops the spinner. The
// press itself already succeeded or failed; a lost acknowledgement is not
// worth failing the view over.
func answer(bot *tgbotapi.BotAPI, queryID, text string) {
	if _, err := bot.Request(tgbotapi.NewCallback(queryID, text)); err != nil {
		log.Printf("[ERROR] failed to answer callback query: %v", err)
	}
}

func replySessionExpired(bot *tgbotapi.BotAPI, queryID string, chatID int64) error {
	answer(bot, queryID, "")
	msg := tgbotapi.NewMessage(chatID, "⏳ Подборка устарела. Запросите новости заново командой /news.")
	_, err := bot.Send(msg)
	return err
}
