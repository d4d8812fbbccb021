package bot

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/samber/lo"

	"github.com/ev1lbr1tan/infomonitor-newsbot-TEST/internal/botkit/markup"
	"github.com/ev1lbr1tan/infomonitor-newsbot-TEST/internal/model"
	"github.com/ev1lbr1tan/infomonitor-newsbot-TEST/internal/newsfeed"
)

const parseModeMarkdownV2 = "MarkdownV2"

// newsItemText renders one news card in MarkdownV2.
func newsItemText(r newsfeed.Rendered) string {
	item := r.Item

	var sb strings.Builder
	fmt.Fprintf(&sb, "📰 *%d / %d*  %s *%s*\n\n",
		r.Position, r.Total, item.Category.Emoji(), markup.EscapeForMarkdown(strings.ToUpper(item.Category.Title())))
	fmt.Fprintf(&sb, "*%s*\n", markup.EscapeForMarkdown(item.Title))
	fmt.Fprintf(&sb, "📝 %s\n", markup.EscapeForMarkdown(item.Description))

	if item.Link != "" {
		fmt.Fprintf(&sb, "🔗 %s\n", markup.EscapeForMarkdown(item.Link))
	}

	fmt.Fprintf(&sb, "📰 Источник: %s%s\n",
		markup.EscapeForMarkdown(item.SourceLabel), languageMarker(item.Language))

	if item.Published != "" {
		fmt.Fprintf(&sb, "🕐 %s\n", markup.EscapeForMarkdown(item.Published))
	}
	return sb.String()
}

func languageMarker(lang model.Language) string {
	switch lang {
	case model.LanguageEN:
		return " 🇬🇧 \\(на английском\\)"
	case model.LanguageMixed:
		return " 🌍 \\(смешанный\\)"
	default:
		return ""
	}
}

// newsItemKeyboard builds the navigation and feedback rows for the
// rendered item. The feedback buttons carry the item's 0-based index so a
// late tap still targets the item that was on screen.
func newsItemKeyboard(r newsfeed.Rendered) tgbotapi.InlineKeyboardMarkup {
	index := r.Position - 1

	feedbackRow := tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("👍 Лайк", Action{Kind: ActionLike, Index: index}.Encode()),
		tgbotapi.NewInlineKeyboardButtonData("👎 Дизлайк", Action{Kind: ActionDislike, Index: index}.Encode()),
	)

	var navButtons []tgbotapi.InlineKeyboardButton
	if r.Position > 1 {
		navButtons = append(navButtons,
			tgbotapi.NewInlineKeyboardButtonData("⬅️ Назад", Action{Kind: ActionNavPrev}.Encode()))
	}
	if r.Position < r.Total {
		navButtons = append(navButtons,
			tgbotapi.NewInlineKeyboardButtonData("Вперёд ➡️", Action{Kind: ActionNavNext}.Encode()))
	}

	if len(navButtons) == 0 {
		return tgbotapi.NewInlineKeyboardMarkup(feedbackRow)
	}
	return tgbotapi.NewInlineKeyboardMarkup(feedbackRow, tgbotapi.NewInlineKeyboardRow(navButtons...))
}

// categoriesKeyboard renders the settings keyboard with a ✅/⚪ state per
// category and a done button.
func categoriesKeyboard(enabled []model.Category) tgbotapi.InlineKeyboardMarkup {
	isEnabled := lo.SliceToMap(enabled, func(c model.Category) (model.Category, bool) { return c, true })

	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(model.Categories)+1)
	for _, category := range model.Categories {
		status := "⚪"
		if isEnabled[category] {
			status = "✅"
		}
		label := fmt.Sprintf("%s %s %s", status, category.Emoji(), strings.ToUpper(category.Title()))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, Action{Kind: ActionToggleCategory, Category: category}.Encode()),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("✅ ГОТОВО", Action{Kind: ActionCategoriesDone}.Encode()),
	))

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
