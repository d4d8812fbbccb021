package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ev1lbr1tan/infomonitor-newsbot-TEST/internal/botkit"
)

const helpText = `🤖 *СПРАВКА ПО ИНФОМОНИТОРУ*

📱 *Команды:*
• /start — начать работу и настроить категории
• /news — получить свежие новости
• /news спорт — новости конкретной категории
• /settings — настроить категории
• /categories — список категорий
• /stats — ваша статистика
• /translate — перевод английских новостей вкл/выкл
• /help — эта справка

📰 *Как это работает:*
1. Выберите интересующие категории в /settings
2. Запросите новости командой /news
3. Листайте подборку кнопками ⬅️ ➡️
4. Оценивайте новости 👍 👎

💡 Если категории не настроены, бот покажет новости по всем темам.`

// ViewCmdHelp handles /help.
func ViewCmdHelp() botkit.ViewFunc {
	return func(ctx context.Context, bot *tgbotapi.BotAPI, update tgbotapi.Update) error {
		msg := tgbotapi.NewMessage(update.Message.Chat.ID, helpText)
		msg.ParseMode = tgbotapi.ModeMarkdown

		_, err := bot.Send(msg)
		return err
	}
}
