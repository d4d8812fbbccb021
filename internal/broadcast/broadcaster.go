// Package broadcast sends a daily news digest to every known subscriber.
package broadcast

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/go-shiori/go-readability"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ev1lbr1tan/infomonitor-newsbot-TEST/internal/aggregator"
	"github.com/ev1lbr1tan/infomonitor-newsbot-TEST/internal/botkit/markup"
	"github.com/ev1lbr1tan/infomonitor-newsbot-TEST/internal/model"
	"github.com/ev1lbr1tan/infomonitor-newsbot-TEST/internal/reporter"
)

const digestSize = 5

type Aggregator interface {
	ByCategories(ctx context.Context, categories []model.Category, limit int) []model.Item
	All(ctx context.Context, limit int) []model.Item
}

type SubscriberProvider interface {
	AllIDs(ctx context.Context) ([]int64, error)
}

type PreferenceProvider interface {
	Get(ctx context.Context, userID int64) ([]model.Category, error)
}

// Broadcaster delivers a digest once a day at a fixed wall-clock time.
// One failing recipient never blocks the rest of the run.
type Broadcaster struct {
	aggregator Aggregator
	users      SubscriberProvider
	prefs      PreferenceProvider
	bot        *tgbotapi.BotAPI
	reporter   *reporter.Reporter
	sendAt     string // "15:04"
	location   *time.Location
}

func New(
	aggregator Aggregator,
	users SubscriberProvider,
	prefs PreferenceProvider,
	bot *tgbotapi.BotAPI,
	rep *reporter.Reporter,
	sendAt string,
	location *time.Location,
) *Broadcaster {
	return &Broadcaster{
		aggregator: aggregator,
		users:      users,
		prefs:      prefs,
		bot:        bot,
		reporter:   rep,
		sendAt:     sendAt,
		location:   location,
	}
}

func (b *Broadcaster) Start(ctx context.Context) error {
	log.Printf("[INFO] Broadcaster started, daily digest at %s (%s)", b.sendAt, b.location)

	for {
		wait := time.Until(b.nextRun(time.Now().In(b.location)))

		select {
		case <-time.After(wait):
			if err := b.SendDigest(ctx); err != nil {
				log.Printf("[ERROR] failed to send digest: %v", err)
				b.reporter.Notify(fmt.Sprintf("daily digest failed: %v", err))
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// nextRun returns the next occurrence of the configured wall-clock time,
// today if it is still ahead, otherwise tomorrow.
func (b *Broadcaster) nextRun(now time.Time) time.Time {
	at, err := time.Parse("15:04", b.sendAt)
	if err != nil {
		at = time.Date(0, 1, 1, 9, 0, 0, 0, time.UTC)
	}

	next := time.Date(now.Year(), now.Month(), now.Day(), at.Hour(), at.Minute(), 0, 0, b.location)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// SendDigest runs one delivery round over all known users.
func (b *Broadcaster) SendDigest(ctx context.Context) error {
	ids, err := b.users.AllIDs(ctx)
	if err != nil {
		return fmt.Errorf("list subscribers: %w", err)
	}

	log.Printf("[INFO] sending daily digest to %d users", len(ids))

	var failed int
	for _, userID := range ids {
		if err := b.sendDigestTo(ctx, userID); err != nil {
			failed++
			log.Printf("[ERROR] failed to send digest to user %d: %v", userID, err)
		}
	}
	if failed > 0 {
		b.reporter.Notify(fmt.Sprintf("daily digest: %d of %d deliveries failed", failed, len(ids)))
	}
	return nil
}

func (b *Broadcaster) sendDigestTo(ctx context.Context, userID int64) error {
	categories, err := b.prefs.Get(ctx, userID)
	if err != nil {
		return fmt.Errorf("load preferences: %w", err)
	}

	var items []model.Item
	if len(categories) > 0 {
		items = b.aggregator.ByCategories(ctx, categories, digestSize)
	} else {
		items = b.aggregator.All(ctx, digestSize)
	}
	if len(items) == 0 {
		return nil
	}

	msg := tgbotapi.NewMessage(userID, b.digestText(items))
	msg.ParseMode = "MarkdownV2"
	msg.DisableWebPagePreview = true

	_, err = b.bot.Send(msg)
	return err
}

func (b *Broadcaster) digestText(items []model.Item) string {
	var sb strings.Builder
	sb.WriteString("🌅 *Утренний дайджест ИнфоМонитора*\n")

	for i, item := range items {
		description := item.Description
		if i == 0 && (description == "" || description == aggregator.FallbackDescription) {
			if lead := b.extractLead(item); lead != "" {
				description = lead
			}
		}

		fmt.Fprintf(&sb, "\n%s *%s*\n", item.Category.Emoji(), markup.EscapeForMarkdown(item.Title))
		if description != "" {
			fmt.Fprintf(&sb, "%s\n", markup.EscapeForMarkdown(description))
		}
		if item.Link != "" {
			fmt.Fprintf(&sb, "🔗 %s\n", markup.EscapeForMarkdown(item.Link))
		}
	}

	sb.WriteString("\nХорошего дня\\! Настроить темы: /settings")
	return sb.String()
}

var redundantNewLines = regexp.MustCompile(`\n{3,}`)

const leadExcerptLen = 300

// extractLead fetches the lead story's page and pulls a short readable
// excerpt for items whose feed carried no description.
func (b *Broadcaster) extractLead(item model.Item) string {
	if item.Link == "" {
		return ""
	}

	resp, err := http.Get(item.Link)
	if err != nil {
		log.Printf("[ERROR] failed to fetch lead story %s: %v", item.Link, err)
		return ""
	}
	defer resp.Body.Close()

	var r io.Reader = resp.Body
	doc, err := readability.FromReader(r, nil)
	if err != nil {
		log.Printf("[ERROR] failed to extract lead story text: %v", err)
		return ""
	}

	text := strings.TrimSpace(redundantNewLines.ReplaceAllString(doc.TextContent, "\n"))
	runes := []rune(text)
	if len(runes) > leadExcerptLen {
		text = strings.TrimSpace(string(runes[:leadExcerptLen])) + "..."
	}
	return text
}
