package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/ev1lbr1tan/infomonitor-newsbot-TEST/internal/aggregator"
	"github.com/ev1lbr1tan/infomonitor-newsbot-TEST/internal/bot"
	"github.com/ev1lbr1tan/infomonitor-newsbot-TEST/internal/botkit"
	"github.com/ev1lbr1tan/infomonitor-newsbot-TEST/internal/broadcast"
	"github.com/ev1lbr1tan/infomonitor-newsbot-TEST/internal/classify"
	"github.com/ev1lbr1tan/infomonitor-newsbot-TEST/internal/config"
	"github.com/ev1lbr1tan/infomonitor-newsbot-TEST/internal/model"
	"github.com/ev1lbr1tan/infomonitor-newsbot-TEST/internal/newsfeed"
	"github.com/ev1lbr1tan/infomonitor-newsbot-TEST/internal/reporter"
	"github.com/ev1lbr1tan/infomonitor-newsbot-TEST/internal/session"
	"github.com/ev1lbr1tan/infomonitor-newsbot-TEST/internal/source"
	"github.com/ev1lbr1tan/infomonitor-newsbot-TEST/internal/storage"
	"github.com/ev1lbr1tan/infomonitor-newsbot-TEST/internal/translate"
)

func main() {
	botAPI, err := tgbotapi.NewBotAPI(config.Get().TelegramBotToken)
	if err != nil {
		log.Printf("[ERROR] failed to create botAPI: %v", err)
		return
	}

	db, err := sqlx.Connect("postgres", config.Get().DatabaseDSN)
	if err != nil {
		log.Printf("[ERROR] failed to connect to db: %v", err)
		return
	}
	defer db.Close()

	if err := storage.RunMigrations(db); err != nil {
		log.Printf("[ERROR] failed to run migrations: %v", err)
		return
	}

	var (
		userStorage       = storage.NewUserStorage(db)
		preferenceStorage = storage.NewPreferenceStorage(db)
		feedbackStorage   = storage.NewFeedbackStorage(db)
		statsStorage      = storage.NewStatsStorage(db)
		settingsStorage   = storage.NewSettingsStorage(db)
	)

	mode := source.Mode(config.Get().SourceMode)
	fallback := model.CategoryWorld
	if mode == source.ModeChannel {
		fallback = model.CategoryMisc
	}
	registry := source.Default(mode, config.Get().FetchTimeout)
	classifier := classify.New(classify.DefaultRules(), fallback)
	agg := aggregator.New(registry, classifier, config.Get().MaxTextLen)
	log.Printf("[INFO] using %s sources", mode)

	var sessions session.Store
	if addr := config.Get().RedisAddr; addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: config.Get().RedisPassword,
			DB:       config.Get().RedisDB,
		})
		sessions = session.NewRedisStore(rdb, session.DefaultTTL)
		log.Printf("[INFO] using redis session store at %s", addr)
	} else {
		sessions = session.NewMemoryStore(session.DefaultTTL)
	}

	var translator newsfeed.Translator
	switch config.Get().TranslatorType {
	case "libretranslate":
		if config.Get().TranslatorURL == "" {
			log.Printf("[ERROR] translator_url is required when translator_type is \"libretranslate\"")
			return
		}
		translator = translate.NewLibreTranslator(config.Get().TranslatorURL, config.Get().AITimeout)
		log.Printf("[INFO] using LibreTranslate at %s", config.Get().TranslatorURL)
	case "openai":
		if config.Get().AIKey == "" {
			log.Printf("[ERROR] ai_key is required when translator_type is \"openai\"")
			return
		}
		translator = translate.NewOpenAITranslator(
			config.Get().TranslatorURL,
			config.Get().AIKey,
			config.Get().AIModel,
			config.Get().AITimeout,
		)
		log.Printf("[INFO] using OpenAI-compatible translator (model: %s)", config.Get().AIModel)
	case "ollama":
		if config.Get().TranslatorURL == "" {
			log.Printf("[ERROR] translator_url is required when translator_type is \"ollama\"")
			return
		}
		translator = translate.NewOllamaTranslator(
			config.Get().TranslatorURL,
			config.Get().AIModel,
			config.Get().AITimeout,
		)
		log.Printf("[INFO] using Ollama translator (model: %s)", config.Get().AIModel)
	}

	feed := newsfeed.New(
		agg,
		preferenceStorage,
		feedbackStorage,
		statsStorage,
		settingsStorage,
		sessions,
		translator,
		config.Get().NewsLimit,
		config.Get().CategoryLimit,
	)

	location, err := time.LoadLocation(config.Get().BroadcastTZ)
	if err != nil {
		log.Printf("[ERROR] bad broadcast_tz %q: %v", config.Get().BroadcastTZ, err)
		return
	}

	adminReporter := reporter.New(botAPI, config.Get().TelegramAdminChatID)
	broadcaster := broadcast.New(
		agg,
		userStorage,
		preferenceStorage,
		botAPI,
		adminReporter,
		config.Get().BroadcastTime,
		location,
	)

	newsView := bot.ViewCmdNews(feed, userStorage)
	helpView := bot.ViewCmdHelp()
	settingsView := bot.ViewCmdSettings(feed)
	statsView := bot.ViewCmdStats(feed)

	newsBot := botkit.New(botAPI)
	newsBot.RegisterCmdView("start", bot.ViewCmdStart(feed, userStorage))
	newsBot.RegisterCmdView("help", helpView)
	newsBot.RegisterCmdView("news", newsView)
	newsBot.RegisterCmdView("settings", settingsView)
	newsBot.RegisterCmdView("categories", bot.ViewCmdCategories(feed))
	newsBot.RegisterCmdView("stats", statsView)
	newsBot.RegisterCmdView("translate", bot.ViewCmdTranslate(feed, translator != nil))

	callbackView := bot.ViewCallback(feed)
	for _, kind := range []bot.ActionKind{
		bot.ActionToggleCategory,
		bot.ActionCategoriesDone,
		bot.ActionNavPrev,
		bot.ActionNavNext,
		bot.ActionDislike,
		bot.ActionLike,
	} {
		newsBot.RegisterCallbackView(string(kind), callbackView)
	}

	newsBot.RegisterDefaultView(bot.ViewDefault(newsView, helpView, settingsView, statsView))

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	go func(ctx context.Context) {
		if err := broadcaster.Start(ctx); err != nil {
			if !errors.Is(err, context.Canceled) {
				log.Printf("[ERROR] failed to run broadcaster: %v", err)
				return
			}

			log.Printf("[INFO] broadcaster stopped")
		}
	}(ctx)

	go func(ctx context.Context) {
		if err := http.ListenAndServe("127.0.0.1:8088", mux); err != nil {
			if !errors.Is(err, context.Canceled) {
				log.Printf("[ERROR] failed to run http server: %v", err)
				return
			}

			log.Printf("[INFO] http server stopped")
		}
	}(ctx)

	if err := newsBot.Run(ctx); err != nil {
		log.Printf("[ERROR] failed to run botkit: %v", err)
	}
}
