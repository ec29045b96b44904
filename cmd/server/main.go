package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/kangactor123/ssalon-de-api/internal/api"
	"github.com/kangactor123/ssalon-de-api/internal/bot"
	"github.com/kangactor123/ssalon-de-api/internal/config"
	"github.com/kangactor123/ssalon-de-api/internal/domain/paymenttypes"
	"github.com/kangactor123/ssalon-de-api/internal/domain/sales"
	"github.com/kangactor123/ssalon-de-api/internal/domain/servicetypes"
	"github.com/kangactor123/ssalon-de-api/internal/domain/settings"
	"github.com/kangactor123/ssalon-de-api/internal/infra/db"
	httpx "github.com/kangactor123/ssalon-de-api/internal/infra/http"
	"github.com/kangactor123/ssalon-de-api/internal/infra/logger"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
)

func runMigrations(dsn string) error {
	sqlDB, err := goose.OpenDBWithDriver("postgres", dsn)
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()
	return goose.Up(sqlDB, "migrations")
}

func main() {
	cfg, err := config.Load("config/example.yaml")
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.App.Env)

	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		log.Warn("bad timezone, falling back to UTC", "tz", cfg.App.Timezone)
		loc = time.UTC
	}

	if err := runMigrations(cfg.Postgres.DSN); err != nil {
		log.Error("migrations failed", "err", err)
		return
	}
	log.Info("migrations applied")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.Connect(ctx, cfg.Postgres.DSN)
	if err != nil {
		log.Error("db connect failed", "err", err)
		return
	}
	defer pool.Close()
	log.Info("db connected")

	salesRepo := sales.NewRepo(pool)
	servicesRepo := servicetypes.NewRepo(pool)
	paymentsRepo := paymenttypes.NewRepo(pool)
	settingsRepo := settings.NewRepo(pool)

	var tgBot *bot.Bot
	if cfg.Telegram.Enabled && cfg.Telegram.Token != "" {
		tgAPI, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
		if err != nil {
			log.Error("telegram init failed", "err", err)
			return
		}
		tgBot = bot.New(tgAPI, log, salesRepo, servicesRepo, paymentsRepo, cfg.Telegram.AdminChatID, loc)
		go func() {
			if err := tgBot.Run(ctx, 30); err != nil && ctx.Err() == nil {
				log.Error("bot stopped", "err", err)
			}
		}()
		log.Info("telegram bot started", "account", tgAPI.Self.UserName)
	}

	var notifier api.Notifier
	if tgBot != nil {
		notifier = tgBot
	}

	a := &api.API{
		Sales:        api.NewSalesHandler(salesRepo, &api.ServiceTypeStore{Repo: servicesRepo}, notifier, log),
		ServiceTypes: api.NewReferenceHandler(&api.ServiceTypeStore{Repo: servicesRepo}, "serviceTypes", log),
		PaymentTypes: api.NewReferenceHandler(&api.PaymentTypeStore{Repo: paymentsRepo}, "paymentTypes", log),
		Settings:     api.NewSettingsHandler(settingsRepo, log),
		Dashboard:    api.NewDashboardHandler(salesRepo, settingsRepo, log),
	}

	srv := httpx.New(cfg.HTTP.Addr, cfg.Metrics.Enabled, pool, a)
	go func() {
		if err := srv.Start(); err != nil && err.Error() != "http: Server closed" {
			log.Error("http server error", "err", err)
		}
	}()
	log.Info("HTTP server started", "addr", cfg.HTTP.Addr)

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	log.Info("graceful shutdown complete")
}
