package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/rythem12/hlp-funding-fee/internal/config"
	"github.com/rythem12/hlp-funding-fee/internal/hyperliquid"
	"github.com/rythem12/hlp-funding-fee/internal/notify"
	"github.com/rythem12/hlp-funding-fee/internal/report"
	"github.com/rythem12/hlp-funding-fee/internal/scheduler"
	"github.com/rythem12/hlp-funding-fee/internal/store"
	"github.com/rythem12/hlp-funding-fee/internal/telegram"
)

type App struct {
	cfg     config.Config
	log     *zap.Logger
	bot     *tgbotapi.BotAPI
	httpSrv *http.Server
}

func New(cfg config.Config, log *zap.Logger) (*App, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, err
	}
	bot.Debug = false

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}

	return &App{cfg: cfg, log: log, bot: bot, httpSrv: srv}, nil
}

func (a *App) Run(ctx context.Context) error {
	a.log.Info("starting funding bot",
		zap.String("http", a.cfg.HTTPAddr),
		zap.String("users", a.cfg.UsersFile),
		zap.String("schedules", a.cfg.SchedulesFile),
	)

	users := store.NewUsers(a.cfg.UsersFile, a.log)
	schedules := store.NewSchedules(a.cfg.SchedulesFile, a.log)
	market := hyperliquid.New(a.cfg.APIURL, a.cfg.APITimeout, a.cfg.SnapshotTTL, a.log)

	router := telegram.NewRouter(a.bot, a.log, users, market, a.cfg.AdminChatID)
	builder := report.NewBuilder(market, a.log, nil)
	engine := notify.New(users, builder, router, a.log)
	sched := scheduler.New(schedules, engine, router, a.log)
	router.Attach(engine, sched)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := a.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("http server error", zap.Error(err))
		}
	}()

	go func() {
		if err := sched.Run(ctx); err != nil {
			a.log.Error("scheduler error", zap.Error(err))
		}
	}()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updCh := a.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			a.log.Info("shutdown signal received")
			a.bot.StopReceivingUpdates()

			shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			err := a.httpSrv.Shutdown(shCtx)
			cancel()
			if err != nil {
				a.log.Warn("http server shutdown error", zap.Error(err))
			}
			return nil

		case upd := <-updCh:
			router.HandleUpdate(ctx, upd)
		}
	}
}
