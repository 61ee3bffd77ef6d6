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

	"go.uber.org/zap"

	"pomo-hub/internal/api"
	"pomo-hub/internal/config"
	"pomo-hub/internal/logger"
	"pomo-hub/internal/notify"
	"pomo-hub/internal/repository"
	"pomo-hub/internal/repository/memory"
	"pomo-hub/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()

	if err := logger.Init(cfg.LogDevelopment); err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	var (
		categoryRepo service.CategoryRepository
		templateRepo service.TemplateRepository
		taskRepo     service.TaskRepository
		pomodoroRepo service.PomodoroRepository
		noteRepo     service.NoteRepository
	)

	switch cfg.Repository {
	case "memory":
		store := memory.New()
		categoryRepo = store.Categories()
		templateRepo = store.Templates()
		taskRepo = store.Tasks()
		pomodoroRepo = store.Pomodoros()
		noteRepo = store.Notes()
	default:
		db, err := repository.NewDB(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("db: %v", err)
		}
		sqlDB, err := db.DB()
		if err == nil {
			defer sqlDB.Close()
		}
		categoryRepo = repository.NewCategoryRepository(db)
		templateRepo = repository.NewTemplateRepository(db)
		taskRepo = repository.NewTaskRepository(db)
		pomodoroRepo = repository.NewPomodoroRepository(db)
		noteRepo = repository.NewNoteRepository(db)
	}

	notifier := buildNotifier(cfg)

	timers := service.NewTimerRegistry()
	defer timers.Shutdown()

	sessions := service.NewSessionService(
		pomodoroRepo, taskRepo, noteRepo,
		timers, notifier,
		cfg.PomodoroDuration, cfg.SingleActivePomodoro,
	)
	summaries := service.NewSummaryService(pomodoroRepo, taskRepo, noteRepo, categoryRepo)
	categories := service.NewCategoryService(categoryRepo)
	templates := service.NewTemplateService(templateRepo, categoryRepo)

	// Re-arm expiry timers for pomodoros that were running when the process
	// last stopped.
	if err := sessions.Recover(ctx); err != nil {
		logger.Warn("pomodoro recovery failed", zap.Error(err))
	}

	scheduler := service.NewSchedulerService(time.Local)
	if _, err := scheduler.ScheduleInterval(cfg.ReconcileInterval, func() {
		jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		sessions.Reconcile(jobCtx)
	}); err != nil {
		log.Fatalf("schedule reconcile: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: api.New(sessions, summaries, categories, templates).Router(),
	}

	go func() {
		logger.Info("server started", zap.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("server shutdown", zap.Error(err))
	}
	logger.Info("shutdown complete")
}

// buildNotifier assembles the configured side channels. With none configured
// notifications are dropped silently.
func buildNotifier(cfg config.Config) notify.Notifier {
	var channels notify.Multi

	if cfg.DiscordWebhookURL != "" {
		channels = append(channels, notify.NewWebhook(cfg.DiscordWebhookURL))
	}
	if cfg.TelegramToken != "" && cfg.TelegramChatID != 0 {
		telegram, err := notify.NewTelegram(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			logger.Warn("telegram channel disabled", zap.Error(err))
		} else {
			channels = append(channels, telegram)
		}
	}

	if len(channels) == 0 {
		return notify.Nop{}
	}
	return channels
}
