package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Spok95/school-backoffice/internal/app"
	"github.com/Spok95/school-backoffice/internal/config"
	"github.com/Spok95/school-backoffice/internal/db"
	"github.com/Spok95/school-backoffice/internal/logging"
	"github.com/Spok95/school-backoffice/internal/observability"
)

const version = "dev"

func main() {
	// Загрузка переменных окружения
	if err := godotenv.Load(); err != nil {
		log.Println("Не удалось загрузить .env файл, используем переменные окружения")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Ошибка конфигурации: %v", err)
	}

	lg, err := logging.Init(cfg.LogLevel, cfg.Env)
	if err != nil {
		log.Fatalf("Ошибка инициализации логгера: %v", err)
	}
	defer lg.Closer()

	flush, err := observability.InitSentry(cfg.SentryDSN, cfg.Env, version)
	if err != nil {
		lg.Sugar.Warnw("Sentry не поднялся, продолжаем без него", "err", err)
	}
	defer flush()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		lg.Base.Fatal("Ошибка подключения к БД", zap.Error(err))
	}
	defer database.Close()

	if err := db.Migrate(database); err != nil {
		lg.Base.Fatal("Миграция не удалась", zap.Error(err))
	}

	srv := app.New(cfg, database, lg.Base)

	go func() {
		lg.Sugar.Infow("Сервер запущен", "addr", cfg.HTTPAddr, "env", cfg.Env)
		if err := srv.Listen(cfg.HTTPAddr); err != nil {
			lg.Base.Error("Сервер остановился с ошибкой", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	lg.Sugar.Info("Останавливаемся...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Base.Error("Ошибка при остановке сервера", zap.Error(err))
		os.Exit(1)
	}
}
