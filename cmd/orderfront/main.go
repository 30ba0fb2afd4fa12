// Package main запускает HTTP-сервер фронтенда платформы заказов.
package main

import (
	"context"
	"crypto/rand"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Miyuranga305/Order-Platform-Frontend/internal/apiclient"
	"github.com/Miyuranga305/Order-Platform-Frontend/internal/config"
	"github.com/Miyuranga305/Order-Platform-Frontend/internal/handler"
	"github.com/Miyuranga305/Order-Platform-Frontend/internal/middleware"
	"github.com/Miyuranga305/Order-Platform-Frontend/internal/session"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	sugar := logger.Sugar()

	cfg, err := config.Parse()
	if err != nil {
		sugar.Fatalw("configuration error", "error", err.Error())
	}

	secret := []byte(cfg.SessionSecret)
	if len(secret) == 0 {
		// Без заданного секрета сессии живут только до перезапуска процесса.
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			sugar.Fatalw("session secret generation error", "error", err.Error())
		}
		sugar.Warn("SESSION_SECRET is not set, using a random per-process key")
	}

	sessions := session.NewStore(secret, cfg.CookieSecure)
	client := apiclient.NewClient(cfg.APIBaseURL)
	identity := middleware.NewIdentity(sessions, client, logger)

	templates := handler.NewTemplateCache()
	if err := templates.Load(cfg.TemplatesDir); err != nil {
		sugar.Fatalw("template loading error", "error", err.Error())
	}

	h := handler.NewHandler(client, sessions, templates, identity, logger)
	r := h.SetupRouter(secret, cfg.CookieSecure)

	server := &http.Server{
		Addr:    cfg.RunAddress,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	// Запуск HTTP-сервера
	g.Go(func() error {
		sugar.Infow("starting order platform frontend", "addr", cfg.RunAddress, "api", cfg.APIBaseURL)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown при отмене контекста (сигнал или ошибка в другой горутине)
	g.Go(func() error {
		<-ctx.Done()
		sugar.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		sugar.Info("server stopped gracefully")
		return nil
	})

	if err := g.Wait(); err != nil {
		sugar.Fatalw("application terminated with error", "error", err)
	}
}
