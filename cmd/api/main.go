package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"product-feed/internal/app"
	"product-feed/internal/config"
	"product-feed/internal/routes"
	"product-feed/internal/session"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.LoadConfig()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stack, err := app.Build(ctx, cfg)
	if err != nil {
		log.Fatalf("[api] startup failed: %v", err)
	}
	defer stack.Close()

	sessions := session.NewRegistry(stack.Aggregator,
		session.WithPageSize(cfg.PageSize),
		session.WithEndReachedThreshold(cfg.EndReachedThreshold),
		session.WithTTL(cfg.SessionTTL),
		session.WithCleanupInterval(time.Minute),
	)
	defer sessions.Close()

	router := gin.Default()
	routes.RegisterRoutes(router, stack.Aggregator, sessions, cfg.PageSize)

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: router}
	go func() {
		log.Printf("[api] catalog=%s media=%s images=%s", cfg.CatalogSource, cfg.MediaSource, cfg.ImageResolver)
		log.Println("🚀 Server running on port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[api] server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("[api] shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[api] shutdown error: %v", err)
	}
}
