package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/JosephWong123/ExplodingPetrs/internal/config"
	"github.com/JosephWong123/ExplodingPetrs/internal/engine"
	"github.com/JosephWong123/ExplodingPetrs/internal/game"
	"github.com/JosephWong123/ExplodingPetrs/internal/models"
	"github.com/JosephWong123/ExplodingPetrs/internal/ws"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	log := logrus.New()
	if lvl, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(lvl)
	}

	hub := ws.NewServer(log, cfg.AllowedOrigins)
	mgr := game.NewManager(hub, func(seats []models.Seat) game.Engine {
		return engine.New(seats)
	}, log)
	hub.SetDispatcher(mgr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go mgr.Run(ctx)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", hub.HandleWS)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.WithField("addr", cfg.Addr).Info("exploding petrs server listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Fatal("server exited")
	}
}
