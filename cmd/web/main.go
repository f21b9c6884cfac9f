package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/minaorangina/skyjo/config"
	"github.com/minaorangina/skyjo/server"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load(config.DotEnv())
	if err != nil {
		logrus.WithError(err).Fatal("could not load config")
	}
	log := cfg.Logger(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	snapshots, closeStore, err := cfg.OpenStore(ctx)
	if err != nil {
		log.WithError(err).Fatal("could not open store")
	}
	defer closeStore()

	s := server.NewServer(server.ServerOpts{
		Addr:           cfg.Addr,
		Snapshots:      snapshots,
		Rules:          cfg.Rules(),
		Seed:           cfg.Seed,
		AllowedOrigins: cfg.Origins(),
		Log:            log,
	})

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Warn("shutdown")
		}
	}()

	log.WithFields(logrus.Fields{"addr": cfg.Addr, "store": cfg.Store}).Info("listening")
	if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Fatal("server stopped")
	}
}
