package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"team-attendance/backend/config"
	"team-attendance/backend/global"
	"team-attendance/backend/initialize"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to YAML config file")
	flag.Parse()

	app, err := initialize.Build(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "startup:", err)
		os.Exit(1)
	}
	defer app.Close()

	// pick up log-level edits without a restart
	stopWatch, err := config.Watch(*configPath, func(cfg *config.Config) {
		initialize.SetLogLevel(cfg.LogLevel)
		global.Logger.Info().Str("level", cfg.LogLevel).Msg("config reloaded")
	}, func(err error) {
		global.Logger.Warn().Err(err).Msg("config reload failed")
	})
	if err != nil {
		global.Logger.Warn().Err(err).Msg("config watch unavailable")
	} else {
		defer stopWatch()
	}

	addr := fmt.Sprintf("%s:%d", app.Cfg.HTTP.Host, app.Cfg.HTTP.Port)
	srv := &http.Server{Addr: addr, Handler: app.Router}

	go func() {
		global.Logger.Info().Str("addr", addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			global.Logger.Error().Err(err).Msg("server stopped")
		}
	}()

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch
	global.Logger.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
}
