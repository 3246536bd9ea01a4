package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"graphstudio/internal/config"
	"graphstudio/internal/handler"
	"graphstudio/internal/hub"
	"graphstudio/internal/repository/sqlite"
	"graphstudio/internal/service"
	"graphstudio/internal/watcher"
)

const shutdownTimeout = 5 * time.Second

func serveCmd(g *globals) *cobra.Command {
	var (
		addr    string
		dbPath  string
		watch   bool
		restore bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the editor HTTP server with live event streams",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, cfgPath, err := g.load()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			if dbPath != "" {
				cfg.Database.Path = dbPath
			}
			logger, level := newLogger(cfg)
			logger.Info("starting graphstudio", "version", version, "config", cfgPath)
			logger.Info("configuration", "summary", cfg.Summary())

			repo, err := sqlite.New(cfg.Database.Path)
			if err != nil {
				return err
			}
			defer repo.Close()
			logger.Info("database opened", "path", cfg.Database.Path)

			client := newClient(cfg, logger)
			logger.Info("computation backend", "url", client.BaseURL(), "timeout", cfg.Backend.Timeout.Duration())

			bus := service.NewEventBus()
			ws := service.NewWorkspace(bus, service.Options{
				Client:     client,
				Repo:       repo,
				Settings:   settingsFrom(cfg),
				Logger:     logger,
				Background: true,
			})
			defer ws.Close()

			if restore {
				if _, err := ws.Load(cmd.Context()); err != nil {
					logger.Warn("no saved graph restored", "error", err)
				}
			}

			streams := hub.New(logger)
			events := make(chan service.Event, 256)
			bus.Subscribe(events)
			defer bus.Unsubscribe(events)

			mux := http.NewServeMux()
			handler.NewGraphHandler(ws, logger).Register(mux)
			mux.Handle("GET /events", streams)
			mux.HandleFunc("GET /ws", streams.ServeWS)
			mux.Handle("GET /metrics", promhttp.Handler())

			srv := &http.Server{
				Addr: cfg.Server.Addr,
				Handler: handler.Chain(mux,
					handler.Recover(logger),
					handler.CORS,
					handler.Logger(logger),
				),
				ReadHeaderTimeout: 10 * time.Second,
				// streams stay open, so no WriteTimeout
			}

			grp, ctx := errgroup.WithContext(cmd.Context())
			grp.Go(func() error { return streams.Run(ctx) })
			grp.Go(func() error {
				streams.Forward(ctx, events)
				return nil
			})

			if watch && cfgPath != "" {
				w := watcher.New(cfgPath, func(next *config.Config) {
					ws.ApplySettings(settingsFrom(next))
					lvl, _ := next.Log.SlogLevel()
					level.Set(lvl)
				}, logger)
				grp.Go(func() error {
					if err := w.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
						return err
					}
					return nil
				})
			}

			grp.Go(func() error {
				logger.Info("listening", "addr", cfg.Server.Addr)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			})
			grp.Go(func() error {
				<-ctx.Done()
				logger.Info("shutting down")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			})

			return grp.Wait()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "HTTP listen address (overrides config)")
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database path (overrides config)")
	cmd.Flags().BoolVar(&watch, "watch", false, "reload editor defaults and step delay when the config file changes")
	cmd.Flags().BoolVar(&restore, "restore", false, "load the saved graph on startup")
	return cmd
}
