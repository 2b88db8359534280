package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/debemdeboas/the-notebook/internal/config"
	"github.com/debemdeboas/the-notebook/internal/db"
	"github.com/debemdeboas/the-notebook/internal/editor"
	"github.com/debemdeboas/the-notebook/internal/logger"
	"github.com/debemdeboas/the-notebook/internal/render"
	"github.com/debemdeboas/the-notebook/internal/repository"
	"github.com/debemdeboas/the-notebook/internal/routes"
	"github.com/debemdeboas/the-notebook/internal/session"
	"github.com/debemdeboas/the-notebook/internal/sse"
	"github.com/debemdeboas/the-notebook/internal/store"
)

const shutdownTimeout = 5 * time.Second

var mainLogger zerolog.Logger

func configPath() string {
	if path := os.Getenv(config.EnvConfigPath); path != "" {
		return path
	}
	return config.DefaultConfigPath
}

func setupLoggers(cfg *config.Config) {
	root := logger.NewWithWriter(os.Stderr, cfg.Logging.Level, cfg.Logging.Format)

	mainLogger = logger.Component(root, "main")
	config.SetLogger(logger.Component(root, "config"))
	db.SetLogger(logger.Component(root, "db"))
	store.SetLogger(logger.Component(root, "store"))
	repository.SetLogger(logger.Component(root, "repository"))
	editor.SetLogger(logger.Component(root, "editor"))
	session.SetLogger(logger.Component(root, "session"))
	render.SetLogger(logger.Component(root, "render"))
	routes.SetLogger(logger.Component(root, "routes"))
}

type app struct {
	session *session.Session
	handler http.Handler
	close   func() error
}

// newApp wires the store, repository, session and HTTP surface described by cfg.
func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	kv, closeStore, err := store.Open(ctx, cfg.Storage)
	if err != nil {
		return nil, err
	}

	clipboard, err := session.NewClipboard(cfg.Session.Clipboard)
	if err != nil {
		closeStore()
		return nil, err
	}

	repo := repository.NewDocuments(store.NewAdapter(kv, cfg.Storage.Key))
	buffer := editor.NewBuffer()

	opts := session.OptionsFromConfig(cfg.Session)
	opts.Clipboard = clipboard
	sess := session.New(repo, buffer, opts)

	clients := sse.NewSSEClients()
	handler := routes.NewHandler(sess, buffer, clients, cfg.Theme.Renderer)
	sess.SetChangeNotifier(handler.Notify)

	mux := http.NewServeMux()
	handler.Register(mux)

	sess.Open()

	return &app{
		session: sess,
		handler: routes.LogRequests(routes.NoCache(routes.SecureHeaders(mux))),
		close: func() error {
			sess.Close()
			return closeStore()
		},
	}, nil
}

func main() {
	if err := godotenv.Load(); err != nil {
		zerolog.New(os.Stderr).Info().Msg("No .env file loaded")
	}

	if err := config.LoadConfig(configPath()); err != nil {
		logger.New("error").Fatal().Err(err).Msg("Failed to load configuration")
	}
	cfg := config.AppConfig
	setupLoggers(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg)
	if err != nil {
		mainLogger.Fatal().Err(err).Msg("Failed to start")
	}
	defer func() {
		if err := a.close(); err != nil {
			mainLogger.Error().Err(err).Msg("Failed to close store")
		}
	}()

	go func() {
		if err := a.session.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			mainLogger.Error().Err(err).Msg("Autosave loop stopped")
		}
	}()

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           a.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		if err := a.session.Save(false); err != nil {
			mainLogger.Error().Err(err).Msg("Final save failed")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			mainLogger.Error().Err(err).Msg("Shutdown failed")
		}
	}()

	mainLogger.Info().
		Str("addr", cfg.Addr()).
		Str("backend", cfg.Storage.Backend).
		Msg("Notebook listening")

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		mainLogger.Fatal().Err(err).Msg("Server failed")
	}
}
