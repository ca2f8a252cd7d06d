package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/icco/movierecs/handlers"
	"github.com/icco/movierecs/lib/api"
	"github.com/icco/movierecs/lib/config"
	"github.com/icco/movierecs/lib/health"
	"github.com/icco/movierecs/lib/logging"
	"github.com/icco/movierecs/lib/ui"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
)

const usage = `usage: movierecs [tui|web|check]

  tui    interactive terminal client (default)
  web    serve the web front end
  check  call every backend endpoint once and report
`

func main() {
	mode := "tui"
	if len(os.Args) > 1 {
		mode = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch mode {
	case "tui":
		err = runTUI(ctx, cfg)
	case "web":
		err = runWeb(ctx, cfg)
	case "check":
		logger := logging.New(cfg.Log, os.Stdout)
		slog.SetDefault(logger)
		err = runCheck(ctx, newClient(cfg, logger), logger)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if err != nil {
		slog.Error("Exiting", slog.String("mode", mode), slog.Any("error", err))
		fmt.Fprintf(os.Stderr, "movierecs %s: %v\n", mode, err)
		stop()
		os.Exit(1)
	}
}

func newClient(cfg *config.Config, logger *slog.Logger) *api.Client {
	return api.NewClient(cfg.API.BaseURL, logger,
		api.WithTimeout(cfg.API.Timeout),
		api.WithBreaker(cfg.Breaker),
	)
}

func runTUI(ctx context.Context, cfg *config.Config) error {
	logger, logFile, err := logging.NewFile(cfg.Log)
	if err != nil {
		return err
	}
	if logFile != nil {
		defer func() {
			if err := logFile.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "failed to close log file: %v\n", err)
			}
		}()
	}
	slog.SetDefault(logger)
	logger.Info("Starting terminal client", slog.String("api", cfg.API.BaseURL))

	model := ui.NewModel(newClient(cfg, logger), ui.Options{
		Debounce:       cfg.Search.Debounce,
		MinQueryLength: cfg.Search.MinLength,
		Logger:         logger,
		Context:        ctx,
	})

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("failed to run terminal client: %w", err)
	}
	return nil
}

func runWeb(ctx context.Context, cfg *config.Config) error {
	logger := logging.New(cfg.Log, os.Stdout)
	slog.SetDefault(logger)

	client := newClient(cfg, logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", health.Check(client))
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		if cfg.Web.RateLimit > 0 {
			r.Use(httprate.LimitByIP(cfg.Web.RateLimit, time.Minute))
		}
		r.Get("/", handlers.HandleHome(client))
		r.Get("/search", handlers.HandleSearch(client, cfg.Search.MinLength))
		r.Get("/recommend/movie", handlers.HandleRecommendMovie(client))
		r.Get("/recommend/preferences", handlers.HandleRecommendPreferences(client))
	})
	r.NotFound(handlers.HandleNotFound())

	srv := &http.Server{
		Addr:              ":" + cfg.Web.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting server", slog.String("port", cfg.Web.Port), slog.String("api", cfg.API.BaseURL))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
