// Package server composes the REST API into one process handler.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/hylla/fardplan/internal/adapters/server/httpapi"
	"github.com/hylla/fardplan/internal/board"
)

// defaultBindAddress defines the localhost-first serve default.
const defaultBindAddress = "127.0.0.1:8080"

// defaultShutdownTimeout bounds graceful shutdown time once context cancellation starts.
const defaultShutdownTimeout = 5 * time.Second

// Config defines serve-mode endpoint configuration.
type Config struct {
	HTTPBind    string
	APIEndpoint string
}

// Dependencies defines the stores and autosaver the transports serve from.
type Dependencies struct {
	Store     *board.Store
	View      *board.ViewState
	Autosaver *board.Autosaver
}

// NewHandler composes one root HTTP mux containing health and REST API endpoints.
func NewHandler(cfg Config, deps Dependencies) (http.Handler, Config, error) {
	normalizedCfg, err := normalizeConfig(cfg)
	if err != nil {
		return nil, Config{}, err
	}
	if deps.Store == nil {
		return nil, Config{}, fmt.Errorf("document store dependency is required")
	}

	apiHandler := httpapi.NewHandler(deps.Store, deps.View)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", healthHandler(deps))
	mux.HandleFunc("/readyz", healthHandler(deps))
	mux.Handle(normalizedCfg.APIEndpoint, http.StripPrefix(normalizedCfg.APIEndpoint, apiHandler))
	mux.Handle(normalizedCfg.APIEndpoint+"/", http.StripPrefix(normalizedCfg.APIEndpoint, apiHandler))
	return mux, normalizedCfg, nil
}

// Run starts the composed HTTP server and blocks until shutdown or startup failure.
func Run(ctx context.Context, cfg Config, deps Dependencies) error {
	if ctx == nil {
		ctx = context.Background()
	}

	handler, normalizedCfg, err := NewHandler(cfg, deps)
	if err != nil {
		return fmt.Errorf("build server handler: %w", err)
	}

	srv := &http.Server{
		Addr:              normalizedCfg.HTTPBind,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve http: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), defaultShutdownTimeout)
	defer cancel()
	if deps.Autosaver != nil {
		deps.Autosaver.Flush(shutdownCtx)
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	return nil
}

// healthHandler reports liveness plus the most recent persistence failure.
func healthHandler(deps Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if deps.Autosaver != nil {
			saves := deps.Autosaver.Saves()
			if err := deps.Autosaver.LastError(); err != nil {
				w.WriteHeader(http.StatusOK)
				fmt.Fprintf(w, `{"status":"degraded","saves":%d,"lastSaveError":%q}`+"\n", saves, err.Error())
				return
			}
			w.WriteHeader(http.StatusOK)
			fmt.Fprintf(w, `{"status":"ok","saves":%d}`+"\n", saves)
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, `{"status":"ok"}`)
	}
}

// normalizeConfig applies defaults and validates endpoint shapes.
func normalizeConfig(cfg Config) (Config, error) {
	if strings.TrimSpace(cfg.HTTPBind) == "" {
		cfg.HTTPBind = defaultBindAddress
	}
	if strings.TrimSpace(cfg.APIEndpoint) == "" {
		cfg.APIEndpoint = "/api/v1"
	}
	if !strings.HasPrefix(cfg.APIEndpoint, "/") {
		return Config{}, fmt.Errorf("api endpoint must start with /: %q", cfg.APIEndpoint)
	}
	cfg.APIEndpoint = strings.TrimRight(cfg.APIEndpoint, "/")
	return cfg, nil
}
