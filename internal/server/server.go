package server

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"time"

	"jelly/internal/config"
	"jelly/internal/controllers"
	"jelly/internal/logging"
	"jelly/internal/middleware"
	"jelly/internal/routes"
	"jelly/internal/services"

	"github.com/benbjohnson/clock"
	"github.com/gin-gonic/gin"
)

var log = logging.For("server")

// Options tune how the server is assembled
type Options struct {
	// Secret signs flash cookies; empty means a random per-process key
	Secret string
	// TemplatesGlob is loaded into the engine when set
	TemplatesGlob string
	// StaticDir is served under /static when set
	StaticDir string
	// Clock stamps samples; nil means the wall clock
	Clock clock.Clock
}

// Server owns the HTTP engine and the long-lived collaborators behind it
type Server struct {
	Engine   *gin.Engine
	Sampler  *services.Sampler
	Recorder *services.Recorder
	History  *services.History
	Hub      *services.WebSocketHub
}

// New assembles the dashboard around a settings store and a host provider
func New(store *config.Store, provider services.HostProvider, opts Options) *Server {
	recorder := services.NewRecorder()
	sampler := services.NewSampler(provider, store, services.NewSnapshotStore(), opts.Clock)
	sampler.SetRecorder(recorder)
	history := services.NewHistory(60, opts.Clock)
	sampler.SetHistory(history)
	hub := services.NewWebSocketHub()

	r := gin.Default()
	r.Use(middleware.SecurityHeadersMiddleware())

	if opts.StaticDir != "" {
		r.Static("/static", opts.StaticDir)
	}
	if opts.TemplatesGlob != "" {
		if matches, _ := filepath.Glob(opts.TemplatesGlob); len(matches) > 0 {
			r.LoadHTMLGlob(opts.TemplatesGlob)
		} else {
			log.Warnf("No templates match %s, HTML pages are disabled", opts.TemplatesGlob)
		}
	}

	settings := controllers.NewSettingsController(store, services.NewFlashSigner(opts.Secret), hub)
	routes.RegisterAPIRoutes(r, controllers.NewStatsController(sampler, history), settings, middleware.NewRateLimiter())
	routes.RegisterPageRoutes(r, controllers.NewPagesController(store), settings)
	routes.RegisterSystemRoutes(r, controllers.NewWebSocketController(hub, sampler), recorder)

	return &Server{
		Engine:   r,
		Sampler:  sampler,
		Recorder: recorder,
		History:  history,
		Hub:      hub,
	}
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		s.Hub.Stop()
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down")
	s.Hub.Stop()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
