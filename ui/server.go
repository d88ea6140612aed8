package ui

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/EducAI25/intellidash-insights-ai/app"
)

// Server exposes the dashboard API over HTTP
type Server struct {
	router  chi.Router
	service *app.DashboardService
	maxBody int64
	httpSrv *http.Server
}

// NewServer creates the API server. maxBody bounds request bodies in
// bytes, covering spreadsheet uploads.
func NewServer(service *app.DashboardService, maxBody int64) *Server {
	s := &Server{
		router:  chi.NewRouter(),
		service: service,
		maxBody: maxBody,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(middleware.Timeout(60 * time.Second))

	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/api/dashboards", func(r chi.Router) {
		r.Post("/", s.handleUpload)
		r.Get("/", s.handleList)

		r.Route("/{dashboardID}", func(r chi.Router) {
			r.Get("/", s.handleGet)
			r.Delete("/", s.handleDelete)
			r.Post("/view", s.handleView)
			r.Put("/mappings", s.handleSaveMappings)
			r.Post("/chat", s.handleChat)
			r.Get("/export", s.handleExport)
		})
	})
}

// Handler returns the underlying router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start runs the server until the context is cancelled, then shuts it
// down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	s.httpSrv = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[Server] Listening on %s", addr)
		errCh <- s.httpSrv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.httpSrv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}
