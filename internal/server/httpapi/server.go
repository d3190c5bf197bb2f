// Package httpapi exposes the mapboard services over HTTP/JSON.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/dmitrijs2005/mapboard/internal/logging"
	"github.com/dmitrijs2005/mapboard/internal/server/metrics"
	"github.com/dmitrijs2005/mapboard/internal/server/models"
	"github.com/dmitrijs2005/mapboard/internal/server/services"
)

const readHeaderTimeout = 5 * time.Second

type UserService interface {
	Register(ctx context.Context, username, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (string, error)
}

type TokenVerifier interface {
	Verify(token string) (string, error)
}

type CardService interface {
	List(ctx context.Context, owner string) ([]*models.Card, error)
	Create(ctx context.Context, owner string, in services.CardInput) (*models.Card, error)
	Delete(ctx context.Context, owner, id string) error
}

type MarkerService interface {
	MapView(ctx context.Context, owner string) (*models.MapView, error)
	Create(ctx context.Context, owner string, in services.MarkerInput) (*models.Marker, error)
}

// HealthChecker is satisfied by *sql.DB.
type HealthChecker interface {
	PingContext(ctx context.Context) error
}

// Services groups the dependencies the handlers call into.
type Services struct {
	Users   UserService
	Tokens  TokenVerifier
	Cards   CardService
	Markers MarkerService
	Health  HealthChecker
}

type HTTPServer struct {
	address         string
	logger          logging.Logger
	users           UserService
	tokens          TokenVerifier
	cards           CardService
	markers         MarkerService
	health          HealthChecker
	metrics         *metrics.Metrics
	shutdownTimeout time.Duration
}

// NewHTTPServer builds a server. m may be nil, in which case no metrics are
// recorded and /metrics is not mounted.
func NewHTTPServer(a string, l logging.Logger, svc Services, m *metrics.Metrics, shutdownTimeout time.Duration) *HTTPServer {
	return &HTTPServer{
		address:         a,
		logger:          l.With("module", "http_server"),
		users:           svc.Users,
		tokens:          svc.Tokens,
		cards:           svc.Cards,
		markers:         svc.Markers,
		health:          svc.Health,
		metrics:         m,
		shutdownTimeout: shutdownTimeout,
	}
}

// Routes builds the router with all middleware and endpoints mounted.
func (s *HTTPServer) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.accessLog)
	r.Use(s.recoverer)
	if s.metrics != nil {
		r.Use(s.metrics.Middleware)
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:         300,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.writeMessage(w, r, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		s.writeMessage(w, r, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Get("/healthz", s.handleHealth)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/register", s.handleRegister)
		r.Post("/login", s.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(s.Authenticate)

			r.Get("/dashboard", s.handleDashboard)
			r.Post("/dashboard/cards", s.handleCreateCard)
			r.Delete("/dashboard/cards/{id}", s.handleDeleteCard)

			r.Get("/map", s.handleMap)
			r.Post("/map/markers", s.handleCreateMarker)
		})
	})

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully, waiting up
// to the configured timeout for in-flight requests.
func (s *HTTPServer) Run(ctx context.Context) error {

	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.Routes(),
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	stopped := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.shutdownTimeout)
		defer cancel()
		stopped <- srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return <-stopped
}
