// package server contains the HTTP backend for mood recommendations and favorites
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/moodtunes/internal/models"
	"github.com/desertthunder/moodtunes/internal/shared"
	"github.com/desertthunder/moodtunes/internal/tasks"
)

// Middleware wraps an http.Handler and returns a new http.Handler with additional behavior.
type Middleware func(http.Handler) http.Handler

// Handler is an [http.Handler] that serves a fixed set of paths.
type Handler interface {
	http.Handler      // ServeHTTP handles the HTTP request and writes the response
	Routes() []string // Routes returns the path patterns this handler serves
}

// Router defines the interface for HTTP routing and middleware management.
type Router interface {
	Use(middleware ...Middleware)                     // Use adds middleware to the router's middleware stack
	Handle(method, path string, handler http.Handler) // Handle registers a handler for the specified method and path
	Handler(handler Handler)                          // Handler registers a custom Handler implementation
	ServeHTTP(w http.ResponseWriter, r *http.Request) // ServeHTTP implements http.Handler for the entire router
}

// FavoriteStore persists favorites keyed by url.
//
// Implemented by repositories.FavoriteRepository.
type FavoriteStore interface {
	Add(fav models.Favorite) (*models.FavoriteRecord, bool, error)
	Favorites() ([]models.Favorite, error)
	DeleteByURL(url string) error
}

// HistoryStore lists recorded recommendation requests.
//
// Implemented by repositories.HistoryRepository.
type HistoryStore interface {
	Recent(limit int) ([]models.HistoryView, error)
}

// Opts holds the dependencies of a [Server]. History may be nil.
type Opts struct {
	Config    shared.ServerConfig
	Engine    tasks.Engine
	Favorites FavoriteStore
	History   HistoryStore
	Logger    *log.Logger
	Version   string
}

// Server is the recommendation backend.
type Server struct {
	config    shared.ServerConfig
	engine    tasks.Engine
	favorites FavoriteStore
	history   HistoryStore
	logger    *log.Logger
	version   string

	lock       sync.Mutex
	httpServer *http.Server
	router     *BasicRouter
	handler    http.Handler
}

// New creates a server and registers its routes.
func New(opts Opts) *Server {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	s := &Server{
		config:    opts.Config,
		engine:    opts.Engine,
		favorites: opts.Favorites,
		history:   opts.History,
		logger:    opts.Logger,
		version:   opts.Version,
		router:    NewBasicRouter(),
	}

	s.setupRoutes()
	s.handler = chain(s.router, globalMiddleware(s.logger, s.version)...)

	return s
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler { return s.handler }

// Routes lists the registered API paths.
func (s *Server) Routes() []string { return s.router.Routes() }

func (s *Server) setupRoutes() {
	s.router.Use(RequestLogger(s.logger), JSONContentType)

	s.router.Handle(http.MethodPost, "/recommend", http.HandlerFunc(s.recommend))
	s.router.Handler(&FavoritesHandler{store: s.favorites, logger: s.logger})
	if s.history != nil {
		s.router.Handle(http.MethodGet, "/history", http.HandlerFunc(s.listHistory))
	}
}

// Run starts the HTTP server and shuts it down gracefully when ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	addr := s.config.Addr()
	s.logger.Info("starting server", "addr", addr, "routes", s.Routes())

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
	}
	srv := s.httpServer
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		s.logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Warn("server shutdown error", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}
