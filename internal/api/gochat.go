package api

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/npezzotti/go-livechat/internal/config"
	"github.com/npezzotti/go-livechat/internal/database"
	"github.com/npezzotti/go-livechat/internal/stats"
)

type ChatApp struct {
	log        *log.Logger
	db         database.ChatRepository
	stats      stats.StatsProvider
	srv        *http.Server
	sessionTTL time.Duration
	typingTTL  time.Duration
	now        func() time.Time
}

func NewChatApp(router *mux.Router, logger *log.Logger, db database.ChatRepository, statsProvider stats.StatsProvider, cfg *config.Config) *ChatApp {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	s := &ChatApp{
		log:        logger,
		db:         db,
		stats:      statsProvider,
		sessionTTL: cfg.SessionTTL,
		typingTTL:  cfg.TypingTTL,
		now:        time.Now,
	}
	if s.sessionTTL <= 0 {
		s.sessionTTL = config.DefaultSessionTTL
	}
	if s.typingTTL <= 0 {
		s.typingTTL = config.DefaultTypingTTL
	}

	s.registerRoutes(router)

	allowedOrigins := cfg.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	h := handlers.CORS(
		handlers.MaxAge(3600),
		handlers.AllowedOrigins(allowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization", "X-Requested-With"}),
	)(router)

	h = handlers.CombinedLoggingHandler(s.log.Writer(), h)
	h = s.requestIdMiddleware(h)
	h = s.errorHandler(h)

	s.srv = &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

// registerRoutes mounts the API on router. Routes sharing a path are matched
// in registration order, so each action-specific route precedes the catch-all
// that rejects unknown actions.
func (s *ChatApp) registerRoutes(router *mux.Router) {
	router.HandleFunc("/healthz", s.healthCheck).Methods(http.MethodGet)

	router.HandleFunc("/api/auth", s.register).Methods(http.MethodPost).Queries("action", "register")
	router.HandleFunc("/api/auth", s.login).Methods(http.MethodPost).Queries("action", "login")
	router.HandleFunc("/api/auth", s.authMiddleware(s.logout)).Methods(http.MethodPost).Queries("action", "logout")
	router.HandleFunc("/api/auth", s.invalidAction).Methods(http.MethodPost)

	router.HandleFunc("/api/user", s.authMiddleware(s.listUsers)).Methods(http.MethodGet)
	router.HandleFunc("/api/user", s.authMiddleware(s.updateOnlineStatus)).Methods(http.MethodPost)

	router.HandleFunc("/api/messages", s.authMiddleware(s.getMessages)).Methods(http.MethodGet)
	router.HandleFunc("/api/messages", s.authMiddleware(s.sendMessage)).Methods(http.MethodPost).Queries("action", "send")
	router.HandleFunc("/api/messages", s.authMiddleware(s.markRead)).Methods(http.MethodPost).Queries("action", "mark_read")
	router.HandleFunc("/api/messages", s.authMiddleware(s.invalidAction)).Methods(http.MethodPost)

	router.HandleFunc("/api/typing", s.authMiddleware(s.getTyping)).Methods(http.MethodGet)
	router.HandleFunc("/api/typing", s.authMiddleware(s.setTyping)).Methods(http.MethodPost)

	router.MethodNotAllowedHandler = http.HandlerFunc(s.methodNotAllowed)
	router.NotFoundHandler = http.HandlerFunc(s.notFound)
}

func (s *ChatApp) Handler() http.Handler {
	return s.srv.Handler
}

func (s *ChatApp) Start() error {
	s.log.Printf("starting server on %s\n", s.srv.Addr)
	return s.srv.ListenAndServe()
}

func (s *ChatApp) Shutdown(ctx context.Context) error {
	s.log.Println("shutting down HTTP server...")
	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	return nil
}

func (s *ChatApp) incrStat(name string, delta int) {
	if s.stats == nil || delta == 0 {
		return
	}
	s.stats.Add(name, delta)
}
