package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/hyunw/bboard/internal/api/handler"
	apimiddleware "github.com/hyunw/bboard/internal/api/middleware"
	"github.com/hyunw/bboard/internal/middleware"
	"github.com/hyunw/bboard/internal/services/auth"
	"github.com/hyunw/bboard/internal/services/board"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger       *slog.Logger
	AuthService  *auth.Service
	BoardService *board.Service
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	authHandler := handler.NewAuthHandler(cfg.AuthService)
	postHandler := handler.NewPostHandler(cfg.BoardService)

	// Create middleware
	authMiddleware := apimiddleware.Auth(cfg.AuthService.Issuer())
	r.Use(apimiddleware.Recovery(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))

	// Auth routes (no token required)
	r.HandleFunc("/auth/register", authHandler.Register).Methods(http.MethodPost)
	r.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)

	// Public post routes
	r.HandleFunc("/posts", postHandler.List).Methods(http.MethodGet)
	r.HandleFunc("/posts/{id}", postHandler.Get).Methods(http.MethodGet)

	// Protected routes (bearer token required)
	r.Handle("/posts", authMiddleware(http.HandlerFunc(postHandler.Create))).Methods(http.MethodPost)
	r.Handle("/posts/{id}/comments", authMiddleware(http.HandlerFunc(postHandler.AddComment))).Methods(http.MethodPost)

	// Health check endpoint (no auth)
	r.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
