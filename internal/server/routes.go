package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/graph-gophers/graphql-go/relay"
	"go.uber.org/zap"

	"trip-gateway/internal/resolver"
)

// RegisterRoutes sets up the router with all endpoints.
func (s *Server) RegisterRoutes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(s.limiter.Middleware)

	r.Get("/health", s.healthHandler)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	r.With(s.scopeMiddleware).Method(http.MethodPost, "/graphql", &relay.Handler{Schema: s.schema})

	return r
}

// healthHandler provides health information.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	stats := s.db.Health(r.Context())
	code := http.StatusOK
	if stats["status"] != "up" {
		code = http.StatusServiceUnavailable
	}
	respondWithJSON(w, code, stats)
}

// scopeMiddleware resolves the caller and attaches a fresh request scope,
// including a catalog client whose cache lives only as long as the request.
func (s *Server) scopeMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := s.identity.ResolveIdentity(r.Context(), r.Header.Get("Authorization"))
		if err != nil {
			s.logger.Error("identity resolution failed",
				zap.String("request_id", middleware.GetReqID(r.Context())),
				zap.Error(err))
			respondWithError(w, http.StatusInternalServerError, "Internal Server Error")
			return
		}

		scope := resolver.NewScope(user, s.newCatalog(), s.db)
		next.ServeHTTP(w, r.WithContext(resolver.NewContext(r.Context(), scope)))
	})
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}
