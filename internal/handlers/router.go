package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Amke0501/Private-Notes-App/internal/auth"
	"github.com/Amke0501/Private-Notes-App/internal/metrics"
	"github.com/Amke0501/Private-Notes-App/internal/middleware"
	"github.com/Amke0501/Private-Notes-App/internal/store"
)

// RouterDeps carries everything the HTTP surface needs. The router itself
// holds no state; all state lives in the store.
type RouterDeps struct {
	Users   store.UserStore
	Notes   store.NoteStore
	Tokens  *auth.TokenService
	Metrics *metrics.Collector
	Logger  *slog.Logger

	AllowedOrigin string

	// AuthLimiter throttles signup/login per IP. Optional.
	AuthLimiter *middleware.IPRateLimiter

	// Gatherer enables the /metrics endpoint. Optional.
	Gatherer prometheus.Gatherer
}

// NewRouter builds the full HTTP surface with the middleware chain applied.
func NewRouter(deps RouterDeps) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "Private Notes API is running"})
	}).Methods("GET")

	if deps.Gatherer != nil {
		r.Handle("/metrics", metrics.Handler(deps.Gatherer)).Methods("GET")
	}

	limited := func(h http.Handler) http.Handler {
		if deps.AuthLimiter == nil {
			return h
		}
		return deps.AuthLimiter.Middleware()(h)
	}
	r.Handle("/api/auth/signup", limited(SignupHandler(deps.Users))).Methods("POST")
	r.Handle("/api/auth/login", limited(LoginHandler(deps.Users, deps.Tokens))).Methods("POST")

	// Authenticated routes
	notesHandler := NewNotesHandler(deps.Notes, deps.Metrics)

	s := r.PathPrefix("/api").Subrouter()
	s.Use(auth.RequireSession(deps.Tokens))
	s.HandleFunc("/auth/logout", LogoutHandler()).Methods("POST")
	s.HandleFunc("/auth/me", MeHandler(deps.Users)).Methods("GET")
	s.HandleFunc("/notes", notesHandler.List).Methods("GET")
	s.HandleFunc("/notes", notesHandler.Create).Methods("POST")
	s.HandleFunc("/notes/{id}", notesHandler.Update).Methods("PUT")
	s.HandleFunc("/notes/{id}", notesHandler.Delete).Methods("DELETE")

	// CORS wraps the router rather than using Subrouter.Use so preflight
	// OPTIONS requests are answered even though no route matches them.
	var handler http.Handler = middleware.CORS(deps.AllowedOrigin)(r)
	handler = deps.Metrics.Middleware()(handler)
	handler = middleware.Logging(deps.Logger)(handler)
	handler = middleware.Recovery(deps.Logger)(handler)

	return handler
}
