// Package adapthttp implements the HTTP adapter for the application.
package adapthttp

import (
	"net/http"

	"dietcoach/internal/app"
	"dietcoach/internal/domain"
)

// Server is the driving HTTP adapter: the chat webhook plus the
// operator console API.
type Server struct {
	coach    *app.CoachService
	authSvc  *app.AuthService
	plans    *app.PlanService
	profiles domain.ProfileRepository
	weights  domain.WeightRepository

	oidcConfig OIDCConfig
	// channelSecret enables LINE-style HMAC verification of webhook
	// bodies when non-empty.
	channelSecret string
	disableAuth   bool
}

// Option tweaks Server construction.
type Option func(*Server)

// WithChannelSecret enables webhook signature verification.
func WithChannelSecret(secret string) Option {
	return func(s *Server) { s.channelSecret = secret }
}

// WithOIDC enables SSO login for the operator console.
func WithOIDC(cfg OIDCConfig) Option {
	return func(s *Server) { s.oidcConfig = cfg }
}

// WithoutConsoleAuth disables console authentication (tests only).
func WithoutConsoleAuth() Option {
	return func(s *Server) { s.disableAuth = true }
}

// New creates a Server wired to the coach, auth service and read stores.
func New(coach *app.CoachService, authSvc *app.AuthService, plans *app.PlanService,
	profiles domain.ProfileRepository, weights domain.WeightRepository, opts ...Option) *Server {
	s := &Server{coach: coach, authSvc: authSvc, plans: plans, profiles: profiles, weights: weights}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	api.HandleFunc("/chat", s.handleChat)

	api.HandleFunc("/auth/login", s.handleLogin)
	api.HandleFunc("/auth/logout", s.handleLogout)
	api.HandleFunc("/auth/setup", s.handleSetupOperator)
	api.HandleFunc("/auth/config", s.handleConfig)
	api.HandleFunc("/auth/sso/login", s.handleSSOLogin)
	api.HandleFunc("/auth/sso/callback", s.handleSSOCallback)

	console := http.NewServeMux()
	console.HandleFunc("GET /users/{userID}", s.handleConsoleUser)
	console.HandleFunc("GET /users/{userID}/weights", s.handleConsoleWeights)
	api.Handle("/console/", http.StripPrefix("/console", s.authMiddleware(console)))

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", api))

	return s.loggingMiddleware(root)
}
