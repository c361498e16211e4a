package server

import (
	"context"
	"net/http"

	"github.com/hirewatch/hirewatch/internal/utils"
	"github.com/hirewatch/hirewatch/pkg/repo"
	"github.com/hirewatch/hirewatch/pkg/session"
	"github.com/hirewatch/hirewatch/pkg/workflow"
)

// Config wires a Server over one hiring session.
type Config struct {
	Hub    *repo.Hub
	Runner *workflow.Runner
	Notes  *NotificationLog // optional; nil = empty notification feed

	// Basic auth is enabled when both are set.
	Username string
	Password string
}

// Server exposes a read-mostly JSON view of the session plus the offer
// decisions and workflow triggers, for dashboards and debugging.
type Server struct {
	hub    *repo.Hub
	runner *workflow.Runner
	notes  *NotificationLog

	username string
	password string

	// session scope; delayed workflow refreshes must outlive the
	// triggering request
	ctx context.Context
}

func New(ctx context.Context, cfg Config) *Server {
	notes := cfg.Notes
	if notes == nil {
		notes = NewNotificationLog(0)
	}
	return &Server{
		hub:      cfg.Hub,
		runner:   cfg.Runner,
		notes:    notes,
		username: cfg.Username,
		password: cfg.Password,
		ctx:      ctx,
	}
}

func (s *Server) store() *session.Store {
	return s.hub.Store()
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.basicAuth(s.handleDashboard))

	mux.HandleFunc("GET /api/state", s.basicAuth(s.handleState))
	mux.HandleFunc("GET /api/candidates", s.basicAuth(s.handleCandidates))
	mux.HandleFunc("GET /api/roles", s.basicAuth(s.handleRoles))
	mux.HandleFunc("GET /api/matches", s.basicAuth(s.handleMatches))
	mux.HandleFunc("GET /api/offers", s.basicAuth(s.handleOffers))

	mux.HandleFunc("POST /api/offers/{id}/approve", s.basicAuth(s.handleApprove))
	mux.HandleFunc("POST /api/offers/{id}/reject", s.basicAuth(s.handleReject))

	mux.HandleFunc("POST /api/workflows/upload", s.basicAuth(s.handleUploadWorkflow))
	mux.HandleFunc("POST /api/workflows/match", s.basicAuth(s.handleMatchWorkflow))
	mux.HandleFunc("POST /api/workflows/offers", s.basicAuth(s.handleOffersWorkflow))

	return mux
}

func (s *Server) Start(addr string) error {
	utils.Log.Infof("Starting server on %s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

func (s *Server) basicAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.username == "" && s.password == "" {
			next(w, r)
			return
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != s.username || pass != s.password {
			w.Header().Set("WWW-Authenticate", `Basic realm="Restricted"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}
