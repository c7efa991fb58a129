package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	store  Store
	tokens *TokenIssuer
	log    *slog.Logger
	router chi.Router
}

// New creates a new Server with all routes configured.
func New(store Store, tokens *TokenIssuer, log *slog.Logger) *Server {
	s := &Server{
		store:  store,
		tokens: tokens,
		log:    log,
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Post("/signin", s.handleSignIn)
		r.Post("/signup", s.handleSignUp)

		// Everything else requires a bearer token.
		r.Group(func(r chi.Router) {
			r.Use(BearerAuth(s.tokens))

			r.Get("/user", s.handleListUsers)
			r.Get("/user/me", s.handleCurrentUser)
			r.Get("/user/invite_code", s.handleInviteCode)

			r.Route("/current", func(r chi.Router) {
				r.Post("/start", s.handleStartSession)
				r.Get("/active", s.handleSessionStatus)
				r.Put("/active/stop", s.handleStopSession)
				r.Put("/active/exercise/{id}/{outcome}", s.handleExerciseOutcome)
			})

			// Catalog management is restricted to trainers.
			r.Group(func(r chi.Router) {
				r.Use(TrainerOnly)

				r.Get("/category", s.handleListCategories)
				r.Post("/category", s.handleCreateCategory)
				r.Put("/category/{id}", s.handleUpdateCategory)
				r.Delete("/category/{id}", s.handleDeleteCategory)

				r.Get("/exercise", s.handleListExercises)
				r.Post("/exercise", s.handleCreateExercise)
				r.Put("/exercise/{id}", s.handleUpdateExercise)
				r.Delete("/exercise/{id}", s.handleDeleteExercise)

				r.Get("/experience", s.handleListExperiences)
				r.Post("/experience", s.handleCreateExperience)
				r.Put("/experience/{id}", s.handleUpdateExperience)
				r.Delete("/experience/{id}", s.handleDeleteExperience)

				r.Get("/training", s.handleListTrainings)
				r.Post("/training", s.handleCreateTraining)
				r.Put("/training/{id}", s.handleUpdateTraining)
				r.Delete("/training/{id}", s.handleDeleteTraining)
			})
		})
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Headers are already out; nothing to do but note it.
		slog.Default().Error("encoding response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
