package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"pocketledger/config"
	"pocketledger/database"
	"pocketledger/handlers"
	"pocketledger/middleware"
)

// Server wires the HTTP surface: router, store-backed handlers and the
// token verifier behind the auth middleware.
type Server struct {
	cfg      *config.Config
	store    *database.Store
	verifier middleware.TokenVerifier
	router   *mux.Router
}

func NewServer(cfg *config.Config, store *database.Store, verifier middleware.TokenVerifier) *Server {
	s := &Server{
		cfg:      cfg,
		store:    store,
		verifier: verifier,
		router:   mux.NewRouter(),
	}
	s.registerRoutes()
	return s
}

// registerRoutes mounts the API both at the root and under /api so callers
// can use either prefix.
func (s *Server) registerRoutes() {
	s.registerAPIRoutes(s.router)
	s.registerAPIRoutes(s.router.PathPrefix("/api").Subrouter())
}

func (s *Server) registerAPIRoutes(r *mux.Router) {
	authRequired := middleware.Auth(s.verifier, s.cfg.AuthTimeout)
	tx := handlers.NewTransactionHandler(s.store)

	r.Handle("/transactions", authRequired(http.HandlerFunc(tx.Create))).Methods(http.MethodPost)
	r.Handle("/transactions", authRequired(http.HandlerFunc(tx.List))).Methods(http.MethodGet)
	r.Handle("/transactions/summary", authRequired(http.HandlerFunc(tx.Summary))).Methods(http.MethodGet)
	r.HandleFunc("/health", handlers.Health).Methods(http.MethodGet)
}

// Handler returns the full handler chain for the server.
func (s *Server) Handler() http.Handler {
	h := middleware.CORS(s.cfg.CORSAllowedOrigins)(s.router)
	return middleware.RequestID(h)
}
