package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"gifticon-keeper/internal/usecase"
)

// Server wires the HTTP surface to the use cases. scanUC may be nil when no
// scan provider is configured; the scan route then answers 501.
type Server struct {
	gifUC  *usecase.GifticonUseCase
	recUC  *usecase.RecommendationUseCase
	scanUC *usecase.ScanUseCase
	auth   *AuthManager
	log    *zerolog.Logger
}

func NewServer(
	gifUC *usecase.GifticonUseCase,
	recUC *usecase.RecommendationUseCase,
	scanUC *usecase.ScanUseCase,
	auth *AuthManager,
	logger *zerolog.Logger,
) *Server {
	return &Server{
		gifUC:  gifUC,
		recUC:  recUC,
		scanUC: scanUC,
		auth:   auth,
		log:    logger,
	}
}

// Routes builds the router with all middlewares attached.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(TraceID(s.log))
	r.Use(RequestLog(s.log))
	r.Use(Recover(s.log))
	r.Use(Timeout(30 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/session", s.handleLogin)
		r.Delete("/auth/session", s.handleLogout)

		r.Group(func(r chi.Router) {
			r.Use(RequireUser(s.auth))

			r.Post("/gifticons", s.handleRegister)
			r.Get("/gifticons", s.handleList)
			r.Get("/gifticons/expiring", s.handleExpiring)
			r.Get("/gifticons/{id}", s.handleGet)
			r.Put("/gifticons/{id}", s.handleUpdate)
			r.Delete("/gifticons/{id}", s.handleDelete)
			r.Post("/gifticons/{id}/toggle-used", s.handleToggleUsed)

			r.Get("/stats/brands", s.handleBrandStats)

			r.Get("/settings", s.handleGetSettings)
			r.Put("/settings", s.handleUpdateSettings)

			r.Get("/recommendation", s.handleRecommendation)
			r.Post("/recommendation/dismiss", s.handleDismiss)

			r.Post("/scan", s.handleScan)
		})
	})

	return r
}
