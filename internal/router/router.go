package router

import (
	"context"
	"net/http"
	"strings"

	_ "pet-care-tracker/docs"
	"pet-care-tracker/internal/domain/pets"
	"pet-care-tracker/internal/domain/reminders"
	"pet-care-tracker/internal/middleware"
	"pet-care-tracker/internal/platform/logger"
	"pet-care-tracker/internal/platform/metrics"
	"pet-care-tracker/internal/ports/auth"
	"pet-care-tracker/internal/tracking"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

var (
	_ pets.Tracker      = (*tracking.Repository)(nil)
	_ reminders.Tracker = (*tracking.Repository)(nil)
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Obligatorio. Quien lo crea lo cierra (main, al apagar).
	Manager *tracking.Manager

	Logger  logger.Logger
	Metrics *metrics.Metrics
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}
	m := opts.Metrics
	if m == nil {
		m = metrics.New()
	}
	mgr := opts.Manager
	if mgr == nil {
		panic("router: Options.Manager is required")
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Recover(log))

	r.Use(middleware.AuthContext(opts.AuthVerifier, log))
	r.Use(middleware.RequestLog(log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", m.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Post("/session/logout", logoutHandler(mgr))

	pets.RegisterRoutes(r, func(ctx context.Context, c auth.Claims) (pets.Tracker, error) {
		repo, err := mgr.Acquire(ctx, c)
		if err != nil {
			return nil, err
		}
		return repo, nil
	})
	reminders.RegisterRoutes(r, func(ctx context.Context, c auth.Claims) (reminders.Tracker, error) {
		repo, err := mgr.Acquire(ctx, c)
		if err != nil {
			return nil, err
		}
		return repo, nil
	})

	return r
}

// logoutHandler godoc
// @Summary Cerrar la sesión del usuario
// @Description Corta las suscripciones y descarta el estado local. La próxima llamada abre una sesión nueva.
// @Tags session
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 204
// @Failure 401 {string} string "unauthorized"
// @Router /session/logout [post]
func logoutHandler(mgr *tracking.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		mgr.Release(claims.UserID)
		w.WriteHeader(http.StatusNoContent)
	}
}
