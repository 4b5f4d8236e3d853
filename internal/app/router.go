package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/gudangkain/gudangkain/internal/auth"
	"github.com/gudangkain/gudangkain/internal/catalog"
	"github.com/gudangkain/gudangkain/internal/ledger"
	"github.com/gudangkain/gudangkain/internal/payroll"
	"github.com/gudangkain/gudangkain/internal/sales"
	"github.com/gudangkain/gudangkain/internal/shared"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger         *slog.Logger
	Config         *Config
	SessionManager *shared.SessionManager
	AuthHandler    *auth.Handler
	CatalogHandler *catalog.Handler
	LedgerHandler  *ledger.Handler
	SalesHandler   *sales.Handler
	PayrollHandler *payroll.Handler
}

// NewRouter constructs the chi.Router. Everything under /api requires an
// authenticated session; /auth and /healthz stay open.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:         params.Logger,
		Config:         params.Config,
		SessionManager: params.SessionManager,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/auth", params.AuthHandler.MountRoutes)

	r.Route("/api", func(r chi.Router) {
		r.Use(auth.RequireLogin)
		params.CatalogHandler.MountRoutes(r)
		params.LedgerHandler.MountRoutes(r)
		params.SalesHandler.MountRoutes(r)
		params.PayrollHandler.MountRoutes(r)
	})

	return r
}
