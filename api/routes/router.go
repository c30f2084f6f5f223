package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/janytree/storefront-dashboard/api/controllers"
	reportcontrollers "github.com/janytree/storefront-dashboard/api/controllers/reports"
	synccontrollers "github.com/janytree/storefront-dashboard/api/controllers/syncs"
	"github.com/janytree/storefront-dashboard/api/middleware"
	"github.com/janytree/storefront-dashboard/internal/report"
	"github.com/janytree/storefront-dashboard/pkg/config"
	"github.com/janytree/storefront-dashboard/pkg/logger"
	"github.com/janytree/storefront-dashboard/pkg/redis"
)

// Params wires the router. Redis may be nil, which disables the readiness
// ping and the sync rate limit. A nil Syncer leaves the sync routes unmounted.
type Params struct {
	Config   *config.Config
	Logger   *logger.Logger
	Reports  report.Service
	Syncer   synccontrollers.Syncer
	Redis    *redis.Client
	Location *time.Location
	Gatherer prometheus.Gatherer
}

func NewRouter(p Params) http.Handler {
	cfg := p.Config
	logg := p.Logger

	var pinger controllers.Pinger
	var rateStore *redis.Client
	if p.Redis != nil {
		pinger = p.Redis
		rateStore = p.Redis
	}

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.HTTP.AllowedOrigins),
	)

	syncPolicy := middleware.NewRateLimitPolicy("sync", cfg.HTTP.SyncRateWindow, cfg.HTTP.SyncRateLimit)
	limits := reportcontrollers.LimitsFromConfig(cfg.Report)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, pinger, logg))
	})

	if p.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(p.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/reports", func(r chi.Router) {
			r.Get("/sales", reportcontrollers.Sales(p.Reports, logg))
			r.Get("/invoices", reportcontrollers.Invoices(p.Reports, limits, logg))
			r.Get("/invoices/export", reportcontrollers.ExportInvoices(p.Reports, logg))
			r.Get("/group-buy", reportcontrollers.GroupBuy(p.Reports, limits, logg))
			r.Get("/inventory", reportcontrollers.Inventory(p.Reports, logg))
			r.Get("/customers", reportcontrollers.Customers(p.Reports, logg))
			r.Get("/raw", reportcontrollers.RawOrders(p.Reports, limits, logg))
		})

		if p.Syncer == nil {
			return
		}
		r.Route("/sync", func(r chi.Router) {
			opts := synccontrollers.Options{Span: cfg.Sync.Window, Location: p.Location}
			r.Get("/status", synccontrollers.Status(p.Syncer))
			if rateStore != nil {
				r.With(middleware.RateLimit(syncPolicy, rateStore, logg)).Post("/", synccontrollers.Trigger(p.Syncer, opts, logg))
			} else {
				r.Post("/", synccontrollers.Trigger(p.Syncer, opts, logg))
			}
		})
	})

	return r
}
