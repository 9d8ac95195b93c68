package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/Harshitk-cp/rks/internal/api/handlers"
	mw "github.com/Harshitk-cp/rks/internal/api/middleware"
	"github.com/Harshitk-cp/rks/internal/buildconfig"
	"github.com/Harshitk-cp/rks/internal/domain"
	"github.com/Harshitk-cp/rks/internal/service"
	"github.com/Harshitk-cp/rks/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Options tune the HTTP surface. Zero values fall back to defaults.
type Options struct {
	RateLimitRPS   float64
	RateLimitBurst int
	APIToken       string
	RecentRuns     int
	// Registry receives HTTP metrics; nil uses the default registry.
	Registry *prometheus.Registry
}

// App holds the router and the agent it serves.
type App struct {
	Router *chi.Mux
	Agent  *service.AgentService

	dataDir string
	done    chan struct{}
}

// NewApp wires the JSONL stores under dataDir, the agent service and the
// HTTP routes.
func NewApp(dataDir string, logger *zap.Logger, opts Options) *App {
	// Stores
	nodeStore := store.NewNodeStore(dataDir)
	contradictionStore := store.NewContradictionStore(dataDir)
	runStore := store.NewRunStore(dataDir)

	// Services
	agentSvc := service.NewAgentService(nodeStore, contradictionStore, runStore, logger)

	// Handlers
	nodeHandler := handlers.NewNodeHandler(agentSvc, logger)
	contradictionHandler := handlers.NewContradictionHandler(agentSvc, logger)
	runHandler := handlers.NewRunHandler(agentSvc, logger)
	stateHandler := handlers.NewStateHandler(agentSvc, recentRuns(opts), logger)

	r := chi.NewRouter()
	app := &App{
		Router:  r,
		Agent:   agentSvc,
		dataDir: nodeStore.Dir(),
		done:    make(chan struct{}),
	}

	var registerer prometheus.Registerer = prometheus.DefaultRegisterer
	var gatherer prometheus.Gatherer = prometheus.DefaultGatherer
	if opts.Registry != nil {
		registerer, gatherer = opts.Registry, opts.Registry
	}
	metricsCollector := mw.NewMetricsCollector(registerer)

	rps, burst := opts.RateLimitRPS, opts.RateLimitBurst
	if rps <= 0 {
		rps = 100
	}
	if burst <= 0 {
		burst = 20
	}

	// Global middleware (order matters)
	r.Use(mw.RequestID)                       // Generate/extract request ID first
	r.Use(middleware.RealIP)                  // Extract real IP
	r.Use(metricsCollector.Middleware)        // Collect metrics
	r.Use(mw.Logging(logger))                 // Log all requests
	r.Use(middleware.Recoverer)               // Recover from panics
	r.Use(mw.RateLimit(rps, burst, app.done)) // Rate limiting

	// Health and metrics (no auth)
	r.Get("/health", app.healthHandler())
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Route("/v1", func(r chi.Router) {
		r.Use(mw.BearerToken(opts.APIToken))

		r.Get("/state", stateHandler.Get)
		r.Get("/layers", layersHandler)

		r.Route("/nodes", func(r chi.Router) {
			r.Get("/", nodeHandler.List)
			r.Post("/", nodeHandler.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", nodeHandler.GetByID)
				r.Patch("/", nodeHandler.Patch)
				// HTML forms cannot send PATCH.
				r.Post("/", nodeHandler.Patch)
				r.Get("/gates", nodeHandler.Gates)
			})
		})

		r.Route("/contradictions", func(r chi.Router) {
			r.Get("/", contradictionHandler.List)
			r.Post("/", contradictionHandler.Create)
		})

		r.Route("/runs", func(r chi.Router) {
			r.Get("/", runHandler.List)
			r.Post("/", runHandler.Create)
		})
	})

	return app
}

// Close stops background work started by the middleware.
func (app *App) Close() {
	select {
	case <-app.done:
	default:
		close(app.done)
	}
}

func recentRuns(opts Options) int {
	if opts.RecentRuns > 0 {
		return opts.RecentRuns
	}
	return service.DefaultRecentRuns
}

func (app *App) healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if err := checkDataDir(app.dataDir); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]string{"status": "error", "error": err.Error()})
			return
		}

		resp := map[string]string{"status": "ok"}
		for k, v := range buildconfig.VersionInfo() {
			resp[k] = v
		}
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(resp)
	}
}

// checkDataDir accepts a data dir that does not exist yet; the first append
// creates it.
func checkDataDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("data dir %s is not a directory", dir)
	}
	return nil
}

func layersHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(domain.AllLayers())
}

// Ensure stores satisfy interfaces at compile time.
var (
	_ domain.NodeStore          = (*store.NodeStore)(nil)
	_ domain.ContradictionStore = (*store.ContradictionStore)(nil)
	_ domain.RunStore           = (*store.RunStore)(nil)
)
