package httpserver

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	app "github.com/bryanwahyu/ratemycode/internal/application/analysis"
	domain "github.com/bryanwahyu/ratemycode/internal/domain/analysis"
	"github.com/bryanwahyu/ratemycode/internal/middleware"
)

// Options untuk router: root directory yang dipantau + kredensial analisa
type Options struct {
	WatchRoot string
	Persona   domain.Persona
	APIKey    string
}

type Router struct {
	svc  *app.Service
	opts Options
}

// NewRouter exposes the history store and an on-demand analyze endpoint on
// the local API.
func NewRouter(svc *app.Service, db *sql.DB, opts Options) http.Handler {
	r := &Router{svc: svc, opts: opts}
	mux := chi.NewRouter()

	mux.Use(middleware.LoggingMiddleware)
	mux.Use(middleware.MetricsMiddleware)
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	checkers := map[string]middleware.HealthChecker{}
	if db != nil {
		checkers["history"] = &middleware.DatabaseHealthChecker{DB: db}
	}
	mux.Get("/health", middleware.HealthHandler(checkers))
	mux.Get("/metrics", middleware.MetricsHandler)

	limiter := middleware.NewRateLimiter(5, 1)
	mux.Route("/v1", func(rt chi.Router) {
		rt.Get("/reports/latest", r.wrap(r.handleLatest))
		rt.Get("/reports/{id}", r.wrap(r.handleGet))
		rt.Get("/reports", r.wrap(r.handlePaginate))
		rt.Get("/summary", r.wrap(r.handleSummary))
		rt.With(middleware.RateLimitMiddleware(limiter)).Post("/analyze", r.wrap(r.handleAnalyze))
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := h(w, req); err != nil {
			if errors.Is(err, sql.ErrNoRows) || errors.Is(err, os.ErrNotExist) {
				http.Error(w, "not found", http.StatusNotFound)
				return
			}
			if errors.Is(err, errBadRequest) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}

var errBadRequest = errors.New("bad request")

// GET /v1/reports/latest?limit=
func (r *Router) handleLatest(w http.ResponseWriter, req *http.Request) error {
	limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))
	list, err := r.svc.Latest(req.Context(), limit)
	if err != nil {
		return err
	}
	return writeJSON(w, list)
}

// GET /v1/reports/{id}
func (r *Router) handleGet(w http.ResponseWriter, req *http.Request) error {
	id, err := strconv.ParseInt(chi.URLParam(req, "id"), 10, 64)
	if err != nil {
		return fmt.Errorf("%w: invalid id", errBadRequest)
	}
	rec, err := r.svc.Get(req.Context(), id)
	if err != nil {
		return err
	}
	return writeJSON(w, rec)
}

// GET /v1/reports?page=&page_size=
func (r *Router) handlePaginate(w http.ResponseWriter, req *http.Request) error {
	page, _ := strconv.Atoi(req.URL.Query().Get("page"))
	size, _ := strconv.Atoi(req.URL.Query().Get("page_size"))
	res, err := r.svc.Paginate(req.Context(), page, size)
	if err != nil {
		return err
	}
	return writeJSON(w, res)
}

// GET /v1/summary?since_days=
func (r *Router) handleSummary(w http.ResponseWriter, req *http.Request) error {
	days, _ := strconv.Atoi(req.URL.Query().Get("since_days"))
	sum, err := r.svc.Summary(req.Context(), days)
	if err != nil {
		return err
	}
	return writeJSON(w, sum)
}

// POST /v1/analyze
// Body: {"path": "<file under the watch root>"}
func (r *Router) handleAnalyze(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Path string `json:"path"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	if body.Path == "" {
		return fmt.Errorf("%w: path is required", errBadRequest)
	}

	path, err := r.resolvePath(body.Path)
	if err != nil {
		return err
	}
	source, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	middleware.IncrementAnalyses()
	report := r.svc.Process(req.Context(), domain.AnalysisRequest{
		FilePath:   path,
		SourceText: string(source),
		Language:   domain.LanguageForPath(path),
		Persona:    r.opts.Persona,
		APIKey:     r.opts.APIKey,
	})
	return writeJSON(w, report)
}

// resolvePath keeps the analyze endpoint inside the watched tree; the local
// API must not become an arbitrary file reader.
func (r *Router) resolvePath(p string) (string, error) {
	if !filepath.IsAbs(p) {
		p = filepath.Join(r.opts.WatchRoot, p)
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errBadRequest, err)
	}
	root := filepath.Clean(r.opts.WatchRoot)
	if abs != root && !strings.HasPrefix(abs, root+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: path escapes watch root", errBadRequest)
	}
	return abs, nil
}

func writeJSON(w http.ResponseWriter, v any) error {
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(v)
}
