// Package httpserver provides the exporter's HTTP surface: a root health
// line and the negotiated metrics endpoint, routed with chi (ADR-0016 in
// the original project this idiom is carried from).
package httpserver

import (
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/tcheronneau/homers-go/internal/config"
	"github.com/tcheronneau/homers-go/internal/executor"
	"github.com/tcheronneau/homers-go/internal/logging"
	"github.com/tcheronneau/homers-go/internal/metricsexport"
	"github.com/tcheronneau/homers-go/internal/model"
)

const (
	errFormattingMetrics = "Error formatting metrics. Check the logs."
	errFetchingProviders = "Error while fetching provider data. Check the logs."
)

// Router builds the exporter's two routes against a fixed task list and
// scrape configuration.
type Router struct {
	tasks          []model.Task
	deadline       time.Duration
	maxConcurrency int64
}

// New constructs a Router for the given task registry and scrape config.
func New(tasks []model.Task, scrape config.ScrapeConfig) *Router {
	return &Router{
		tasks:          tasks,
		deadline:       time.Duration(scrape.DeadlineSeconds) * time.Second,
		maxConcurrency: int64(scrape.MaxConcurrency),
	}
}

// Handler returns the fully-configured chi router.
func (router *Router) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)

	r.Get("/", router.handleRoot)
	r.Get("/metrics", router.handleMetrics)

	return r
}

func (router *Router) handleRoot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Hello Homers"))
}

func (router *Router) handleMetrics(w http.ResponseWriter, r *http.Request) {
	results, err := executor.Process(r.Context(), router.tasks, router.deadline, router.maxConcurrency)
	if err != nil {
		logging.Error().Err(err).Msg("scrape executor failed")
		writeError(w, errFetchingProviders)
		return
	}

	reg := metricsexport.New()
	for _, result := range results {
		reg.Absorb(result)
	}

	format := negotiateFormat(r.Header.Get("Accept"))
	contentType, body, err := reg.Encode(format)
	if err != nil {
		logging.Error().Err(err).Msg("metric encoding failed")
		writeError(w, errFormattingMetrics)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func writeError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write([]byte(message))
}

// negotiateFormat selects OpenMetrics when the Accept header names a media
// type whose sub-type is openmetrics-text, Prometheus text otherwise.
func negotiateFormat(accept string) metricsexport.Format {
	for _, part := range strings.Split(accept, ",") {
		mediaType, _, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		if strings.HasSuffix(mediaType, "/openmetrics-text") {
			return metricsexport.FormatOpenMetrics
		}
	}
	return metricsexport.FormatPrometheus
}
