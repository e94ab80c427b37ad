// Package metricsexport lifts a scrape's []model.TaskResult into a fresh
// Prometheus registry and serialises it in either the Prometheus text or
// OpenMetrics dialect. A Registry is built, absorbed into, and encoded once
// per scrape, then discarded — it is never shared across scrapes and never
// registered against prometheus.DefaultRegisterer.
package metricsexport

import (
	"bytes"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/tcheronneau/homers-go/internal/model"
)

const namespace = "homers"

// Format selects the wire dialect Encode serialises into.
type Format int

const (
	FormatPrometheus Format = iota
	FormatOpenMetrics
)

// Prometheus and OpenMetrics content types, exact per spec.
const (
	ContentTypePrometheus  = "text/plain; version=0.0.4; charset=utf-8"
	ContentTypeOpenMetrics = "application/openmetrics-text; version=1.0.0; charset=utf-8"
)

// Registry is a single scrape's metric surface: a fresh prometheus.Registry
// plus every GaugeVec family it can populate. Construct with New, call
// Absorb once per model.TaskResult, then Encode exactly once.
type Registry struct {
	reg *prometheus.Registry
	registryFamilies

	families []*prometheus.GaugeVec
	simple   []prometheus.Gauge
}

// New builds an empty, fully-registered metric registry for one scrape.
func New() *Registry {
	r := &Registry{reg: prometheus.NewRegistry()}
	r.registerFamilies()
	return r
}

func (r *Registry) gaugeVec(name, help string, labels []string) *prometheus.GaugeVec {
	v := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      name,
		Help:      help,
	}, labels)
	r.reg.MustRegister(v)
	r.families = append(r.families, v)
	return v
}

func (r *Registry) gauge(name, help string) prometheus.Gauge {
	g := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      name,
		Help:      help,
	})
	r.reg.MustRegister(g)
	r.simple = append(r.simple, g)
	return g
}

// Absorb lifts one TaskResult into its corresponding metric family or
// families. The switch is exhaustive over model.TaskKind by construction;
// adding a TaskKind without a matching case here is a programmer error,
// never triggered by adapter data, so it panics rather than silently
// dropping the result.
func (r *Registry) Absorb(result model.TaskResult) {
	switch result.Kind {
	case model.TaskSonarrToday:
		r.absorbSonarr(result, r.sonarrTodayEpisode, r.sonarrTodayEpisodesTotal)
	case model.TaskSonarrMissing:
		r.absorbSonarr(result, r.sonarrMissingEpisode, r.sonarrMissingEpisodesTotal)
	case model.TaskRadarr:
		r.absorbRadarr(result)
	case model.TaskLidarr:
		r.absorbLidarr(result)
	case model.TaskReadarr:
		r.absorbReadarr(result)
	case model.TaskOverseerr, model.TaskJellyseerr:
		r.absorbOverseerr(result)
	case model.TaskTautulliSession:
		r.absorbTautulliSessions(result)
	case model.TaskTautulliLibrary:
		r.absorbTautulliLibraries(result)
	case model.TaskTautulliHistory:
		r.absorbTautulliHistory(result)
	case model.TaskPlexSession:
		r.absorbMediaSession(r.plexFamily, result)
	case model.TaskPlexLibrary:
		r.absorbMediaLibrary(r.plexFamily, result)
	case model.TaskJellyfinSession:
		r.absorbMediaSession(r.jellyfinFamily, result)
	case model.TaskJellyfinLibrary:
		r.absorbMediaLibrary(r.jellyfinFamily, result)
	default:
		panic(fmt.Sprintf("metricsexport: unhandled TaskResult kind %q", result.Kind))
	}
}

// Encode serialises the registry in the requested format, returning the
// exact content type that must accompany the body.
func (r *Registry) Encode(format Format) (contentType string, body []byte, err error) {
	mfs, err := r.reg.Gather()
	if err != nil {
		return "", nil, fmt.Errorf("gather metrics: %w", err)
	}

	var efmt expfmt.Format
	switch format {
	case FormatOpenMetrics:
		efmt = expfmt.NewFormat(expfmt.TypeOpenMetrics)
		contentType = ContentTypeOpenMetrics
	default:
		efmt = expfmt.NewFormat(expfmt.TypeTextPlain)
		contentType = ContentTypePrometheus
	}

	var buf bytes.Buffer
	enc := expfmt.NewEncoder(&buf, efmt)
	for _, mf := range mfs {
		if err := enc.Encode(mf); err != nil {
			return "", nil, fmt.Errorf("encode metric family %s: %w", mf.GetName(), err)
		}
	}
	if closer, ok := enc.(expfmt.Closer); ok {
		if err := closer.Close(); err != nil {
			return "", nil, fmt.Errorf("close encoder: %w", err)
		}
	}

	return contentType, buf.Bytes(), nil
}
