package metricsexport

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/tcheronneau/homers-go/internal/model"
)

func (r *Registry) absorbSonarr(result model.TaskResult, episode, total *prometheus.GaugeVec) {
	for _, e := range result.SonarrEpisodes {
		v := 0.0
		if e.HasFile {
			v = 1
		}
		episode.WithLabelValues(
			result.Instance,
			fmt.Sprintf("%d", e.SeasonNumber),
			fmt.Sprintf("%d", e.EpisodeNumber),
			e.Title,
			e.Serie,
			e.Sxe,
		).Set(v)
	}
	total.WithLabelValues(result.Instance).Set(float64(len(result.SonarrEpisodes)))
}
