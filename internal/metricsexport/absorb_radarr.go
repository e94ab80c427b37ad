package metricsexport

import "github.com/tcheronneau/homers-go/internal/model"

func boolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func (r *Registry) absorbRadarr(result model.TaskResult) {
	monitored := 0
	missing := 0
	for _, m := range result.RadarrMovies {
		r.radarrMovieHasFile.WithLabelValues(result.Instance, m.Title).Set(boolValue(m.HasFile))
		r.radarrMovieMonitored.WithLabelValues(result.Instance, m.Title).Set(boolValue(m.Monitored))
		r.radarrMovieAvailable.WithLabelValues(result.Instance, m.Title).Set(boolValue(m.IsAvailable))
		if m.Monitored {
			monitored++
		}
		if m.MissingAvailable {
			missing++
		}
	}
	r.radarrMoviesTotal.WithLabelValues(result.Instance).Set(float64(len(result.RadarrMovies)))
	r.radarrMoviesMonitoredTotal.WithLabelValues(result.Instance).Set(float64(monitored))
	r.radarrMoviesMissingTotal.WithLabelValues(result.Instance).Set(float64(missing))
}

func (r *Registry) absorbLidarr(result model.TaskResult) {
	monitored := 0
	var tracks int64
	for _, a := range result.LidarrArtists {
		r.lidarrArtistMonitored.WithLabelValues(result.Instance, a.Name).Set(boolValue(a.Monitored))
		if a.Monitored {
			monitored++
		}
		tracks += a.TrackFileCount
	}
	r.lidarrArtistsTotal.WithLabelValues(result.Instance).Set(float64(len(result.LidarrArtists)))
	r.lidarrMonitoredArtistsTotal.WithLabelValues(result.Instance).Set(float64(monitored))
	r.lidarrTracksTotal.WithLabelValues(result.Instance).Set(float64(tracks))
}

func (r *Registry) absorbReadarr(result model.TaskResult) {
	monitored := 0
	var books int64
	for _, a := range result.ReadarrAuthors {
		r.readarrAuthorMonitored.WithLabelValues(result.Instance, a.Name).Set(boolValue(a.Monitored))
		if a.Monitored {
			monitored++
		}
		books += a.BookFileCount
	}
	r.readarrAuthorsTotal.WithLabelValues(result.Instance).Set(float64(len(result.ReadarrAuthors)))
	r.readarrMonitoredAuthorsTotal.WithLabelValues(result.Instance).Set(float64(monitored))
	r.readarrBooksTotal.WithLabelValues(result.Instance).Set(float64(books))
}
