package metricsexport

import "github.com/tcheronneau/homers-go/internal/model"

// absorbMediaSession handles the {plex,jellyfin}_session_* and _user_active
// families. Bandwidth is summed across f.sessionBandwidth's LAN/WAN buckets
// only after the session loop below completes, per spec: the aggregation is
// a load-bearing ordering fix, not an incidental detail.
func (r *Registry) absorbMediaSession(f mediaServerFamily, result model.TaskResult) {
	f.sessionCount.WithLabelValues(result.Instance).Set(float64(len(result.Sessions)))

	activeUsers := make(map[string]bool, len(result.Sessions))
	var lanKbps, wanKbps int64

	for _, s := range result.Sessions {
		f.sessionInfo.WithLabelValues(result.Instance, s.User, s.Title, string(s.State), s.Platform, string(s.StreamDecision), s.MediaType, s.Quality).Set(1)
		f.sessionProgress.WithLabelValues(result.Instance, s.User, s.Title).Set(s.Progress)
		f.sessionLocation.WithLabelValues(result.Instance, s.User, s.Title, s.Location.City, s.Location.Country, s.Location.Latitude, s.Location.Longitude).Set(1)
		activeUsers[s.User] = true

		switch s.Bandwidth.Location {
		case model.BandwidthLAN:
			lanKbps += s.Bandwidth.Kbps
		case model.BandwidthWAN:
			wanKbps += s.Bandwidth.Kbps
		}
	}

	if f.sessionBandwidth != nil {
		f.sessionBandwidth.WithLabelValues(result.Instance, "LAN").Set(float64(lanKbps))
		f.sessionBandwidth.WithLabelValues(result.Instance, "WAN").Set(float64(wanKbps))
	}

	for _, u := range result.Users {
		v := 0.0
		if activeUsers[u.Name] {
			v = 1
		}
		f.userActive.WithLabelValues(result.Instance, u.Name).Set(v)
	}
}

// absorbMediaLibrary handles the {plex,jellyfin}_library_* per-library
// gauges plus the instance-wide movie/show/season/episode aggregates.
func (r *Registry) absorbMediaLibrary(f mediaServerFamily, result model.TaskResult) {
	var movies, shows, seasons, episodes int64

	for _, lib := range result.LibraryCounts {
		f.libraryCount.WithLabelValues(result.Instance, lib.Name, string(lib.MediaType)).Set(float64(lib.Count))
		f.libraryChildCount.WithLabelValues(result.Instance, lib.Name, string(lib.MediaType)).Set(float64(optionalInt64(lib.ChildCount)))
		f.libraryGrandChild.WithLabelValues(result.Instance, lib.Name, string(lib.MediaType)).Set(float64(optionalInt64(lib.GrandChildCount)))

		switch lib.MediaType {
		case model.LibraryMovie:
			movies += lib.Count
		case model.LibraryShow:
			shows += lib.Count
			seasons += optionalInt64(lib.ChildCount)
			episodes += optionalInt64(lib.GrandChildCount)
		}
	}

	f.movieCount.WithLabelValues(result.Instance).Set(float64(movies))
	f.showCount.WithLabelValues(result.Instance).Set(float64(shows))
	f.seasonCount.WithLabelValues(result.Instance).Set(float64(seasons))
	f.episodeCount.WithLabelValues(result.Instance).Set(float64(episodes))
}
