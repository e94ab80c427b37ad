package metricsexport

import (
	"time"

	"github.com/tcheronneau/homers-go/internal/model"
)

const dayInSeconds = 86400

func (r *Registry) absorbTautulliSessions(result model.TaskResult) {
	r.tautulliSessionCount.Set(float64(len(result.TautulliSessions)))
	for _, s := range result.TautulliSessions {
		r.tautulliSessionInfo.WithLabelValues(s.User, s.Title, s.State, s.MediaType, s.Quality, s.QualityProfile, s.VideoStream).Set(1)
		r.tautulliSessionProgress.WithLabelValues(s.User, s.Title).Set(s.Progress)
		r.tautulliSessionLocation.WithLabelValues(s.User, s.Title, s.Location.City, s.Location.Country, s.Location.Latitude, s.Location.Longitude).Set(1)
	}
}

func (r *Registry) absorbTautulliLibraries(result model.TaskResult) {
	for _, lib := range result.TautulliLibraries {
		r.tautulliLibraryItemCount.WithLabelValues(lib.SectionName, lib.SectionType).Set(float64(lib.Count))
		r.tautulliLibraryParentCount.WithLabelValues(lib.SectionName, lib.SectionType).Set(float64(optionalInt64(lib.ParentCount)))
		r.tautulliLibraryChildCount.WithLabelValues(lib.SectionName, lib.SectionType).Set(float64(optionalInt64(lib.ChildCount)))
		r.tautulliLibraryActive.WithLabelValues(lib.SectionName, lib.SectionType).Set(boolValue(lib.IsActive))
	}
}

func (r *Registry) absorbTautulliHistory(result model.TaskResult) {
	r.tautulliHistoryTotalPlays.Set(float64(result.TautulliHistory.TotalPlays))

	cutoff := time.Now().Unix() - dayInSeconds
	plays24h := 0
	userWatches := map[string]int{}
	for _, e := range result.TautulliHistory.Entries {
		if e.Date < cutoff {
			continue
		}
		plays24h++
		userWatches[e.WatchUser()]++
	}
	r.tautulliHistoryPlays24h.Set(float64(plays24h))
	for user, count := range userWatches {
		r.tautulliHistoryUserWatches24h.WithLabelValues(user).Set(float64(count))
	}
}

func optionalInt64(p *int64) int64 {
	if p == nil {
		return 0
	}
	return *p
}
