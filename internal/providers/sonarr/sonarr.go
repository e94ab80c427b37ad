// Package sonarr adapts Sonarr's calendar API into canonical
// model.SonarrEpisode records.
package sonarr

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/tcheronneau/homers-go/internal/logging"
	"github.com/tcheronneau/homers-go/internal/model"
	"github.com/tcheronneau/homers-go/internal/providers/httpbase"
)

// episode is the wire shape of one Sonarr v3 calendar entry; only the
// fields the exporter cares about are declared.
type episode struct {
	SeasonNumber  int64  `json:"seasonNumber"`
	EpisodeNumber int64  `json:"episodeNumber"`
	Title         string `json:"title"`
	AirDate       string `json:"airDate"`
	HasFile       bool   `json:"hasFile"`
	Series        struct {
		Title string `json:"title"`
	} `json:"series"`
	EpisodeFile *struct {
		Quality struct {
			Quality struct {
				Name string `json:"name"`
			} `json:"quality"`
		} `json:"quality"`
	} `json:"episodeFile"`
}

// quality returns the episode file's resolution name, or "" when the
// episode has no file yet (SPEC_FULL.md §3.1: surfaced as a field on
// model.SonarrEpisode, never as a metric label).
func (e episode) quality() string {
	if e.EpisodeFile == nil {
		return ""
	}
	return e.EpisodeFile.Quality.Quality.Name
}

// Adapter is one configured Sonarr instance.
type Adapter struct {
	Instance string
	client   *httpbase.Client
	breaker  *gobreaker.CircuitBreaker[any]
}

// New builds an Adapter for one configured Sonarr instance.
func New(instance, baseURL, apiKey string, httpClient *http.Client) *Adapter {
	return &Adapter{
		Instance: instance,
		client:   httpbase.New(baseURL, httpClient, "X-Api-Key", apiKey),
		breaker:  httpbase.NewBreaker("sonarr", instance),
	}
}

// Today returns today's calendar window (local midnight to local midnight
// +24h), per spec: "window = today, 24h local".
func (a *Adapter) Today(ctx context.Context) []model.SonarrEpisode {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := start.Add(24 * time.Hour)
	return a.calendar(ctx, start, end, false)
}

// MissingLastWeek returns episodes aired in the last 7 days that have not
// yet been downloaded.
func (a *Adapter) MissingLastWeek(ctx context.Context) []model.SonarrEpisode {
	now := time.Now()
	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	start := end.AddDate(0, 0, -7)
	return a.calendar(ctx, start, end, true)
}

func (a *Adapter) calendar(ctx context.Context, start, end time.Time, missingOnly bool) []model.SonarrEpisode {
	episodes, err := httpbase.Execute(a.breaker, func() ([]episode, error) {
		return a.fetchCalendar(ctx, start, end)
	})
	if err != nil {
		logging.Error().Err(err).Str("instance", a.Instance).Msg("sonarr calendar fetch failed")
		return nil
	}

	out := make([]model.SonarrEpisode, 0, len(episodes))
	for _, e := range episodes {
		if missingOnly && e.HasFile {
			continue
		}
		out = append(out, model.SonarrEpisode{
			Sxe:           model.NewSxe(e.SeasonNumber, e.EpisodeNumber),
			SeasonNumber:  e.SeasonNumber,
			EpisodeNumber: e.EpisodeNumber,
			Title:         e.Title,
			Serie:         e.Series.Title,
			AirDate:       e.AirDate,
			HasFile:       e.HasFile,
			Quality:       e.quality(),
		})
	}
	return out
}

func (a *Adapter) fetchCalendar(ctx context.Context, start, end time.Time) ([]episode, error) {
	q := url.Values{}
	q.Set("start", start.Format("2006-01-02"))
	q.Set("end", end.Format("2006-01-02"))

	reqURL := fmt.Sprintf("%s/api/v3/calendar?%s", a.client.BaseURL, q.Encode())

	var episodes []episode
	if err := a.client.GetJSON(ctx, reqURL, &episodes); err != nil {
		return nil, err
	}
	return episodes, nil
}
