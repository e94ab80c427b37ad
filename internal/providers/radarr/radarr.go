// Package radarr adapts Radarr's movie library API into canonical
// model.RadarrMovie records.
package radarr

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sony/gobreaker/v2"

	"github.com/tcheronneau/homers-go/internal/logging"
	"github.com/tcheronneau/homers-go/internal/model"
	"github.com/tcheronneau/homers-go/internal/providers/httpbase"
)

type movie struct {
	Title       string `json:"title"`
	HasFile     bool   `json:"hasFile"`
	Monitored   bool   `json:"monitored"`
	IsAvailable bool   `json:"isAvailable"`
	TmdbID      int64  `json:"tmdbId"`
}

// Adapter is one configured Radarr instance.
type Adapter struct {
	Instance string
	client   *httpbase.Client
	breaker  *gobreaker.CircuitBreaker[any]
}

// New builds an Adapter for one configured Radarr instance.
func New(instance, baseURL, apiKey string, httpClient *http.Client) *Adapter {
	return &Adapter{
		Instance: instance,
		client:   httpbase.New(baseURL, httpClient, "X-Api-Key", apiKey),
		breaker:  httpbase.NewBreaker("radarr", instance),
	}
}

// Movies returns every movie in the library, with MissingAvailable
// recomputed per the model invariant.
func (a *Adapter) Movies(ctx context.Context) []model.RadarrMovie {
	movies, err := httpbase.Execute(a.breaker, func() ([]movie, error) {
		return a.fetchMovies(ctx)
	})
	if err != nil {
		logging.Error().Err(err).Str("instance", a.Instance).Msg("radarr movie fetch failed")
		return nil
	}

	out := make([]model.RadarrMovie, 0, len(movies))
	for _, m := range movies {
		out = append(out, model.NewRadarrMovie(m.Title, m.HasFile, m.Monitored, m.IsAvailable, m.TmdbID))
	}
	return out
}

func (a *Adapter) fetchMovies(ctx context.Context) ([]movie, error) {
	reqURL := fmt.Sprintf("%s/api/v3/movie", a.client.BaseURL)

	var movies []movie
	if err := a.client.GetJSON(ctx, reqURL, &movies); err != nil {
		return nil, err
	}
	return movies, nil
}
