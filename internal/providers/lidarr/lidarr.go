// Package lidarr adapts Lidarr's artist library API into canonical
// model.LidarrArtist records.
package lidarr

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sony/gobreaker/v2"

	"github.com/tcheronneau/homers-go/internal/logging"
	"github.com/tcheronneau/homers-go/internal/model"
	"github.com/tcheronneau/homers-go/internal/providers/httpbase"
)

type artist struct {
	ArtistName string `json:"artistName"`
	Monitored  bool   `json:"monitored"`
	Statistics struct {
		TrackFileCount int64 `json:"trackFileCount"`
	} `json:"statistics"`
}

// Adapter is one configured Lidarr instance.
type Adapter struct {
	Instance string
	client   *httpbase.Client
	breaker  *gobreaker.CircuitBreaker[any]
}

// New builds an Adapter for one configured Lidarr instance.
func New(instance, baseURL, apiKey string, httpClient *http.Client) *Adapter {
	return &Adapter{
		Instance: instance,
		client:   httpbase.New(baseURL, httpClient, "X-Api-Key", apiKey),
		breaker:  httpbase.NewBreaker("lidarr", instance),
	}
}

// Artists returns every artist in the library.
func (a *Adapter) Artists(ctx context.Context) []model.LidarrArtist {
	artists, err := httpbase.Execute(a.breaker, func() ([]artist, error) {
		return a.fetchArtists(ctx)
	})
	if err != nil {
		logging.Error().Err(err).Str("instance", a.Instance).Msg("lidarr artist fetch failed")
		return nil
	}

	out := make([]model.LidarrArtist, 0, len(artists))
	for _, ar := range artists {
		out = append(out, model.LidarrArtist{
			Name:           ar.ArtistName,
			Monitored:      ar.Monitored,
			TrackFileCount: ar.Statistics.TrackFileCount,
		})
	}
	return out
}

func (a *Adapter) fetchArtists(ctx context.Context) ([]artist, error) {
	reqURL := fmt.Sprintf("%s/api/v1/artist", a.client.BaseURL)

	var artists []artist
	if err := a.client.GetJSON(ctx, reqURL, &artists); err != nil {
		return nil, err
	}
	return artists, nil
}
