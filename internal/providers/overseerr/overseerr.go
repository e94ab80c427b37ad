// Package overseerr adapts the Overseerr and Jellyseerr request APIs (the
// two products share an API shape) into canonical model.OverseerrRequest
// records.
package overseerr

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sony/gobreaker/v2"
	"golang.org/x/sync/errgroup"

	"github.com/tcheronneau/homers-go/internal/logging"
	"github.com/tcheronneau/homers-go/internal/model"
	"github.com/tcheronneau/homers-go/internal/providers/httpbase"
)

type requestsResponse struct {
	Results []requestEntry `json:"results"`
}

type requestEntry struct {
	ID     int64 `json:"id"`
	Status int   `json:"status"`
	Type   string `json:"type"`
	Media  struct {
		ID     int64  `json:"tmdbId"`
		Status int    `json:"status"`
	} `json:"media"`
	RequestedBy struct {
		Username      string `json:"username"`
		PlexUsername  string `json:"plexUsername"`
	} `json:"requestedBy"`
	CreatedAt string `json:"createdAt"`
}

func (e requestEntry) requestedBy() string {
	if e.RequestedBy.Username != "" {
		return e.RequestedBy.Username
	}
	if e.RequestedBy.PlexUsername != "" {
		return e.RequestedBy.PlexUsername
	}
	return "Unknown"
}

type titleResponse struct {
	Title string `json:"title"`
	Name  string `json:"name"` // TV responses use "name" rather than "title"
}

func (t titleResponse) resolvedTitle() string {
	if t.Title != "" {
		return t.Title
	}
	return t.Name
}

// Adapter is one configured Overseerr or Jellyseerr instance.
type Adapter struct {
	Instance     string
	Kind         model.OverseerrKind
	defaultTake  int
	client       *httpbase.Client
	breaker      *gobreaker.CircuitBreaker[any]
}

// New builds an Adapter. kind distinguishes Overseerr from Jellyseerr only
// for metric-name prefixing at encode time; both share this exact client.
func New(kind model.OverseerrKind, instance, baseURL, apiKey string, defaultTake int, httpClient *http.Client) *Adapter {
	if defaultTake <= 0 {
		defaultTake = 20
	}
	return &Adapter{
		Instance:    instance,
		Kind:        kind,
		defaultTake: defaultTake,
		client:      httpbase.New(baseURL, httpClient, "X-Api-Key", apiKey),
		breaker:     httpbase.NewBreaker(string(kind), instance),
	}
}

// Requests returns the most recent defaultTake requests, each with its
// media title resolved via a parallel per-request fan-out.
func (a *Adapter) Requests(ctx context.Context) []model.OverseerrRequest {
	entries, err := httpbase.Execute(a.breaker, func() ([]requestEntry, error) {
		return a.fetchRequests(ctx)
	})
	if err != nil {
		logging.Error().Err(err).Str("instance", a.Instance).Str("kind", string(a.Kind)).Msg("request list fetch failed")
		return nil
	}

	out := make([]model.OverseerrRequest, len(entries))
	group, gctx := errgroup.WithContext(ctx)
	for i, e := range entries {
		i, e := i, e
		group.Go(func() error {
			out[i] = model.OverseerrRequest{
				MediaType:     e.Type,
				MediaID:       e.Media.ID,
				RequestStatus: model.RequestStatus(e.Status),
				RequestedBy:   e.requestedBy(),
				MediaStatus:   model.MediaStatus(e.Media.Status),
				MediaTitle:    a.resolveTitle(gctx, e.Type, e.Media.ID),
				RequestedAt:   e.CreatedAt,
			}
			return nil
		})
	}
	_ = group.Wait() // resolveTitle never returns an error; Wait cannot fail.

	return out
}

func (a *Adapter) fetchRequests(ctx context.Context) ([]requestEntry, error) {
	reqURL := fmt.Sprintf("%s/api/v1/request?take=%d&sort=added", a.client.BaseURL, a.defaultTake)

	var resp requestsResponse
	if err := a.client.GetJSON(ctx, reqURL, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// resolveTitle fetches a media item's display title. Failure substitutes
// "Unknown" per spec rather than propagating an error, since a title lookup
// is best-effort enrichment, not part of the request record's identity.
func (a *Adapter) resolveTitle(ctx context.Context, mediaType string, tmdbID int64) string {
	path := "movie"
	if mediaType == "tv" {
		path = "tv"
	}
	reqURL := fmt.Sprintf("%s/api/v1/%s/%d", a.client.BaseURL, path, tmdbID)

	var resp titleResponse
	if err := a.client.GetJSON(ctx, reqURL, &resp); err != nil {
		logging.Warn().Err(err).Str("instance", a.Instance).Int64("tmdb_id", tmdbID).Msg("media title lookup failed")
		return "Unknown"
	}
	title := resp.resolvedTitle()
	if title == "" {
		return "Unknown"
	}
	return title
}
