// Package readarr adapts Readarr's author library API into canonical
// model.ReadarrAuthor records.
package readarr

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sony/gobreaker/v2"

	"github.com/tcheronneau/homers-go/internal/logging"
	"github.com/tcheronneau/homers-go/internal/model"
	"github.com/tcheronneau/homers-go/internal/providers/httpbase"
)

type author struct {
	AuthorName string `json:"authorName"`
	Monitored  bool   `json:"monitored"`
	Statistics struct {
		BookFileCount int64 `json:"bookFileCount"`
	} `json:"statistics"`
}

// Adapter is one configured Readarr instance.
type Adapter struct {
	Instance string
	client   *httpbase.Client
	breaker  *gobreaker.CircuitBreaker[any]
}

// New builds an Adapter for one configured Readarr instance.
func New(instance, baseURL, apiKey string, httpClient *http.Client) *Adapter {
	return &Adapter{
		Instance: instance,
		client:   httpbase.New(baseURL, httpClient, "X-Api-Key", apiKey),
		breaker:  httpbase.NewBreaker("readarr", instance),
	}
}

// Authors returns every author in the library.
func (a *Adapter) Authors(ctx context.Context) []model.ReadarrAuthor {
	authors, err := httpbase.Execute(a.breaker, func() ([]author, error) {
		return a.fetchAuthors(ctx)
	})
	if err != nil {
		logging.Error().Err(err).Str("instance", a.Instance).Msg("readarr author fetch failed")
		return nil
	}

	out := make([]model.ReadarrAuthor, 0, len(authors))
	for _, au := range authors {
		out = append(out, model.ReadarrAuthor{
			Name:          au.AuthorName,
			Monitored:     au.Monitored,
			BookFileCount: au.Statistics.BookFileCount,
		})
	}
	return out
}

func (a *Adapter) fetchAuthors(ctx context.Context) ([]author, error) {
	reqURL := fmt.Sprintf("%s/api/v1/author", a.client.BaseURL)

	var authors []author
	if err := a.client.GetJSON(ctx, reqURL, &authors); err != nil {
		return nil, err
	}
	return authors, nil
}
