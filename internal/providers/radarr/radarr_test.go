package radarr

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoviesRecomputesMissingAvailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"title":"Movie A","hasFile":false,"monitored":true,"isAvailable":true,"tmdbId":1},
			{"title":"Movie B","hasFile":true,"monitored":true,"isAvailable":true,"tmdbId":2}
		]`))
	}))
	defer srv.Close()

	a := New("main", srv.URL, "test-key", srv.Client())
	movies := a.Movies(context.Background())

	require.Len(t, movies, 2)
	assert.True(t, movies[0].MissingAvailable)
	assert.False(t, movies[1].MissingAvailable)
}

func TestMoviesReturnsEmptyOnTransportFailure(t *testing.T) {
	a := New("main", "http://127.0.0.1:0", "test-key", &http.Client{})
	movies := a.Movies(context.Background())
	assert.Empty(t, movies)
}
