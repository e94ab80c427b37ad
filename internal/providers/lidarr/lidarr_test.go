package lidarr

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArtistsMapsFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"artistName":"Band A","monitored":true,"statistics":{"trackFileCount":42}}
		]`))
	}))
	defer srv.Close()

	a := New("main", srv.URL, "test-key", srv.Client())
	artists := a.Artists(context.Background())

	require.Len(t, artists, 1)
	assert.Equal(t, "Band A", artists[0].Name)
	assert.Equal(t, int64(42), artists[0].TrackFileCount)
}

func TestArtistsReturnsEmptyOnBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	a := New("main", srv.URL, "test-key", srv.Client())
	assert.Empty(t, a.Artists(context.Background()))
}
