package sonarr

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTodayMapsEpisodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"seasonNumber":1,"episodeNumber":3,"title":"Pilot","airDate":"2026-07-30","hasFile":true,
			 "series":{"title":"Some Show"},
			 "episodeFile":{"quality":{"quality":{"name":"WEBDL-1080p"}}}}
		]`))
	}))
	defer srv.Close()

	a := New("main", srv.URL, "test-key", srv.Client())
	episodes := a.Today(context.Background())

	require.Len(t, episodes, 1)
	assert.Equal(t, "S01E03", episodes[0].Sxe)
	assert.Equal(t, "Some Show", episodes[0].Serie)
	assert.True(t, episodes[0].HasFile)
	assert.Equal(t, "WEBDL-1080p", episodes[0].Quality)
}

func TestMissingLastWeekFiltersHasFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"seasonNumber":1,"episodeNumber":1,"title":"A","airDate":"2026-07-25","hasFile":true,"series":{"title":"S"}},
			{"seasonNumber":1,"episodeNumber":2,"title":"B","airDate":"2026-07-26","hasFile":false,"series":{"title":"S"}}
		]`))
	}))
	defer srv.Close()

	a := New("main", srv.URL, "test-key", srv.Client())
	episodes := a.MissingLastWeek(context.Background())

	require.Len(t, episodes, 1)
	assert.Equal(t, "S01E02", episodes[0].Sxe)
	assert.False(t, episodes[0].HasFile)
}

func TestTodayReturnsEmptyOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	a := New("main", srv.URL, "test-key", srv.Client())
	episodes := a.Today(context.Background())
	assert.Empty(t, episodes)
}
