package overseerr

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tcheronneau/homers-go/internal/model"
)

func TestRequestsResolvesTitlesAndFallbackUser(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/request", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[
			{"id":1,"status":2,"type":"movie","media":{"tmdbId":603,"status":5},
			 "requestedBy":{"username":"","plexUsername":"plexuser"},"createdAt":"2026-07-01T00:00:00Z"}
		]}`))
	})
	mux.HandleFunc("/api/v1/movie/603", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"title":"The Matrix"}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	a := New(model.KindOverseerr, "main", srv.URL, "test-key", 0, srv.Client())
	requests := a.Requests(context.Background())

	require.Len(t, requests, 1)
	assert.Equal(t, "The Matrix", requests[0].MediaTitle)
	assert.Equal(t, "plexuser", requests[0].RequestedBy)
	assert.Equal(t, model.RequestApproved, requests[0].RequestStatus)
	assert.Equal(t, model.MediaAvailable, requests[0].MediaStatus)
}

func TestRequestsTitleLookupFailureSubstitutesUnknown(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/request", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[
			{"id":1,"status":1,"type":"tv","media":{"tmdbId":9999,"status":1},
			 "requestedBy":{},"createdAt":"2026-07-01T00:00:00Z"}
		]}`))
	})
	mux.HandleFunc("/api/v1/tv/9999", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	a := New(model.KindJellyseerr, "main", srv.URL, "test-key", 0, srv.Client())
	requests := a.Requests(context.Background())

	require.Len(t, requests, 1)
	assert.Equal(t, "Unknown", requests[0].MediaTitle)
	assert.Equal(t, "Unknown", requests[0].RequestedBy)
}
