package tautulli

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tcheronneau/homers-go/internal/geo"
)

func TestSessionsMapsFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "get_activity", r.URL.Query().Get("cmd"))
		assert.Equal(t, "secret", r.URL.Query().Get("apikey"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"response":{"result":"success","message":"","data":{"sessions":[
			{"friendly_name":"alice","full_title":"Some Movie","state":"playing","media_type":"movie",
			 "parent_media_index":"","media_index":"","progress_percent":"42.5","quality_profile":"1080p",
			 "stream_video_full_resolution":"1080p","ip_address_public":""}
		]}}}`))
	}))
	defer srv.Close()

	a := New("main", srv.URL, "secret", srv.Client(), geo.Open(""))
	sessions := a.Sessions(context.Background())

	require.Len(t, sessions, 1)
	assert.Equal(t, "alice", sessions[0].User)
	assert.Equal(t, 42.5, sessions[0].Progress)
}

func TestLibrariesParsesOptionalCounts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"response":{"result":"success","message":"","data":[
			{"section_name":"Movies","section_type":"movie","count":"120","parent_count":"","child_count":"","is_active":1},
			{"section_name":"TV","section_type":"show","count":"30","parent_count":"90","child_count":"500","is_active":0}
		]}}`))
	}))
	defer srv.Close()

	a := New("main", srv.URL, "secret", srv.Client(), geo.Open(""))
	libs := a.Libraries(context.Background())

	require.Len(t, libs, 2)
	assert.Nil(t, libs[0].ParentCount)
	assert.True(t, libs[0].IsActive)
	require.NotNil(t, libs[1].ChildCount)
	assert.Equal(t, int64(500), *libs[1].ChildCount)
}

func TestHistoryReturnsEmptyOnAPIFailureResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"response":{"result":"error","message":"bad apikey","data":null}}`))
	}))
	defer srv.Close()

	a := New("main", srv.URL, "wrong-key", srv.Client(), geo.Open(""))
	history := a.History(context.Background())

	assert.Zero(t, history.TotalPlays)
	assert.Empty(t, history.Entries)
}
