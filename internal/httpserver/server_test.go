package httpserver

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tcheronneau/homers-go/internal/config"
	"github.com/tcheronneau/homers-go/internal/metricsexport"
	"github.com/tcheronneau/homers-go/internal/model"
)

func TestRootReturnsHelloHomers(t *testing.T) {
	router := New(nil, config.ScrapeConfig{DeadlineSeconds: 1})
	srv := httptest.NewServer(router.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/plain")
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "Hello Homers", string(body))
}

func TestMetricsContentNegotiation(t *testing.T) {
	tasks := []model.Task{
		{Kind: model.TaskRadarr, Instance: "main", Run: func(ctx context.Context) model.TaskResult {
			return model.TaskResult{Kind: model.TaskRadarr, Instance: "main"}
		}},
	}
	router := New(tasks, config.ScrapeConfig{DeadlineSeconds: 1})
	srv := httptest.NewServer(router.Handler())
	defer srv.Close()

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/metrics", nil)
	require.NoError(t, err)
	req.Header.Set("Accept", "application/openmetrics-text")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "application/openmetrics-text; version=1.0.0; charset=utf-8", resp.Header.Get("Content-Type"))

	req2, _ := http.NewRequest(http.MethodGet, srv.URL+"/metrics", nil)
	req2.Header.Set("Accept", "text/plain")
	resp2, err := http.DefaultClient.Do(req2)
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, "text/plain; version=0.0.4; charset=utf-8", resp2.Header.Get("Content-Type"))
}

func TestMetricsCancellationReturnsPartialData(t *testing.T) {
	tasks := []model.Task{
		{Kind: model.TaskRadarr, Instance: "slow", Run: func(ctx context.Context) model.TaskResult {
			select {
			case <-time.After(10 * time.Second):
			case <-ctx.Done():
			}
			return model.TaskResult{Kind: model.TaskRadarr, Instance: "slow"}
		}},
	}
	router := New(tasks, config.ScrapeConfig{DeadlineSeconds: 0})
	router.deadline = 100 * time.Millisecond
	srv := httptest.NewServer(router.Handler())
	defer srv.Close()

	start := time.Now()
	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Less(t, time.Since(start), 500*time.Millisecond)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestNegotiateFormatDefaultsToPrometheus(t *testing.T) {
	assert.Equal(t, metricsexport.FormatPrometheus, negotiateFormat(""))
	assert.Equal(t, metricsexport.FormatOpenMetrics, negotiateFormat("application/openmetrics-text;version=1.0.0"))
	assert.Equal(t, metricsexport.FormatPrometheus, negotiateFormat("text/plain"))
}
