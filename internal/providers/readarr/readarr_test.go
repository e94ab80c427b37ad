package readarr

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthorsMapsFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"authorName":"Author A","monitored":false,"statistics":{"bookFileCount":7}}
		]`))
	}))
	defer srv.Close()

	a := New("main", srv.URL, "test-key", srv.Client())
	authors := a.Authors(context.Background())

	require.Len(t, authors, 1)
	assert.Equal(t, "Author A", authors[0].Name)
	assert.False(t, authors[0].Monitored)
	assert.Equal(t, int64(7), authors[0].BookFileCount)
}
