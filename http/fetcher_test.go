package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	dochttp "github.com/ragtools/docrag/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body>hello</body></html>"))
	}))
	defer srv.Close()

	f := dochttp.NewFetcher()
	defer f.Close()

	html, err := f.Fetch(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Equal(t, "<html><body>hello</body></html>", html)
}

func TestFetcher_Fetch_sends_user_agent(t *testing.T) {
	t.Parallel()

	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
	}))
	defer srv.Close()

	f := dochttp.NewFetcher(dochttp.WithUserAgent("test-agent/1.0"))
	defer f.Close()

	_, err := f.Fetch(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Equal(t, "test-agent/1.0", gotUA)
}

func TestFetcher_Fetch_non_200_is_error(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	f := dochttp.NewFetcher()
	defer f.Close()

	_, err := f.Fetch(context.Background(), srv.URL)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 404")
}

func TestFetcher_Fetch_respects_context_cancellation(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(5 * time.Second)
	}))
	defer srv.Close()

	f := dochttp.NewFetcher()
	defer f.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := f.Fetch(ctx, srv.URL)

	assert.Error(t, err)
}

func TestFetcher_Close_is_noop(t *testing.T) {
	t.Parallel()

	f := dochttp.NewFetcher(dochttp.WithTimeout(time.Second))
	assert.NoError(t, f.Close())
}
