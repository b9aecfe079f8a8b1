package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/ragtools/docrag/mock"
	docslog "github.com/ragtools/docrag/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("logs fetch with bytes and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "<html>content</html>", nil
			},
		}

		fetcher := docslog.NewLoggingFetcher(inner, logger)
		html, err := fetcher.Fetch(context.Background(), "https://example.com/docs")

		require.NoError(t, err)
		assert.Equal(t, "<html>content</html>", html)
		output := buf.String()
		assert.Contains(t, output, "fetch")
		assert.Contains(t, output, "url=https://example.com/docs")
		assert.Contains(t, output, "bytes=20")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "", errors.New("network error")
			},
		}

		fetcher := docslog.NewLoggingFetcher(inner, logger)
		_, err := fetcher.Fetch(context.Background(), "https://example.com/docs")

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "fetch")
		assert.Contains(t, output, "err=\"network error\"")
	})

	t.Run("close delegates to the wrapped fetcher", func(t *testing.T) {
		t.Parallel()

		closed := false
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) { return "", nil },
			CloseFn: func() error {
				closed = true
				return nil
			},
		}

		fetcher := docslog.NewLoggingFetcher(inner, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
		require.NoError(t, fetcher.Close())
		assert.True(t, closed)
	})
}
