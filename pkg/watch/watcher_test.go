package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/kosciej/cabrillo-log/pkg/archive"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestIngester_Watch(t *testing.T) {
	dir := t.TempDir()
	store := archive.NewMemoryStore()
	ing := newTestIngester(store)

	ctx, cancel := context.WithCancel(context.Background())
	results := make(chan Result, 10)
	done := make(chan error, 1)
	go func() {
		done <- ing.Watch(ctx, dir, 50*time.Millisecond, func(r Result) { results <- r })
	}()

	// Give the watcher time to register the directory.
	time.Sleep(100 * time.Millisecond)

	writeFile(t, dir, "ignored.txt", validLog)
	path := filepath.Join(dir, "new.log")
	f, err := os.Create(path)
	require.NoError(t, err)
	_, err = f.WriteString(validLog[:20])
	require.NoError(t, err)
	_, err = f.WriteString(validLog[20:])
	require.NoError(t, err)
	require.NoError(t, f.Close())

	select {
	case res := <-results:
		assert.Equal(t, path, res.Path)
		require.NoError(t, res.Err)
		assert.True(t, res.OK())
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for ingest")
	}

	cancel()
	require.NoError(t, <-done)

	select {
	case res := <-results:
		t.Fatalf("unexpected extra ingest of %s", res.Path)
	default:
	}

	subs, err := store.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, subs, 1)
}

func TestIngester_WatchMissingDir(t *testing.T) {
	err := newTestIngester(nil).Watch(context.Background(), filepath.Join(t.TempDir(), "missing"), 0, nil)
	require.Error(t, err)
}
