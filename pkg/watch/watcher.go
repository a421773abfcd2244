package watch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultSettle is how long a file must stay unchanged before it is ingested
const DefaultSettle = 250 * time.Millisecond

// Watch ingests matching files in dir whenever they are created or written,
// until ctx is cancelled. Bursts of writes to one file are coalesced into a
// single ingest once the file has been quiet for settle. onResult, if not
// nil, is called from the watching goroutine for every ingested file.
func (i *Ingester) Watch(ctx context.Context, dir string, settle time.Duration, onResult func(Result)) error {
	if settle <= 0 {
		settle = DefaultSettle
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch directory %s: %w", dir, err)
	}
	i.Logger.Info("watching directory", zap.String("dir", dir))

	var (
		mu      sync.Mutex
		pending = make(map[string]*time.Timer)
		ready   = make(chan string)
		done    = make(chan struct{})
	)
	defer func() {
		close(done)
		mu.Lock()
		for _, t := range pending {
			t.Stop()
		}
		mu.Unlock()
	}()

	schedule := func(path string) {
		mu.Lock()
		defer mu.Unlock()
		if t, ok := pending[path]; ok {
			// A timer that already fired is delivering path and the file
			// is read after delivery.
			if t.Stop() {
				t.Reset(settle)
			}
			return
		}
		pending[path] = time.AfterFunc(settle, func() {
			select {
			case ready <- path:
			case <-done:
			}
		})
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if !i.Matches(event.Name) {
				continue
			}
			schedule(event.Name)

		case path := <-ready:
			mu.Lock()
			delete(pending, path)
			mu.Unlock()

			res := i.File(ctx, path)
			if res.Err != nil {
				i.Logger.Warn("failed to ingest log", zap.String("path", path), zap.Error(res.Err))
			}
			if onResult != nil {
				onResult(res)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			i.Logger.Warn("watcher error", zap.Error(err))
		}
	}
}
