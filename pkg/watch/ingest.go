package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kosciej/cabrillo-log/pkg/archive"
	"github.com/kosciej/cabrillo-log/pkg/cabrillo"
	"github.com/kosciej/cabrillo-log/pkg/config"
)

// DefaultConcurrency is used when the configuration does not set one
const DefaultConcurrency = 4

// Result is the outcome of ingesting one file
type Result struct {
	Path string

	// QSOs is the number of QSO lines parsed
	QSOs int

	// Errors holds per-QSO validation failures. The log is archived anyway
	// and marked invalid.
	Errors []error

	// Err is set when the file could not be read, parsed or archived
	Err error

	// Submission is nil unless the log was archived
	Submission *archive.Submission
}

// OK reports whether the file parsed and validated cleanly
func (r Result) OK() bool {
	return r.Err == nil && len(r.Errors) == 0
}

// Ingester parses files and saves them to an archive. With a nil Store it
// only parses and validates.
type Ingester struct {
	Store       archive.Store
	Extensions  []string
	Concurrency int
	Logger      *zap.Logger
}

// New creates an Ingester using the ingest settings of cfg
func New(store archive.Store, cfg *config.Config, logger *zap.Logger) *Ingester {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ingester{
		Store:       store,
		Extensions:  cfg.IngestExtensions,
		Concurrency: cfg.IngestConcurrency,
		Logger:      logger,
	}
}

// Matches reports whether name has one of the ingest extensions
func (i *Ingester) Matches(name string) bool {
	cfg := config.Config{IngestExtensions: i.Extensions}
	return cfg.HasIngestExtension(name)
}

// File ingests a single file
func (i *Ingester) File(ctx context.Context, path string) Result {
	res := Result{Path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		res.Err = fmt.Errorf("failed to read %s: %w", path, err)
		return res
	}

	content := string(data)
	log, err := cabrillo.Parse(content)
	if err != nil {
		res.Err = fmt.Errorf("failed to parse %s: %w", path, err)
		return res
	}
	res.QSOs = len(log.QSOs)
	res.Errors = log.ValidateAll()

	if i.Store == nil {
		return res
	}

	sub := archive.NewSubmission(content, log)
	if err := i.Store.Save(ctx, sub); err != nil {
		res.Err = fmt.Errorf("failed to archive %s: %w", path, err)
		return res
	}
	res.Submission = sub

	i.Logger.Info("ingested log",
		zap.String("path", path),
		zap.String("id", sub.ID.String()),
		zap.String("callsign", sub.Callsign),
		zap.Int("qsos", sub.QSOCount),
		zap.Bool("valid", sub.Valid),
	)
	return res
}

// Files ingests paths concurrently. Results are returned in the order of
// paths. The only error returned is the context's.
func (i *Ingester) Files(ctx context.Context, paths []string) ([]Result, error) {
	results := make([]Result, len(paths))

	limit := i.Concurrency
	if limit <= 0 {
		limit = DefaultConcurrency
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for idx, path := range paths {
		idx, path := idx, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[idx] = i.File(ctx, path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Dir ingests every matching file directly inside dir, in name order
func (i *Ingester) Dir(ctx context.Context, dir string) ([]Result, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !i.Matches(entry.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(paths)

	return i.Files(ctx, paths)
}
