package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kosciej/cabrillo-log/pkg/enricher"
	"github.com/kosciej/cabrillo-log/pkg/generator"
	"github.com/kosciej/cabrillo-log/pkg/watch"
)

func TestWithMigrationsTable(t *testing.T) {
	assert.Equal(t,
		"postgres://u@localhost/db?x-migrations-table=cabrillo_schema_migrations",
		withMigrationsTable("postgres://u@localhost/db"))
	assert.Equal(t,
		"postgres://u@localhost/db?sslmode=disable&x-migrations-table=cabrillo_schema_migrations",
		withMigrationsTable("postgres://u@localhost/db?sslmode=disable"))
}

func TestWaitFor(t *testing.T) {
	t.Run("ready after retries", func(t *testing.T) {
		calls := 0
		err := waitFor("thing", func() error {
			calls++
			if calls < 3 {
				return errors.New("not yet")
			}
			return nil
		}, 5, time.Millisecond)
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("gives up", func(t *testing.T) {
		err := waitFor("thing", func() error { return errors.New("down") }, 2, time.Millisecond)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "down")
	})
}

func TestFilterFromFlags(t *testing.T) {
	cmd := &cobra.Command{}
	addFilterFlags(cmd)
	require.NoError(t, cmd.Flags().Parse([]string{
		"--band-name", "20m", "--mode", "CW", "--cq-zone", "15",
		"--start", "2023-10-01T12:00:00Z",
	}))

	f, err := filterFromFlags(cmd)
	require.NoError(t, err)
	assert.Equal(t, "20m", f.BandName)
	assert.Equal(t, "CW", f.Mode)
	assert.Equal(t, 15, f.CQZone)
	require.NotNil(t, f.Start)
	assert.Equal(t, time.Date(2023, 10, 1, 12, 0, 0, 0, time.UTC), *f.Start)
	assert.Nil(t, f.End)

	bad := &cobra.Command{}
	addFilterFlags(bad)
	require.NoError(t, bad.Flags().Parse([]string{"--end", "tomorrow"}))
	_, err = filterFromFlags(bad)
	assert.Error(t, err)
}

func TestSummarizeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gen.log")
	f, err := os.Create(path)
	require.NoError(t, err)
	_, err = generator.Generate(generator.Options{Seed: 7, QSOs: 25}).WriteTo(f)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	sum, err := summarizeFile(context.Background(), path, enricher.Default(), nil)
	require.NoError(t, err)
	assert.EqualValues(t, 25, sum.Total)
}

func TestPrintResults(t *testing.T) {
	failed := printResults([]watch.Result{
		{Path: "a.log", QSOs: 3},
		{Path: "b.log", QSOs: 1, Errors: []error{errors.New("Invalid mode: XX")}},
		{Path: "c.log", Err: errors.New("failed to parse")},
	})
	assert.Equal(t, 2, failed)
}

func TestCommandsRegistered(t *testing.T) {
	want := []string{"parse", "validate", "enrich", "stats", "markers", "report", "generate", "serve", "db", "watch", "wait", "configuration"}
	for _, name := range want {
		cmd, _, err := rootCmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}

	for _, sub := range [][]string{{"db", "migrate"}, {"db", "down"}, {"db", "status"}, {"configuration", "show"}} {
		cmd, _, err := rootCmd.Find(sub)
		require.NoError(t, err)
		assert.Equal(t, sub[1], cmd.Name())
	}
}
