package main

import (
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"time"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"github.com/kosciej/cabrillo-log/pkg/config"
	"github.com/kosciej/cabrillo-log/pkg/db"
)

// waitCmd represents the wait command
var waitCmd = &cobra.Command{
	Use:   "wait",
	Short: "Wait for the server or the database to be ready",
	Long: `Wait for the server to be ready by polling its status endpoint, or
with --database wait until DATABASE_URL accepts connections.

This command will repeatedly check until it succeeds or the maximum number
of retries is reached.

Example:
  cabrillo wait
  cabrillo wait --port 8010 --retries 60
  cabrillo wait --database`,
	Run: func(cmd *cobra.Command, args []string) {
		port, _ := cmd.Flags().GetInt("port")
		retries, _ := cmd.Flags().GetInt("retries")
		database, _ := cmd.Flags().GetBool("database")

		check := func() error { return checkServer(port) }
		what := "Cabrillo server"
		if database {
			check = checkDatabase
			what = "Database"
		}

		if err := waitFor(what, check, retries, time.Second); err != nil {
			fmt.Fprintf(os.Stderr, "%s did not become ready: %v\n", what, err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(waitCmd)
	waitCmd.Flags().IntP("port", "p", config.DefaultPort, "Server port to check")
	waitCmd.Flags().IntP("retries", "r", 90, "Number of retries")
	waitCmd.Flags().Bool("database", false, "Wait for DATABASE_URL instead of the server")
}

var statusClient = &http.Client{Timeout: 2 * time.Second}

func checkServer(port int) error {
	resp, err := statusClient.Get(fmt.Sprintf("http://localhost:%d/status", port))
	if err != nil {
		return err
	}
	_ = resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("status endpoint returned %d", resp.StatusCode)
	}
	return nil
}

func checkDatabase() error {
	dbURL := db.URL()
	if dbURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}
	conn, err := sql.Open("postgres", dbURL)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()
	return conn.Ping()
}

func waitFor(what string, check func() error, retries int, interval time.Duration) error {
	fmt.Printf("Waiting for %s to be ready...\n", what)

	var err error
	for i := 0; i < retries; i++ {
		if err = check(); err == nil {
			fmt.Println()
			fmt.Printf("%s is ready!\n", what)
			return nil
		}

		fmt.Print(".")
		time.Sleep(interval)
	}

	fmt.Println()
	return fmt.Errorf("not ready after %d attempts: %v", retries, err)
}
