// Command cabrillo parses, validates, enriches and summarizes Cabrillo
// contest logs, and serves the map and statistics web UI.
//
// # Quick Start
//
//	# Check a log
//	cabrillo validate contest.log
//
//	# Print statistics
//	cabrillo stats contest.log --band-name 20m
//
//	# Run the web UI with the embedded assets
//	cabrillo serve --release
//
// # Environment Variables
//
//   - DATABASE_URL: PostgreSQL connection string for the log archive
//   - CABRILLO_CONFIG_PATH: directory holding cabrillo.yml
//   - CABRILLO_LOG_LEVEL: Log level (debug, info, warn, error)
//   - CABRILLO_PORT, CABRILLO_BIND_ADDRESS: server listen address
package main
