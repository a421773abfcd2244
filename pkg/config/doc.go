// Package config provides configuration management for the Cabrillo server
// and CLI.
//
// # Configuration Sources
//
// Values are resolved in this order, later sources win:
//
//   - Built-in defaults
//   - $CABRILLO_CONFIG_PATH/cabrillo.yml (default /etc/cabrillo/cabrillo.yml)
//   - Environment variables
//
// The source of every attribute is tracked and shown by
// "cabrillo configuration show".
//
// # Key Configuration Options
//
//   - CABRILLO_PORT / CABRILLO_RELEASE_PORT: development and release ports
//   - CABRILLO_STATIC_DIR: directory served in development mode
//   - CABRILLO_CTY_FILE: full cty.csv to use instead of the embedded subset
//   - CABRILLO_LOG_LEVEL: debug, info, warn, error
//   - DATABASE_URL: PostgreSQL archive (optional)
package config
