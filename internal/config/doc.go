// Package config manages application configuration for the PiensaPeru API.
//
// Configuration is layered: built-in defaults, then an optional YAML file
// named by CONFIG_FILE, then environment variables.
//
//	cfg, err := config.Load()
//	if err != nil {
//	    return err
//	}
//	if err := cfg.Validate(); err != nil {
//	    return err
//	}
//
// # Configuration Groups
//
//   - ServerConfig: HTTP server settings (port, timeouts, CORS, metrics)
//   - DatabaseConfig: driver selection plus SurrealDB and PostgreSQL settings
//   - AuthConfig: admin token keys and lifetime
//   - LogConfig: level, format and optional rotated log file
//
// # Environment Variables
//
// Key environment variables:
//
//	SERVER_PORT          - HTTP server port (default: 8080)
//	DB_DRIVER            - surrealdb or postgres (default: surrealdb)
//	DB_HOST, DB_PORT     - SurrealDB address
//	POSTGRES_DSN         - PostgreSQL connection string
//	AUTH_ENABLED         - require admin tokens on administrator routes
//	JWT_PUBLIC_KEY_PATH  - RSA public key used to verify admin tokens
//	LOG_LEVEL            - debug, info, warn or error
//	LOG_FILE             - rotate logs into this file instead of stdout
package config
