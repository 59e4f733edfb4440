// Package config loads runtime configuration for the fraudsentry CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. The FRAUDSENTRY_API_URL environment variable, for the API base URL only.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   base URL of the remote API, e.g. http://localhost:3001/api
//	-d string   path of the local SQLite database
//	-m string   transaction confirmation mode: optimistic or blocking
//	-l string   log level: debug, info, warn or error
//
// # JSON schema
//
//	{
//	  "api_base_url": "http://localhost:3001/api",
//	  "database_path": "fraudsentry.db",
//	  "confirm_mode": "optimistic",
//	  "log_level": "info"
//	}
//
// Invalid files or values make LoadConfig panic; main recovers nothing, so
// the process exits with the message.
package config
