// Package config loads runtime configuration for the MochaMagic CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. A .env file in the working directory and MOCHAMAGIC_* environment
//     variables (see parseEnv).
//  3. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   address:port of the rewards gRPC endpoint
//	-b string   storage backend
//	-f string   SQLite file path
//	-d string   PostgreSQL DSN
//	-s string   session token secret
//	-n          allow login by full name
//	-l string   log level
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "3s" or integer nanoseconds:
//
//	{
//	  "storage": {"backend": "sqlite", "sqlite_path": "mochamagic.db"},
//	  "rewards_api_addr": "127.0.0.1:50051",
//	  "banner_ttl": "5s",
//	  "login_delay": "1500ms"
//	}
//
// Primary API
//
//   - type Config                     : storage, session, delay and API settings
//   - func LoadConfig() *Config       : builds Config from defaults, env, JSON, then flags
//   - func (*Config) LoadDefaults()   : sets sensible defaults
package config
