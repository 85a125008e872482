package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/mochamagic/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   gRPC bind address (e.g., ":50051")
//	-w string   HTTP bind address (e.g., ":8080")
//	-b string   storage backend: memory, sqlite, postgres, s3
//	-f string   SQLite file path
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret key
//	-t int      session token validity, minutes
//	-n bool     allow login by full name
//	-l string   log level
//
// Notes:
//   - The function first filters os.Args to only the flags it recognizes using
//     flagx.FilterArgs, avoiding collisions with other components.
//   - The duration flag is accepted as an integer in minutes and then converted
//     to a time.Duration value. It only replaces the current value when given.
func parseFlags(config *Config) {
	// Filter args to include only the flags handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-w", "-b", "-f", "-d", "-s", "-t", "-n", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run gRPC server")
	fs.StringVar(&config.EndpointAddrHTTP, "w", config.EndpointAddrHTTP, "address and port to run HTTP server")
	fs.StringVar(&config.Storage.Backend, "b", config.Storage.Backend, "storage backend")
	fs.StringVar(&config.Storage.SQLitePath, "f", config.Storage.SQLitePath, "SQLite file path")
	fs.StringVar(&config.Storage.PostgresDSN, "d", config.Storage.PostgresDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	tokenValidityDuration := fs.Int("t", int(config.TokenValidityDuration.Minutes()), "token_validity_duration (in minutes)")

	fs.BoolVar(&config.LoginByName, "n", config.LoginByName, "allow login by full name")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			config.TokenValidityDuration = time.Duration(*tokenValidityDuration) * time.Minute
		}
	})
}
