package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/mochamagic/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   address and port of the rewards API (empty disables it)
//	-b string   storage backend: memory, sqlite, postgres, s3
//	-f string   SQLite file path
//	-d string   PostgreSQL DSN
//	-s string   session token secret
//	-n bool     allow login by full name
//	-l string   log level
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	// Filter args to include only those handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-b", "-f", "-d", "-s", "-n", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.RewardsAPIAddr, "a", cfg.RewardsAPIAddr, "address and port of the rewards API")
	fs.StringVar(&cfg.Storage.Backend, "b", cfg.Storage.Backend, "storage backend")
	fs.StringVar(&cfg.Storage.SQLitePath, "f", cfg.Storage.SQLitePath, "SQLite file path")
	fs.StringVar(&cfg.Storage.PostgresDSN, "d", cfg.Storage.PostgresDSN, "database DSN")
	fs.StringVar(&cfg.SecretKey, "s", cfg.SecretKey, "session token secret")
	fs.BoolVar(&cfg.LoginByName, "n", cfg.LoginByName, "allow login by full name")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
