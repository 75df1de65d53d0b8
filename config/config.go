package config

import (
	"flag"
	"os"
	"time"
)

type Config struct {
	Addr         string
	DatabasePath string
	QueryTimeout time.Duration
	Debug        bool
}

// ParseConfig reads configuration from command-line flags. PORT, when
// set, overrides the listen address so the service keeps working in
// environments that only inject a port.
func ParseConfig() *Config {
	cfg := Config{}

	flag.StringVar(&cfg.Addr, "addr", ":3000", "address to listen on")
	flag.StringVar(&cfg.DatabasePath, "db", "data/users.db", "path to the sqlite database file")
	flag.DurationVar(&cfg.QueryTimeout, "query-timeout", 5*time.Second, "per-statement database timeout")
	flag.BoolVar(&cfg.Debug, "debug", false, "enable debug logging")

	flag.Parse()

	if port := os.Getenv("PORT"); port != "" {
		cfg.Addr = ":" + port
	}

	return &cfg
}
