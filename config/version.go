package config

// Set via -ldflags at build time.
var (
	Version    = "dev"
	CommitHash = "n/a"
)
