package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/radarsat1/re-up/cmd"
)

func main() {
	// API keys may come from a local .env during development. A missing
	// file is fine; the system environment still applies.
	_ = godotenv.Load()

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
