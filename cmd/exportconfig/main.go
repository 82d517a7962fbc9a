package main

import (
	"flag"
	"fmt"
	"log"
	"path/filepath"
	"slices"
	"strings"

	"github.com/4chain-ag/go-overlay-helloworld/pkg/config"
	"github.com/4chain-ag/go-overlay-helloworld/pkg/config/loaders"
	"github.com/google/uuid"
)

func main() {
	regenToken := flag.Bool("regen-token", false, "Regenerate admin bearer token")
	flag.BoolVar(regenToken, "t", false, "Regenerate admin bearer token (shorthand)")

	outputFile := flag.String("output-file", loaders.DefaultConfigFilePath, "Output configuration file path")
	flag.StringVar(outputFile, "o", loaders.DefaultConfigFilePath, "Output configuration file path (shorthand)")

	backend := flag.String("backend", config.BackendSQLite, "Record store backend: mongo, sqlite or memory")

	flag.Parse()

	ext := strings.TrimPrefix(filepath.Ext(*outputFile), ".")
	if !slices.Contains(loaders.SupportedExts(), ext) {
		log.Fatalf("Unsupported output file extension: %q", ext)
	}

	cfg := config.NewDefault()
	cfg.Storage.Backend = *backend
	if *regenToken {
		cfg.Server.AdminBearerToken = uuid.NewString()
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if err := cfg.Export(*outputFile); err != nil {
		log.Fatalf("Error writing configuration: %v", err)
	}

	fmt.Printf("Configuration written to %s\n", *outputFile)
}
