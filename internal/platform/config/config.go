// Copyright (c) 2026 VoxMundi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values. A local '.env' file is
loaded first when present so development setups need no exported variables.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis, providers) via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// # Configuration Schema

// Config holds all runtime configuration for the VoxMundi API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`
	DBMaxConns  int32  `env:"DB_MAX_CONNS" envDefault:"25"`
	DBMinConns  int32  `env:"DB_MIN_CONNS" envDefault:"5"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Cache (Redis)
	RedisURL      string `env:"REDIS_URL,required"`
	RedisPoolSize int    `env:"REDIS_POOL_SIZE" envDefault:"10"`

	// Cryptographic keys for identity signing
	JWTPrivKeyPath string `env:"JWT_PRIVATE_KEY_PATH,required"`
	JWTPubKeyPath  string `env:"JWT_PUBLIC_KEY_PATH,required"`

	// Cross-Origin Resource Sharing
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`

	// External metadata providers
	Providers Providers
}

// Providers groups the settings of every outbound metadata integration.
//
// Credentials are optional at boot. Operations that need a missing credential
// fail with a "not configured" error at call time instead.
type Providers struct {

	// TMDb (films)
	TMDBReadToken    string `env:"TMDB_READ_TOKEN"`
	TMDBBaseURL      string `env:"TMDB_BASE_URL"       envDefault:"https://api.themoviedb.org/3"`
	TMDBImageBaseURL string `env:"TMDB_IMAGE_BASE_URL" envDefault:"https://image.tmdb.org/t/p/original"`

	// OpenLibrary (books)
	OpenLibraryBaseURL   string `env:"OPENLIBRARY_BASE_URL"   envDefault:"https://openlibrary.org"`
	OpenLibraryCoversURL string `env:"OPENLIBRARY_COVERS_URL" envDefault:"https://covers.openlibrary.org"`
	OpenLibraryUserAgent string `env:"OPENLIBRARY_USER_AGENT" envDefault:"VoxMundi/0.1 (contact@voxmundi.app)"`

	// Google Custom Search (concerts)
	GoogleSearchAPIKey  string `env:"GOOGLE_SEARCH_API_KEY"`
	GoogleSearchID      string `env:"GOOGLE_SEARCH_ID"`
	GoogleSearchBaseURL string `env:"GOOGLE_SEARCH_BASE_URL" envDefault:"https://www.googleapis.com/customsearch/v1"`

	// Import behaviour
	ImportPacing      time.Duration `env:"IMPORT_PACING"       envDefault:"250ms"`
	ImportMaxAttempts int           `env:"IMPORT_MAX_ATTEMPTS" envDefault:"5"`

	// Outbound HTTP
	Timeout  time.Duration `env:"PROVIDER_TIMEOUT"   envDefault:"10s"`
	CacheTTL time.Duration `env:"PROVIDER_CACHE_TTL" envDefault:"24h"`

	// Concert search fan-out
	ConcertWorkers int `env:"CONCERT_WORKERS" envDefault:"5"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// 1. Pick up a local .env file if one exists. Real environment wins.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: failed to read .env: %w", err)
	}

	// 2. Map environment variables onto the struct.
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	// 3. Sanity checks that struct tags cannot express
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Providers.ImportMaxAttempts < 1 {
		return fmt.Errorf("config: IMPORT_MAX_ATTEMPTS must be at least 1")
	}
	if c.Providers.ImportPacing < 0 {
		return fmt.Errorf("config: IMPORT_PACING must not be negative")
	}
	if c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("config: DB_MIN_CONNS must not exceed DB_MAX_CONNS")
	}
	if c.Providers.ConcertWorkers < 1 {
		return fmt.Errorf("config: CONCERT_WORKERS must be at least 1")
	}
	for i, origin := range c.CORSAllowedOrigins {
		c.CORSAllowedOrigins[i] = strings.TrimSpace(origin)
	}
	return nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// TMDBConfigured reports whether film imports can reach TMDb.
func (p Providers) TMDBConfigured() bool {
	return p.TMDBReadToken != ""
}

// GoogleSearchConfigured reports whether concert search can reach Google CSE.
func (p Providers) GoogleSearchConfigured() bool {
	return p.GoogleSearchAPIKey != "" && p.GoogleSearchID != ""
}
