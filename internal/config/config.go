// Package config loads and validates environment variables at startup.
// Fail-fast: if a required variable is missing, the process exits.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration for the job tracker backend.
type Config struct {
	Port        string
	DatabaseURL string
	RedisURL    string

	// Search provider (JSearch-style API). Empty key disables scheduled
	// ingestion gracefully instead of failing startup.
	SearchAPIKey  string
	SearchCountry string // e.g. "us", "gb"

	// Local summarization model. Empty URL disables summaries; listings
	// are stored with a null summary.
	SummarizerURL   string
	SummarizerModel string

	IngestIntervalHours int
	IngestQueries       []string // default search queries for scheduled ingestion
}

// Load reads environment variables and returns a validated Config.
// A .env file is honored when present but never required.
func Load() (*Config, error) {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		return nil, fmt.Errorf("REDIS_URL is required")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	interval := 6
	if s := os.Getenv("INGEST_INTERVAL_HOURS"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			return nil, fmt.Errorf("INGEST_INTERVAL_HOURS must be a positive integer, got %q", s)
		}
		interval = v
	}

	country := os.Getenv("SEARCH_COUNTRY")
	if country == "" {
		country = "us"
	}

	queries := []string{"software engineer", "software developer", "SWE"}
	if s := os.Getenv("INGEST_QUERIES"); s != "" {
		queries = queries[:0]
		for _, q := range strings.Split(s, ",") {
			if q = strings.TrimSpace(q); q != "" {
				queries = append(queries, q)
			}
		}
		if len(queries) == 0 {
			return nil, fmt.Errorf("INGEST_QUERIES must contain at least one query")
		}
	}

	model := os.Getenv("SUMMARIZER_MODEL")
	if model == "" {
		model = "llama3.2"
	}

	return &Config{
		Port:                port,
		DatabaseURL:         dbURL,
		RedisURL:            redisURL,
		SearchAPIKey:        os.Getenv("SEARCH_API_KEY"),
		SearchCountry:       country,
		SummarizerURL:       os.Getenv("SUMMARIZER_URL"),
		SummarizerModel:     model,
		IngestIntervalHours: interval,
		IngestQueries:       queries,
	}, nil
}
