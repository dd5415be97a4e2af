package utils

import (
	"log/slog"
	"os"
)

const defaultFetchURL = "https://innherredrenovasjon.no/wp-json/ir/v1/garbage-disposal-dates-by-address"

type Config struct {
	databasePath string
	fetchBaseURL string
}

func NewConfig() *Config {
	return &Config{
		databasePath: func() string {
			databasePath := os.Getenv("DAGCAL_DB")
			if databasePath != "" {
				slog.Debug("env", "DAGCAL_DB", databasePath)
			}
			return databasePath
		}(),

		fetchBaseURL: func() string {
			fetchBaseURL := os.Getenv("DAGCAL_FETCH_URL")
			if fetchBaseURL == "" {
				fetchBaseURL = defaultFetchURL
			}
			slog.Debug("env", "DAGCAL_FETCH_URL", fetchBaseURL)
			return fetchBaseURL
		}(),
	}
}

// Get DAGCAL_DB env, overridden by the --database flag when set
func (c *Config) GetDatabasePath() string {
	return c.databasePath
}

// Get DAGCAL_FETCH_URL env, default to the disposal schedule API
func (c *Config) GetFetchBaseURL() string {
	return c.fetchBaseURL
}
