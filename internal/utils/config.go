package utils

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

type Config struct {
	port        string
	adminAPIKey string

	// the event imported rows attach to; import is refused while unset
	eventID string

	fontDir           string
	blobDir           string
	blobPublicBaseURL string

	location                 *time.Location
	metricCollectionInterval time.Duration
}

func NewConfig() *Config {
	return &Config{
		port: func() string {
			port := os.Getenv("PORT")
			if port == "" {
				port = "8080"
			}
			slog.Debug("env", "PORT", port)
			return port
		}(),

		adminAPIKey: func() string {
			adminAPIKey := os.Getenv("ADMIN_API_KEY")
			if adminAPIKey == "" {
				slog.Error("ADMIN_API_KEY is not set")
				os.Exit(1)
			}
			slog.Debug("env", "ADMIN_API_KEY", adminAPIKey[0:3]+"...")
			return adminAPIKey
		}(),

		eventID: func() string {
			eventID := os.Getenv("EVENT_ID")
			if eventID == "" {
				slog.Warn("EVENT_ID is not set, imports will be refused until it is")
			} else {
				slog.Debug("env", "EVENT_ID", eventID)
			}
			return eventID
		}(),

		fontDir: func() string {
			fontDir := os.Getenv("FONT_DIR")
			if fontDir == "" {
				slog.Warn("FONT_DIR is not set, using ./fonts")
				fontDir = "./fonts"
			}
			slog.Debug("env", "FONT_DIR", fontDir)
			return filepath.Clean(fontDir)
		}(),

		blobDir: func() string {
			blobDir := os.Getenv("BLOB_DIR")
			if blobDir == "" {
				slog.Warn("BLOB_DIR is not set, using ./blob")
				blobDir = "./blob"
			}
			if err := os.MkdirAll(blobDir, 0o755); err != nil {
				slog.Error("can't create BLOB_DIR", "error", err)
				os.Exit(1)
			}
			slog.Debug("env", "BLOB_DIR", blobDir)
			return filepath.Clean(blobDir)
		}(),

		blobPublicBaseURL: func() string {
			blobPublicBaseURL := os.Getenv("BLOB_PUBLIC_BASE_URL")
			if blobPublicBaseURL == "" {
				slog.Error("BLOB_PUBLIC_BASE_URL is not set")
				os.Exit(1)
			}
			slog.Debug("env", "BLOB_PUBLIC_BASE_URL", blobPublicBaseURL)
			return blobPublicBaseURL
		}(),

		location: func() *time.Location {
			timezoneStr := os.Getenv("TIMEZONE")
			var loc *time.Location
			var err error
			switch timezoneStr {
			case "":
				slog.Warn("TIMEZONE is not set, using local timezone", "timezone", time.Local)
				loc = time.Local
			case "UTC":
				loc = time.UTC
			default:
				loc, err = time.LoadLocation(timezoneStr)
				if err != nil {
					slog.Error("invalid timezone", "timezone", timezoneStr, "error", err)
					os.Exit(1)
				}
			}
			slog.Debug("env", "TIMEZONE", timezoneStr)
			return loc
		}(),

		metricCollectionInterval: func() time.Duration {
			metricCollectionInterval := os.Getenv("METRIC_COLLECTION_INTERVAL")
			if metricCollectionInterval == "" {
				metricCollectionInterval = "1m"
			}
			duration, err := time.ParseDuration(metricCollectionInterval)
			if err != nil {
				slog.Error("invalid METRIC_COLLECTION_INTERVAL", "error", err)
				os.Exit(1)
			}
			slog.Debug("env", "METRIC_COLLECTION_INTERVAL", duration)
			return duration
		}(),
	}
}

// Get PORT env, default to 8080
func (c *Config) GetPort() string {
	return c.port
}

// Get ADMIN_API_KEY env
func (c *Config) GetAdminAPIKey() string {
	return c.adminAPIKey
}

// Get EVENT_ID env, may be empty
func (c *Config) GetEventID() string {
	return c.eventID
}

// Get FONT_DIR env
func (c *Config) GetFontDir() string {
	return c.fontDir
}

// Get BLOB_DIR env
func (c *Config) GetBlobDir() string {
	return c.blobDir
}

// Get BLOB_PUBLIC_BASE_URL env
func (c *Config) GetBlobPublicBaseURL() string {
	return c.blobPublicBaseURL
}

// Get TIMEZONE env
func (c *Config) GetLocation() *time.Location {
	return c.location
}

// Get METRIC_COLLECTION_INTERVAL env
func (c *Config) GetMetricCollectionInterval() time.Duration {
	return c.metricCollectionInterval
}
