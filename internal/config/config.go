package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	HTTPAddr   string
	DataFile   string
	UploadsDir string

	// MongoURI empty means file-backed storage.
	MongoURI        string
	MongoDB         string
	MongoCollection string

	// Export is disabled when either value is empty.
	SpreadsheetID            string
	GoogleServiceAccountJSON string
}

func FromEnv() (Config, error) {
	var c Config

	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "3000"
	}
	if _, err := strconv.Atoi(port); err != nil {
		return c, fmt.Errorf("PORT must be numeric, got %q", port)
	}
	c.HTTPAddr = ":" + port

	c.DataFile = strings.TrimSpace(os.Getenv("DATA_FILE"))
	if c.DataFile == "" {
		c.DataFile = "data/students.json"
	}
	c.UploadsDir = strings.TrimSpace(os.Getenv("UPLOADS_DIR"))
	if c.UploadsDir == "" {
		c.UploadsDir = "uploads"
	}

	c.MongoURI = strings.TrimSpace(os.Getenv("MONGO_URI"))
	c.MongoDB = strings.TrimSpace(os.Getenv("MONGO_DB_NAME"))
	if c.MongoDB == "" {
		c.MongoDB = "hackathon"
	}
	c.MongoCollection = strings.TrimSpace(os.Getenv("MONGO_COLLECTION"))
	if c.MongoCollection == "" {
		c.MongoCollection = "students"
	}

	c.SpreadsheetID = strings.TrimSpace(os.Getenv("GOOGLE_SHEETS_SPREADSHEET_ID"))
	c.GoogleServiceAccountJSON = strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))

	return c, nil
}

// ExportEnabled reports whether sheet mirroring is configured.
func (c Config) ExportEnabled() bool {
	return c.SpreadsheetID != "" && c.GoogleServiceAccountJSON != ""
}
