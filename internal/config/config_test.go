package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "DATA_FILE", "UPLOADS_DIR",
		"MONGO_URI", "MONGO_DB_NAME", "MONGO_COLLECTION",
		"GOOGLE_SHEETS_SPREADSHEET_ID", "GOOGLE_SERVICE_ACCOUNT_JSON",
	} {
		t.Setenv(k, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	c, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":3000", c.HTTPAddr)
	assert.Equal(t, "data/students.json", c.DataFile)
	assert.Equal(t, "uploads", c.UploadsDir)
	assert.Equal(t, "", c.MongoURI)
	assert.Equal(t, "hackathon", c.MongoDB)
	assert.Equal(t, "students", c.MongoCollection)
	assert.False(t, c.ExportEnabled())
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8081")
	t.Setenv("DATA_FILE", "/tmp/st.json")
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("MONGO_DB_NAME", "events")
	t.Setenv("MONGO_COLLECTION", "regs")
	t.Setenv("GOOGLE_SHEETS_SPREADSHEET_ID", "sheet-id")
	t.Setenv("GOOGLE_SERVICE_ACCOUNT_JSON", "credentials.json")

	c, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":8081", c.HTTPAddr)
	assert.Equal(t, "/tmp/st.json", c.DataFile)
	assert.Equal(t, "mongodb://localhost:27017", c.MongoURI)
	assert.Equal(t, "events", c.MongoDB)
	assert.Equal(t, "regs", c.MongoCollection)
	assert.True(t, c.ExportEnabled())
}

func TestFromEnv_BadPort(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "not-a-port")

	_, err := FromEnv()
	assert.Error(t, err)
}

func TestExportEnabled_RequiresBothValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("GOOGLE_SHEETS_SPREADSHEET_ID", "sheet-id")

	c, err := FromEnv()
	require.NoError(t, err)
	assert.False(t, c.ExportEnabled())
}
