package lib

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLoggingFileAddsDate(t *testing.T) {
	dir := t.TempDir()

	f, err := GetLoggingFile(filepath.Join(dir, "tahub.log"))
	require.NoError(t, err)
	defer f.Close()
	name := filepath.Base(f.Name())
	assert.True(t, strings.HasPrefix(name, "tahub-"))
	assert.True(t, strings.HasSuffix(name, ".log"))

	g, err := GetLoggingFile(filepath.Join(dir, "tahub"))
	require.NoError(t, err)
	defer g.Close()
	assert.Equal(t, name, filepath.Base(g.Name()))
}

func TestLoggerWritesToFile(t *testing.T) {
	dir := t.TempDir()
	logger := Logger(filepath.Join(dir, "tahub.log"))
	logger.Info("hello")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	content, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	assert.Contains(t, string(content), "hello")
}

func TestCustomValidator(t *testing.T) {
	type request struct {
		AssetID string `validate:"required"`
	}
	cv := &CustomValidator{Validator: validator.New()}
	assert.Error(t, cv.Validate(&request{}))
	assert.NoError(t, cv.Validate(&request{AssetID: "coin#usd"}))
}
