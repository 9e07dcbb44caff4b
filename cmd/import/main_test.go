package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDotenv(t *testing.T) {
	dir := t.TempDir()

	assert.NoError(t, loadDotenv(filepath.Join(dir, "missing.env")))

	envFile := filepath.Join(dir, "import.env")
	require.NoError(t, os.WriteFile(envFile, []byte("MEALMIND_IMPORT_DSN=postgres://localhost/recipes\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("MEALMIND_IMPORT_DSN") })
	require.NoError(t, loadDotenv(envFile))
	assert.Equal(t, "postgres://localhost/recipes", os.Getenv("MEALMIND_IMPORT_DSN"))

	err := loadDotenv(dir)
	assert.ErrorContains(t, err, "failed to load .env")
}
