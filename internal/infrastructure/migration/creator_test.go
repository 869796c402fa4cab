package migration

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMigration(t *testing.T) {
	dir := t.TempDir()

	mf, err := CreateMigration(dir, "Add Carts Table")

	require.NoError(t, err)
	assert.Equal(t, "Add Carts Table", mf.Name)
	assert.FileExists(t, mf.UpPath)
	assert.FileExists(t, mf.DownPath)
	assert.Contains(t, mf.UpPath, "_add_carts_table.up.sql")

	content, err := os.ReadFile(mf.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Add Carts Table")
}

func TestSanitizeName(t *testing.T) {
	assert.Equal(t, "add_carts_table", sanitizeName("Add Carts Table"))
	assert.Equal(t, "fix_rates_v2", sanitizeName("fix-rates v2!"))
}
