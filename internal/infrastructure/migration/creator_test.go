package migration

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMigration(t *testing.T) {
	t.Run("creates up and down files", func(t *testing.T) {
		dir := t.TempDir()

		mf, err := CreateMigration(dir, "add customer documents")
		require.NoError(t, err)

		assert.Contains(t, mf.UpPath, "add_customer_documents.up.sql")
		assert.Contains(t, mf.DownPath, "add_customer_documents.down.sql")
		assert.FileExists(t, mf.UpPath)
		assert.FileExists(t, mf.DownPath)
	})

	t.Run("versions sort lexically", func(t *testing.T) {
		dir := t.TempDir()

		mf, err := CreateMigration(dir, "first")
		require.NoError(t, err)

		assert.Len(t, mf.Version, 14)
	})
}

func TestSanitizeName(t *testing.T) {
	t.Run("lowercases and snake_cases", func(t *testing.T) {
		assert.Equal(t, "add_stock_items", sanitizeName("Add Stock Items"))
		assert.Equal(t, "fix_v2", sanitizeName("fix-v2"))
		assert.Equal(t, "trailing", sanitizeName("trailing---"))
		assert.Equal(t, "dropchars", sanitizeName("drop;chars!"))
	})
}

func TestListMigrations(t *testing.T) {
	t.Run("returns empty for missing directory", func(t *testing.T) {
		migrations, err := ListMigrations("/nonexistent/path")

		assert.NoError(t, err)
		assert.Empty(t, migrations)
	})

	t.Run("lists only up migrations", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(dir+"/001_init.up.sql", []byte("--"), 0644))
		require.NoError(t, os.WriteFile(dir+"/001_init.down.sql", []byte("--"), 0644))
		require.NoError(t, os.WriteFile(dir+"/notes.txt", []byte("x"), 0644))

		migrations, err := ListMigrations(dir)

		require.NoError(t, err)
		assert.Equal(t, []string{"001_init"}, migrations)
	})
}
