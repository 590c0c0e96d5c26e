package migration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMigrationsTempDir(t *testing.T) {
	dir, err := MigrationsTempDir()
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	ups, err := filepath.Glob(filepath.Join(dir, "*.up.sql"))
	require.NoError(t, err)
	downs, err := filepath.Glob(filepath.Join(dir, "*.down.sql"))
	require.NoError(t, err)

	require.NotEmpty(t, ups)
	require.Len(t, downs, len(ups))

	content, err := os.ReadFile(filepath.Join(dir, "000001_init.up.sql"))
	require.NoError(t, err)
	require.Contains(t, string(content), "CREATE TABLE IF NOT EXISTS `point_entries`")
}
