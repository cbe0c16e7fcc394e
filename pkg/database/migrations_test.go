package database

import (
	"io/fs"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(Config{
		Path:         filepath.Join(t.TempDir(), "bills.db"),
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrator_RunEmbedded(t *testing.T) {
	db := openTestDB(t)
	m := NewMigrator(db, zap.NewNop())

	applied, err := m.Run()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, applied, 1)

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM bills").Scan(&count))
	assert.Equal(t, 0, count)

	t.Run("second run is a no-op", func(t *testing.T) {
		applied, err := m.Run()
		require.NoError(t, err)
		assert.Equal(t, 0, applied)
	})
}

func TestMigrator_AppliesInVersionOrder(t *testing.T) {
	db := openTestDB(t)
	source := fstest.MapFS{
		"002_add_label.up.sql":   {Data: []byte("ALTER TABLE things ADD COLUMN label TEXT;")},
		"002_add_label.down.sql": {Data: []byte("SELECT 1;")},
		"001_things.up.sql":      {Data: []byte("CREATE TABLE things (id INTEGER PRIMARY KEY);")},
		"001_things.down.sql":    {Data: []byte("DROP TABLE things;")},
		"README.md":              {Data: []byte("ignored")},
	}

	applied, err := NewMigratorFS(db, source, zap.NewNop()).Run()
	require.NoError(t, err)
	assert.Equal(t, 2, applied)

	_, err = db.Exec("INSERT INTO things (id, label) VALUES (1, 'ok')")
	assert.NoError(t, err)
}

func TestMigrator_AppliesOnlyNewVersions(t *testing.T) {
	db := openTestDB(t)
	source := fstest.MapFS{
		"001_things.up.sql": {Data: []byte("CREATE TABLE things (id INTEGER PRIMARY KEY);")},
	}
	applied, err := NewMigratorFS(db, source, zap.NewNop()).Run()
	require.NoError(t, err)
	assert.Equal(t, 1, applied)

	source["002_add_label.up.sql"] = &fstest.MapFile{Data: []byte("ALTER TABLE things ADD COLUMN label TEXT;")}
	applied, err = NewMigratorFS(db, source, zap.NewNop()).Run()
	require.NoError(t, err)
	assert.Equal(t, 1, applied)
}

func TestMigrator_FailedMigration(t *testing.T) {
	db := openTestDB(t)
	source := fstest.MapFS{
		"001_broken.up.sql": {Data: []byte("CREATE TABLE nope (;")},
	}

	_, err := NewMigratorFS(db, source, zap.NewNop()).Run()
	require.Error(t, err)

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE name = 'nope'").Scan(&count))
	assert.Equal(t, 0, count)
}

func TestMustSub(t *testing.T) {
	fsys := fstest.MapFS{"migrations/001_init.up.sql": {Data: []byte("SELECT 1;")}}

	sub := mustSub(fsys, "migrations")
	_, err := fs.Stat(sub, "001_init.up.sql")
	assert.NoError(t, err)

	assert.Panics(t, func() { mustSub(fsys, "../migrations") })
}
