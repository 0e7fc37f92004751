package dataset

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func writeSQLite(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.db")

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE data (name TEXT, alcohol REAL, region TEXT)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO data VALUES ('wine-1', 12.5, 'north'), ('wine-2', 13.0, 'south')`)
	require.NoError(t, err)
	return path
}

func TestLoadSQLite(t *testing.T) {
	path := writeSQLite(t)

	table, err := LoadSQLite(path, "data")
	require.NoError(t, err)

	if diff := cmp.Diff([]string{"alcohol"}, table.Dimensions()); diff != "" {
		t.Errorf("dimensions mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"wine-1", "wine-2"}, table.Names()); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}

	col, err := table.Column("alcohol")
	require.NoError(t, err)
	require.Equal(t, []float64{12.5, 13.0}, col)
}

func TestLoadSQLiteUnknownTable(t *testing.T) {
	path := writeSQLite(t)
	_, err := LoadSQLite(path, "missing")
	require.Error(t, err)
}

func TestLoadSQLiteRejectsBadTableName(t *testing.T) {
	path := writeSQLite(t)
	_, err := LoadSQLite(path, "data; DROP TABLE data")
	require.Error(t, err)
}

func TestValidTableName(t *testing.T) {
	cases := map[string]bool{
		"data":        true,
		"wine_stats2": true,
		"":            false,
		"bad-name":    false,
		"x y":         false,
	}
	for name, want := range cases {
		if got := validTableName(name); got != want {
			t.Errorf("validTableName(%q) = %v, want %v", name, got, want)
		}
	}
}
