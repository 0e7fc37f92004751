package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/niloxx/davil/internal/security"
)

// Catalog enumerates the dataset files under a data directory and tracks
// which one is active. Switching files is a full reload upstream; the
// catalog itself only resolves names to paths.
type Catalog struct {
	dir    string
	active string
}

// NewCatalog scans dir and activates preferred when given, otherwise the
// first available file.
func NewCatalog(dir, preferred string) (*Catalog, error) {
	c := &Catalog{dir: dir}
	files, err := c.Files()
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no dataset files in %s", dir)
	}
	if preferred == "" {
		c.active = files[0]
		return c, nil
	}
	if err := c.SetActive(preferred); err != nil {
		return nil, err
	}
	return c, nil
}

// Files lists the loadable files in the data directory, sorted by name.
func (c *Catalog) Files() ([]string, error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read data directory: %w", err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".csv", ".db", ".sqlite":
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

// Active returns the active file name.
func (c *Catalog) Active() string { return c.active }

// SetActive switches the active file. Unknown names are rejected and leave
// the previous selection in place.
func (c *Catalog) SetActive(name string) error {
	files, err := c.Files()
	if err != nil {
		return err
	}
	for _, f := range files {
		if f == name {
			c.active = name
			return nil
		}
	}
	return fmt.Errorf("unknown dataset file %q", name)
}

// Load reads the active file. CSV files load directly; SQLite files load the
// given table, defaulting to "data".
func (c *Catalog) Load(table string) (*Table, error) {
	path := filepath.Join(c.dir, c.active)
	if err := security.ValidatePathWithinDirectory(path, c.dir); err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(c.active)) {
	case ".csv":
		return LoadCSV(path)
	case ".db", ".sqlite":
		if table == "" {
			table = "data"
		}
		return LoadSQLite(path, table)
	default:
		return nil, fmt.Errorf("unsupported dataset file %q", c.active)
	}
}
