// Package bindingcache persists resolved external CLR binding metadata
// keyed by
// (package name, version), so re-resolving the same NuGet/npm package's
// exported types across repeated compiler invocations costs one lookup
// instead of re-walking assembly metadata every run. I/O only happens at
// the compilation boundary (Open once per compiler invocation, Close
// once at the end) — every pass in between consults the in-memory
// Registry that NewRegistry builds.
package bindingcache

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"
)

// Binding is one exported member of a bound package, resolved to its
// fully-qualified CLR name.
type Binding struct {
	ExportName string `json:"exportName"`
	ClrType    string `json:"clrType"`
	IsType     bool   `json:"isType"`
}

// Cache wraps a sqlite-backed store of resolved package bindings.
type Cache struct {
	db *sql.DB
}

// Open creates (if needed) and opens the cache database at path.
func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening binding cache: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing binding cache schema: %w", err)
	}
	return &Cache{db: db}, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS packages (
	name TEXT NOT NULL,
	version TEXT NOT NULL,
	bindings TEXT NOT NULL,
	PRIMARY KEY (name, version)
);
`

// Close releases the underlying database handle.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Get returns the cached bindings for one (name, version) package, or
// ok=false on a cache miss.
func (c *Cache) Get(name, version string) ([]Binding, bool, error) {
	var raw string
	err := c.db.QueryRow(
		"SELECT bindings FROM packages WHERE name = ? AND version = ?",
		name, version,
	).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("querying binding cache: %w", err)
	}
	var bindings []Binding
	if err := json.Unmarshal([]byte(raw), &bindings); err != nil {
		return nil, false, fmt.Errorf("decoding cached bindings for %s@%s: %w", name, version, err)
	}
	return bindings, true, nil
}

// Put stores the resolved bindings for one (name, version) package,
// replacing any prior entry.
func (c *Cache) Put(name, version string, bindings []Binding) error {
	raw, err := json.Marshal(bindings)
	if err != nil {
		return fmt.Errorf("encoding bindings for %s@%s: %w", name, version, err)
	}
	_, err = c.db.Exec(
		"INSERT INTO packages (name, version, bindings) VALUES (?, ?, ?) "+
			"ON CONFLICT(name, version) DO UPDATE SET bindings = excluded.bindings",
		name, version, string(raw),
	)
	if err != nil {
		return fmt.Errorf("storing bindings for %s@%s: %w", name, version, err)
	}
	return nil
}

// Registry answers modgraph.BindingRegistry by consulting every package
// the compiler was configured to bind ("bound assembly
// import" classification), built once from the configured package
// names at compile start without reading the cache.
type Registry struct {
	packages map[string]bool
}

// NewRegistry builds a Registry from the package names a config
// declares; a name is bound if it names any package the cache was asked
// to resolve, regardless of whether that resolution hit or missed.
func NewRegistry(packageNames []string) *Registry {
	set := make(map[string]bool, len(packageNames))
	for _, n := range packageNames {
		set[n] = true
	}
	return &Registry{packages: set}
}

// IsBoundPackage implements modgraph.BindingRegistry.
func (r *Registry) IsBoundPackage(name string) bool {
	return r.packages[name]
}
