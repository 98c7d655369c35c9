// Provides a persistent memoization of drawing conversions,
// stored in a sqlite database.
package cadcache

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/benoitkugler/cadpath/cadpath"
	_ "modernc.org/sqlite"
)

const createTableSQL = `CREATE TABLE IF NOT EXISTS conversions (
	key        TEXT PRIMARY KEY,
	width_in   REAL NOT NULL,
	height_in  REAL NOT NULL,
	unit_scale REAL NOT NULL,
	extent_x   REAL NOT NULL,
	extent_y   REAL NOT NULL,
	path       BLOB NOT NULL
)`

// Cache stores conversion results, keyed by a hash of
// the entities and the conversion parameters.
// It is safe for concurrent use.
type Cache struct {
	db           *sql.DB
	hits, misses atomic.Int64
}

// Open opens (or creates) the cache database at path.
// Use ":memory:" for a cache living in memory.
func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}
	if path == ":memory:" {
		// each connection would see its own database
		db.SetMaxOpenConns(1)
	}
	if _, err = db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create cache table: %w", err)
	}
	cadpath.Logger().Debug("cache opened", "path", path)
	return &Cache{db: db}, nil
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Stats returns the number of lookups served from the database,
// and the number of conversions computed.
func (c *Cache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

// Key returns the hexadecimal SHA-256 hash identifying a conversion.
func Key(entities []cadpath.Entity, unitScale float64, opts cadpath.Options) string {
	h := sha256.New()
	encodeParams(h, unitScale, opts)
	for _, e := range entities {
		encodeEntity(h, e)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Convert is like cadpath.ConvertWithOptions, but returns the stored result
// of a previous identical conversion when available. Failed conversions
// are not stored.
func (c *Cache) Convert(entities []cadpath.Entity, unitScale float64, opts cadpath.Options) (cadpath.Result, error) {
	key := Key(entities, unitScale, opts)
	res, err := c.lookup(key)
	if err == nil {
		c.hits.Add(1)
		cadpath.Logger().Debug("cache hit", "key", key)
		return res, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return cadpath.Result{}, err
	}

	c.misses.Add(1)
	res, err = cadpath.ConvertWithOptions(entities, unitScale, opts)
	if err != nil {
		return cadpath.Result{}, err
	}
	if err := c.store(key, res); err != nil {
		return cadpath.Result{}, err
	}
	return res, nil
}

func (c *Cache) lookup(key string) (cadpath.Result, error) {
	var (
		res  cadpath.Result
		blob []byte
	)
	row := c.db.QueryRow(`SELECT width_in, height_in, unit_scale, extent_x, extent_y, path
		FROM conversions WHERE key = ?`, key)
	if err := row.Scan(&res.WidthIn, &res.HeightIn, &res.UnitScale, &res.Extent.X, &res.Extent.Y, &blob); err != nil {
		return res, err
	}
	path, err := decodePath(blob)
	if err != nil {
		return res, fmt.Errorf("corrupted cache entry %s: %w", key, err)
	}
	res.Path = path
	return res, nil
}

func (c *Cache) store(key string, res cadpath.Result) error {
	_, err := c.db.Exec(`INSERT OR REPLACE INTO conversions
		(key, width_in, height_in, unit_scale, extent_x, extent_y, path)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		key, res.WidthIn, res.HeightIn, res.UnitScale, res.Extent.X, res.Extent.Y, encodePath(res.Path))
	if err != nil {
		return fmt.Errorf("failed to store conversion: %w", err)
	}
	return nil
}
