package data

import (
	"database/sql"
	"fmt"

	_ "github.com/marcboeker/go-duckdb/v2"

	"github.com/fontdex/fontdex/pkg/coverage"
)

const schema = `
CREATE TABLE IF NOT EXISTS coverage (
	family   VARCHAR NOT NULL,
	file     VARCHAR NOT NULL,
	cp_start INTEGER NOT NULL,
	cp_end   INTEGER NOT NULL
)`

// InitDuckDB opens (or creates) the coverage index database.
func InitDuckDB(path string) (*sql.DB, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Repository is the queryable coverage index backed by DuckDB. It is
// rebuilt from the catalog document on every fetch run.
type Repository struct {
	db *sql.DB
}

// OpenRepository opens the index at path, creating it if needed.
func OpenRepository(path string) (*Repository, error) {
	db, err := InitDuckDB(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open coverage index: %w", err)
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

// Rebuild replaces the index contents with one row per (file, range).
func (r *Repository) Rebuild(entries []Entry) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start index rebuild: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM coverage`); err != nil {
		return fmt.Errorf("failed to clear index: %w", err)
	}
	stmt, err := tx.Prepare(`INSERT INTO coverage (family, file, cp_start, cp_end) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, entry := range entries {
		for _, file := range entry.Files {
			for _, rg := range entry.UnicodeRanges {
				if _, err := stmt.Exec(entry.Family, file, int64(rg.Start), int64(rg.End)); err != nil {
					return fmt.Errorf("failed to index %s: %w", file, err)
				}
			}
		}
	}
	return tx.Commit()
}

// Hit is one file whose coverage includes a queried code point.
type Hit struct {
	Family string
	File   string
	Range  coverage.Range
}

// Covers returns every indexed file covering the given code point.
func (r *Repository) Covers(cp rune) ([]Hit, error) {
	rows, err := r.db.Query(
		`SELECT family, file, cp_start, cp_end
		 FROM coverage
		 WHERE cp_start <= ? AND ? <= cp_end
		 ORDER BY family, file`,
		int64(cp), int64(cp))
	if err != nil {
		return nil, fmt.Errorf("coverage query failed: %w", err)
	}
	defer rows.Close()

	var hits []Hit
	for rows.Next() {
		var h Hit
		var start, end int64
		if err := rows.Scan(&h.Family, &h.File, &start, &end); err != nil {
			return nil, err
		}
		h.Range = coverage.Range{Start: rune(start), End: rune(end)}
		hits = append(hits, h)
	}
	return hits, rows.Err()
}

// FamilyStat summarizes one family's indexed coverage.
type FamilyStat struct {
	Family     string
	Files      int
	Ranges     int
	CodePoints int
}

// Families returns per-family statistics, sorted by family name.
func (r *Repository) Families() ([]FamilyStat, error) {
	rows, err := r.db.Query(
		`WITH file_counts AS (
		     SELECT family, COUNT(DISTINCT file) AS files
		     FROM coverage GROUP BY family
		 ),
		 distinct_ranges AS (
		     SELECT DISTINCT family, cp_start, cp_end FROM coverage
		 )
		 SELECT f.family, f.files, COUNT(*), SUM(r.cp_end - r.cp_start + 1)
		 FROM file_counts f
		 JOIN distinct_ranges r USING (family)
		 GROUP BY f.family, f.files
		 ORDER BY f.family`)
	if err != nil {
		return nil, fmt.Errorf("family query failed: %w", err)
	}
	defer rows.Close()

	var stats []FamilyStat
	for rows.Next() {
		var s FamilyStat
		if err := rows.Scan(&s.Family, &s.Files, &s.Ranges, &s.CodePoints); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}
