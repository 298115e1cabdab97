package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"

	"github.com/Raghavaaa/lindia-b/internal/application/port/output"

	_ "modernc.org/sqlite"
)

var _ output.SchemaInspector = (*Inspector)(nil)

var openDB = sql.Open

// Inspector reads schema metadata from SQLite files without modifying them.
type Inspector struct{}

func NewInspector() *Inspector {
	return &Inspector{}
}

// FileSize stats the database file without opening it, so a missing file is
// reported instead of created.
func (i *Inspector) FileSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	if info.IsDir() {
		return 0, fmt.Errorf("%s is a directory", path)
	}
	return info.Size(), nil
}

// Tables lists the user and internal tables recorded in sqlite_master.
func (i *Inspector) Tables(ctx context.Context, path string) ([]string, error) {
	dsn := (&url.URL{Scheme: "file", Opaque: path, RawQuery: "mode=ro"}).String()
	db, err := openDB("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, "SELECT name FROM sqlite_master WHERE type = 'table' ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("list tables in %s: %w", path, err)
	}
	defer rows.Close()

	tables := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan table name: %w", err)
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tables: %w", err)
	}
	return tables, nil
}
