package sqlite

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pintwise/pintwise/internal/export/types"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// Filename is the name of the snapshot database inside the output directory.
const Filename = "snapshot.db"

// batchSize is the number of rows inserted per transaction.
const batchSize = 1000

const schema = `
CREATE TABLE metadata (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
CREATE TABLE pubs (
	id INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	time_zone TEXT NOT NULL,
	permanently_closed INTEGER NOT NULL
);
CREATE TABLE amenities (
	pub_id INTEGER NOT NULL REFERENCES pubs (id),
	key TEXT NOT NULL,
	value INTEGER,
	yes INTEGER NOT NULL,
	no INTEGER NOT NULL,
	PRIMARY KEY (pub_id, key)
);
CREATE TABLE prices (
	id INTEGER PRIMARY KEY,
	pub_id INTEGER NOT NULL REFERENCES pubs (id),
	targeting TEXT NOT NULL,
	amount INTEGER NOT NULL,
	is_deal INTEGER NOT NULL,
	deal_type TEXT,
	deal_status TEXT,
	starts_later INTEGER NOT NULL,
	confidence TEXT NOT NULL,
	recent_accurate INTEGER NOT NULL,
	upvotes INTEGER NOT NULL,
	downvotes INTEGER NOT NULL
);
CREATE INDEX prices_pub_id ON prices (pub_id);
`

// Exporter handles exporting snapshots to a SQLite database.
type Exporter struct {
	outDir string
}

// New creates a new SQLite exporter instance.
func New(outDir string) *Exporter {
	return &Exporter{outDir: outDir}
}

// Export writes the snapshot to a fresh SQLite database, replacing any previous one.
func (e *Exporter) Export(snapshot *types.Snapshot) error {
	path := filepath.Join(e.outDir, Filename)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove existing file %s: %w", Filename, err)
	}

	// Open database
	conn, err := sqlite.OpenConn(path, sqlite.OpenCreate|sqlite.OpenReadWrite)
	if err != nil {
		return fmt.Errorf("failed to open SQLite database: %w", err)
	}
	defer conn.Close()

	if err := sqlitex.ExecuteScript(conn, schema, nil); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	if err := writeMetadata(conn, snapshot.At); err != nil {
		return err
	}

	err = insertBatched(conn, snapshot.Pubs,
		"INSERT INTO pubs (id, name, time_zone, permanently_closed) VALUES (?, ?, ?, ?)",
		func(p *types.PubRecord) []any {
			return []any{p.ID, p.Name, p.TimeZone, p.PermanentlyClosed}
		})
	if err != nil {
		return fmt.Errorf("failed to export pubs: %w", err)
	}

	err = insertBatched(conn, snapshot.Amenities,
		"INSERT INTO amenities (pub_id, key, value, yes, no) VALUES (?, ?, ?, ?, ?)",
		func(a *types.AmenityRecord) []any {
			var value any
			if a.Value != nil {
				value = *a.Value
			}
			return []any{a.PubID, a.Key, value, a.Yes, a.No}
		})
	if err != nil {
		return fmt.Errorf("failed to export amenities: %w", err)
	}

	err = insertBatched(conn, snapshot.Prices,
		`INSERT INTO prices (id, pub_id, targeting, amount, is_deal, deal_type, deal_status, starts_later,
			confidence, recent_accurate, upvotes, downvotes) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		func(p *types.PriceRecord) []any {
			var dealType, dealStatus any
			if p.IsDeal {
				dealType, dealStatus = p.DealType, p.DealStatus
			}
			return []any{
				p.ID, p.PubID, p.Targeting, p.Amount, p.IsDeal, dealType, dealStatus, p.StartsLater,
				p.Confidence, p.RecentAccurate, int64(p.Upvotes), int64(p.Downvotes),
			}
		})
	if err != nil {
		return fmt.Errorf("failed to export prices: %w", err)
	}

	return nil
}

func writeMetadata(conn *sqlite.Conn, at time.Time) error {
	rows := [][2]string{
		{"engine_version", types.EngineVersion},
		{"snapshot_at", at.UTC().Format(time.RFC3339)},
	}
	for _, row := range rows {
		err := sqlitex.Execute(conn, "INSERT INTO metadata (key, value) VALUES (?, ?)", &sqlitex.ExecOptions{
			Args: []any{row[0], row[1]},
		})
		if err != nil {
			return fmt.Errorf("failed to write metadata: %w", err)
		}
	}
	return nil
}

// insertBatched inserts records in transactions of batchSize rows.
func insertBatched[T any](conn *sqlite.Conn, records []T, query string, args func(T) []any) error {
	for i := 0; i < len(records); i += batchSize {
		end := min(i+batchSize, len(records))

		if err := insertBatch(conn, records[i:end], query, args); err != nil {
			return err
		}
	}
	return nil
}

func insertBatch[T any](conn *sqlite.Conn, batch []T, query string, args func(T) []any) (err error) {
	// Rolls back unless the batch commits
	defer sqlitex.Save(conn)(&err)

	for _, record := range batch {
		if err := sqlitex.Execute(conn, query, &sqlitex.ExecOptions{Args: args(record)}); err != nil {
			return fmt.Errorf("failed to insert record: %w", err)
		}
	}
	return nil
}
