package ledger

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/sagiphub/reliefhub-go/internal/types"
)

// SQLiteStore keeps the registry in a local SQLite database. It trades the
// file store's single-document simplicity for durability under concurrent
// client processes sharing one ledger.
type SQLiteStore struct {
	conn *sql.DB
}

// NewSQLiteStore opens (creating if needed) the database at dbPath.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	conn, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger database: %w", err)
	}
	s := &SQLiteStore{conn: conn}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to migrate ledger database: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS owned_requests (
		public_id TEXT PRIMARY KEY,
		edit_token TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := s.conn.Exec(schema)
	return err
}

// Load reads every owned record. Rows with an empty identifier are skipped.
func (s *SQLiteStore) Load() ([]types.OwnedRequest, error) {
	rows, err := s.conn.Query(`SELECT public_id, edit_token FROM owned_requests ORDER BY public_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []types.OwnedRequest
	for rows.Next() {
		var r types.OwnedRequest
		if err := rows.Scan(&r.ID, &r.EditToken); err != nil {
			return nil, err
		}
		if r.ID == "" {
			continue
		}
		recs = append(recs, r)
	}
	return recs, rows.Err()
}

// Save replaces the registry as a unit inside one transaction.
func (s *SQLiteStore) Save(recs []types.OwnedRequest) error {
	tx, err := s.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM owned_requests`); err != nil {
		return err
	}
	for _, r := range recs {
		if _, err := tx.Exec(
			`INSERT INTO owned_requests (public_id, edit_token) VALUES (?, ?)`,
			r.ID, r.EditToken,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.conn.Close()
}
