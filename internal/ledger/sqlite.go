package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS visit_ledger (
	id    INTEGER PRIMARY KEY CHECK (id = 1),
	count INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS ledger_visitors (
	position INTEGER PRIMARY KEY AUTOINCREMENT,
	identity TEXT NOT NULL UNIQUE
);
INSERT OR IGNORE INTO visit_ledger (id, count) VALUES (1, 0);
`

// SQLite keeps the ledger in a SQLite database. Recording a visitor runs in a
// single transaction, so it is safe across goroutines and across processes
// sharing the database file.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens (creating if needed) the database at path and ensures the
// schema exists.
func NewSQLite(ctx context.Context, path string) (*SQLite, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlite path is required")
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create sqlite dir: %w", err)
		}
	}

	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One connection serializes writers inside this process and keeps a
	// ":memory:" database from being split across connections.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create ledger schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

// Load reads the count and visitors in insertion order.
func (s *SQLite) Load(ctx context.Context) (*Ledger, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	l := newLedger()
	if err := tx.QueryRowContext(ctx, `SELECT count FROM visit_ledger WHERE id = 1`).Scan(&l.Count); err != nil {
		return nil, fmt.Errorf("read count: %w", err)
	}

	rows, err := tx.QueryContext(ctx, `SELECT identity FROM ledger_visitors ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("read visitors: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var identity string
		if err := rows.Scan(&identity); err != nil {
			return nil, fmt.Errorf("scan visitor: %w", err)
		}
		l.Visitors = append(l.Visitors, identity)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read visitors: %w", err)
	}

	if err := l.Validate(); err != nil {
		return nil, err
	}
	return l, nil
}

// Save replaces the stored record with l.
func (s *SQLite) Save(ctx context.Context, l *Ledger) error {
	if err := l.Validate(); err != nil {
		return err
	}
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM ledger_visitors`); err != nil {
			return fmt.Errorf("clear visitors: %w", err)
		}
		stmt, err := tx.PrepareContext(ctx, `INSERT INTO ledger_visitors (identity) VALUES (?)`)
		if err != nil {
			return fmt.Errorf("prepare insert: %w", err)
		}
		defer stmt.Close()

		for _, identity := range l.Visitors {
			if _, err := stmt.ExecContext(ctx, identity); err != nil {
				return fmt.Errorf("insert visitor: %w", err)
			}
		}
		if _, err := tx.ExecContext(ctx, `UPDATE visit_ledger SET count = ? WHERE id = 1`, l.Count); err != nil {
			return fmt.Errorf("update count: %w", err)
		}
		return nil
	})
}

// Reset empties the visitor table and zeroes the count.
func (s *SQLite) Reset(ctx context.Context) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM ledger_visitors`); err != nil {
			return fmt.Errorf("clear visitors: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `UPDATE visit_ledger SET count = 0 WHERE id = 1`); err != nil {
			return fmt.Errorf("zero count: %w", err)
		}
		return nil
	})
}

// RecordVisitor inserts identity if absent and returns the resulting count,
// all inside one transaction.
func (s *SQLite) RecordVisitor(ctx context.Context, identity string) (Result, error) {
	var res Result
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		r, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO ledger_visitors (identity) VALUES (?)`, identity)
		if err != nil {
			return fmt.Errorf("insert visitor: %w", err)
		}
		n, err := r.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		if n == 1 {
			res.IsNewVisitor = true
			if _, err := tx.ExecContext(ctx, `UPDATE visit_ledger SET count = count + 1 WHERE id = 1`); err != nil {
				return fmt.Errorf("increment count: %w", err)
			}
		}
		if err := tx.QueryRowContext(ctx, `SELECT count FROM visit_ledger WHERE id = 1`).Scan(&res.Count); err != nil {
			return fmt.Errorf("read count: %w", err)
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	return res, nil
}

// Close closes the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) inTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
