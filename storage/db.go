package storage

import (
	"context"
	"database/sql"

	raven "github.com/getsentry/raven-go"
	"github.com/kpango/glg"
	_ "github.com/lib/pq" // Only want to import the interface here
	"github.com/pkg/errors"
)

const createLinkedAccountsTable = `CREATE TABLE IF NOT EXISTS linked_accounts (
	caller_id TEXT PRIMARY KEY,
	ign       TEXT NOT NULL,
	linked_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// LinkDB is a wrapper around the database connection pool that stores the linked
// account queries as prepared statements.
type LinkDB struct {
	Database       *sql.DB
	SelectLinkStmt *sql.Stmt
	UpsertLinkStmt *sql.Stmt
	DeleteLinkStmt *sql.Stmt
}

// NewLinkDB opens the connection pool, creates the linked_accounts table if it is
// missing and prepares the statements used later.
func NewLinkDB(ctx context.Context, dbURL string) (*LinkDB, error) {

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		raven.CaptureError(err, nil)
		glg.Errorf("DB errror: %s", err.Error())
		return nil, errors.Wrap(err, "opening database")
	}

	if _, err = db.ExecContext(ctx, createLinkedAccountsTable); err != nil {
		raven.CaptureError(err, nil)
		glg.Errorf("Failed creating the linked_accounts table: %s", err.Error())
		db.Close()
		return nil, errors.Wrap(err, "creating linked_accounts table")
	}

	selectStmt, err := db.PrepareContext(ctx, "SELECT ign FROM linked_accounts WHERE caller_id = $1")
	if err != nil {
		raven.CaptureError(err, nil)
		glg.Errorf("Error preparing the select link statement: %s", err.Error())
		db.Close()
		return nil, errors.Wrap(err, "preparing select link")
	}

	upsertStmt, err := db.PrepareContext(ctx, "INSERT INTO linked_accounts (caller_id, ign) VALUES ($1, $2) "+
		"ON CONFLICT (caller_id) DO UPDATE SET ign = EXCLUDED.ign, linked_at = now()")
	if err != nil {
		raven.CaptureError(err, nil)
		glg.Errorf("Error preparing the upsert link statement: %s", err.Error())
		db.Close()
		return nil, errors.Wrap(err, "preparing upsert link")
	}

	deleteStmt, err := db.PrepareContext(ctx, "DELETE FROM linked_accounts WHERE caller_id = $1")
	if err != nil {
		raven.CaptureError(err, nil)
		glg.Errorf("Error preparing the delete link statement: %s", err.Error())
		db.Close()
		return nil, errors.Wrap(err, "preparing delete link")
	}

	return &LinkDB{
		Database:       db,
		SelectLinkStmt: selectStmt,
		UpsertLinkStmt: upsertStmt,
		DeleteLinkStmt: deleteStmt,
	}, nil
}

// LinkedName is responsible for querying the linked in-game name for a caller.
func (l *LinkDB) LinkedName(ctx context.Context, callerID string) (string, bool, error) {

	var ign string
	err := l.SelectLinkStmt.QueryRowContext(ctx, callerID).Scan(&ign)
	if err == sql.ErrNoRows {
		return "", false, nil
	} else if err != nil {
		return "", false, errors.Wrap(err, "selecting linked account")
	}

	return ign, true, nil
}

// SaveLinkedName inserts or replaces the caller's link.
func (l *LinkDB) SaveLinkedName(ctx context.Context, callerID, name string) error {
	_, err := l.UpsertLinkStmt.ExecContext(ctx, callerID, name)
	return errors.Wrap(err, "saving linked account")
}

// DeleteLinkedName removes the caller's link, a missing link is not an error.
func (l *LinkDB) DeleteLinkedName(ctx context.Context, callerID string) error {
	_, err := l.DeleteLinkStmt.ExecContext(ctx, callerID)
	return errors.Wrap(err, "deleting linked account")
}

// Close releases the prepared statements and the connection pool.
func (l *LinkDB) Close() error {
	for _, stmt := range []*sql.Stmt{l.SelectLinkStmt, l.UpsertLinkStmt, l.DeleteLinkStmt} {
		stmt.Close()
	}
	return l.Database.Close()
}
