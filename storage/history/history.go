package history

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/kampushq/kampus/core/report"
)

// StatusTimedOut marks a run the client stopped polling before the server
// reported a terminal status; it only exists in the local log, never on the wire.
const StatusTimedOut report.Status = "TIMED_OUT"

// Entry is one recorded report run: what was asked for, how it ended and
// where the artifact landed (when it did).
type Entry struct {
	ID           int64         `db:"id"`
	Kind         string        `db:"kind"`
	TargetID     int           `db:"target_id"` // group or enrollment id, per kind
	PeriodID     int           `db:"period_id"`
	Status       report.Status `db:"status"`
	Filename     string        `db:"filename"`
	SavedPath    string        `db:"saved_path"`
	ErrorMessage string        `db:"error_message"`
	CreatedAt    time.Time     `db:"created_at"` // UTC
}

const schema = `
CREATE TABLE IF NOT EXISTS report_history (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	kind          TEXT NOT NULL,
	target_id     INTEGER NOT NULL,
	period_id     INTEGER NOT NULL,
	status        TEXT NOT NULL,
	filename      TEXT NOT NULL DEFAULT '',
	saved_path    TEXT NOT NULL DEFAULT '',
	error_message TEXT NOT NULL DEFAULT '',
	created_at    TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_report_history_created_at ON report_history(created_at);
`

// Repository keeps a local log of report runs in a sqlite file so past
// exports can be listed offline.
type Repository struct {
	db *sqlx.DB
}

func Open(path string) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrap(err, "creating history dir")
	}
	db, err := sqlx.Connect("sqlite", path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening history db %s", path)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "creating history schema")
	}
	return &Repository{db: db}, nil
}

func (repo *Repository) Close() error {
	return repo.db.Close()
}

func (repo *Repository) Record(ctx context.Context, e Entry) (Entry, error) {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	res, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO report_history (kind, target_id, period_id, status, filename, saved_path, error_message, created_at)
		VALUES (:kind, :target_id, :period_id, :status, :filename, :saved_path, :error_message, :created_at)`, e)
	if err != nil {
		return Entry{}, errors.Wrap(err, "recording report run")
	}
	e.ID, err = res.LastInsertId()
	if err != nil {
		return Entry{}, errors.Wrap(err, "reading inserted id")
	}
	return e, nil
}

// Recent returns up to limit entries, newest first.
func (repo *Repository) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	entries := make([]Entry, 0, limit)
	err := repo.db.SelectContext(ctx, &entries, `
		SELECT * FROM report_history ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, errors.Wrap(err, "listing report history")
	}
	return entries, nil
}
