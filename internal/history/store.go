// Package history persists batch runs and their extracted rows. The store
// speaks database/sql so the same code serves PostgreSQL in deployments and
// SQLite for local and batch use; the DSN picks the driver.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib" // pgx database/sql driver
	_ "modernc.org/sqlite"             // sqlite driver

	"github.com/joseph-ayodele/resume-analyzer/constants"
	"github.com/joseph-ayodele/resume-analyzer/internal/common"
	"github.com/joseph-ayodele/resume-analyzer/internal/entity"
)

const driverPostgres = "pgx"
const driverSQLite = "sqlite"

const schema = `
CREATE TABLE IF NOT EXISTS batches (
	id            TEXT PRIMARY KEY,
	source        TEXT NOT NULL,
	archive_name  TEXT NOT NULL,
	resume_count  INTEGER NOT NULL,
	failed_count  INTEGER NOT NULL,
	status        TEXT NOT NULL,
	started_at    TIMESTAMP NOT NULL,
	finished_at   TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS batch_records (
	batch_id           TEXT NOT NULL REFERENCES batches(id) ON DELETE CASCADE,
	s_no               INTEGER NOT NULL,
	filename           TEXT,
	extractor          TEXT,
	name               TEXT,
	address            TEXT,
	email              TEXT,
	contact_number     TEXT,
	last_qualification TEXT,
	last_institution   TEXT,
	PRIMARY KEY (batch_id, s_no)
);
`

// Store records finished batches.
type Store struct {
	db     *sql.DB
	driver string
	log    *slog.Logger
}

// Open connects using the driver implied by the DSN: postgres:// or
// postgresql:// mean pgx, anything else is treated as a SQLite path.
// The schema is applied on open so first runs need no setup step.
func Open(ctx context.Context, dsn string, log *slog.Logger) (*Store, error) {
	if log == nil {
		log = slog.Default()
	}

	driver := driverSQLite
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		driver = driverPostgres
	} else if !strings.Contains(dsn, "?") && dsn != ":memory:" {
		dsn += "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}

	log.Info("history.open", "driver", driver)
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: open: %v", common.ErrDatabase, err)
	}

	if driver == driverSQLite {
		if dsn == ":memory:" {
			// Every pooled connection gets its own in-memory database, so
			// the schema only exists on one of them.
			db.SetMaxOpenConns(1)
		}
		if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
			db.Close()
			return nil, fmt.Errorf("%w: enable foreign keys: %v", common.ErrDatabase, err)
		}
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: apply schema: %v", common.ErrDatabase, err)
	}

	return &Store{db: db, driver: driver, log: log}, nil
}

// Close closes the underlying pool.
func (s *Store) Close() error {
	s.log.Info("history.close")
	return s.db.Close()
}

// Ping checks connectivity; the server calls it once at startup.
func (s *Store) Ping(ctx context.Context, timeout time.Duration) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return s.db.PingContext(ctx)
}

// RecordBatch writes the batch summary and all its rows in one transaction.
func (s *Store) RecordBatch(ctx context.Context, b entity.Batch, records []entity.ResumeRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	_, err = tx.ExecContext(ctx, s.rebind(`
		INSERT INTO batches
			(id, source, archive_name, resume_count, failed_count, status, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`), b.ID.String(), b.Source, b.ArchiveName, b.ResumeCount, b.FailedCount,
		string(b.Status), b.StartedAt.UTC(), b.FinishedAt.UTC())
	if err != nil {
		return fmt.Errorf("insert batch: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, s.rebind(`
		INSERT INTO batch_records
			(batch_id, s_no, filename, extractor, name, address, email,
			 contact_number, last_qualification, last_institution)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`))
	if err != nil {
		return fmt.Errorf("prepare records: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.ExecContext(ctx,
			b.ID.String(), r.SNo, r.Filename, string(r.Extractor),
			r.Name, r.Address, r.Email,
			r.ContactNumber, r.LastQualification, r.LastInstitution); err != nil {
			return fmt.Errorf("insert record %d: %w", r.SNo, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	s.log.Info("history.batch_recorded",
		"batch_id", b.ID.String(), "rows", len(records), "status", string(b.Status))
	return nil
}

// ListBatches returns the most recent batches, newest first.
func (s *Store) ListBatches(ctx context.Context, limit int) ([]entity.Batch, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, s.rebind(`
		SELECT id, source, archive_name, resume_count, failed_count, status, started_at, finished_at
		FROM batches ORDER BY started_at DESC, id LIMIT ?
	`), limit)
	if err != nil {
		return nil, fmt.Errorf("query batches: %w", err)
	}
	defer rows.Close()

	var out []entity.Batch
	for rows.Next() {
		var b entity.Batch
		var id, status string
		if err := rows.Scan(&id, &b.Source, &b.ArchiveName, &b.ResumeCount,
			&b.FailedCount, &status, &b.StartedAt, &b.FinishedAt); err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		b.ID, err = uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("parse batch id %q: %w", id, err)
		}
		b.Status = constants.BatchStatus(status)
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate batches: %w", err)
	}
	return out, nil
}

// ListRecords returns a batch's rows in report order.
func (s *Store) ListRecords(ctx context.Context, batchID uuid.UUID) ([]entity.ResumeRecord, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(`
		SELECT s_no, filename, extractor, name, address, email,
		       contact_number, last_qualification, last_institution
		FROM batch_records WHERE batch_id = ? ORDER BY s_no
	`), batchID.String())
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var out []entity.ResumeRecord
	for rows.Next() {
		var r entity.ResumeRecord
		var extractor string
		if err := rows.Scan(&r.SNo, &r.Filename, &extractor, &r.Name, &r.Address,
			&r.Email, &r.ContactNumber, &r.LastQualification, &r.LastInstitution); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		r.Extractor = constants.ExtractorKind(extractor)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return out, nil
}

// rebind rewrites ? placeholders to $n for the postgres driver.
func (s *Store) rebind(query string) string {
	if s.driver != driverPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
