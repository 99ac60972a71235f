package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"hda-data/internal/domain"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// PostgresRecordStore implements RecordStore over the hosted Postgres.
// Rows are read with to_jsonb(t) and written through jsonb_populate_record,
// so a single code path serves every collection table.
type PostgresRecordStore struct {
	db *sql.DB
}

// NewPostgresRecordStore creates the Postgres-backed record store.
func NewPostgresRecordStore(db *sql.DB) *PostgresRecordStore {
	return &PostgresRecordStore{db: db}
}

var _ RecordStore = (*PostgresRecordStore)(nil)

// List returns the owner's rows, newest first.
func (r *PostgresRecordStore) List(ctx context.Context, kind domain.Kind, ownerID string) ([]domain.Record, error) {
	d, err := domain.Lookup(kind)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(
		`SELECT to_jsonb(t) FROM %s t WHERE t.user_id = $1 ORDER BY t.created_at DESC`,
		pq.QuoteIdentifier(d.Table),
	)

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, wrapDBError("list", kind, "", err)
	}
	defer rows.Close()

	records := []domain.Record{}
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, wrapDBError("list", kind, "", err)
		}
		rec, err := domain.Decode(kind, raw)
		if err != nil {
			return nil, wrapDBError("list", kind, "", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBError("list", kind, "", err)
	}

	return records, nil
}

// Create inserts one row and returns it as stored.
func (r *PostgresRecordStore) Create(ctx context.Context, rec domain.Record) (domain.Record, error) {
	kind := rec.Kind()
	d, err := domain.Lookup(kind)
	if err != nil {
		return nil, err
	}

	fields, err := domain.Fields(rec)
	if err != nil {
		return nil, wrapDBError("create", kind, "", err)
	}
	payload, err := json.Marshal(fields)
	if err != nil {
		return nil, wrapDBError("create", kind, "", err)
	}

	table := pq.QuoteIdentifier(d.Table)
	cols := quoteColumns(d.Columns())
	query := fmt.Sprintf(
		`INSERT INTO %[1]s AS t (%[2]s)
		 SELECT %[2]s FROM jsonb_populate_record(NULL::%[1]s, $1::jsonb)
		 RETURNING to_jsonb(t)`,
		table, cols,
	)

	var raw []byte
	if err := r.db.QueryRowContext(ctx, query, string(payload)).Scan(&raw); err != nil {
		return nil, wrapDBError("create", kind, "", err)
	}

	created, err := domain.Decode(kind, raw)
	if err != nil {
		return nil, wrapDBError("create", kind, "", err)
	}
	return created, nil
}

// Update merges patch into the row identified by id.
func (r *PostgresRecordStore) Update(ctx context.Context, kind domain.Kind, id string, patch map[string]any) (domain.Record, error) {
	d, err := domain.Lookup(kind)
	if err != nil {
		return nil, err
	}
	// column names below come from the patch keys, so they must be checked
	normalized, err := domain.NormalizePatch(kind, patch)
	if err != nil {
		return nil, err
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.NewPersistenceError("update", kind, id, domain.ErrNotFound)
	}

	keys := make([]string, 0, len(normalized))
	for k := range normalized {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	payload, err := json.Marshal(normalized)
	if err != nil {
		return nil, wrapDBError("update", kind, id, err)
	}

	table := pq.QuoteIdentifier(d.Table)
	cols := quoteColumns(keys)
	query := fmt.Sprintf(
		`UPDATE %[1]s AS t
		 SET (%[2]s) = (SELECT %[2]s FROM jsonb_populate_record(NULL::%[1]s, $1::jsonb)),
		     updated_at = now()
		 WHERE t.id = $2
		 RETURNING to_jsonb(t)`,
		table, cols,
	)

	var raw []byte
	if err := r.db.QueryRowContext(ctx, query, string(payload), id).Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewPersistenceError("update", kind, id, domain.ErrNotFound)
		}
		return nil, wrapDBError("update", kind, id, err)
	}

	updated, err := domain.Decode(kind, raw)
	if err != nil {
		return nil, wrapDBError("update", kind, id, err)
	}
	return updated, nil
}

// Delete removes the row. Ids that never existed (or are not uuids) are a no-op.
func (r *PostgresRecordStore) Delete(ctx context.Context, kind domain.Kind, id string) error {
	d, err := domain.Lookup(kind)
	if err != nil {
		return err
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, pq.QuoteIdentifier(d.Table))
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return wrapDBError("delete", kind, id, err)
	}
	return nil
}

func quoteColumns(cols []string) string {
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = pq.QuoteIdentifier(c)
	}
	return strings.Join(quoted, ", ")
}

func wrapDBError(op string, kind domain.Kind, id string, err error) error {
	pErr := &domain.PersistenceError{Op: op, Collection: kind, ID: id, Err: err}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		pErr.Code = string(pqErr.Code)
	}
	return pErr
}
