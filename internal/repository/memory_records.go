package repository

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"sync"
	"time"

	"hda-data/internal/domain"

	"github.com/google/uuid"
)

// MemoryRecordStore serves the record API when the database is disabled.
// It plays the store's role: ids and timestamps are assigned here and rows
// that break a collection's shape are rejected like a CHECK constraint would.
type MemoryRecordStore struct {
	mu   sync.RWMutex
	rows map[domain.Kind]map[string]*memoryRow
	seq  uint64
	now  func() time.Time
}

type memoryRow struct {
	data    map[string]any // full row as JSON values, meta included
	created time.Time
	updated time.Time
	seq     uint64
}

// NewMemoryRecordStore creates an empty store using the wall clock.
func NewMemoryRecordStore() *MemoryRecordStore {
	return NewMemoryRecordStoreWithClock(time.Now)
}

// NewMemoryRecordStoreWithClock lets tests pin timestamps.
func NewMemoryRecordStoreWithClock(now func() time.Time) *MemoryRecordStore {
	return &MemoryRecordStore{
		rows: map[domain.Kind]map[string]*memoryRow{},
		now:  now,
	}
}

var _ RecordStore = (*MemoryRecordStore)(nil)

func (r *MemoryRecordStore) List(_ context.Context, kind domain.Kind, ownerID string) ([]domain.Record, error) {
	if _, err := domain.Lookup(kind); err != nil {
		return nil, err
	}

	r.mu.RLock()
	matched := make([]*memoryRow, 0)
	for _, row := range r.rows[kind] {
		if owner, _ := row.data[domain.ColumnUserID].(string); owner == ownerID {
			matched = append(matched, row)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].created.Equal(matched[j].created) {
			return matched[i].created.After(matched[j].created)
		}
		return matched[i].seq > matched[j].seq
	})

	records := make([]domain.Record, 0, len(matched))
	for _, row := range matched {
		rec, err := decodeRow(kind, row)
		if err != nil {
			r.mu.RUnlock()
			return nil, domain.NewPersistenceError("list", kind, "", err)
		}
		records = append(records, rec)
	}
	r.mu.RUnlock()

	return records, nil
}

func (r *MemoryRecordStore) Create(_ context.Context, rec domain.Record) (domain.Record, error) {
	kind := rec.Kind()
	if _, err := domain.Lookup(kind); err != nil {
		return nil, err
	}
	if rec.GetMeta().UserID == "" {
		return nil, domain.NewPersistenceError("create", kind, "", errors.New("user_id violates not-null constraint"))
	}
	if err := domain.ValidateRecord(rec); err != nil {
		return nil, domain.NewPersistenceError("create", kind, "", err)
	}

	fields, err := domain.Fields(rec)
	if err != nil {
		return nil, domain.NewPersistenceError("create", kind, "", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now().UTC()
	id := uuid.NewString()
	r.seq++
	row := &memoryRow{data: fields, created: now, updated: now, seq: r.seq}
	row.data[domain.ColumnID] = id

	if r.rows[kind] == nil {
		r.rows[kind] = map[string]*memoryRow{}
	}
	r.rows[kind][id] = row

	created, err := decodeRow(kind, row)
	if err != nil {
		return nil, domain.NewPersistenceError("create", kind, id, err)
	}
	return created, nil
}

func (r *MemoryRecordStore) Update(_ context.Context, kind domain.Kind, id string, patch map[string]any) (domain.Record, error) {
	normalized, err := domain.NormalizePatch(kind, patch)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	row, ok := r.rows[kind][id]
	if !ok {
		return nil, domain.NewPersistenceError("update", kind, id, domain.ErrNotFound)
	}

	// merge into a copy; the stored row only changes once it decodes
	next := &memoryRow{
		data:    make(map[string]any, len(row.data)),
		created: row.created,
		updated: row.updated,
		seq:     row.seq,
	}
	for k, v := range row.data {
		next.data[k] = v
	}
	for k, v := range normalized {
		next.data[k] = v
	}
	now := r.now().UTC()
	if !now.After(row.updated) {
		now = row.updated.Add(time.Microsecond)
	}
	next.updated = now

	updated, err := decodeRow(kind, next)
	if err != nil {
		return nil, domain.NewPersistenceError("update", kind, id, err)
	}
	r.rows[kind][id] = next
	return updated, nil
}

func (r *MemoryRecordStore) Delete(_ context.Context, kind domain.Kind, id string) error {
	if _, err := domain.Lookup(kind); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rows[kind], id)
	return nil
}

func decodeRow(kind domain.Kind, row *memoryRow) (domain.Record, error) {
	out := make(map[string]any, len(row.data)+2)
	for k, v := range row.data {
		out[k] = v
	}
	out[domain.ColumnCreatedAt] = row.created
	out[domain.ColumnUpdatedAt] = row.updated
	raw, err := json.Marshal(out)
	if err != nil {
		return nil, err
	}
	return domain.Decode(kind, raw)
}
