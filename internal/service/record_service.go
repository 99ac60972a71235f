package service

import (
	"context"
	"encoding/json"

	"hda-data/internal/cache"
	"hda-data/internal/domain"
	"hda-data/internal/repository"

	"go.uber.org/zap"
)

// RecordService is the collection API behind the HTTP handlers. Payloads
// are checked here so the store only ever sees well-formed rows.
type RecordService interface {
	List(ctx context.Context, kind domain.Kind, ownerID string) ([]domain.Record, error)
	Get(ctx context.Context, kind domain.Kind, ownerID, id string) (domain.Record, error)
	Create(ctx context.Context, kind domain.Kind, ownerID string, payload []byte) (domain.Record, error)
	Update(ctx context.Context, kind domain.Kind, ownerID, id string, patch map[string]any) (domain.Record, error)
	Delete(ctx context.Context, kind domain.Kind, ownerID, id string) error
}

type recordService struct {
	store  repository.RecordStore
	cache  *cache.Cache
	logger *zap.Logger
}

// NewRecordService wires the store and an optional cache (nil disables snapshots).
func NewRecordService(store repository.RecordStore, c *cache.Cache, logger *zap.Logger) RecordService {
	return &recordService{store: store, cache: c, logger: logger}
}

func (s *recordService) List(ctx context.Context, kind domain.Kind, ownerID string) ([]domain.Record, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	records, err := s.store.List(ctx, kind, ownerID)
	if err != nil {
		s.logger.Error("Failed to list records", zap.String("collection", string(kind)), zap.Error(err))
		return nil, err
	}
	s.cache.ForOwner(ownerID).Snapshot(ctx, kind, records)
	return records, nil
}

// Get returns one of the owner's rows.
func (s *recordService) Get(ctx context.Context, kind domain.Kind, ownerID, id string) (domain.Record, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	rec, err := s.find(ctx, kind, ownerID, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, domain.NewPersistenceError("find", kind, id, domain.ErrNotFound)
	}
	return rec, nil
}

func (s *recordService) Create(ctx context.Context, kind domain.Kind, ownerID string, payload []byte) (domain.Record, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	rec, err := domain.DecodePayload(kind, payload)
	if err != nil {
		return nil, err
	}
	rec.GetMeta().UserID = ownerID

	created, err := s.store.Create(ctx, rec)
	if err != nil {
		s.logger.Error("Failed to create record", zap.String("collection", string(kind)), zap.Error(err))
		return nil, err
	}
	s.invalidate(ctx, kind, ownerID)

	s.logger.Info("Record created",
		zap.String("collection", string(kind)),
		zap.String("id", created.GetMeta().ID),
		zap.String("owner_id", ownerID),
	)
	return created, nil
}

// Update applies patch to a row the owner holds. Rows of other owners
// look exactly like missing ones.
func (s *recordService) Update(ctx context.Context, kind domain.Kind, ownerID, id string, patch map[string]any) (domain.Record, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	normalized, err := domain.NormalizePatch(kind, patch)
	if err != nil {
		return nil, err
	}
	owned, err := s.find(ctx, kind, ownerID, id)
	if err != nil {
		return nil, err
	}
	if owned == nil {
		return nil, domain.NewPersistenceError("update", kind, id, domain.ErrNotFound)
	}

	updated, err := s.store.Update(ctx, kind, id, normalized)
	if err != nil {
		s.logger.Error("Failed to update record", zap.String("collection", string(kind)), zap.String("id", id), zap.Error(err))
		return nil, err
	}
	s.invalidate(ctx, kind, ownerID)
	return updated, nil
}

// Delete removes the owner's row; absent ids succeed.
func (s *recordService) Delete(ctx context.Context, kind domain.Kind, ownerID, id string) error {
	if err := requireOwner(ownerID); err != nil {
		return err
	}
	owned, err := s.find(ctx, kind, ownerID, id)
	if err != nil {
		return err
	}
	if owned == nil {
		return nil
	}
	if err := s.store.Delete(ctx, kind, id); err != nil {
		s.logger.Error("Failed to delete record", zap.String("collection", string(kind)), zap.String("id", id), zap.Error(err))
		return err
	}
	s.invalidate(ctx, kind, ownerID)
	return nil
}

// find scans the owner's rows; nil means the owner holds no such id.
func (s *recordService) find(ctx context.Context, kind domain.Kind, ownerID, id string) (domain.Record, error) {
	records, err := s.store.List(ctx, kind, ownerID)
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		if rec.GetMeta().ID == id {
			return rec, nil
		}
	}
	return nil, nil
}

func (s *recordService) invalidate(ctx context.Context, kind domain.Kind, ownerID string) {
	s.cache.ForOwner(ownerID).Remove(ctx, string(kind))
}

func requireOwner(ownerID string) error {
	if ownerID == "" {
		return &domain.ValidationError{Field: domain.ColumnUserID, Reason: "is required"}
	}
	return nil
}

// DecodePatch reads a JSON object body into a patch map.
func DecodePatch(body []byte) (map[string]any, error) {
	var patch map[string]any
	if err := json.Unmarshal(body, &patch); err != nil || patch == nil {
		return nil, &domain.ValidationError{Reason: "body must be a JSON object"}
	}
	return patch, nil
}
