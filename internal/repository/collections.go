package repository

import (
	"context"
	"fmt"

	"hda-data/internal/domain"
)

// Collection is a typed view of one collection in a RecordStore.
// PT is the pointer type that implements domain.Record (e.g. *domain.Lead).
type Collection[T any, PT interface {
	*T
	domain.Record
}] struct {
	store RecordStore
	kind  domain.Kind
}

// NewCollection binds a typed view to store.
func NewCollection[T any, PT interface {
	*T
	domain.Record
}](store RecordStore) Collection[T, PT] {
	return Collection[T, PT]{store: store, kind: PT(new(T)).Kind()}
}

func (c Collection[T, PT]) Kind() domain.Kind { return c.kind }

func (c Collection[T, PT]) List(ctx context.Context, ownerID string) ([]PT, error) {
	records, err := c.store.List(ctx, c.kind, ownerID)
	if err != nil {
		return nil, err
	}
	out := make([]PT, 0, len(records))
	for _, rec := range records {
		typed, err := c.cast(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, typed)
	}
	return out, nil
}

// Find is list-then-filter; the store has no get-by-id operation.
func (c Collection[T, PT]) Find(ctx context.Context, ownerID, id string) (PT, error) {
	items, err := c.List(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if item.GetMeta().ID == id {
			return item, nil
		}
	}
	return nil, domain.NewPersistenceError("find", c.kind, id, domain.ErrNotFound)
}

func (c Collection[T, PT]) Create(ctx context.Context, rec PT) (PT, error) {
	created, err := c.store.Create(ctx, rec)
	if err != nil {
		return nil, err
	}
	return c.cast(created)
}

func (c Collection[T, PT]) Update(ctx context.Context, id string, patch map[string]any) (PT, error) {
	updated, err := c.store.Update(ctx, c.kind, id, patch)
	if err != nil {
		return nil, err
	}
	return c.cast(updated)
}

func (c Collection[T, PT]) Delete(ctx context.Context, id string) error {
	return c.store.Delete(ctx, c.kind, id)
}

func (c Collection[T, PT]) cast(rec domain.Record) (PT, error) {
	typed, ok := rec.(PT)
	if !ok {
		return nil, fmt.Errorf("%s store returned %T", c.kind, rec)
	}
	return typed, nil
}

// Per-entity accessors.

func Leads(s RecordStore) Collection[domain.Lead, *domain.Lead] {
	return NewCollection[domain.Lead](s)
}

func PipelineItems(s RecordStore) Collection[domain.PipelineItem, *domain.PipelineItem] {
	return NewCollection[domain.PipelineItem](s)
}

func Campaigns(s RecordStore) Collection[domain.Campaign, *domain.Campaign] {
	return NewCollection[domain.Campaign](s)
}

func Competitors(s RecordStore) Collection[domain.Competitor, *domain.Competitor] {
	return NewCollection[domain.Competitor](s)
}

func Contacts(s RecordStore) Collection[domain.Contact, *domain.Contact] {
	return NewCollection[domain.Contact](s)
}

func Bookings(s RecordStore) Collection[domain.Booking, *domain.Booking] {
	return NewCollection[domain.Booking](s)
}

func Partnerships(s RecordStore) Collection[domain.Partnership, *domain.Partnership] {
	return NewCollection[domain.Partnership](s)
}

func Industries(s RecordStore) Collection[domain.Industry, *domain.Industry] {
	return NewCollection[domain.Industry](s)
}

func Targets(s RecordStore) Collection[domain.Target, *domain.Target] {
	return NewCollection[domain.Target](s)
}

func PRCampaigns(s RecordStore) Collection[domain.PRCampaign, *domain.PRCampaign] {
	return NewCollection[domain.PRCampaign](s)
}

func MediaContacts(s RecordStore) Collection[domain.MediaContact, *domain.MediaContact] {
	return NewCollection[domain.MediaContact](s)
}
