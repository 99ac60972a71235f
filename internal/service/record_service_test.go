package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"hda-data/internal/cache"
	"hda-data/internal/domain"
	"hda-data/internal/repository"
	"hda-data/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const owner = "sasha@hustledigitalagency.com"

type failingStore struct {
	repository.RecordStore
	err error
}

func (f failingStore) List(context.Context, domain.Kind, string) ([]domain.Record, error) {
	return nil, f.err
}

func (f failingStore) Create(_ context.Context, rec domain.Record) (domain.Record, error) {
	return nil, domain.NewPersistenceError("create", rec.Kind(), "", f.err)
}

func newTestRecordService() (RecordService, *cache.Cache) {
	tick := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	clock := func() time.Time {
		tick = tick.Add(time.Second)
		return tick
	}
	c := cache.New(store.NewMemoryKV(0), zap.NewNop())
	return NewRecordService(repository.NewMemoryRecordStoreWithClock(clock), c, zap.NewNop()), c
}

func TestRecordService_CreateStampsOwnerAndDefaults(t *testing.T) {
	svc, _ := newTestRecordService()
	ctx := context.Background()

	rec, err := svc.Create(ctx, domain.KindLead, owner, []byte(`{
		"first_name": "Ada",
		"email": "ada@example.com",
		"user_id": "mallory",
		"id": "chosen-by-client"
	}`))
	require.NoError(t, err)

	lead := rec.(*domain.Lead)
	assert.Equal(t, owner, lead.UserID)
	assert.NotEqual(t, "chosen-by-client", lead.ID)
	assert.Equal(t, domain.LeadStatusNew, lead.Status)
}

func TestRecordService_CreateRejectsBeforeDispatch(t *testing.T) {
	cause := errors.New("should not be reached")
	svc := NewRecordService(failingStore{err: cause}, nil, zap.NewNop())
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.KindCampaign, owner, []byte(`{"name":"Spring","type":"billboard"}`))
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "type", vErr.Field)
	assert.NotErrorIs(t, err, cause)

	_, err = svc.Create(ctx, domain.KindBooking, owner, []byte(`{"client_name":"Acme","service":"Audit"}`))
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "date", vErr.Field)

	_, err = svc.Create(ctx, domain.KindLead, "", []byte(`{"first_name":"A","email":"a@b.com"}`))
	require.ErrorAs(t, err, &vErr)
}

func TestRecordService_StoreFailurePropagates(t *testing.T) {
	cause := errors.New("connection refused")
	svc := NewRecordService(failingStore{err: cause}, nil, zap.NewNop())

	_, err := svc.Create(context.Background(), domain.KindContact, owner, []byte(`{"name":"Jo"}`))
	var pErr *domain.PersistenceError
	require.ErrorAs(t, err, &pErr)
	assert.ErrorIs(t, err, cause)

	_, err = svc.List(context.Background(), domain.KindContact, owner)
	assert.ErrorIs(t, err, cause)
}

func TestRecordService_ListSnapshotsIntoOwnerCache(t *testing.T) {
	svc, c := newTestRecordService()
	ctx := context.Background()

	for _, name := range []string{"Dental", "Legal"} {
		_, err := svc.Create(ctx, domain.KindIndustry, owner, []byte(`{"name":"`+name+`"}`))
		require.NoError(t, err)
	}

	records, err := svc.List(ctx, domain.KindIndustry, owner)
	require.NoError(t, err)
	require.Len(t, records, 2)

	cached := c.ForOwner(owner).Industries(ctx)
	require.Len(t, cached, 2)
	assert.Equal(t, "Legal", cached[0].Name)
	assert.Equal(t, domain.IndustryResearching, cached[0].Status)
	assert.Empty(t, c.Industries(ctx), "base keyspace untouched")

	_, err = svc.Create(ctx, domain.KindIndustry, owner, []byte(`{"name":"Retail"}`))
	require.NoError(t, err)
	assert.Empty(t, c.ForOwner(owner).Industries(ctx), "writes drop the stale snapshot")
}

func TestRecordService_UpdateScopedToOwner(t *testing.T) {
	svc, _ := newTestRecordService()
	ctx := context.Background()

	rec, err := svc.Create(ctx, domain.KindPipelineItem, owner, []byte(`{"title":"Retainer","value":5000}`))
	require.NoError(t, err)
	id := rec.GetMeta().ID

	updated, err := svc.Update(ctx, domain.KindPipelineItem, owner, id, map[string]any{"stage": "proposal"})
	require.NoError(t, err)
	assert.Equal(t, domain.StageProposal, updated.(*domain.PipelineItem).Stage)
	assert.Equal(t, 5000.0, updated.(*domain.PipelineItem).Value)

	_, err = svc.Update(ctx, domain.KindPipelineItem, "mikayla@hustledigitalagency.com", id, map[string]any{"stage": "closed_won"})
	assert.True(t, domain.IsNotFound(err))

	_, err = svc.Update(ctx, domain.KindPipelineItem, owner, id, map[string]any{"stage": "won"})
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)

	_, err = svc.Update(ctx, domain.KindPipelineItem, owner, id, map[string]any{})
	require.ErrorAs(t, err, &vErr)
}

func TestRecordService_UpdateNullClearsToZeroValue(t *testing.T) {
	svc, _ := newTestRecordService()
	ctx := context.Background()

	rec, err := svc.Create(ctx, domain.KindLead, owner, []byte(`{"first_name":"Ada","email":"ada@example.com","phone":"555-0100","value":900}`))
	require.NoError(t, err)

	updated, err := svc.Update(ctx, domain.KindLead, owner, rec.GetMeta().ID, map[string]any{"value": nil, "phone": nil})
	require.NoError(t, err)
	lead := updated.(*domain.Lead)
	assert.Equal(t, "", lead.Phone)
	assert.Equal(t, 0.0, lead.Value)

	_, err = svc.Update(ctx, domain.KindLead, owner, rec.GetMeta().ID, map[string]any{"email": nil})
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "email", vErr.Field)
}

func TestRecordService_DeleteIdempotentAndScoped(t *testing.T) {
	svc, _ := newTestRecordService()
	ctx := context.Background()

	rec, err := svc.Create(ctx, domain.KindContact, owner, []byte(`{"name":"Jo"}`))
	require.NoError(t, err)
	id := rec.GetMeta().ID

	require.NoError(t, svc.Delete(ctx, domain.KindContact, "mikayla@hustledigitalagency.com", id))
	records, err := svc.List(ctx, domain.KindContact, owner)
	require.NoError(t, err)
	assert.Len(t, records, 1, "another owner cannot delete the row")

	require.NoError(t, svc.Delete(ctx, domain.KindContact, owner, id))
	require.NoError(t, svc.Delete(ctx, domain.KindContact, owner, id))

	records, err = svc.List(ctx, domain.KindContact, owner)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestDecodePatch(t *testing.T) {
	patch, err := DecodePatch([]byte(`{"status":"won"}`))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"status": "won"}, patch)

	for _, body := range []string{"", "null", "[1]", `"x"`} {
		_, err := DecodePatch([]byte(body))
		var vErr *domain.ValidationError
		assert.ErrorAs(t, err, &vErr, body)
	}
}

func TestRecordService_Get(t *testing.T) {
	svc, _ := newTestRecordService()
	ctx := context.Background()

	rec, err := svc.Create(ctx, domain.KindBooking, owner, []byte(`{"client_name":"Acme","service":"Audit","date":"2024-06-01","time":"14:30"}`))
	require.NoError(t, err)

	got, err := svc.Get(ctx, domain.KindBooking, owner, rec.GetMeta().ID)
	require.NoError(t, err)
	assert.Equal(t, "14:30", got.(*domain.Booking).Time)

	_, err = svc.Get(ctx, domain.KindBooking, "mikayla@hustledigitalagency.com", rec.GetMeta().ID)
	assert.True(t, domain.IsNotFound(err))
}
