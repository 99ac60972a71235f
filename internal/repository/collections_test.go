package repository

import (
	"context"
	"testing"

	"hda-data/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollections_KindsMatchEntities(t *testing.T) {
	s := newTestMemoryStore()
	kinds := []domain.Kind{
		Leads(s).Kind(),
		PipelineItems(s).Kind(),
		Campaigns(s).Kind(),
		Competitors(s).Kind(),
		Contacts(s).Kind(),
		Bookings(s).Kind(),
		Partnerships(s).Kind(),
		Industries(s).Kind(),
		Targets(s).Kind(),
		PRCampaigns(s).Kind(),
		MediaContacts(s).Kind(),
	}
	assert.ElementsMatch(t, domain.Kinds, kinds)
}

func TestCollection_TypedRoundTrip(t *testing.T) {
	ctx := context.Background()
	targets := Targets(newTestMemoryStore())

	created, err := targets.Create(ctx, &domain.Target{
		Meta:   domain.Meta{UserID: "sasha"},
		Name:   "Monthly revenue",
		Period: domain.PeriodMonthly,
		Status: domain.TargetOnTrack,
		Goal:   20000,
		Values: []float64{12000, 15500, 18250},
	})
	require.NoError(t, err)
	assert.Equal(t, []float64{12000, 15500, 18250}, created.Values)

	updated, err := targets.Update(ctx, created.ID, map[string]any{"values": []float64{12000, 15500, 18250, 21000}})
	require.NoError(t, err)
	assert.Equal(t, 21000.0, updated.Latest())

	items, err := targets.List(ctx, "sasha")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, updated.Values, items[0].Values)

	require.NoError(t, targets.Delete(ctx, created.ID))
	_, err = targets.Find(ctx, "sasha", created.ID)
	assert.True(t, domain.IsNotFound(err))
}

func TestCollection_CompetitorNestedLists(t *testing.T) {
	ctx := context.Background()
	competitors := Competitors(newTestMemoryStore())

	created, err := competitors.Create(ctx, &domain.Competitor{
		Meta:        domain.Meta{UserID: "sasha"},
		Name:        "Rival",
		ThreatLevel: domain.ThreatHigh,
		Strengths:   []string{"brand"},
		UpsellOpportunities: []domain.UpsellOpportunity{
			{Service: "SEO", Priority: domain.PriorityHigh, Value: 1500},
			{Service: "PPC", Priority: domain.PriorityLow, Value: 300},
		},
	})
	require.NoError(t, err)
	assert.Len(t, created.UpsellOpportunities, 2)
	assert.Equal(t, "PPC", created.UpsellOpportunities[1].Service)

	_, err = competitors.Update(ctx, created.ID, map[string]any{
		"upsell_opportunities": []domain.UpsellOpportunity{{Service: "Ads", Priority: "someday"}},
	})
	assert.Error(t, err)
}
