package cache

import (
	"context"

	"hda-data/internal/domain"
)

func (c *Cache) Leads(ctx context.Context) []domain.Lead {
	return Get(ctx, c, string(domain.KindLead), []domain.Lead{})
}

func (c *Cache) SetLeads(ctx context.Context, v []domain.Lead) bool {
	return c.Set(ctx, string(domain.KindLead), v)
}

func (c *Cache) PipelineItems(ctx context.Context) []domain.PipelineItem {
	return Get(ctx, c, string(domain.KindPipelineItem), []domain.PipelineItem{})
}

func (c *Cache) SetPipelineItems(ctx context.Context, v []domain.PipelineItem) bool {
	return c.Set(ctx, string(domain.KindPipelineItem), v)
}

func (c *Cache) Campaigns(ctx context.Context) []domain.Campaign {
	return Get(ctx, c, string(domain.KindCampaign), []domain.Campaign{})
}

func (c *Cache) SetCampaigns(ctx context.Context, v []domain.Campaign) bool {
	return c.Set(ctx, string(domain.KindCampaign), v)
}

func (c *Cache) Competitors(ctx context.Context) []domain.Competitor {
	return Get(ctx, c, string(domain.KindCompetitor), []domain.Competitor{})
}

func (c *Cache) SetCompetitors(ctx context.Context, v []domain.Competitor) bool {
	return c.Set(ctx, string(domain.KindCompetitor), v)
}

func (c *Cache) Contacts(ctx context.Context) []domain.Contact {
	return Get(ctx, c, string(domain.KindContact), []domain.Contact{})
}

func (c *Cache) SetContacts(ctx context.Context, v []domain.Contact) bool {
	return c.Set(ctx, string(domain.KindContact), v)
}

func (c *Cache) Bookings(ctx context.Context) []domain.Booking {
	return Get(ctx, c, string(domain.KindBooking), []domain.Booking{})
}

func (c *Cache) SetBookings(ctx context.Context, v []domain.Booking) bool {
	return c.Set(ctx, string(domain.KindBooking), v)
}

func (c *Cache) Partnerships(ctx context.Context) []domain.Partnership {
	return Get(ctx, c, string(domain.KindPartnership), []domain.Partnership{})
}

func (c *Cache) SetPartnerships(ctx context.Context, v []domain.Partnership) bool {
	return c.Set(ctx, string(domain.KindPartnership), v)
}

func (c *Cache) Industries(ctx context.Context) []domain.Industry {
	return Get(ctx, c, string(domain.KindIndustry), []domain.Industry{})
}

func (c *Cache) SetIndustries(ctx context.Context, v []domain.Industry) bool {
	return c.Set(ctx, string(domain.KindIndustry), v)
}

func (c *Cache) Targets(ctx context.Context) []domain.Target {
	return Get(ctx, c, string(domain.KindTarget), []domain.Target{})
}

func (c *Cache) SetTargets(ctx context.Context, v []domain.Target) bool {
	return c.Set(ctx, string(domain.KindTarget), v)
}

func (c *Cache) PRCampaigns(ctx context.Context) []domain.PRCampaign {
	return Get(ctx, c, string(domain.KindPRCampaign), []domain.PRCampaign{})
}

func (c *Cache) SetPRCampaigns(ctx context.Context, v []domain.PRCampaign) bool {
	return c.Set(ctx, string(domain.KindPRCampaign), v)
}

func (c *Cache) MediaContacts(ctx context.Context) []domain.MediaContact {
	return Get(ctx, c, string(domain.KindMediaContact), []domain.MediaContact{})
}

func (c *Cache) SetMediaContacts(ctx context.Context, v []domain.MediaContact) bool {
	return c.Set(ctx, string(domain.KindMediaContact), v)
}
