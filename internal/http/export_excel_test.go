package httpapi

import (
	"bytes"
	"testing"
	"time"

	"hda-data/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestGenerateCollectionExport_Targets(t *testing.T) {
	created := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	records := []domain.Record{
		&domain.Target{
			Meta:   domain.Meta{ID: "t-1", UserID: "sasha", CreatedAt: created, UpdatedAt: created},
			Name:   "MRR",
			Period: domain.PeriodMonthly,
			Goal:   20000,
			Values: []float64{12000, 15500.5},
			Status: domain.TargetOnTrack,
		},
	}

	data, err := GenerateCollectionExport(domain.KindTarget, records)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Targets"}, f.GetSheetList())
	rows, err := f.GetRows("Targets")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"ID", "Name", "Metric", "Period", "Goal", "Values", "Status", "Created At", "Updated At"}, rows[0])
	assert.Equal(t, "t-1", rows[1][0])
	assert.Equal(t, "12000; 15500.5", rows[1][5])
	assert.Equal(t, "2024-05-01 09:30:00", rows[1][7])
}

func TestGenerateCollectionExport_EmptyAndUnknown(t *testing.T) {
	data, err := GenerateCollectionExport(domain.KindMediaContact, nil)
	require.NoError(t, err)
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Media Contacts")
	require.NoError(t, err)
	assert.Len(t, rows, 1, "header only")

	_, err = GenerateCollectionExport(domain.Kind("invoices"), nil)
	assert.Error(t, err)
}

func TestHeaderLabel(t *testing.T) {
	assert.Equal(t, "Expected Close Date", headerLabel("expected_close_date"))
	assert.Equal(t, "Pr Campaigns", headerLabel("pr_campaigns"))
	assert.Equal(t, "Name", headerLabel("name"))
}
