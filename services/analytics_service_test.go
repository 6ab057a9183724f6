package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCutoff(t *testing.T) {
	now := time.Date(2025, time.August, 31, 10, 0, 0, 0, time.UTC)

	c, err := Cutoff("all", now)
	require.NoError(t, err)
	assert.Nil(t, c)

	c, err = Cutoff("year", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.August, 31, 10, 0, 0, 0, time.UTC), *c)

	c, err = Cutoff("3months", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.May, 31, 10, 0, 0, 0, time.UTC), *c)

	_, err = Cutoff("decade", now)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAnalyticsService_Efficiency(t *testing.T) {
	f := newFixture(t)
	f.vehicle(t, "v1", "u1", 0, nil)
	now := time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC)

	f.activity(t, fuel("old", "v1", now.AddDate(-2, 0, 0), 999, 1))
	f.activity(t, fuel("a", "v1", now.AddDate(0, -2, 0), 300.04, 10))
	f.activity(t, fuel("b", "v1", now.AddDate(0, -1, 0), 250, 12.3456))
	f.activity(t, service("s", "v1", now.AddDate(0, 0, -1), 5000))

	svc := NewAnalyticsService(f.vehicles, f.activities, nil, 5)
	svc.now = func() time.Time { return now }

	resp, err := svc.Efficiency(context.Background(), "u1", "v1", "3months", 0)
	require.NoError(t, err)
	assert.Equal(t, 5, resp.WindowSize)
	require.Len(t, resp.ChartData, 2)

	a := resp.ChartData[0]
	assert.Equal(t, "a", a.ID)
	assert.Equal(t, 300.0, a.Distance)
	require.NotNil(t, a.Efficiency)
	assert.Equal(t, 30.0, *a.Efficiency)
	require.NotNil(t, a.SegmentFuelUsed)
	assert.Equal(t, 10.0, *a.SegmentFuelUsed)

	b := resp.ChartData[1]
	assert.Equal(t, 12.346, *b.SegmentFuelUsed)

	assert.Equal(t, "550.0", resp.Stats.TotalDistance)
	assert.Equal(t, "22.3", resp.Stats.TotalFuel)
	require.NotNil(t, resp.Stats.AverageEfficiency)
	assert.Equal(t, "24.6", *resp.Stats.AverageEfficiency)

	all, err := svc.Efficiency(context.Background(), "u1", "v1", "", 1)
	require.NoError(t, err)
	assert.Equal(t, "all", all.Timeframe)
	require.Len(t, all.ChartData, 1)
	assert.Equal(t, "b", all.ChartData[0].ID)
}

func TestAnalyticsService_EmptyAndErrors(t *testing.T) {
	f := newFixture(t)
	f.vehicle(t, "v1", "u1", 0, nil)
	svc := NewAnalyticsService(f.vehicles, f.activities, nil, 5)
	ctx := context.Background()

	resp, err := svc.Efficiency(ctx, "u1", "v1", "all", 0)
	require.NoError(t, err)
	assert.Empty(t, resp.ChartData)
	assert.NotNil(t, resp.ChartData)
	assert.Equal(t, "0.0", resp.Stats.TotalDistance)
	assert.Nil(t, resp.Stats.AverageEfficiency)

	_, err = svc.Efficiency(ctx, "u2", "v1", "all", 0)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.Efficiency(ctx, "u1", "v1", "week", 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
