package seed

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kabz8/Nextcare/internal/model"
	"github.com/kabz8/Nextcare/internal/repository/memory"
)

// Monday 2025-04-07; the horizon below covers 7 through 13, five weekdays.
func fixedNow() time.Time {
	return time.Date(2025, 4, 7, 15, 4, 5, 0, time.UTC)
}

func TestRun(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	res, err := Run(ctx, store, Options{
		HorizonDays: 6,
		ExtraDates:  []string{"2025-04-01", "2025-04-02", "2025-04-03"},
		Now:         fixedNow,
	})
	require.NoError(t, err)

	assert.Equal(t, 12, res.Services)
	assert.Equal(t, 3, res.Testimonials)
	assert.Equal(t, 8, res.Products)
	assert.Equal(t, 8*16, res.Slots)

	sat, err := store.TimeSlots.CountByDate(ctx, "2025-04-12")
	require.NoError(t, err)
	assert.Zero(t, sat)

	extra, err := store.TimeSlots.ListAvailable(ctx, "2025-04-02")
	require.NoError(t, err)
	require.Len(t, extra, 16)
	assert.Equal(t, "9:00 AM", extra[0].Time)

	featured, err := store.Products.List(ctx, model.ProductFilter{FeaturedOnly: true})
	require.NoError(t, err)
	assert.Len(t, featured, 4)
}

func TestRun_Idempotent(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	opts := Options{HorizonDays: 3, Now: fixedNow}

	_, err := Run(ctx, store, opts)
	require.NoError(t, err)

	booked, err := store.TimeSlots.MarkBooked(ctx, "2025-04-08", "9:00 AM")
	require.NoError(t, err)
	require.True(t, booked)

	res, err := Run(ctx, store, opts)
	require.NoError(t, err)
	assert.Equal(t, Result{}, *res)

	services, err := store.Services.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 12, services)

	open, err := store.TimeSlots.ListAvailable(ctx, "2025-04-08")
	require.NoError(t, err)
	assert.Len(t, open, 15)
}

func TestRun_InvalidExtraDate(t *testing.T) {
	_, err := Run(context.Background(), memory.NewStore(), Options{ExtraDates: []string{"April 1"}, Now: fixedNow})
	assert.Error(t, err)
}
