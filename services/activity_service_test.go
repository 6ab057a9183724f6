package services

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"fueltrack-api/metrics"
	"fueltrack-api/models"
)

func TestActivityService_AddFuelFillsDerivedFields(t *testing.T) {
	f := newFixture(t)
	f.vehicle(t, "v1", "u1", 0, nil)
	svc := NewActivityService(f.vehicles, f.activities, nil)

	rec, err := svc.Add(context.Background(), "u1", "v1", models.ActivityRequest{
		Date:         ptr(t0),
		Odometer:     ptr(320.0),
		Amount:       ptr(12.0),
		PricePerUnit: ptr(3.5),
	})
	require.NoError(t, err)
	assert.Equal(t, models.ActivityTypeFuel, rec.Type)
	assert.Equal(t, "Diesel", rec.FuelType)
	require.NotNil(t, rec.TotalCost)
	assert.Equal(t, 42.0, *rec.TotalCost)
}

func TestActivityService_AddValidates(t *testing.T) {
	f := newFixture(t)
	f.vehicle(t, "v1", "u1", 0, nil)
	svc := NewActivityService(f.vehicles, f.activities, nil)
	ctx := context.Background()

	tests := []struct {
		name string
		req  models.ActivityRequest
	}{
		{"missing date", models.ActivityRequest{Amount: ptr(10.0)}},
		{"fuel without amount", models.ActivityRequest{Date: ptr(t0)}},
		{"fuel with zero amount", models.ActivityRequest{Date: ptr(t0), Amount: ptr(0.0)}},
		{"service without types", models.ActivityRequest{Type: models.ActivityTypeService, Date: ptr(t0)}},
		{"other without custom type", models.ActivityRequest{Type: models.ActivityTypeService, Date: ptr(t0), ServiceTypes: []string{"Other"}}},
		{"unknown type", models.ActivityRequest{Type: "Wash", Date: ptr(t0)}},
		{"negative odometer", models.ActivityRequest{Date: ptr(t0), Amount: ptr(1.0), Odometer: ptr(-1.0)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Add(ctx, "u1", "v1", tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}

	_, err := svc.Add(ctx, "u2", "v1", models.ActivityRequest{Date: ptr(t0), Amount: ptr(1.0)})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestActivityService_AddServiceReplacesOther(t *testing.T) {
	f := newFixture(t)
	f.vehicle(t, "v1", "u1", 0, nil)
	svc := NewActivityService(f.vehicles, f.activities, nil)

	rec, err := svc.Add(context.Background(), "u1", "v1", models.ActivityRequest{
		Type:              models.ActivityTypeService,
		Date:              ptr(t0),
		ServiceTypes:      []string{"Oil Change", "Other"},
		CustomServiceType: "Wiper Blades",
	})
	require.NoError(t, err)
	assert.Equal(t, models.StringSliceType{"Oil Change", "Wiper Blades"}, rec.ServiceTypes)
	assert.Equal(t, "Oil Change, Wiper Blades", rec.ServiceType)
	assert.Nil(t, rec.Amount)
	assert.Empty(t, rec.FuelType)
}

func TestActivityService_AddAdvancesOdometer(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.vehicle(t, "v1", "u1", 1000, &t0)
	svc := NewActivityService(f.vehicles, f.activities, nil)

	_, err := svc.Add(ctx, "u1", "v1", models.ActivityRequest{Date: ptr(t0.AddDate(0, 0, 1)), Odometer: ptr(1250.0), Amount: ptr(30.0)})
	require.NoError(t, err)
	v, err := f.vehicles.Get(ctx, "u1", "v1")
	require.NoError(t, err)
	assert.Equal(t, 1250.0, v.Odometer)
	assert.True(t, v.OdometerUpdatedAt.Equal(t0))

	// Older than the manual edit: stored, but the odometer stays.
	_, err = svc.Add(ctx, "u1", "v1", models.ActivityRequest{Date: ptr(t0.AddDate(0, 0, -1)), Odometer: ptr(5000.0), Amount: ptr(30.0)})
	require.NoError(t, err)
	v, err = f.vehicles.Get(ctx, "u1", "v1")
	require.NoError(t, err)
	assert.Equal(t, 1250.0, v.Odometer)
}

func TestActivityService_WriteBackFailureDoesNotFailAdd(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.vehicle(t, "v1", "u1", 0, nil)
	require.NoError(t, f.db.Callback().Update().Before("gorm:update").Register("test:fail_vehicle_update", func(tx *gorm.DB) {
		if tx.Statement.Table == "vehicles" {
			_ = tx.AddError(errors.New("database is locked"))
		}
	}))

	m, err := metrics.New(prometheus.NewRegistry())
	require.NoError(t, err)
	svc := NewActivityService(f.vehicles, f.activities, m)

	rec, err := svc.Add(ctx, "u1", "v1", models.ActivityRequest{Date: ptr(t0), Odometer: ptr(400.0), Amount: ptr(10.0)})
	require.NoError(t, err)

	stored, err := f.activities.Get(ctx, "v1", rec.ID)
	require.NoError(t, err)
	assert.Equal(t, 400.0, *stored.Odometer)

	v, err := f.vehicles.Get(ctx, "u1", "v1")
	require.NoError(t, err)
	assert.Zero(t, v.Odometer)
}

func TestActivityService_ListFiltersAndOrders(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.vehicle(t, "v1", "u1", 0, nil)
	f.vehicle(t, "v2", "u1", 0, nil)
	f.vehicle(t, "v3", "u2", 0, nil)

	untyped := fuel("f-untyped", "v2", t0.AddDate(0, 0, 3), 300, 10)
	untyped.Type = ""
	untyped.Notes = "Road trip to the coast"
	f.activity(t, fuel("f1", "v1", t0, 300, 10))
	f.activity(t, service("s1", "v1", t0.AddDate(0, 0, 1), 1000))
	f.activity(t, untyped)
	other := fuel("x", "v3", t0, 300, 10)
	other.UserID = "u2"
	f.activity(t, other)

	svc := NewActivityService(f.vehicles, f.activities, nil)

	all, err := svc.List(ctx, "u1", ActivityFilter{Type: "All"})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "f-untyped", all[0].ID)
	assert.Equal(t, models.ActivityTypeFuel, all[0].Type)
	assert.Equal(t, "s1", all[1].ID)
	assert.Equal(t, "f1", all[2].ID)
	assert.Equal(t, "2019 Toyota Corolla", all[2].VehicleName)

	fuelOnly, err := svc.List(ctx, "u1", ActivityFilter{Type: "Fuel"})
	require.NoError(t, err)
	assert.Len(t, fuelOnly, 2)

	searched, err := svc.List(ctx, "u1", ActivityFilter{Search: "oil"})
	require.NoError(t, err)
	require.Len(t, searched, 1)
	assert.Equal(t, "s1", searched[0].ID)

	searched, err = svc.List(ctx, "u1", ActivityFilter{Search: "COAST"})
	require.NoError(t, err)
	require.Len(t, searched, 1)

	_, err = svc.List(ctx, "u1", ActivityFilter{Type: "Wash"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestActivityService_UpdateAndDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.vehicle(t, "v1", "u1", 0, nil)
	f.activity(t, fuel("f1", "v1", t0, 300, 10))
	svc := NewActivityService(f.vehicles, f.activities, nil)

	rec, err := svc.Update(ctx, "u1", "v1", "f1", models.ActivityRequest{
		Type: models.ActivityTypeService, Date: ptr(t0), ServiceTypes: []string{"Inspection"},
	})
	require.NoError(t, err)
	assert.Equal(t, models.ActivityTypeService, rec.Type)
	assert.Nil(t, rec.Amount)

	stored, err := f.activities.Get(ctx, "v1", "f1")
	require.NoError(t, err)
	assert.Equal(t, "Inspection", stored.ServiceType)
	assert.Nil(t, stored.Amount)

	assert.ErrorIs(t, svc.Delete(ctx, "u1", "v1", "missing"), ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, "u2", "v1", "f1"), ErrNotFound)
	require.NoError(t, svc.Delete(ctx, "u1", "v1", "f1"))
}

func TestActivityService_BulkDeleteReportsEachID(t *testing.T) {
	f := newFixture(t)
	f.vehicle(t, "v1", "u1", 0, nil)
	f.activity(t, fuel("f1", "v1", t0, 300, 10))
	f.activity(t, fuel("f2", "v1", t0, 300, 10))
	svc := NewActivityService(f.vehicles, f.activities, nil)

	results := svc.BulkDelete(context.Background(), "u1", []string{"f1", "nope", "f2"})
	require.Len(t, results, 3)
	assert.True(t, results[0].Deleted)
	assert.False(t, results[1].Deleted)
	assert.NotEmpty(t, results[1].Error)
	assert.True(t, results[2].Deleted)
}

func TestServiceTypeCatalogueIsACopy(t *testing.T) {
	c := ServiceTypeCatalogue()
	c[0] = "changed"
	assert.Equal(t, "Oil Change", models.ServiceTypes[0])
}
