package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/garage-booking/internal/db/dbtest"
	"github.com/BruksfildServices01/garage-booking/internal/domain/catalog"
	"github.com/BruksfildServices01/garage-booking/internal/httperr"
	"github.com/BruksfildServices01/garage-booking/internal/models"
)

func ptr[T any](v T) *T { return &v }

func TestSeedDefaultsOnce(t *testing.T) {
	repo := NewServiceGormRepository(dbtest.New(t))
	ctx := context.Background()

	n, err := repo.SeedDefaults(ctx)
	require.NoError(t, err)
	assert.Equal(t, 6, n)

	n, err = repo.SeedDefaults(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	active, err := repo.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 6)
	assert.Equal(t, "APK Keuring", active[0].Name)

	count, err := repo.CountActive(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 6, count)
}

func TestServiceLifecycle(t *testing.T) {
	repo := NewServiceGormRepository(dbtest.New(t))
	ctx := context.Background()

	s := &models.Service{Name: "Uitlijnen", DurationMin: 45, Price: 60, Active: true}
	require.NoError(t, repo.Create(ctx, s))

	err := repo.Create(ctx, &models.Service{Name: "Uitlijnen", DurationMin: 30, Active: true})
	assert.True(t, httperr.IsKind(err, httperr.KindConflict))
	assert.Equal(t, "service_exists", httperr.CodeOf(err))

	got, err := repo.GetActiveByName(ctx, " Uitlijnen ")
	require.NoError(t, err)
	assert.Equal(t, s.ID, got.ID)

	updated, err := repo.Update(ctx, s.ID, catalog.ServiceInput{Price: ptr(65.0), Active: ptr(false)})
	require.NoError(t, err)
	assert.Equal(t, 65.0, updated.Price)
	assert.False(t, updated.Active)
	assert.Equal(t, 45, updated.DurationMin)

	_, err = repo.GetActiveByName(ctx, "Uitlijnen")
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, repo.Delete(ctx, s.ID))
	assert.True(t, httperr.IsKind(repo.Delete(ctx, s.ID), httperr.KindNotFound))

	_, err = repo.Update(ctx, s.ID, catalog.ServiceInput{Name: ptr("x")})
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))
}
