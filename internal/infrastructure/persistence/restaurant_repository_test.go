package persistence

import (
	"context"
	"testing"

	"github.com/gestion/backend/internal/domain/restaurant"
	"github.com/gestion/backend/internal/domain/shared"
	"github.com/gestion/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupFloorTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.ZoneModel{}, &models.TableModel{})
	require.NoError(t, err)

	return db
}

func TestGormZoneRepository_SaveAndFind(t *testing.T) {
	db := setupFloorTestDB(t)
	repo := NewGormZoneRepository(db)
	ctx := context.Background()

	zone, err := restaurant.NewZone("TERRACE", "Terrace")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, zone))

	t.Run("finds by ID", func(t *testing.T) {
		found, err := repo.FindByID(ctx, zone.ID)
		require.NoError(t, err)
		assert.Equal(t, "TERRACE", found.Code)
		assert.Equal(t, "Terrace", found.Name)
		assert.True(t, found.Active)
	})

	t.Run("finds by code regardless of case", func(t *testing.T) {
		found, err := repo.FindByCode(ctx, "terrace")
		require.NoError(t, err)
		assert.Equal(t, zone.ID, found.ID)
	})

	t.Run("not found maps to domain error", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("code existence check", func(t *testing.T) {
		exists, err := repo.ExistsByCode(ctx, "TERRACE")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsByCode(ctx, "PATIO")
		require.NoError(t, err)
		assert.False(t, exists)
	})
}

func TestGormZoneRepository_FindAll(t *testing.T) {
	db := setupFloorTestDB(t)
	repo := NewGormZoneRepository(db)
	ctx := context.Background()

	for _, code := range []string{"BAR", "HALL", "TERRACE"} {
		zone, err := restaurant.NewZone(code, code)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, zone))
	}
	inactive, err := restaurant.NewZone("STORAGE", "Old storage")
	require.NoError(t, err)
	inactive.Deactivate()
	require.NoError(t, repo.Save(ctx, inactive))

	t.Run("returns all zones in code order", func(t *testing.T) {
		zones, err := repo.FindAll(ctx, shared.DefaultFilter())
		require.NoError(t, err)
		require.Len(t, zones, 4)
		assert.Equal(t, "BAR", zones[0].Code)
		assert.Equal(t, "TERRACE", zones[3].Code)
	})

	t.Run("filters by active flag", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Filters = map[string]interface{}{"active": false}
		zones, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		require.Len(t, zones, 1)
		assert.Equal(t, "STORAGE", zones[0].Code)
	})
}

func TestGormZoneRepository_Delete(t *testing.T) {
	db := setupFloorTestDB(t)
	repo := NewGormZoneRepository(db)
	ctx := context.Background()

	zone, err := restaurant.NewZone("HALL", "Main hall")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, zone))

	require.NoError(t, repo.Delete(ctx, zone.ID))
	_, err = repo.FindByID(ctx, zone.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, zone.ID), shared.ErrNotFound)
}

func TestGormTableRepository(t *testing.T) {
	db := setupFloorTestDB(t)
	zoneRepo := NewGormZoneRepository(db)
	repo := NewGormTableRepository(db)
	ctx := context.Background()

	zone, err := restaurant.NewZone("HALL", "Main hall")
	require.NoError(t, err)
	require.NoError(t, zoneRepo.Save(ctx, zone))

	table, err := restaurant.NewTable("T01", zone.ID, 4)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, table))

	t.Run("round-trips status and zone", func(t *testing.T) {
		found, err := repo.FindByID(ctx, table.ID)
		require.NoError(t, err)
		assert.Equal(t, "T01", found.Code)
		assert.Equal(t, zone.ID, found.ZoneID)
		assert.Equal(t, restaurant.TableStatusAvailable, found.Status)
		assert.Nil(t, found.CurrentOrderID)
	})

	t.Run("persists occupation", func(t *testing.T) {
		orderID := uuid.New()
		require.NoError(t, table.Occupy(orderID))
		require.NoError(t, repo.Save(ctx, table))

		found, err := repo.FindByID(ctx, table.ID)
		require.NoError(t, err)
		assert.Equal(t, restaurant.TableStatusOccupied, found.Status)
		require.NotNil(t, found.CurrentOrderID)
		assert.Equal(t, orderID, *found.CurrentOrderID)
	})

	t.Run("finds by zone", func(t *testing.T) {
		second, err := restaurant.NewTable("T02", zone.ID, 2)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, second))

		tables, err := repo.FindByZone(ctx, zone.ID)
		require.NoError(t, err)
		assert.Len(t, tables, 2)
	})

	t.Run("finds by status", func(t *testing.T) {
		tables, err := repo.FindByStatus(ctx, restaurant.TableStatusOccupied)
		require.NoError(t, err)
		require.Len(t, tables, 1)
		assert.Equal(t, "T01", tables[0].Code)
	})

	t.Run("counts tables per zone", func(t *testing.T) {
		count, err := zoneRepo.CountTables(ctx, zone.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})
}
