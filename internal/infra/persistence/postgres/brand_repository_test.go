package postgres

import (
	"context"
	"testing"

	"depot/internal/domain/entity"
	"depot/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedBrand(t *testing.T, repo repository.BrandRepository, name string, count int) *entity.Brand {
	t.Helper()

	brand := &entity.Brand{
		ID:           uuid.New(),
		Name:         name,
		ProductCount: count,
		Order:        1,
	}
	require.NoError(t, repo.CreateBrand(context.Background(), brand))

	return brand
}

func TestBrandRepository_CreateBrand_DuplicateName(t *testing.T) {
	repo := NewBrandRepository(openTestDB(t))

	seedBrand(t, repo, "Acme", 0)

	err := repo.CreateBrand(context.Background(), &entity.Brand{ID: uuid.New(), Name: "Acme"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, repository.ErrDuplicateBrandName))
}

func TestBrandRepository_ListBrands_ByRank(t *testing.T) {
	repo := NewBrandRepository(openTestDB(t))
	ctx := context.Background()

	third := seedBrand(t, repo, "Zenith", 0)
	third.Order = 3
	require.NoError(t, repo.UpdateBrand(ctx, third))
	first := seedBrand(t, repo, "Acme", 0)
	first.Order = 1
	require.NoError(t, repo.UpdateBrand(ctx, first))
	second := seedBrand(t, repo, "Globex", 0)
	second.Order = 2
	require.NoError(t, repo.UpdateBrand(ctx, second))

	brands, err := repo.ListBrands(ctx)

	require.NoError(t, err)
	require.Len(t, brands, 3)
	assert.Equal(t, "Acme", brands[0].Name)
	assert.Equal(t, "Globex", brands[1].Name)
	assert.Equal(t, "Zenith", brands[2].Name)
}

func TestBrandRepository_AdjustProductCount(t *testing.T) {
	repo := NewBrandRepository(openTestDB(t))
	ctx := context.Background()

	brand := seedBrand(t, repo, "Acme", 0)

	count, err := repo.AdjustProductCount(ctx, brand.ID, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	count, err = repo.AdjustProductCount(ctx, brand.ID, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	count, err = repo.AdjustProductCount(ctx, brand.ID, -1)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	found, err := repo.FindBrandByID(ctx, brand.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, found.ProductCount)
}

func TestBrandRepository_AdjustProductCount_CanGoNegative(t *testing.T) {
	repo := NewBrandRepository(openTestDB(t))
	ctx := context.Background()

	// A double-applied decrement may push the cache below zero; the sweep picks
	// such brands up, so the adjustment itself must not clamp or fail.
	brand := seedBrand(t, repo, "Acme", 0)

	count, err := repo.AdjustProductCount(ctx, brand.ID, -1)

	require.NoError(t, err)
	assert.EqualValues(t, -1, count)
}

func TestBrandRepository_AdjustProductCount_BrandMissing(t *testing.T) {
	repo := NewBrandRepository(openTestDB(t))

	_, err := repo.AdjustProductCount(context.Background(), uuid.New(), 1)

	require.Error(t, err)
	assert.True(t, errors.Is(err, repository.ErrBrandNotFound))
}

func TestBrandRepository_SetProductCount(t *testing.T) {
	repo := NewBrandRepository(openTestDB(t))
	ctx := context.Background()

	brand := seedBrand(t, repo, "Acme", -2)

	require.NoError(t, repo.SetProductCount(ctx, brand.ID, 5))

	found, err := repo.FindBrandByID(ctx, brand.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, found.ProductCount)
}

func TestBrandRepository_FindBrandsWithNonPositiveCount(t *testing.T) {
	repo := NewBrandRepository(openTestDB(t))
	ctx := context.Background()

	seedBrand(t, repo, "Healthy", 3)
	zero := seedBrand(t, repo, "Empty", 0)
	negative := seedBrand(t, repo, "Drifted", -1)

	candidates, err := repo.FindBrandsWithNonPositiveCount(ctx)

	require.NoError(t, err)
	require.Len(t, candidates, 2)

	ids := []uuid.UUID{candidates[0].ID, candidates[1].ID}
	assert.ElementsMatch(t, []uuid.UUID{zero.ID, negative.ID}, ids)
}

func TestBrandRepository_UpdateBrandImage(t *testing.T) {
	repo := NewBrandRepository(openTestDB(t))
	ctx := context.Background()

	brand := seedBrand(t, repo, "Acme", 0)
	key := "brands/" + brand.ID.String()

	require.NoError(t, repo.UpdateBrandImage(ctx, brand.ID, key))

	found, err := repo.FindBrandByID(ctx, brand.ID)
	require.NoError(t, err)
	assert.Equal(t, key, found.Image)
}

func TestBrandRepository_DeleteBrand_NotFound(t *testing.T) {
	repo := NewBrandRepository(openTestDB(t))

	err := repo.DeleteBrand(context.Background(), uuid.New())

	require.Error(t, err)
	assert.True(t, errors.Is(err, repository.ErrBrandNotFound))
}
