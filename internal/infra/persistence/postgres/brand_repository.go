package postgres

import (
	"context"
	"time"

	"depot/internal/domain/entity"
	domainerrors "depot/internal/domain/errors"
	"depot/internal/domain/repository"
	"depot/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// brandRepository implements the repository.BrandRepository interface.
type brandRepository struct {
	db *gorm.DB
}

// NewBrandRepository is the constructor for brandRepository.
func NewBrandRepository(db *gorm.DB) repository.BrandRepository {
	return &brandRepository{
		db: db,
	}
}

// CreateBrand persists a new brand.
func (repo *brandRepository) CreateBrand(ctx context.Context, brand *entity.Brand) error {
	brandM := fromBrandDomain(brand)

	if err := repo.db.WithContext(ctx).Create(brandM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateBrandName
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required brand information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create brand")
	}

	// Update the entity with generated values
	brand.CreatedAt = brandM.CreatedAt
	brand.UpdatedAt = brandM.UpdatedAt

	return nil
}

// FindBrandByID retrieves a brand by its unique ID.
func (repo *brandRepository) FindBrandByID(ctx context.Context, id uuid.UUID) (*entity.Brand, error) {
	var brandM model.BrandModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&brandM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrBrandNotFound
		}

		return nil, errors.Wrap(err, "failed to find brand by ID")
	}

	return toBrandDomain(&brandM), nil
}

// ListBrands retrieves all brands ordered by display rank.
func (repo *brandRepository) ListBrands(ctx context.Context) ([]*entity.Brand, error) {
	var brandModels []*model.BrandModel

	if err := repo.db.WithContext(ctx).
		Order("sort_order ASC, name ASC").
		Find(&brandModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list brands")
	}

	brands := make([]*entity.Brand, 0, len(brandModels))
	for _, brandM := range brandModels {
		brands = append(brands, toBrandDomain(brandM))
	}

	return brands, nil
}

// UpdateBrand replaces a brand's mutable fields. The cached product count is
// not touched here; it moves only through AdjustProductCount and SetProductCount.
func (repo *brandRepository) UpdateBrand(ctx context.Context, brand *entity.Brand) error {
	result := repo.db.WithContext(ctx).
		Model(&model.BrandModel{}).
		Where("id = ?", brand.ID).
		Updates(map[string]any{
			"name":       brand.Name,
			"image":      brand.Image,
			"sort_order": brand.Order,
		})

	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return repository.ErrDuplicateBrandName
		}

		return errors.Wrap(result.Error, "failed to update brand")
	}

	if result.RowsAffected == 0 {
		return repository.ErrBrandNotFound
	}

	return nil
}

// UpdateBrandImage records the storage key of a brand's image.
func (repo *brandRepository) UpdateBrandImage(ctx context.Context, id uuid.UUID, imageKey string) error {
	result := repo.db.WithContext(ctx).
		Model(&model.BrandModel{}).
		Where("id = ?", id).
		Update("image", imageKey)

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update brand image")
	}

	if result.RowsAffected == 0 {
		return repository.ErrBrandNotFound
	}

	return nil
}

// DeleteBrand removes a brand by its ID.
func (repo *brandRepository) DeleteBrand(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.BrandModel{})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete brand")
	}

	if result.RowsAffected == 0 {
		return repository.ErrBrandNotFound
	}

	return nil
}

// AdjustProductCount atomically adds delta to a brand's cached product count and
// returns the resulting value. Increment and read happen in one statement so
// concurrent adjustments never lose updates.
func (repo *brandRepository) AdjustProductCount(ctx context.Context, id uuid.UUID, delta int) (int64, error) {
	var newCount int64

	query := `
		UPDATE brands
		SET product_count = product_count + ?, updated_at = ?
		WHERE id = ?
		RETURNING product_count
	`

	result := repo.db.WithContext(ctx).
		Raw(query, delta, time.Now(), id).
		Scan(&newCount)
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "failed to adjust brand product count")
	}

	if result.RowsAffected == 0 {
		return 0, repository.ErrBrandNotFound
	}

	return newCount, nil
}

// SetProductCount overwrites a brand's cached product count with the given value.
func (repo *brandRepository) SetProductCount(ctx context.Context, id uuid.UUID, count int64) error {
	result := repo.db.WithContext(ctx).
		Model(&model.BrandModel{}).
		Where("id = ?", id).
		Update("product_count", count)

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to set brand product count")
	}

	if result.RowsAffected == 0 {
		return repository.ErrBrandNotFound
	}

	return nil
}

// FindBrandsWithNonPositiveCount retrieves all brands whose cached product count
// is zero or negative.
func (repo *brandRepository) FindBrandsWithNonPositiveCount(ctx context.Context) ([]*entity.Brand, error) {
	var brandModels []*model.BrandModel

	if err := repo.db.WithContext(ctx).
		Where("product_count <= 0").
		Find(&brandModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find brands with non-positive count")
	}

	brands := make([]*entity.Brand, 0, len(brandModels))
	for _, brandM := range brandModels {
		brands = append(brands, toBrandDomain(brandM))
	}

	return brands, nil
}

// --- Mapper Functions ---

// toBrandDomain converts a GORM BrandModel to a domain Brand entity.
func toBrandDomain(data *model.BrandModel) *entity.Brand {
	if data == nil {
		return nil
	}

	return &entity.Brand{
		ID:           data.ID,
		Name:         data.Name,
		ProductCount: int(data.ProductCount),
		Image:        data.Image,
		Order:        data.SortOrder,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

// fromBrandDomain converts a domain Brand entity to a GORM BrandModel.
func fromBrandDomain(data *entity.Brand) *model.BrandModel {
	if data == nil {
		return nil
	}

	return &model.BrandModel{
		ID:           data.ID,
		Name:         data.Name,
		ProductCount: int64(data.ProductCount),
		Image:        data.Image,
		SortOrder:    data.Order,
	}
}
