package postgres

import (
	"context"

	"depot/internal/domain/entity"
	domainerrors "depot/internal/domain/errors"
	"depot/internal/domain/repository"
	"depot/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// productRepository implements the repository.ProductRepository interface.
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository is the constructor for productRepository.
func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepository{
		db: db,
	}
}

// CreateProduct persists a new product.
func (repo *productRepository) CreateProduct(ctx context.Context, product *entity.Product) error {
	productM := fromProductDomain(product)

	if err := repo.db.WithContext(ctx).Create(productM).Error; err != nil {
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required product information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create product")
	}

	// Update the entity with generated values
	product.CreatedAt = productM.CreatedAt
	product.UpdatedAt = productM.UpdatedAt

	return nil
}

// FindProductByID retrieves a product by its unique ID.
func (repo *productRepository) FindProductByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var productM model.ProductModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&productM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product by ID")
	}

	return toProductDomain(&productM), nil
}

// ListProducts retrieves all products ordered by display rank, optionally
// restricted to one brand.
func (repo *productRepository) ListProducts(ctx context.Context, brandID *uuid.UUID) ([]*entity.Product, error) {
	query := repo.db.WithContext(ctx).Order("sort_order ASC, name ASC")
	if brandID != nil {
		query = query.Where("brand_id = ?", *brandID)
	}

	var productModels []*model.ProductModel
	if err := query.Find(&productModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	products := make([]*entity.Product, 0, len(productModels))
	for _, productM := range productModels {
		products = append(products, toProductDomain(productM))
	}

	return products, nil
}

// UpdateProduct replaces a product's mutable fields.
func (repo *productRepository) UpdateProduct(ctx context.Context, product *entity.Product) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("id = ?", product.ID).
		Updates(map[string]any{
			"name":       product.Name,
			"brand_id":   product.BrandID,
			"brand_name": product.BrandName,
			"sort_order": product.Order,
		})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update product")
	}

	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

// UpdateProductRank updates only the display-sort rank of a product.
func (repo *productRepository) UpdateProductRank(ctx context.Context, id uuid.UUID, rank int) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("id = ?", id).
		Update("sort_order", rank)

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update product rank")
	}

	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

// DeleteProduct removes a product by its ID.
func (repo *productRepository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.ProductModel{})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete product")
	}

	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

// CountProductsByBrand returns the true number of products referencing a brand.
func (repo *productRepository) CountProductsByBrand(ctx context.Context, brandID uuid.UUID) (int64, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("brand_id = ?", brandID).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count products by brand")
	}

	return count, nil
}

// CountProductsGroupedByBrand returns the true product count per brand.
func (repo *productRepository) CountProductsGroupedByBrand(ctx context.Context) ([]*repository.BrandProductCount, error) {
	var rows []*repository.BrandProductCount

	query := `
		SELECT brand_id, COUNT(*) AS count
		FROM products
		GROUP BY brand_id
	`

	if err := repo.db.WithContext(ctx).
		Raw(query).
		Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to count products grouped by brand")
	}

	return rows, nil
}

// --- Mapper Functions ---

// toProductDomain converts a GORM ProductModel to a domain Product entity.
func toProductDomain(data *model.ProductModel) *entity.Product {
	if data == nil {
		return nil
	}

	return &entity.Product{
		ID:        data.ID,
		Name:      data.Name,
		BrandID:   data.BrandID,
		BrandName: data.BrandName,
		Order:     data.SortOrder,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

// fromProductDomain converts a domain Product entity to a GORM ProductModel.
func fromProductDomain(data *entity.Product) *model.ProductModel {
	if data == nil {
		return nil
	}

	return &model.ProductModel{
		ID:        data.ID,
		Name:      data.Name,
		BrandID:   data.BrandID,
		BrandName: data.BrandName,
		SortOrder: data.Order,
	}
}
