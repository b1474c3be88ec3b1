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

// retailerRepository implements the repository.RetailerRepository interface.
type retailerRepository struct {
	db *gorm.DB
}

// NewRetailerRepository is the constructor for retailerRepository.
func NewRetailerRepository(db *gorm.DB) repository.RetailerRepository {
	return &retailerRepository{
		db: db,
	}
}

// CreateRetailer persists a new retailer.
func (repo *retailerRepository) CreateRetailer(ctx context.Context, retailer *entity.Retailer) error {
	retailerM := fromRetailerDomain(retailer)

	if err := repo.db.WithContext(ctx).Create(retailerM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateRetailerPhone
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required retailer information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create retailer")
	}

	// Update the entity with generated values
	retailer.CreatedAt = retailerM.CreatedAt
	retailer.UpdatedAt = retailerM.UpdatedAt

	return nil
}

// FindRetailerByID retrieves a retailer by its unique ID.
func (repo *retailerRepository) FindRetailerByID(ctx context.Context, id uuid.UUID) (*entity.Retailer, error) {
	var retailerM model.RetailerModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&retailerM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRetailerNotFound
		}

		return nil, errors.Wrap(err, "failed to find retailer by ID")
	}

	return toRetailerDomain(&retailerM), nil
}

// ListRetailers retrieves all retailers ordered by name.
func (repo *retailerRepository) ListRetailers(ctx context.Context) ([]*entity.Retailer, error) {
	var retailerModels []*model.RetailerModel

	if err := repo.db.WithContext(ctx).
		Order("name ASC").
		Find(&retailerModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list retailers")
	}

	retailers := make([]*entity.Retailer, 0, len(retailerModels))
	for _, retailerM := range retailerModels {
		retailers = append(retailers, toRetailerDomain(retailerM))
	}

	return retailers, nil
}

// UpdateRetailer replaces a retailer's mutable fields.
func (repo *retailerRepository) UpdateRetailer(ctx context.Context, retailer *entity.Retailer) error {
	result := repo.db.WithContext(ctx).
		Model(&model.RetailerModel{}).
		Where("id = ?", retailer.ID).
		Updates(map[string]any{
			"name":  retailer.Name,
			"phone": retailer.Phone,
			"bit":   retailer.Bit,
		})

	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return repository.ErrDuplicateRetailerPhone
		}

		return errors.Wrap(result.Error, "failed to update retailer")
	}

	if result.RowsAffected == 0 {
		return repository.ErrRetailerNotFound
	}

	return nil
}

// DeleteRetailer removes a retailer by its ID.
func (repo *retailerRepository) DeleteRetailer(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.RetailerModel{})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete retailer")
	}

	if result.RowsAffected == 0 {
		return repository.ErrRetailerNotFound
	}

	return nil
}

// ListDistinctBits retrieves the distinct territory tags present across retailers.
func (repo *retailerRepository) ListDistinctBits(ctx context.Context) ([]string, error) {
	var bits []string

	if err := repo.db.WithContext(ctx).
		Model(&model.RetailerModel{}).
		Distinct("bit").
		Order("bit ASC").
		Pluck("bit", &bits).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list distinct bits")
	}

	return bits, nil
}

// --- Mapper Functions ---

// toRetailerDomain converts a GORM RetailerModel to a domain Retailer entity.
func toRetailerDomain(data *model.RetailerModel) *entity.Retailer {
	if data == nil {
		return nil
	}

	return &entity.Retailer{
		ID:        data.ID,
		Name:      data.Name,
		Phone:     data.Phone,
		Bit:       data.Bit,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

// fromRetailerDomain converts a domain Retailer entity to a GORM RetailerModel.
func fromRetailerDomain(data *entity.Retailer) *model.RetailerModel {
	if data == nil {
		return nil
	}

	return &model.RetailerModel{
		ID:    data.ID,
		Name:  data.Name,
		Phone: data.Phone,
		Bit:   data.Bit,
	}
}
