package impl

import (
	"context"
	"log/slog"
	"slices"

	"depot/config"
	"depot/internal/domain/entity"
	domainerrors "depot/internal/domain/errors"
	"depot/internal/domain/repository"
	"depot/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type retailerService struct {
	retailerRepo repository.RetailerRepository
	config       *config.Config
	logger       *slog.Logger
}

// RetailerServiceParams holds dependencies for RetailerService, injected by Fx.
type RetailerServiceParams struct {
	fx.In

	RetailerRepo repository.RetailerRepository
	Config       *config.Config
	Logger       *slog.Logger
}

// NewRetailerService creates a new retailer service instance
func NewRetailerService(params RetailerServiceParams) usecase.RetailerUsecase {
	return &retailerService{
		retailerRepo: params.RetailerRepo,
		config:       params.Config,
		logger:       params.Logger,
	}
}

// CreateRetailer persists a new retailer with a unique phone number.
func (s *retailerService) CreateRetailer(ctx context.Context, input *usecase.CreateRetailerInput) (*entity.Retailer, error) {
	if !slices.Contains(s.config.Ordering.Bits, input.Bit) {
		return nil, domainerrors.ErrInvalidBit
	}

	retailer := &entity.Retailer{
		ID:    uuid.New(),
		Name:  input.Name,
		Phone: input.Phone,
		Bit:   input.Bit,
	}

	if err := s.retailerRepo.CreateRetailer(ctx, retailer); err != nil {
		if errors.Is(err, repository.ErrDuplicateRetailerPhone) {
			return nil, domainerrors.ErrRetailerPhoneTaken
		}

		return nil, errors.Wrap(err, "failed to create retailer")
	}

	return retailer, nil
}

// ListRetailers retrieves all retailers by name.
func (s *retailerService) ListRetailers(ctx context.Context) ([]*entity.Retailer, error) {
	retailers, err := s.retailerRepo.ListRetailers(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list retailers")
	}

	return retailers, nil
}

// UpdateRetailer edits a retailer's fields.
func (s *retailerService) UpdateRetailer(ctx context.Context, id uuid.UUID, input *usecase.UpdateRetailerInput) (*entity.Retailer, error) {
	if !slices.Contains(s.config.Ordering.Bits, input.Bit) {
		return nil, domainerrors.ErrInvalidBit
	}

	retailer, err := s.retailerRepo.FindRetailerByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRetailerNotFound) {
			return nil, domainerrors.ErrRetailerNotFound
		}

		return nil, errors.Wrap(err, "failed to find retailer")
	}

	retailer.Name = input.Name
	retailer.Phone = input.Phone
	retailer.Bit = input.Bit

	if err := s.retailerRepo.UpdateRetailer(ctx, retailer); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateRetailerPhone):
			return nil, domainerrors.ErrRetailerPhoneTaken
		case errors.Is(err, repository.ErrRetailerNotFound):
			return nil, domainerrors.ErrRetailerNotFound
		default:
			return nil, errors.Wrap(err, "failed to update retailer")
		}
	}

	return retailer, nil
}

// DeleteRetailer removes a retailer.
func (s *retailerService) DeleteRetailer(ctx context.Context, id uuid.UUID) error {
	if err := s.retailerRepo.DeleteRetailer(ctx, id); err != nil {
		if errors.Is(err, repository.ErrRetailerNotFound) {
			return domainerrors.ErrRetailerNotFound
		}

		return errors.Wrap(err, "failed to delete retailer")
	}

	return nil
}

// ListActiveBits retrieves the distinct territory tags retailers are registered under.
func (s *retailerService) ListActiveBits(ctx context.Context) ([]string, error) {
	bits, err := s.retailerRepo.ListDistinctBits(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list distinct bits")
	}

	return bits, nil
}
