package postgres

import (
	"context"
	"time"

	"depot/internal/domain/repository"
	"depot/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// sequenceRepository implements the repository.SequenceRepository interface.
type sequenceRepository struct {
	db *gorm.DB
}

// NewSequenceRepository is the constructor for sequenceRepository.
func NewSequenceRepository(db *gorm.DB) repository.SequenceRepository {
	return &sequenceRepository{
		db: db,
	}
}

// IncrementAndGet atomically increments the named sequence and returns the new
// value. The upsert creates the row with value 1 on first use; increment and
// read happen in a single statement, so concurrent callers each observe a
// distinct value.
func (repo *sequenceRepository) IncrementAndGet(ctx context.Context, name string) (int64, error) {
	var value int64

	query := `
		INSERT INTO sequences (name, sequence_value, updated_at)
		VALUES (?, 1, ?)
		ON CONFLICT (name)
		DO UPDATE SET sequence_value = sequences.sequence_value + 1, updated_at = ?
		RETURNING sequence_value
	`

	now := time.Now()
	if err := repo.db.WithContext(ctx).
		Raw(query, name, now, now).
		Scan(&value).Error; err != nil {
		return 0, errors.Wrap(err, "failed to increment sequence")
	}

	return value, nil
}

// CurrentValue returns the current value of the named sequence without
// incrementing it, or 0 when the sequence does not exist.
func (repo *sequenceRepository) CurrentValue(ctx context.Context, name string) (int64, error) {
	var sequenceM model.SequenceModel

	if err := repo.db.WithContext(ctx).
		Where("name = ?", name).
		First(&sequenceM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}

		return 0, errors.Wrap(err, "failed to read sequence value")
	}

	return sequenceM.SequenceValue, nil
}
