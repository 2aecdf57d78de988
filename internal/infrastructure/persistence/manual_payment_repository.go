package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/orc/backend/internal/domain/checkpoint"
	"github.com/orc/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormManualPaymentRepository implements ManualPaymentRepository using GORM
type GormManualPaymentRepository struct {
	db *gorm.DB
}

// NewGormManualPaymentRepository creates a new GormManualPaymentRepository
func NewGormManualPaymentRepository(db *gorm.DB) *GormManualPaymentRepository {
	return &GormManualPaymentRepository{db: db}
}

// FindByCheckin finds the manual payment recorded for a checkin
func (r *GormManualPaymentRepository) FindByCheckin(ctx context.Context, checkinID uuid.UUID) (*checkpoint.ManualPayment, error) {
	var payment checkpoint.ManualPayment
	if err := r.db.WithContext(ctx).
		Where("checkin_id = ?", checkinID).
		First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &payment, nil
}

// Save creates a manual payment record. A checkin is settled at most
// once, so a second record for it surfaces as shared.ErrAlreadyExists.
func (r *GormManualPaymentRepository) Save(ctx context.Context, payment *checkpoint.ManualPayment) error {
	if err := r.db.WithContext(ctx).Save(payment).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Ensure GormManualPaymentRepository implements ManualPaymentRepository
var _ checkpoint.ManualPaymentRepository = (*GormManualPaymentRepository)(nil)
