package registry

import (
	"context"

	"github.com/google/uuid"
	"github.com/orc/backend/internal/domain/shared"
)

// TruckRepository defines the interface for truck persistence
type TruckRepository interface {
	// FindByID finds a truck by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Truck, error)

	// FindByPlateNumber finds a truck by its plate number
	FindByPlateNumber(ctx context.Context, plateNumber string) (*Truck, error)

	// FindAll finds all trucks matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Truck, error)

	// Save creates or updates a truck
	Save(ctx context.Context, truck *Truck) error

	// Delete deletes a truck
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts trucks matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsByPlateNumber checks if a truck with the given plate exists
	ExistsByPlateNumber(ctx context.Context, plateNumber string) (bool, error)
}
