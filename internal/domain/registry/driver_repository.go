package registry

import (
	"context"

	"github.com/google/uuid"
	"github.com/orc/backend/internal/domain/shared"
)

// DriverRepository defines the interface for driver persistence
type DriverRepository interface {
	// FindByID finds a driver by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Driver, error)

	// FindByLicenseNumber finds a driver by license number
	FindByLicenseNumber(ctx context.Context, licenseNumber string) (*Driver, error)

	// FindAll finds all drivers matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Driver, error)

	// Save creates or updates a driver
	Save(ctx context.Context, driver *Driver) error

	// Delete deletes a driver
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts drivers matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsByLicenseNumber checks if a driver with the given license exists
	ExistsByLicenseNumber(ctx context.Context, licenseNumber string) (bool, error)
}
