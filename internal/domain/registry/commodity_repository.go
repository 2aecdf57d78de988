package registry

import (
	"context"

	"github.com/google/uuid"
	"github.com/orc/backend/internal/domain/shared"
)

// CommodityRepository defines the interface for commodity persistence
type CommodityRepository interface {
	// FindByID finds a commodity by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Commodity, error)

	// FindByName finds a commodity by its name
	FindByName(ctx context.Context, name string) (*Commodity, error)

	// FindAll finds all commodities matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Commodity, error)

	// Save creates or updates a commodity
	Save(ctx context.Context, commodity *Commodity) error

	// Delete deletes a commodity
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts commodities matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsByName checks if a commodity with the given name exists
	ExistsByName(ctx context.Context, name string) (bool, error)
}
