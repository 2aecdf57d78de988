package registry

import (
	"context"

	"github.com/google/uuid"
	"github.com/orc/backend/internal/domain/shared"
)

// ExporterRepository defines the interface for exporter persistence
type ExporterRepository interface {
	// FindByID finds an exporter by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Exporter, error)

	// FindByUniqueID finds an exporter by its public identifier
	FindByUniqueID(ctx context.Context, uniqueID string) (*Exporter, error)

	// FindByTIN finds an exporter by tax identification number
	FindByTIN(ctx context.Context, tin string) (*Exporter, error)

	// FindAll finds all exporters matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Exporter, error)

	// Save creates or updates an exporter
	Save(ctx context.Context, exporter *Exporter) error

	// Delete deletes an exporter
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts exporters matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
