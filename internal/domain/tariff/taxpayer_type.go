package tariff

import (
	"strings"
	"time"

	"github.com/orc/backend/internal/domain/shared"
)

// TaxPayerType classifies exporters for tariff lookup.
// Rates are configured per (station, taxpayer type, commodity).
type TaxPayerType struct {
	shared.BaseAggregateRoot
	Name        string `gorm:"type:varchar(400);not null;uniqueIndex"`
	Description string `gorm:"type:varchar(1000)"`
}

// TableName returns the table name for GORM
func (TaxPayerType) TableName() string {
	return "taxpayer_types"
}

// NewTaxPayerType creates a new taxpayer type
func NewTaxPayerType(name, description string) (*TaxPayerType, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Taxpayer type name cannot be empty")
	}
	if len(trimmed) > 400 {
		return nil, shared.NewDomainError("INVALID_NAME", "Taxpayer type name cannot exceed 400 characters")
	}

	return &TaxPayerType{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              trimmed,
		Description:       description,
	}, nil
}

// Update updates the taxpayer type's details
func (t *TaxPayerType) Update(name, description string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return shared.NewDomainError("INVALID_NAME", "Taxpayer type name cannot be empty")
	}

	t.Name = trimmed
	t.Description = description
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	return nil
}
