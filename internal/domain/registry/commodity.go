package registry

import (
	"strings"
	"time"

	"github.com/orc/backend/internal/domain/shared"
)

// Commodity represents a tradable good with its declared unit price.
// UnitPrice is stored as a scaled integer (birr x 100) so that price
// arithmetic stays exact until the final rounding step.
type Commodity struct {
	shared.BaseAggregateRoot
	Name      string `gorm:"type:varchar(400);not null;uniqueIndex"`
	UnitPrice int64  `gorm:"not null"` // scaled: birr x 100 per kilogram
}

// TableName returns the table name for GORM
func (Commodity) TableName() string {
	return "commodities"
}

// NewCommodity creates a new commodity with its scaled unit price
func NewCommodity(name string, unitPrice int64) (*Commodity, error) {
	if err := validateCommodityName(name); err != nil {
		return nil, err
	}
	if unitPrice <= 0 {
		return nil, shared.NewDomainError("INVALID_UNIT_PRICE", "Unit price must be positive")
	}

	return &Commodity{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		UnitPrice:         unitPrice,
	}, nil
}

// UpdatePrice updates the commodity's scaled unit price.
// Open journeys keep the price stamped on their checkins; only new
// journeys pick up the change.
func (c *Commodity) UpdatePrice(unitPrice int64) error {
	if unitPrice <= 0 {
		return shared.NewDomainError("INVALID_UNIT_PRICE", "Unit price must be positive")
	}

	c.UnitPrice = unitPrice
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// Rename updates the commodity's name
func (c *Commodity) Rename(name string) error {
	if err := validateCommodityName(name); err != nil {
		return err
	}

	c.Name = strings.TrimSpace(name)
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

func validateCommodityName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return shared.NewDomainError("INVALID_NAME", "Commodity name cannot be empty")
	}
	if len(trimmed) > 400 {
		return shared.NewDomainError("INVALID_NAME", "Commodity name cannot exceed 400 characters")
	}
	return nil
}
