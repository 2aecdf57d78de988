package registry

import (
	"strings"
	"time"

	"github.com/orc/backend/internal/domain/shared"
)

// TruckStatus represents the operational status of a truck
type TruckStatus string

const (
	TruckStatusActive   TruckStatus = "active"
	TruckStatusInactive TruckStatus = "inactive"
)

// Truck represents a registered truck in the registry context.
// It is the aggregate root for truck-related operations.
type Truck struct {
	shared.BaseAggregateRoot
	PlateNumber       string      `gorm:"type:varchar(100);not null;uniqueIndex"`
	Brand             string      `gorm:"type:varchar(100)"`
	Model             string      `gorm:"type:varchar(100)"`
	CountryOfOrigin   string      `gorm:"type:varchar(100)"`
	YearOfManufacture int         `gorm:"not null;default:0"`
	ChassisNumber     string      `gorm:"type:varchar(100);uniqueIndex"`
	EngineNumber      string      `gorm:"type:varchar(100)"`
	Color             string      `gorm:"type:varchar(50)"`
	LoadingCapacityKg int         `gorm:"not null;default:0"`
	OwnerName         string      `gorm:"type:varchar(200)"`
	OwnerPhone        string      `gorm:"type:varchar(50)"`
	PlateImageKey     string      `gorm:"type:varchar(500)"` // object storage key for the plate snapshot
	Status            TruckStatus `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (Truck) TableName() string {
	return "trucks"
}

// NewTruck creates a new truck with required fields
func NewTruck(plateNumber, chassisNumber string) (*Truck, error) {
	if err := validatePlateNumber(plateNumber); err != nil {
		return nil, err
	}
	if chassisNumber == "" {
		return nil, shared.NewDomainError("INVALID_CHASSIS_NUMBER", "Chassis number cannot be empty")
	}

	truck := &Truck{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		PlateNumber:       normalizePlate(plateNumber),
		ChassisNumber:     strings.ToUpper(strings.TrimSpace(chassisNumber)),
		Status:            TruckStatusActive,
	}

	truck.AddDomainEvent(NewTruckRegisteredEvent(truck))

	return truck, nil
}

// SetSpecs sets the truck's technical specifications
func (t *Truck) SetSpecs(brand, model, countryOfOrigin, color string, yearOfManufacture, loadingCapacityKg int) error {
	if yearOfManufacture != 0 && (yearOfManufacture < 1886 || yearOfManufacture > time.Now().Year()+1) {
		return shared.NewDomainError("INVALID_YEAR", "Year of manufacture is out of range")
	}
	if loadingCapacityKg < 0 {
		return shared.NewDomainError("INVALID_CAPACITY", "Loading capacity cannot be negative")
	}

	t.Brand = brand
	t.Model = model
	t.CountryOfOrigin = countryOfOrigin
	t.Color = color
	t.YearOfManufacture = yearOfManufacture
	t.LoadingCapacityKg = loadingCapacityKg
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	return nil
}

// SetOwner sets the truck owner's contact details
func (t *Truck) SetOwner(name, phone string) error {
	if name != "" && len(name) > 200 {
		return shared.NewDomainError("INVALID_OWNER_NAME", "Owner name cannot exceed 200 characters")
	}
	if phone != "" && len(phone) > 50 {
		return shared.NewDomainError("INVALID_OWNER_PHONE", "Owner phone cannot exceed 50 characters")
	}

	t.OwnerName = name
	t.OwnerPhone = phone
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	return nil
}

// ChangePlate records a plate number change (re-registration)
func (t *Truck) ChangePlate(plateNumber string) error {
	if err := validatePlateNumber(plateNumber); err != nil {
		return err
	}

	oldPlate := t.PlateNumber
	t.PlateNumber = normalizePlate(plateNumber)
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	t.AddDomainEvent(NewTruckPlateChangedEvent(t, oldPlate))

	return nil
}

// AttachPlateImage records the storage key of the plate snapshot taken at the weighbridge
func (t *Truck) AttachPlateImage(key string) error {
	if key == "" {
		return shared.NewDomainError("INVALID_IMAGE_KEY", "Image key cannot be empty")
	}
	if len(key) > 500 {
		return shared.NewDomainError("INVALID_IMAGE_KEY", "Image key cannot exceed 500 characters")
	}

	t.PlateImageKey = key
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	return nil
}

// Deactivate takes the truck out of service
func (t *Truck) Deactivate() error {
	if t.Status == TruckStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Truck is already inactive")
	}

	t.Status = TruckStatusInactive
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	return nil
}

// Activate puts the truck back in service
func (t *Truck) Activate() error {
	if t.Status == TruckStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Truck is already active")
	}

	t.Status = TruckStatusActive
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	return nil
}

// IsActive returns true if the truck is in service
func (t *Truck) IsActive() bool {
	return t.Status == TruckStatusActive
}

func normalizePlate(plate string) string {
	return strings.ToUpper(strings.Join(strings.Fields(plate), " "))
}

func validatePlateNumber(plate string) error {
	trimmed := strings.TrimSpace(plate)
	if trimmed == "" {
		return shared.NewDomainError("INVALID_PLATE_NUMBER", "Plate number cannot be empty")
	}
	if len(trimmed) > 100 {
		return shared.NewDomainError("INVALID_PLATE_NUMBER", "Plate number cannot exceed 100 characters")
	}
	return nil
}
