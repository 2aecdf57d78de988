package checkpoint

import (
	"strings"
	"time"

	"github.com/orc/backend/internal/domain/shared"
)

// Station represents a physical checkpoint workstation along a path.
// Each station hosts a weighbridge device identified by its machine number.
type Station struct {
	shared.BaseAggregateRoot
	Name          string `gorm:"type:varchar(400);not null;uniqueIndex"`
	MachineNumber string `gorm:"type:varchar(400);not null;uniqueIndex"` // weighbridge device identifier
	Woreda        string `gorm:"type:varchar(200)"`
	Kebele        string `gorm:"type:varchar(200)"`
}

// TableName returns the table name for GORM
func (Station) TableName() string {
	return "stations"
}

// NewStation creates a new checkpoint station
func NewStation(name, machineNumber string) (*Station, error) {
	name = strings.TrimSpace(name)
	machineNumber = strings.TrimSpace(machineNumber)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Station name cannot be empty")
	}
	if len(name) > 400 {
		return nil, shared.NewDomainError("INVALID_NAME", "Station name cannot exceed 400 characters")
	}
	if machineNumber == "" {
		return nil, shared.NewDomainError("INVALID_MACHINE_NUMBER", "Machine number cannot be empty")
	}

	return &Station{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		MachineNumber:     machineNumber,
	}, nil
}

// SetLocation sets the station's district location
func (s *Station) SetLocation(woreda, kebele string) {
	s.Woreda = woreda
	s.Kebele = kebele
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}

// Rename updates the station's name
func (s *Station) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Station name cannot be empty")
	}

	s.Name = name
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// ReassignMachine changes the weighbridge device bound to this station
func (s *Station) ReassignMachine(machineNumber string) error {
	machineNumber = strings.TrimSpace(machineNumber)
	if machineNumber == "" {
		return shared.NewDomainError("INVALID_MACHINE_NUMBER", "Machine number cannot be empty")
	}

	s.MachineNumber = machineNumber
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}
