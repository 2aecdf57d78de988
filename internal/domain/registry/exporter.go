package registry

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/orc/backend/internal/domain/shared"
)

// Gender of an exporter
type Gender string

const (
	GenderFemale Gender = "Female"
	GenderMale   Gender = "Male"
)

// Exporter represents a registered taxpayer who exports goods through checkpoints.
// Walk-in (truckless) journeys are attributed directly to an exporter.
type Exporter struct {
	shared.BaseAggregateRoot
	FirstName   string `gorm:"type:varchar(100);not null"`
	MiddleName  string `gorm:"type:varchar(100)"`
	LastName    string `gorm:"type:varchar(100);not null"`
	Gender      Gender `gorm:"type:varchar(20);not null;default:'Male'"`
	UniqueID    string `gorm:"type:varchar(100);not null;uniqueIndex"` // stable public identifier, e.g. ORC3fa8b2c1
	TIN         string `gorm:"type:varchar(50);index"`                 // tax identification number
	PhoneNumber string `gorm:"type:varchar(50)"`
	Woreda      string `gorm:"type:varchar(200)"`
	Kebele      string `gorm:"type:varchar(200)"`

	// TaxPayerTypeID classifies the exporter for tariff lookup.
	// Journeys for an unclassified exporter cannot resolve a rate.
	TaxPayerTypeID *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (Exporter) TableName() string {
	return "exporters"
}

// NewExporter creates a new exporter with required fields.
// A stable public identifier is derived from the name and registration time.
func NewExporter(firstName, lastName string, gender Gender) (*Exporter, error) {
	if firstName == "" || lastName == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Exporter first and last name cannot be empty")
	}
	if gender != GenderFemale && gender != GenderMale {
		return nil, shared.NewDomainError("INVALID_GENDER", "Gender must be 'Female' or 'Male'")
	}

	exporter := &Exporter{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		FirstName:         firstName,
		LastName:          lastName,
		Gender:            gender,
	}
	exporter.UniqueID = generateExporterID(exporter)

	return exporter, nil
}

// SetTIN sets the exporter's tax identification number
func (e *Exporter) SetTIN(tin string) error {
	if tin != "" && len(tin) > 50 {
		return shared.NewDomainError("INVALID_TIN", "TIN cannot exceed 50 characters")
	}

	e.TIN = strings.TrimSpace(tin)
	e.UpdatedAt = time.Now()
	e.IncrementVersion()

	return nil
}

// SetContact sets the exporter's contact and residence information
func (e *Exporter) SetContact(phone, woreda, kebele string) error {
	if phone != "" && len(phone) > 50 {
		return shared.NewDomainError("INVALID_PHONE", "Phone number cannot exceed 50 characters")
	}

	e.PhoneNumber = phone
	e.Woreda = woreda
	e.Kebele = kebele
	e.UpdatedAt = time.Now()
	e.IncrementVersion()

	return nil
}

// Classify assigns the exporter a taxpayer type for tariff lookup
func (e *Exporter) Classify(taxPayerTypeID uuid.UUID) {
	e.TaxPayerTypeID = &taxPayerTypeID
	e.UpdatedAt = time.Now()
	e.IncrementVersion()
}

// FullName returns the exporter's full name
func (e *Exporter) FullName() string {
	if e.MiddleName != "" {
		return fmt.Sprintf("%s %s %s", e.FirstName, e.MiddleName, e.LastName)
	}
	return e.FirstName + " " + e.LastName
}

func generateExporterID(e *Exporter) string {
	seed := fmt.Sprintf("%s-%s-%d", e.ID, e.FirstName, time.Now().UnixNano())
	sum := sha256.Sum256([]byte(seed))
	return "ORC" + hex.EncodeToString(sum[:])[:8]
}
