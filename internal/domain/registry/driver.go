package registry

import (
	"regexp"
	"strings"
	"time"

	"github.com/orc/backend/internal/domain/shared"
)

// Driver represents a registered truck driver
type Driver struct {
	shared.BaseAggregateRoot
	FirstName     string `gorm:"type:varchar(100);not null"`
	LastName      string `gorm:"type:varchar(100);not null"`
	PhoneNumber   string `gorm:"type:varchar(50);index"`
	Email         string `gorm:"type:varchar(200)"`
	LicenseNumber string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Woreda        string `gorm:"type:varchar(200)"` // district of residence
	Kebele        string `gorm:"type:varchar(200)"`
}

// TableName returns the table name for GORM
func (Driver) TableName() string {
	return "drivers"
}

// NewDriver creates a new driver with required fields
func NewDriver(firstName, lastName, licenseNumber string) (*Driver, error) {
	if firstName == "" || lastName == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Driver first and last name cannot be empty")
	}
	if strings.TrimSpace(licenseNumber) == "" {
		return nil, shared.NewDomainError("INVALID_LICENSE", "License number cannot be empty")
	}
	if len(licenseNumber) > 100 {
		return nil, shared.NewDomainError("INVALID_LICENSE", "License number cannot exceed 100 characters")
	}

	return &Driver{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		FirstName:         firstName,
		LastName:          lastName,
		LicenseNumber:     strings.ToUpper(strings.TrimSpace(licenseNumber)),
	}, nil
}

// SetContact sets the driver's contact information
func (d *Driver) SetContact(phone, email string) error {
	if phone != "" {
		if len(phone) > 50 {
			return shared.NewDomainError("INVALID_PHONE", "Phone number cannot exceed 50 characters")
		}
		validPhone := regexp.MustCompile(`^[\d\s\-\(\)\+]+$`)
		if !validPhone.MatchString(phone) {
			return shared.NewDomainError("INVALID_PHONE", "Invalid phone number format")
		}
	}
	if email != "" && len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}

	d.PhoneNumber = phone
	d.Email = email
	d.UpdatedAt = time.Now()
	d.IncrementVersion()

	return nil
}

// SetResidence sets the driver's residence district
func (d *Driver) SetResidence(woreda, kebele string) {
	d.Woreda = woreda
	d.Kebele = kebele
	d.UpdatedAt = time.Now()
	d.IncrementVersion()
}

// FullName returns the driver's full name
func (d *Driver) FullName() string {
	return d.FirstName + " " + d.LastName
}
