package registry

import (
	"time"

	"github.com/google/uuid"
	"github.com/orc/backend/internal/domain/registry"
)

// CreateTruckRequest registers a truck
type CreateTruckRequest struct {
	PlateNumber       string     `json:"plate_number" binding:"required"`
	ChassisNumber     string     `json:"chassis_number" binding:"required"`
	EngineNumber      string     `json:"engine_number"`
	Brand             string     `json:"brand"`
	Model             string     `json:"model"`
	CountryOfOrigin   string     `json:"country_of_origin"`
	Color             string     `json:"color"`
	YearOfManufacture int        `json:"year_of_manufacture"`
	LoadingCapacityKg int        `json:"loading_capacity_kg"`
	OwnerName         string     `json:"owner_name"`
	OwnerPhone        string     `json:"owner_phone"`
	CreatedBy         *uuid.UUID `json:"-"`
}

// UpdateTruckRequest updates a truck's mutable details
type UpdateTruckRequest struct {
	Brand             string `json:"brand"`
	Model             string `json:"model"`
	CountryOfOrigin   string `json:"country_of_origin"`
	Color             string `json:"color"`
	YearOfManufacture int    `json:"year_of_manufacture"`
	LoadingCapacityKg int    `json:"loading_capacity_kg"`
	OwnerName         string `json:"owner_name"`
	OwnerPhone        string `json:"owner_phone"`
}

// TruckResponse is the API representation of a truck
type TruckResponse struct {
	ID                uuid.UUID            `json:"id"`
	PlateNumber       string               `json:"plate_number"`
	Brand             string               `json:"brand,omitempty"`
	Model             string               `json:"model,omitempty"`
	CountryOfOrigin   string               `json:"country_of_origin,omitempty"`
	YearOfManufacture int                  `json:"year_of_manufacture,omitempty"`
	ChassisNumber     string               `json:"chassis_number"`
	EngineNumber      string               `json:"engine_number,omitempty"`
	Color             string               `json:"color,omitempty"`
	LoadingCapacityKg int                  `json:"loading_capacity_kg,omitempty"`
	OwnerName         string               `json:"owner_name,omitempty"`
	OwnerPhone        string               `json:"owner_phone,omitempty"`
	PlateImageKey     string               `json:"plate_image_key,omitempty"`
	Status            registry.TruckStatus `json:"status"`
	CreatedAt         time.Time            `json:"created_at"`
}

// ToTruckResponse maps a truck to its API representation
func ToTruckResponse(t *registry.Truck) TruckResponse {
	return TruckResponse{
		ID:                t.ID,
		PlateNumber:       t.PlateNumber,
		Brand:             t.Brand,
		Model:             t.Model,
		CountryOfOrigin:   t.CountryOfOrigin,
		YearOfManufacture: t.YearOfManufacture,
		ChassisNumber:     t.ChassisNumber,
		EngineNumber:      t.EngineNumber,
		Color:             t.Color,
		LoadingCapacityKg: t.LoadingCapacityKg,
		OwnerName:         t.OwnerName,
		OwnerPhone:        t.OwnerPhone,
		PlateImageKey:     t.PlateImageKey,
		Status:            t.Status,
		CreatedAt:         t.CreatedAt,
	}
}

// CreateDriverRequest registers a driver
type CreateDriverRequest struct {
	FirstName     string     `json:"first_name" binding:"required"`
	LastName      string     `json:"last_name" binding:"required"`
	LicenseNumber string     `json:"license_number" binding:"required"`
	PhoneNumber   string     `json:"phone_number"`
	Email         string     `json:"email"`
	Woreda        string     `json:"woreda"`
	Kebele        string     `json:"kebele"`
	CreatedBy     *uuid.UUID `json:"-"`
}

// DriverResponse is the API representation of a driver
type DriverResponse struct {
	ID            uuid.UUID `json:"id"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	PhoneNumber   string    `json:"phone_number,omitempty"`
	Email         string    `json:"email,omitempty"`
	LicenseNumber string    `json:"license_number"`
	Woreda        string    `json:"woreda,omitempty"`
	Kebele        string    `json:"kebele,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// ToDriverResponse maps a driver to its API representation
func ToDriverResponse(d *registry.Driver) DriverResponse {
	return DriverResponse{
		ID:            d.ID,
		FirstName:     d.FirstName,
		LastName:      d.LastName,
		PhoneNumber:   d.PhoneNumber,
		Email:         d.Email,
		LicenseNumber: d.LicenseNumber,
		Woreda:        d.Woreda,
		Kebele:        d.Kebele,
		CreatedAt:     d.CreatedAt,
	}
}

// CreateExporterRequest registers an exporter
type CreateExporterRequest struct {
	FirstName      string     `json:"first_name" binding:"required"`
	MiddleName     string     `json:"middle_name"`
	LastName       string     `json:"last_name" binding:"required"`
	Gender         string     `json:"gender" binding:"required"`
	TIN            string     `json:"tin"`
	PhoneNumber    string     `json:"phone_number"`
	Woreda         string     `json:"woreda"`
	Kebele         string     `json:"kebele"`
	TaxPayerTypeID *uuid.UUID `json:"tax_payer_type_id"`
	CreatedBy      *uuid.UUID `json:"-"`
}

// ExporterResponse is the API representation of an exporter
type ExporterResponse struct {
	ID             uuid.UUID  `json:"id"`
	UniqueID       string     `json:"unique_id"`
	FirstName      string     `json:"first_name"`
	MiddleName     string     `json:"middle_name,omitempty"`
	LastName       string     `json:"last_name"`
	Gender         string     `json:"gender"`
	TIN            string     `json:"tin,omitempty"`
	PhoneNumber    string     `json:"phone_number,omitempty"`
	Woreda         string     `json:"woreda,omitempty"`
	Kebele         string     `json:"kebele,omitempty"`
	TaxPayerTypeID *uuid.UUID `json:"tax_payer_type_id,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// ToExporterResponse maps an exporter to its API representation
func ToExporterResponse(e *registry.Exporter) ExporterResponse {
	return ExporterResponse{
		ID:             e.ID,
		UniqueID:       e.UniqueID,
		FirstName:      e.FirstName,
		MiddleName:     e.MiddleName,
		LastName:       e.LastName,
		Gender:         string(e.Gender),
		TIN:            e.TIN,
		PhoneNumber:    e.PhoneNumber,
		Woreda:         e.Woreda,
		Kebele:         e.Kebele,
		TaxPayerTypeID: e.TaxPayerTypeID,
		CreatedAt:      e.CreatedAt,
	}
}

// CreateCommodityRequest registers a commodity and its unit price in
// birr cents per kilogram
type CreateCommodityRequest struct {
	Name      string     `json:"name" binding:"required"`
	UnitPrice int64      `json:"unit_price" binding:"required"`
	CreatedBy *uuid.UUID `json:"-"`
}

// CommodityResponse is the API representation of a commodity
type CommodityResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	UnitPrice int64     `json:"unit_price"`
	CreatedAt time.Time `json:"created_at"`
}

// ToCommodityResponse maps a commodity to its API representation
func ToCommodityResponse(c *registry.Commodity) CommodityResponse {
	return CommodityResponse{
		ID:        c.ID,
		Name:      c.Name,
		UnitPrice: c.UnitPrice,
		CreatedAt: c.CreatedAt,
	}
}
