package checkpoint

import (
	"time"

	"github.com/google/uuid"
	"github.com/orc/backend/internal/domain/checkpoint"
	"github.com/shopspring/decimal"
)

// WeighbridgeTruckRequest is a net-weight push from a truck weighbridge device
type WeighbridgeTruckRequest struct {
	MachineNumber  string          `json:"machine_number" binding:"required"`
	PlateNumber    string          `json:"truck_plate" binding:"required"`
	NetWeight      decimal.Decimal `json:"net_weight" binding:"required"`
	PlateImageKey  string          `json:"plate_image_key"`
	IdempotencyKey string          `json:"-"`
}

// WeighbridgeWalkInRequest is a net-weight push for a walk-in taxpayer
type WeighbridgeWalkInRequest struct {
	MachineNumber    string          `json:"machine_number" binding:"required"`
	ExporterUniqueID string          `json:"exporter_unique_id" binding:"required"`
	NetWeight        decimal.Decimal `json:"net_weight" binding:"required"`
	IdempotencyKey   string          `json:"-"`
}

// CheckinResponse is the API representation of a checkin
type CheckinResponse struct {
	ID            uuid.UUID                `json:"id"`
	StationID     uuid.UUID                `json:"station_id"`
	CheckinTime   time.Time                `json:"checkin_time"`
	NetWeight     decimal.Decimal          `json:"net_weight"`
	Status        checkpoint.CheckinStatus `json:"status"`
	Rate          decimal.Decimal          `json:"rate"`
	UnitPrice     int64                    `json:"unit_price"`
	Owed          decimal.Decimal          `json:"owed"`
	Deduction     decimal.Decimal          `json:"deduction"`
	ReceiptNumber string                   `json:"receipt_number,omitempty"`
	EmployeeID    *uuid.UUID               `json:"employee_id,omitempty"`
}

// ToCheckinResponse maps a checkin to its API representation
func ToCheckinResponse(c *checkpoint.Checkin) CheckinResponse {
	return CheckinResponse{
		ID:            c.ID,
		StationID:     c.StationID,
		CheckinTime:   c.CheckinTime,
		NetWeight:     c.NetWeight,
		Status:        c.Status,
		Rate:          c.Rate,
		UnitPrice:     c.UnitPrice,
		Owed:          c.Owed,
		Deduction:     c.Deduction,
		ReceiptNumber: c.ReceiptNumber,
		EmployeeID:    c.EmployeeID,
	}
}

// JourneyResponse is the API representation of either journey variant
type JourneyResponse struct {
	ID          uuid.UUID                `json:"id"`
	Kind        checkpoint.JourneyKind   `json:"kind"`
	Number      string                   `json:"number"`
	Status      checkpoint.JourneyStatus `json:"status"`
	TruckID     *uuid.UUID               `json:"truck_id,omitempty"`
	DriverID    *uuid.UUID               `json:"driver_id,omitempty"`
	ExporterID  *uuid.UUID               `json:"exporter_id,omitempty"`
	CommodityID *uuid.UUID               `json:"commodity_id,omitempty"`
	PathID      *uuid.UUID               `json:"path_id,omitempty"`
	CreatedAt   time.Time                `json:"created_at"`
}

// ToTruckJourneyResponse maps a declaration to its API representation
func ToTruckJourneyResponse(j *checkpoint.TruckJourney) JourneyResponse {
	truckID := j.TruckID
	return JourneyResponse{
		ID:          j.ID,
		Kind:        checkpoint.JourneyKindTruck,
		Number:      j.DeclarationNumber,
		Status:      j.Status,
		TruckID:     &truckID,
		DriverID:    j.DriverID,
		ExporterID:  j.ExporterID,
		CommodityID: j.CommodityID,
		PathID:      j.PathID,
		CreatedAt:   j.CreatedAt,
	}
}

// ToWalkInJourneyResponse maps a walk-in journey to its API representation
func ToWalkInJourneyResponse(j *checkpoint.WalkInJourney) JourneyResponse {
	exporterID := j.ExporterID
	return JourneyResponse{
		ID:          j.ID,
		Kind:        checkpoint.JourneyKindWalkIn,
		Number:      j.Number,
		Status:      j.Status,
		ExporterID:  &exporterID,
		CommodityID: j.CommodityID,
		PathID:      j.PathID,
		CreatedAt:   j.CreatedAt,
	}
}

// WeighbridgeResult is the outcome of a weighbridge push. Declined pushes
// carry the verdict and message; allowed pushes carry the created checkin.
type WeighbridgeResult struct {
	Verdict          checkpoint.Verdict `json:"verdict"`
	Message          string             `json:"message"`
	Duplicate        bool               `json:"duplicate,omitempty"` // replay absorbed by the idempotency store
	Journey          *JourneyResponse   `json:"journey,omitempty"`
	Checkin          *CheckinResponse   `json:"checkin,omitempty"`
	SkippedStationID *uuid.UUID         `json:"skipped_station_id,omitempty"`
}

// Allowed reports whether the push created a checkin
func (r WeighbridgeResult) Allowed() bool {
	return r.Verdict.Allowed() && !r.Duplicate
}

// CheckpointState is the pre-payment view a controller sees for a
// journey at their station.
type CheckpointState struct {
	Verdict          checkpoint.Verdict `json:"verdict,omitempty"`
	Message          string             `json:"message,omitempty"`
	Journey          *JourneyResponse   `json:"journey,omitempty"`
	CurrentCheckin   *CheckinResponse   `json:"current_checkin,omitempty"`
	PreviousCheckins []CheckinResponse  `json:"previous_checkins"`
}

// ManualPaymentRequest settles a checkin with a cash or bank payment
type ManualPaymentRequest struct {
	CheckinID     uuid.UUID `json:"checkin_id" binding:"required"`
	IsBank        bool      `json:"is_bank"`
	BankName      string    `json:"bank_name"`
	BankAccount   string    `json:"bank_account"`
	PayerName     string    `json:"payer_name"`
	ReceiptNumber string    `json:"receipt_number" binding:"required"`
}

// GatewayCallbackRequest confirms a third-party gateway payment
type GatewayCallbackRequest struct {
	CheckinID        uuid.UUID `json:"checkin_id" binding:"required"`
	TransactionKey   string    `json:"transaction_key" binding:"required"`
	ConfirmationCode string    `json:"confirmation_code"`
}

// PaymentResult is the outcome of a payment action
type PaymentResult struct {
	Checkin          CheckinResponse `json:"checkin"`
	JourneyCompleted bool            `json:"journey_completed"`
}

// ChangeTruckRequest substitutes the truck on an open journey
type ChangeTruckRequest struct {
	JourneyID     uuid.UUID `json:"journey_id" binding:"required"`
	NewPlate      string    `json:"new_plate" binding:"required"`
	StationID     uuid.UUID `json:"station_id" binding:"required"`
	Reason        string    `json:"reason"`
}

// CompleteTruckJourneyRequest fills in a pending declaration's details
type CompleteTruckJourneyRequest struct {
	DriverID    uuid.UUID `json:"driver_id"`
	ExporterID  uuid.UUID `json:"exporter_id" binding:"required"`
	CommodityID uuid.UUID `json:"commodity_id" binding:"required"`
	PathID      uuid.UUID `json:"path_id" binding:"required"`
}

// CompleteWalkInJourneyRequest fills in a pending walk-in journey's cargo
type CompleteWalkInJourneyRequest struct {
	CommodityID uuid.UUID `json:"commodity_id" binding:"required"`
	PathID      uuid.UUID `json:"path_id" binding:"required"`
}

// CreateStationRequest registers a checkpoint station
type CreateStationRequest struct {
	Name          string `json:"name" binding:"required"`
	MachineNumber string `json:"machine_number" binding:"required"`
	Woreda        string `json:"woreda"`
	Kebele        string `json:"kebele"`
}

// StationResponse is the API representation of a station
type StationResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	MachineNumber string    `json:"machine_number"`
	Woreda        string    `json:"woreda,omitempty"`
	Kebele        string    `json:"kebele,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// ToStationResponse maps a station to its API representation
func ToStationResponse(s *checkpoint.Station) StationResponse {
	return StationResponse{
		ID:            s.ID,
		Name:          s.Name,
		MachineNumber: s.MachineNumber,
		Woreda:        s.Woreda,
		Kebele:        s.Kebele,
		CreatedAt:     s.CreatedAt,
	}
}

// CreatePathRequest creates a path from an ordered station list
type CreatePathRequest struct {
	Name       string      `json:"name" binding:"required"`
	StationIDs []uuid.UUID `json:"station_ids"`
}

// PathStationResponse is one station slot in a path
type PathStationResponse struct {
	StationID uuid.UUID `json:"station_id"`
	Order     int64     `json:"order"`
}

// PathResponse is the API representation of a path
type PathResponse struct {
	ID        uuid.UUID             `json:"id"`
	Name      string                `json:"name"`
	Stations  []PathStationResponse `json:"stations"`
	CreatedAt time.Time             `json:"created_at"`
}

// ToPathResponse maps a path to its API representation, stations in
// traversal order
func ToPathResponse(p *checkpoint.Path) PathResponse {
	ordered := p.OrderedStations()
	stations := make([]PathStationResponse, 0, len(ordered))
	for _, ps := range ordered {
		stations = append(stations, PathStationResponse{StationID: ps.StationID, Order: ps.Order})
	}
	return PathResponse{
		ID:        p.ID,
		Name:      p.Name,
		Stations:  stations,
		CreatedAt: p.CreatedAt,
	}
}

// VerdictMessage returns the operator-facing message for a verdict,
// matching the vocabulary checkpoint clerks already know.
func VerdictMessage(v checkpoint.Verdict) string {
	switch v {
	case checkpoint.VerdictAllowNewDeclaration:
		return "New journey started at this station"
	case checkpoint.VerdictAllowNextCheckin:
		return "Checked in, proceed to tax assessment"
	case checkpoint.VerdictAllowComplete:
		return "Checked in at the final station, journey completed"
	case checkpoint.VerdictRejectNotInPath:
		return "This station is not on the journey's path"
	case checkpoint.VerdictRejectWrongDirection:
		return "The journey has already passed this station"
	case checkpoint.VerdictRejectSkippedStations:
		return "A station along the path was skipped"
	case checkpoint.VerdictRejectPreviousUnpaid:
		return "Tax at the previous station has not been paid"
	case checkpoint.VerdictRejectAlreadyCheckedHere:
		return "Already checked in at this station"
	case checkpoint.VerdictRejectJourneyClosed:
		return "The previous journey is closed, restart at a weighbridge"
	default:
		return string(v)
	}
}
