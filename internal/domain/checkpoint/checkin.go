package checkpoint

import (
	"time"

	"github.com/google/uuid"
	"github.com/orc/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CheckinStatus represents the payment state of a checkpoint visit
type CheckinStatus string

const (
	// CheckinStatusPending means the visit is recorded but not yet assessed
	CheckinStatusPending CheckinStatus = "pending"
	// CheckinStatusUnpaid means tax is owed and blocks further progression
	CheckinStatusUnpaid CheckinStatus = "unpaid"
	// CheckinStatusPass means nothing was owed at this station
	CheckinStatusPass CheckinStatus = "pass"
	// CheckinStatusPaid means a manual payment settled the checkin
	CheckinStatusPaid CheckinStatus = "paid"
	// CheckinStatusSuccess means a gateway payment settled the checkin
	CheckinStatusSuccess CheckinStatus = "success"
)

// Checkin is one checkpoint visit record for a journey. Exactly one of
// TruckJourneyID and WalkInJourneyID is set, never both and never
// neither. (station, journey) is unique: a journey visits a station at
// most once. CheckinTime is assigned at creation and never changes; it
// is the ordering key for the journey's visit sequence.
type Checkin struct {
	shared.BaseAggregateRoot
	StationID       uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_checkin_truck_station,priority:2;uniqueIndex:idx_checkin_walkin_station,priority:2"`
	TruckJourneyID  *uuid.UUID      `gorm:"type:uuid;uniqueIndex:idx_checkin_truck_station,priority:1"`
	WalkInJourneyID *uuid.UUID      `gorm:"type:uuid;uniqueIndex:idx_checkin_walkin_station,priority:1"`
	CheckinTime     time.Time       `gorm:"not null;index"`
	NetWeight       decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"` // absolute scale reading, not a delta
	Status          CheckinStatus   `gorm:"type:varchar(20);not null;default:'pending';index"`

	// Tariff fields, stamped once the first time a controller opens the
	// checkin and never overwritten afterwards.
	Rate       decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	UnitPrice  int64           `gorm:"not null;default:0"` // scaled: birr x 100
	EmployeeID *uuid.UUID      `gorm:"type:uuid"`          // controller who opened it

	// Amount accounting
	Deduction decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	Owed      decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`

	// Payment settlement
	ReceiptNumber     string     `gorm:"type:varchar(100);index"`
	PaymentMethod     string     `gorm:"type:varchar(100)"`
	PaymentAccepterID *uuid.UUID `gorm:"type:uuid"`
	TransactionKey    string     `gorm:"type:varchar(1000)"`
	ConfirmationCode  string     `gorm:"type:varchar(500)"`

	// PlateImageKey is the object storage key of the plate snapshot the
	// weighbridge camera captured with this reading, when one was sent.
	PlateImageKey string `gorm:"type:varchar(500)"`

	Description string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Checkin) TableName() string {
	return "checkins"
}

// NewTruckCheckin records a visit of a truck-backed journey at a station
func NewTruckCheckin(journeyID, stationID uuid.UUID, netWeight decimal.Decimal) (*Checkin, error) {
	c, err := newCheckin(stationID, netWeight)
	if err != nil {
		return nil, err
	}
	if journeyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_JOURNEY", "Journey is required")
	}
	c.TruckJourneyID = &journeyID
	return c, nil
}

// NewWalkInCheckin records a visit of a walk-in journey at a station
func NewWalkInCheckin(journeyID, stationID uuid.UUID, netWeight decimal.Decimal) (*Checkin, error) {
	c, err := newCheckin(stationID, netWeight)
	if err != nil {
		return nil, err
	}
	if journeyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_JOURNEY", "Journey is required")
	}
	c.WalkInJourneyID = &journeyID
	return c, nil
}

func newCheckin(stationID uuid.UUID, netWeight decimal.Decimal) (*Checkin, error) {
	if stationID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_STATION", "Station is required")
	}
	if netWeight.IsNegative() {
		return nil, shared.NewDomainError("INVALID_WEIGHT", "Net weight cannot be negative")
	}

	return &Checkin{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		StationID:         stationID,
		CheckinTime:       time.Now(),
		NetWeight:         netWeight,
		Status:            CheckinStatusPending,
		Rate:              decimal.Zero,
		Deduction:         decimal.Zero,
		Owed:              decimal.Zero,
	}, nil
}

// JourneyID returns the journey the checkin belongs to, either variant
func (c *Checkin) JourneyID() uuid.UUID {
	if c.TruckJourneyID != nil {
		return *c.TruckJourneyID
	}
	if c.WalkInJourneyID != nil {
		return *c.WalkInJourneyID
	}
	return uuid.Nil
}

// ResolveFromIncremental moves a pending checkin to unpaid or pass based
// on the sign of the incremental weight: positive weight owes tax, zero
// or negative passes through. The owed amount itself is assessed later,
// when a controller opens the checkin and the tariff is known.
func (c *Checkin) ResolveFromIncremental(incrementalWeight decimal.Decimal) error {
	if c.Status != CheckinStatusPending {
		return shared.NewDomainError("INVALID_STATUS", "Only a pending checkin can be resolved")
	}

	if incrementalWeight.IsPositive() {
		c.Status = CheckinStatusUnpaid
	} else {
		c.Status = CheckinStatusPass
	}
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// RecordAssessment stores the computed owed amount. Settled checkins
// keep their historical amount.
func (c *Checkin) RecordAssessment(owed decimal.Decimal) error {
	if owed.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Owed amount cannot be negative")
	}
	if c.Status == CheckinStatusPaid || c.Status == CheckinStatusSuccess {
		return shared.NewDomainError("ALREADY_SETTLED", "Cannot reassess a settled checkin")
	}

	c.Owed = owed.Round(2)
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// StampTariff records the applicable rate, unit price and the controller
// who opened the checkin. The fields are set once; subsequent calls are
// no-ops so a re-opened screen never rewrites history.
func (c *Checkin) StampTariff(rate decimal.Decimal, unitPrice int64, employeeID uuid.UUID) {
	if c.IsStamped() {
		return
	}

	c.Rate = rate
	c.UnitPrice = unitPrice
	if employeeID != uuid.Nil {
		c.EmployeeID = &employeeID
	}
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// IsStamped reports whether a controller has already opened this checkin
func (c *Checkin) IsStamped() bool {
	return c.EmployeeID != nil || !c.Rate.IsZero()
}

// ApplyDeduction records an operator-granted deduction before payment
func (c *Checkin) ApplyDeduction(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_DEDUCTION", "Deduction cannot be negative")
	}
	if c.IsSettled() {
		return shared.NewDomainError("ALREADY_SETTLED", "Cannot apply a deduction to a settled checkin")
	}

	c.Deduction = amount.Round(2)
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// MarkPaid settles the checkin through a manual payment (cash or bank)
func (c *Checkin) MarkPaid(method, receiptNumber string, accepterID uuid.UUID) error {
	if err := c.ensurePayable(); err != nil {
		return err
	}
	if receiptNumber == "" {
		return shared.NewDomainError("INVALID_RECEIPT", "Receipt number is required")
	}

	c.Status = CheckinStatusPaid
	c.PaymentMethod = method
	c.ReceiptNumber = receiptNumber
	if accepterID != uuid.Nil {
		c.PaymentAccepterID = &accepterID
	}
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewCheckinSettledEvent(c))

	return nil
}

// MarkSuccess settles the checkin through a gateway payment callback
func (c *Checkin) MarkSuccess(transactionKey, confirmationCode string) error {
	if err := c.ensurePayable(); err != nil {
		return err
	}
	if transactionKey == "" {
		return shared.NewDomainError("INVALID_TRANSACTION", "Transaction key is required")
	}

	c.Status = CheckinStatusSuccess
	c.TransactionKey = transactionKey
	c.ConfirmationCode = confirmationCode
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewCheckinSettledEvent(c))

	return nil
}

func (c *Checkin) ensurePayable() error {
	switch c.Status {
	case CheckinStatusUnpaid:
		return nil
	case CheckinStatusPaid, CheckinStatusSuccess:
		return shared.NewDomainError("ALREADY_SETTLED", "Checkin is already settled")
	case CheckinStatusPass:
		return shared.NewDomainError("NOTHING_OWED", "Nothing is owed at this checkin")
	default:
		return shared.NewDomainError("INVALID_STATUS", "Checkin has not been assessed yet")
	}
}

// AttachPlateImage records the storage key of the plate snapshot
func (c *Checkin) AttachPlateImage(key string) {
	if key == "" || c.PlateImageKey != "" {
		return
	}
	c.PlateImageKey = key
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// IsSettled reports whether the checkin no longer blocks progression
func (c *Checkin) IsSettled() bool {
	switch c.Status {
	case CheckinStatusPass, CheckinStatusPaid, CheckinStatusSuccess:
		return true
	default:
		return false
	}
}

// BlocksProgression reports whether the checkin gates further movement
func (c *Checkin) BlocksProgression() bool {
	return c.Status == CheckinStatusPending || c.Status == CheckinStatusUnpaid
}

// Validate checks the mutually exclusive journey reference
func (c *Checkin) Validate() error {
	if (c.TruckJourneyID == nil) == (c.WalkInJourneyID == nil) {
		return shared.NewDomainError("INVALID_JOURNEY_REF", "Exactly one of truck journey and walk-in journey must be set")
	}
	return nil
}
