package tariff

import (
	"github.com/orc/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// Assessment is the result of assessing the tax owed at one checkin.
// Only the weight gained since the previous station is taxed; a truck
// that lost weight owes nothing at this station.
type Assessment struct {
	PreviousWeight    decimal.Decimal
	CurrentWeight     decimal.Decimal
	IncrementalWeight decimal.Decimal
	UnitPrice         int64           // scaled: birr x 100 per kilogram
	Rate              decimal.Decimal // percent
	GrossOwed         decimal.Decimal // before deduction, rounded to 2 decimal places
	Deduction         decimal.Decimal
	Owed              decimal.Decimal // rounded to 2 decimal places, never negative
}

// Assess computes the tax owed for the incremental weight recorded at a
// station. unitPrice is the scaled commodity price (birr x 100 per kg) and
// rate is the configured percentage for the (station, taxpayer type,
// commodity) triple. The intermediate math is exact decimal arithmetic;
// rounding half-up to 2 decimal places happens once, on the final amounts.
func Assess(currentWeight, previousWeight decimal.Decimal, unitPrice int64, rate decimal.Decimal, deduction decimal.Decimal) (Assessment, error) {
	if currentWeight.IsNegative() {
		return Assessment{}, shared.NewDomainError("INVALID_WEIGHT", "Current weight cannot be negative")
	}
	if previousWeight.IsNegative() {
		return Assessment{}, shared.NewDomainError("INVALID_WEIGHT", "Previous weight cannot be negative")
	}
	if unitPrice < 0 {
		return Assessment{}, shared.NewDomainError("INVALID_UNIT_PRICE", "Unit price cannot be negative")
	}
	if rate.IsNegative() {
		return Assessment{}, shared.NewDomainError("INVALID_RATE", "Rate cannot be negative")
	}
	if deduction.IsNegative() {
		return Assessment{}, shared.NewDomainError("INVALID_DEDUCTION", "Deduction cannot be negative")
	}

	incremental := currentWeight.Sub(previousWeight)
	if incremental.IsNegative() {
		incremental = decimal.Zero
	}

	pricePerKg := decimal.NewFromInt(unitPrice).Div(oneHundred)
	gross := incremental.Mul(pricePerKg).Mul(rate.Div(oneHundred)).Round(2)

	owed := gross.Sub(deduction)
	if owed.IsNegative() {
		owed = decimal.Zero
	}

	return Assessment{
		PreviousWeight:    previousWeight,
		CurrentWeight:     currentWeight,
		IncrementalWeight: incremental,
		UnitPrice:         unitPrice,
		Rate:              rate,
		GrossOwed:         gross,
		Deduction:         deduction,
		Owed:              owed.Round(2),
	}, nil
}

// NothingOwed reports whether the assessment resulted in no payable tax.
// A zero-owed checkin at a terminal station completes the journey.
func (a Assessment) NothingOwed() bool {
	return a.Owed.IsZero()
}
