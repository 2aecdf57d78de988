package checkpoint

import (
	"strings"

	"github.com/google/uuid"
	"github.com/orc/backend/internal/domain/shared"
)

// ManualPayment records the details of a cash or bank payment accepted
// by an operator for one checkin. One checkin has at most one.
type ManualPayment struct {
	shared.BaseAggregateRoot
	CheckinID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	IsBank      bool      `gorm:"not null"`
	BankName    string    `gorm:"type:varchar(200)"`
	BankAccount string    `gorm:"type:varchar(500)"`
	PayerName   string    `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (ManualPayment) TableName() string {
	return "manual_payments"
}

// NewManualPayment records a cash or bank payment for a checkin.
// Bank payments must name the bank; cash payments must not.
func NewManualPayment(checkinID uuid.UUID, isBank bool, bankName, bankAccount, payerName string, operatorID uuid.UUID) (*ManualPayment, error) {
	if checkinID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CHECKIN", "Checkin is required")
	}
	bankName = strings.TrimSpace(bankName)
	if isBank && bankName == "" {
		return nil, shared.NewDomainError("INVALID_BANK", "Bank name is required for a bank payment")
	}
	if !isBank && bankName != "" {
		return nil, shared.NewDomainError("INVALID_BANK", "Bank name must be empty for a cash payment")
	}

	return &ManualPayment{
		BaseAggregateRoot: shared.NewBaseAggregateRootWithCreator(operatorID),
		CheckinID:         checkinID,
		IsBank:            isBank,
		BankName:          bankName,
		BankAccount:       bankAccount,
		PayerName:         payerName,
	}, nil
}
