package checkpoint

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orc/backend/internal/domain/checkpoint"
)

func TestPayManual(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	opened := e.pushTruck(t, machineNumber(0), 1000)
	e.declare(t, opened.Journey.ID)
	_, err := e.state.GetTruckState(ctx, e.truck.PlateNumber, e.stations[0].ID, e.operator)
	require.NoError(t, err)

	t.Run("bank payment without a bank name is rejected", func(t *testing.T) {
		_, err := e.payment.PayManual(ctx, ManualPaymentRequest{
			CheckinID:     opened.Checkin.ID,
			IsBank:        true,
			ReceiptNumber: "RCPT-001",
		}, e.operator)
		assert.Error(t, err)
	})

	t.Run("cash payment settles the checkin", func(t *testing.T) {
		result, err := e.payment.PayManual(ctx, ManualPaymentRequest{
			CheckinID:     opened.Checkin.ID,
			PayerName:     "Abebe Bekele",
			ReceiptNumber: "RCPT-001",
		}, e.operator)
		require.NoError(t, err)
		assert.Equal(t, checkpoint.CheckinStatusPaid, result.Checkin.Status)
		assert.Equal(t, "RCPT-001", result.Checkin.ReceiptNumber)
		assert.False(t, result.JourneyCompleted)

		payment, err := e.f.manualPayments.FindByCheckin(ctx, opened.Checkin.ID)
		require.NoError(t, err)
		assert.Equal(t, "Abebe Bekele", payment.PayerName)
	})

	t.Run("a settled checkin cannot be paid again", func(t *testing.T) {
		_, err := e.payment.PayManual(ctx, ManualPaymentRequest{
			CheckinID:     opened.Checkin.ID,
			PayerName:     "Abebe Bekele",
			ReceiptNumber: "RCPT-002",
		}, e.operator)
		assert.Error(t, err)
	})
}

func TestPayManualRejectsPendingCheckin(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	journey, err := checkpoint.NewTruckJourney(e.truck.ID)
	require.NoError(t, err)
	require.NoError(t, e.f.truckJourneys.Save(ctx, journey))
	chk, err := checkpoint.NewTruckCheckin(journey.ID, e.stations[0].ID, decimal.NewFromInt(100))
	require.NoError(t, err)
	require.NoError(t, e.f.checkins.Save(ctx, chk))

	_, err = e.payment.PayManual(ctx, ManualPaymentRequest{
		CheckinID:     chk.ID,
		PayerName:     "Abebe Bekele",
		ReceiptNumber: "RCPT-001",
	}, e.operator)
	assert.Error(t, err)
}

func TestPayManualCompletesJourneyAtTerminal(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	opened := e.pushTruck(t, machineNumber(0), 1000)
	e.declare(t, opened.Journey.ID)
	e.pay(t, opened.Checkin.ID, "RCPT-001")
	e.pushTruck(t, machineNumber(1), 1000)

	// heavier at the terminal: the exit liability keeps the journey open
	// until it is settled
	terminal := e.pushTruck(t, machineNumber(2), 1300)
	require.Equal(t, checkpoint.VerdictAllowNextCheckin, terminal.Verdict)
	require.Equal(t, checkpoint.JourneyStatusOnGoing, terminal.Journey.Status)

	result := e.pay(t, terminal.Checkin.ID, "RCPT-003")
	assert.True(t, result.JourneyCompleted)

	journey, err := e.f.truckJourneys.FindByID(ctx, opened.Journey.ID)
	require.NoError(t, err)
	assert.Equal(t, checkpoint.JourneyStatusCompleted, journey.Status)
}

func TestConfirmGateway(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	opened := e.pushTruck(t, machineNumber(0), 1000)
	e.declare(t, opened.Journey.ID)
	_, err := e.state.GetTruckState(ctx, e.truck.PlateNumber, e.stations[0].ID, e.operator)
	require.NoError(t, err)

	t.Run("requires a transaction key", func(t *testing.T) {
		_, err := e.payment.ConfirmGateway(ctx, GatewayCallbackRequest{
			CheckinID: opened.Checkin.ID,
		})
		assert.Error(t, err)
	})

	t.Run("settles the checkin", func(t *testing.T) {
		result, err := e.payment.ConfirmGateway(ctx, GatewayCallbackRequest{
			CheckinID:        opened.Checkin.ID,
			TransactionKey:   "TXN-9001",
			ConfirmationCode: "OK-77",
		})
		require.NoError(t, err)
		assert.Equal(t, checkpoint.CheckinStatusSuccess, result.Checkin.Status)
		assert.False(t, result.JourneyCompleted)
	})
}
