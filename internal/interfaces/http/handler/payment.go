package handler

import (
	appcheckpoint "github.com/orc/backend/internal/application/checkpoint"
	"github.com/gin-gonic/gin"
)

// PaymentHandler settles checkins, either by a cashier taking cash or a
// bank slip, or by the payment gateway confirming a transaction.
type PaymentHandler struct {
	BaseHandler
	paymentService *appcheckpoint.PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService *appcheckpoint.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

// PayManual godoc
// @ID           payManual
// @Summary      Settle a checkin with a manual payment
// @Description  Record a cash or bank payment against a checkin. Marks the checkin success, stores the payment audit row and completes the journey when the checkin is at the path's terminal station.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        request body appcheckpoint.ManualPaymentRequest true "Manual payment"
// @Success      200 {object} APIResponse[appcheckpoint.PaymentResult]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      422 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /payments/manual [post]
func (h *PaymentHandler) PayManual(c *gin.Context) {
	var req appcheckpoint.ManualPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	operatorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	result, err := h.paymentService.PayManual(c.Request.Context(), req, operatorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// GatewayCallback godoc
// @ID           gatewayCallback
// @Summary      Confirm a gateway payment
// @Description  Gateway confirmation path with the same checkin settlement and journey completion semantics as a manual payment.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        request body appcheckpoint.GatewayCallbackRequest true "Gateway confirmation"
// @Success      200 {object} APIResponse[appcheckpoint.PaymentResult]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      422 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /payments/gateway/callback [post]
func (h *PaymentHandler) GatewayCallback(c *gin.Context) {
	var req appcheckpoint.GatewayCallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.paymentService.ConfirmGateway(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
