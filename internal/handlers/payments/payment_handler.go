// internal/handlers/payments/payment_handler.go
package payments

import (
	"net/http"
	"strconv"

	"loyalty-service/internal/domain/payment"
	"loyalty-service/internal/pkg/response"
	service "loyalty-service/internal/service/payments"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	paymentService *service.PaymentService
}

func NewPaymentHandler(paymentService *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// ListPayments retrieves every payment
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	payments, err := h.paymentService.List(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Data(c, http.StatusOK, payments)
}

// GetPayment retrieves a single payment by ID
func (h *PaymentHandler) GetPayment(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "ID inválido.")
		return
	}

	p, err := h.paymentService.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Data(c, http.StatusOK, p)
}

// CreatePayment records a payment against an active membership
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	var req payment.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Datos del pago inválidos.")
		return
	}

	p, err := h.paymentService.Create(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Data(c, http.StatusCreated, p)
}

// UpdatePayment overwrites an existing payment
func (h *PaymentHandler) UpdatePayment(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "ID inválido.")
		return
	}

	var req payment.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Datos del pago inválidos.")
		return
	}

	if err := h.paymentService.Update(c.Request.Context(), id, &req); err != nil {
		response.FromError(c, err)
		return
	}

	response.NoContent(c)
}

// DeletePayment removes a payment permanently
func (h *PaymentHandler) DeletePayment(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "ID inválido.")
		return
	}

	if err := h.paymentService.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}

	response.NoContent(c)
}
