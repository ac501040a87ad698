// internal/handlers/entries/entry_handler.go
package entries

import (
	"net/http"
	"strconv"

	domain "loyalty-service/internal/domain/entries"
	"loyalty-service/internal/pkg/response"
	service "loyalty-service/internal/service/entries"

	"github.com/gin-gonic/gin"
)

type EntryHandler struct {
	entryService *service.EntryService
}

func NewEntryHandler(entryService *service.EntryService) *EntryHandler {
	return &EntryHandler{entryService: entryService}
}

// ListBalances retrieves the entry balances of a membership
func (h *EntryHandler) ListBalances(c *gin.Context) {
	membershipID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "ID inválido.")
		return
	}

	balances, err := h.entryService.ListBalances(c.Request.Context(), membershipID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Data(c, http.StatusOK, balances)
}

// CreateBalance assigns a new entry balance to a membership
func (h *EntryHandler) CreateBalance(c *gin.Context) {
	membershipID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "ID inválido.")
		return
	}

	var req domain.CreateBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Datos del saldo inválidos.")
		return
	}

	balance, err := h.entryService.CreateBalance(c.Request.Context(), membershipID, &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Data(c, http.StatusCreated, balance)
}

// UpdateBalance partially updates an entry balance
func (h *EntryHandler) UpdateBalance(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "ID inválido.")
		return
	}

	var req domain.UpdateBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Datos del saldo inválidos.")
		return
	}

	if err := h.entryService.UpdateBalance(c.Request.Context(), id, &req); err != nil {
		response.FromError(c, err)
		return
	}

	response.NoContent(c)
}

// ListUsages retrieves the usages recorded against a balance
func (h *EntryHandler) ListUsages(c *gin.Context) {
	balanceID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "ID inválido.")
		return
	}

	usages, err := h.entryService.ListUsages(c.Request.Context(), balanceID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Data(c, http.StatusOK, usages)
}

// RecordUsage consumes one entry from a balance
func (h *EntryHandler) RecordUsage(c *gin.Context) {
	balanceID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "ID inválido.")
		return
	}

	var req domain.CreateUsageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Datos del uso inválidos.")
		return
	}

	usage, err := h.entryService.RecordUsage(c.Request.Context(), balanceID, &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Data(c, http.StatusCreated, usage)
}
