// internal/handlers/benefits/benefit_handler.go
package benefits

import (
	"net/http"
	"strconv"

	"loyalty-service/internal/domain/benefit"
	"loyalty-service/internal/pkg/response"
	service "loyalty-service/internal/service/benefits"

	"github.com/gin-gonic/gin"
)

type BenefitHandler struct {
	benefitService *service.BenefitService
}

func NewBenefitHandler(benefitService *service.BenefitService) *BenefitHandler {
	return &BenefitHandler{benefitService: benefitService}
}

// ListBenefits retrieves every benefit across all plans
func (h *BenefitHandler) ListBenefits(c *gin.Context) {
	benefits, err := h.benefitService.List(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Data(c, http.StatusOK, benefits)
}

// GetBenefit retrieves a single benefit by ID
func (h *BenefitHandler) GetBenefit(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "ID inválido.")
		return
	}

	b, err := h.benefitService.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Data(c, http.StatusOK, b)
}

// CreateBenefit registers a benefit under a plan
func (h *BenefitHandler) CreateBenefit(c *gin.Context) {
	var req benefit.CreateBenefitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Datos del beneficio inválidos.")
		return
	}

	b, err := h.benefitService.Create(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Data(c, http.StatusCreated, b)
}

// UpdateBenefit overwrites an existing benefit
func (h *BenefitHandler) UpdateBenefit(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "ID inválido.")
		return
	}

	var req benefit.CreateBenefitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Datos del beneficio inválidos.")
		return
	}

	if err := h.benefitService.Update(c.Request.Context(), id, &req); err != nil {
		response.FromError(c, err)
		return
	}

	response.NoContent(c)
}

// DeleteBenefit removes a benefit permanently
func (h *BenefitHandler) DeleteBenefit(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "ID inválido.")
		return
	}

	if err := h.benefitService.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}

	response.NoContent(c)
}
