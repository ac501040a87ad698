// internal/handlers/plans/plan_handler.go
package plans

import (
	"net/http"
	"strconv"

	"loyalty-service/internal/domain/plan"
	"loyalty-service/internal/pkg/response"
	service "loyalty-service/internal/service/plans"

	"github.com/gin-gonic/gin"
)

type PlanHandler struct {
	planService *service.PlanService
}

func NewPlanHandler(planService *service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// ListPlans retrieves all active plans
func (h *PlanHandler) ListPlans(c *gin.Context) {
	plans, err := h.planService.List(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Data(c, http.StatusOK, plans)
}

// GetPlan retrieves a single active plan by ID
func (h *PlanHandler) GetPlan(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "ID inválido.")
		return
	}

	p, err := h.planService.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Data(c, http.StatusOK, p)
}

// CreatePlan registers a new plan
func (h *PlanHandler) CreatePlan(c *gin.Context) {
	var req plan.CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Datos del plan inválidos.")
		return
	}

	p, err := h.planService.Create(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Data(c, http.StatusCreated, p)
}

// UpdatePlan overwrites an existing plan
func (h *PlanHandler) UpdatePlan(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "ID inválido.")
		return
	}

	var req plan.CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Datos del plan inválidos.")
		return
	}

	if err := h.planService.Update(c.Request.Context(), id, &req); err != nil {
		response.FromError(c, err)
		return
	}

	response.NoContent(c)
}

// DeletePlan soft-deletes a plan
func (h *PlanHandler) DeletePlan(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "ID inválido.")
		return
	}

	if err := h.planService.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}

	response.NoContent(c)
}
