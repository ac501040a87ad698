// internal/handlers/memberships/membership_handler.go
package memberships

import (
	"net/http"
	"strconv"

	"loyalty-service/internal/domain/membership"
	"loyalty-service/internal/pkg/response"
	service "loyalty-service/internal/service/memberships"

	"github.com/gin-gonic/gin"
)

type MembershipHandler struct {
	membershipService *service.MembershipService
}

func NewMembershipHandler(membershipService *service.MembershipService) *MembershipHandler {
	return &MembershipHandler{membershipService: membershipService}
}

// ListMemberships retrieves active memberships; the response carries a count
func (h *MembershipHandler) ListMemberships(c *gin.Context) {
	views, err := h.membershipService.List(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.List(c, len(views), views)
}

// GetMembership retrieves a single active membership by ID
func (h *MembershipHandler) GetMembership(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "ID inválido.")
		return
	}

	v, err := h.membershipService.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Data(c, http.StatusOK, v)
}

// CreateMembership enrolls a customer into a plan
func (h *MembershipHandler) CreateMembership(c *gin.Context) {
	var req membership.CreateMembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Datos de la membresía inválidos.")
		return
	}

	v, err := h.membershipService.Create(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Data(c, http.StatusCreated, v)
}

// UpdateMembership overwrites an active membership
func (h *MembershipHandler) UpdateMembership(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "ID inválido.")
		return
	}

	var req membership.CreateMembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Datos de la membresía inválidos.")
		return
	}

	if err := h.membershipService.Update(c.Request.Context(), id, &req); err != nil {
		response.FromError(c, err)
		return
	}

	response.NoContent(c)
}

// DeactivateMembership transitions the membership to INACTIVO
func (h *MembershipHandler) DeactivateMembership(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "ID inválido.")
		return
	}

	if err := h.membershipService.Deactivate(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}

	response.NoContent(c)
}

// GetStatus resolves the consolidated entitlement for a customer. The
// customer code stays a string here; the service parses it.
func (h *MembershipHandler) GetStatus(c *gin.Context) {
	st, err := h.membershipService.GetStatus(c.Request.Context(), c.Param("codCliente"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Data(c, http.StatusOK, st)
}
