// internal/domain/membership/dto.go
package membership

import (
	"time"

	"loyalty-service/internal/domain/plan"
)

// CreateMembershipRequest is used for both POST and full-overwrite PUT.
type CreateMembershipRequest struct {
	CodCliente                    float64    `json:"codCliente" binding:"required"`
	PlanID                        int        `json:"planId" binding:"required"`
	FechaInicio                   time.Time  `json:"fechaInicio" binding:"required"`
	FechaFin                      *time.Time `json:"fechaFin"`
	IDSuscripcionMP               string     `json:"idSuscripcionMP"`
	IDClienteMP                   string     `json:"idClienteMP"`
	MesesAcumulacionPersonalizado int        `json:"mesesAcumulacionPersonalizado"`
}

// MembershipView is the read shape for list/get endpoints: the membership
// joined with its plan name. External identifiers render as empty strings
// when absent, matching the wire contract.
type MembershipView struct {
	ID                            int        `json:"id"`
	CodCliente                    float64    `json:"codCliente"`
	PlanID                        int        `json:"planId"`
	NombrePlan                    string     `json:"nombrePlan"`
	FechaInicio                   time.Time  `json:"fechaInicio"`
	FechaFin                      *time.Time `json:"fechaFin"`
	Estado                        Estado     `json:"estado"`
	IDSuscripcionMP               string     `json:"idSuscripcionMP"`
	IDClienteMP                   string     `json:"idClienteMP"`
	MesesAcumulacionPersonalizado *int       `json:"mesesAcumulacionPersonalizado"`
}

// ActiveMembership is the composite the status resolver reads: the single
// ACTIVO membership with its plan and the plan's benefit descriptions.
type ActiveMembership struct {
	Membership CustomerMembership
	Plan       plan.MembershipPlan
	Beneficios []string
}

// StatusResponse is the consolidated entitlement view for a customer.
type StatusResponse struct {
	Estado              Estado   `json:"estado"`
	PlanID              int      `json:"planId"`
	NombrePlan          string   `json:"nombrePlan"`
	PrecioMensual       float64  `json:"precioMensual"`
	EntradasMensuales   int      `json:"entradasMensuales"`
	EntradasDisponibles int      `json:"entradasDisponibles"`
	Nivel               int      `json:"nivel"`
	Beneficios          []string `json:"beneficios"`
}
