// internal/domain/membership/entity.go
package membership

import "time"

type Estado string

const (
	EstadoActivo   Estado = "ACTIVO"
	EstadoInactivo Estado = "INACTIVO"
)

// CustomerMembership is a customer's subscription to a plan. Deactivation
// is a status transition; rows are never removed.
type CustomerMembership struct {
	ID                            int        `json:"id" db:"id"`
	CodCliente                    float64    `json:"codCliente" db:"cod_cliente"`
	PlanID                        int        `json:"planId" db:"plan_id"`
	FechaInicio                   time.Time  `json:"fechaInicio" db:"fecha_inicio"`
	FechaFin                      *time.Time `json:"fechaFin" db:"fecha_fin"`
	Estado                        Estado     `json:"estado" db:"estado"`
	IDSuscripcionMP               *string    `json:"idSuscripcionMP" db:"id_suscripcion_mp"`
	IDClienteMP                   *string    `json:"idClienteMP" db:"id_cliente_mp"`
	MesesAcumulacionPersonalizado *int       `json:"mesesAcumulacionPersonalizado" db:"meses_acumulacion_personalizado"`
}
