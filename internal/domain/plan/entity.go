// internal/domain/plan/entity.go
package plan

import "time"

// MembershipPlan is a loyalty tier definition. Plans are never hard
// deleted; Activo=false marks them retired.
type MembershipPlan struct {
	ID                  int       `json:"id" db:"id"`
	Nombre              string    `json:"nombre" db:"nombre"`
	PrecioMensual       float64   `json:"precioMensual" db:"precio_mensual"`
	EntradasMensuales   int       `json:"entradasMensuales" db:"entradas_mensuales"`
	MesesAcumulacionMax *int      `json:"mesesAcumulacionMax" db:"meses_acumulacion_max"`
	Nivel               int       `json:"nivel" db:"nivel"`
	Activo              bool      `json:"activo" db:"activo"`
	FechaCreacion       time.Time `json:"fechaCreacion" db:"fecha_creacion"`
}
