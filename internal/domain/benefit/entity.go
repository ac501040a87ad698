// internal/domain/benefit/entity.go
package benefit

// MembershipBenefit is a named perk attached to a plan. Clave is unique
// per plan; Observacion is the human-readable description surfaced in the
// membership status view.
type MembershipBenefit struct {
	ID             int     `json:"id" db:"id"`
	PlanID         int     `json:"planId" db:"plan_id"`
	Clave          string  `json:"clave" db:"clave"`
	Valor          float64 `json:"valor" db:"valor"`
	DiasAplicables *string `json:"diasAplicables" db:"dias_aplicables"`
	Observacion    *string `json:"observacion" db:"observacion"`
}
