// internal/domain/benefit/dto.go
package benefit

// CreateBenefitRequest is used for both POST and full-overwrite PUT.
type CreateBenefitRequest struct {
	PlanID         int     `json:"planId" binding:"required"`
	Clave          string  `json:"clave" binding:"required,max=50"`
	Valor          float64 `json:"valor"`
	DiasAplicables *string `json:"diasAplicables" binding:"omitempty,max=20"`
	Observacion    *string `json:"observacion" binding:"omitempty,max=200"`
}
