// internal/domain/plan/dto.go
package plan

// CreatePlanRequest is used for both POST and full-overwrite PUT.
type CreatePlanRequest struct {
	Nombre              string  `json:"nombre" binding:"required,max=100"`
	PrecioMensual       float64 `json:"precioMensual" binding:"min=0"`
	EntradasMensuales   int     `json:"entradasMensuales" binding:"min=0"`
	MesesAcumulacionMax *int    `json:"mesesAcumulacionMax"`
	Nivel               int     `json:"nivel"`
	Activo              bool    `json:"activo"`
}
