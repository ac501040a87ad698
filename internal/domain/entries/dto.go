// internal/domain/entries/dto.go
package entries

import "time"

// CreateBalanceRequest creates a balance under a membership. EntradasUsadas
// always starts at zero.
type CreateBalanceRequest struct {
	Periodo           int       `json:"periodo"`
	EntradasAsignadas int       `json:"entradasAsignadas"`
	FechaVencimiento  time.Time `json:"fechaVencimiento" binding:"required"`
}

// UpdateBalanceRequest is a partial update; nil fields are left untouched.
type UpdateBalanceRequest struct {
	EntradasAsignadas *int       `json:"entradasAsignadas"`
	EntradasUsadas    *int       `json:"entradasUsadas"`
	FechaVencimiento  *time.Time `json:"fechaVencimiento"`
}

// CreateUsageRequest records one entry consumption against a balance.
type CreateUsageRequest struct {
	FechaUso    time.Time `json:"fechaUso" binding:"required"`
	CodComplejo *float64  `json:"codComplejo"`
	CodFuncion  *int      `json:"codFuncion"`
	IDEntrada   *int      `json:"idEntrada"`
}
