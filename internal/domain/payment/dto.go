// internal/domain/payment/dto.go
package payment

import "time"

// CreatePaymentRequest is used for both POST and full-overwrite PUT; the
// update path re-validates every constraint.
type CreatePaymentRequest struct {
	CustomerMembershipID int       `json:"customerMembershipId" binding:"required"`
	FechaPago            time.Time `json:"fechaPago" binding:"required"`
	Monto                float64   `json:"monto" binding:"min=0"`
	Estado               string    `json:"estado" binding:"required,max=20"`
	ReferenciaExterna    string    `json:"referenciaExterna" binding:"omitempty,max=100"`
	Periodo              *int      `json:"periodo"`
	Observaciones        *string   `json:"observaciones" binding:"omitempty,max=200"`
}
