// internal/domain/payment/entity.go
package payment

import "time"

// MembershipPayment records a payment made against a membership. Payments
// are created by API clients, never processed here.
type MembershipPayment struct {
	ID                   int       `json:"id" db:"id"`
	CustomerMembershipID int       `json:"customerMembershipId" db:"customer_membership_id"`
	FechaPago            time.Time `json:"fechaPago" db:"fecha_pago"`
	Monto                float64   `json:"monto" db:"monto"`
	Estado               string    `json:"estado" db:"estado"`
	ReferenciaExterna    *string   `json:"referenciaExterna" db:"referencia_externa"`
	Periodo              *int      `json:"periodo" db:"periodo"`
	Observaciones        *string   `json:"observaciones" db:"observaciones"`
}
