// internal/domain/entries/entity.go
package entries

import "time"

// EntryBalance is a per-period allotment of consumable entries tied to a
// membership. EntradasUsadas only grows through usage recording and must
// never exceed EntradasAsignadas on that path.
type EntryBalance struct {
	ID                   int       `json:"id" db:"id"`
	CustomerMembershipID int       `json:"customerMembershipId" db:"customer_membership_id"`
	Periodo              *int      `json:"periodo" db:"periodo"`
	EntradasAsignadas    int       `json:"entradasAsignadas" db:"entradas_asignadas"`
	EntradasUsadas       int       `json:"entradasUsadas" db:"entradas_usadas"`
	FechaVencimiento     time.Time `json:"fechaVencimiento" db:"fecha_vencimiento"`
}

// EntryUsage is a single consumption event against a balance. Append-only;
// creating one is coupled 1:1 with incrementing the parent balance.
type EntryUsage struct {
	ID             int       `json:"id" db:"id"`
	EntryBalanceID int       `json:"entryBalanceId" db:"entry_balance_id"`
	FechaUso       time.Time `json:"fechaUso" db:"fecha_uso"`
	CodComplejo    *float64  `json:"codComplejo" db:"cod_complejo"`
	CodFuncion     *int      `json:"codFuncion" db:"cod_funcion"`
	IDEntrada      *int      `json:"idEntrada" db:"id_entrada"`
}
