// internal/domain/customer/entity.go
package customer

// Cliente is external master data. This service only checks existence and
// reads identity fields; it never mutates the table.
type Cliente struct {
	CodCliente float64 `json:"codCliente" db:"cod_cliente"`
	NomCliente string  `json:"nomCliente" db:"nom_cliente"`
	Apellido   string  `json:"apellido" db:"apellido"`
	Email      string  `json:"email" db:"email"`
	Habilitado bool    `json:"habilitado" db:"habilitado"`
}
