// internal/repository/postgres/cliente_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"loyalty-service/internal/domain/customer"
	xerrors "loyalty-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ClienteRepository reads the external customer master table. No writes.
type ClienteRepository struct {
	db *pgxpool.Pool
}

func NewClienteRepository(db *pgxpool.Pool) *ClienteRepository {
	return &ClienteRepository{db: db}
}

// FindByCod retrieves a customer by code.
func (r *ClienteRepository) FindByCod(ctx context.Context, codCliente float64) (*customer.Cliente, error) {
	query := `
		SELECT cod_cliente, nom_cliente, apellido, email, habilitado
		FROM cliente
		WHERE cod_cliente = $1
	`

	var c customer.Cliente
	err := r.db.QueryRow(ctx, query, codCliente).Scan(
		&c.CodCliente, &c.NomCliente, &c.Apellido, &c.Email, &c.Habilitado,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find customer: %w", err)
	}

	return &c, nil
}
