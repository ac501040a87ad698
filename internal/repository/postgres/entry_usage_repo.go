// internal/repository/postgres/entry_usage_repo.go
package postgres

import (
	"context"
	"fmt"

	"loyalty-service/internal/domain/entries"

	"github.com/jackc/pgx/v5/pgxpool"
)

type EntryUsageRepository struct {
	db  *pgxpool.Pool
	txm *DB
}

func NewEntryUsageRepository(txm *DB) *EntryUsageRepository {
	return &EntryUsageRepository{db: txm.Pool(), txm: txm}
}

// ListByBalance retrieves every usage recorded against the balance.
func (r *EntryUsageRepository) ListByBalance(ctx context.Context, balanceID int) ([]entries.EntryUsage, error) {
	query := `
		SELECT id, entry_balance_id, fecha_uso, cod_complejo, cod_funcion, id_entrada
		FROM mem_entry_usage
		WHERE entry_balance_id = $1
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query, balanceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list entry usages: %w", err)
	}
	defer rows.Close()

	usages := []entries.EntryUsage{}
	for rows.Next() {
		var u entries.EntryUsage
		if err := rows.Scan(
			&u.ID, &u.EntryBalanceID, &u.FechaUso,
			&u.CodComplejo, &u.CodFuncion, &u.IDEntrada,
		); err != nil {
			return nil, fmt.Errorf("failed to scan entry usage: %w", err)
		}
		usages = append(usages, u)
	}

	return usages, rows.Err()
}

// CreateAndConsume inserts the usage row and increments the parent
// balance's used counter in one transaction. Both writes commit together
// or neither does.
func (r *EntryUsageRepository) CreateAndConsume(ctx context.Context, u *entries.EntryUsage) error {
	tx, err := r.txm.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	insertQuery := `
		INSERT INTO mem_entry_usage (entry_balance_id, fecha_uso, cod_complejo, cod_funcion, id_entrada)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	if err := tx.QueryRow(ctx, insertQuery,
		u.EntryBalanceID, u.FechaUso, u.CodComplejo, u.CodFuncion, u.IDEntrada,
	).Scan(&u.ID); err != nil {
		return fmt.Errorf("failed to insert entry usage: %w", err)
	}

	tag, err := tx.Exec(ctx,
		`UPDATE mem_entry_balance
		 SET entradas_usadas = entradas_usadas + 1
		 WHERE id = $1 AND entradas_usadas < entradas_asignadas`,
		u.EntryBalanceID,
	)
	if err != nil {
		return fmt.Errorf("failed to consume entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// Lost the race to the last entry; roll back the usage row too.
		return fmt.Errorf("balance %d has no entries left", u.EntryBalanceID)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit entry usage: %w", err)
	}

	return nil
}
