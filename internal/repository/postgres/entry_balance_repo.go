// internal/repository/postgres/entry_balance_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"loyalty-service/internal/domain/entries"
	xerrors "loyalty-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type EntryBalanceRepository struct {
	db *pgxpool.Pool
}

func NewEntryBalanceRepository(db *pgxpool.Pool) *EntryBalanceRepository {
	return &EntryBalanceRepository{db: db}
}

func (r *EntryBalanceRepository) Create(ctx context.Context, b *entries.EntryBalance) error {
	query := `
		INSERT INTO mem_entry_balance (
			customer_membership_id, periodo, entradas_asignadas,
			entradas_usadas, fecha_vencimiento
		) VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		b.CustomerMembershipID, b.Periodo, b.EntradasAsignadas,
		b.EntradasUsadas, b.FechaVencimiento,
	).Scan(&b.ID)
	if err != nil {
		return fmt.Errorf("failed to create entry balance: %w", err)
	}

	return nil
}

func (r *EntryBalanceRepository) FindByID(ctx context.Context, id int) (*entries.EntryBalance, error) {
	query := `
		SELECT id, customer_membership_id, periodo, entradas_asignadas,
		       entradas_usadas, fecha_vencimiento
		FROM mem_entry_balance
		WHERE id = $1
	`

	var b entries.EntryBalance
	err := r.db.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.CustomerMembershipID, &b.Periodo,
		&b.EntradasAsignadas, &b.EntradasUsadas, &b.FechaVencimiento,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find entry balance: %w", err)
	}

	return &b, nil
}

// ListByMembership retrieves every balance owned by the membership.
func (r *EntryBalanceRepository) ListByMembership(ctx context.Context, membershipID int) ([]entries.EntryBalance, error) {
	query := `
		SELECT id, customer_membership_id, periodo, entradas_asignadas,
		       entradas_usadas, fecha_vencimiento
		FROM mem_entry_balance
		WHERE customer_membership_id = $1
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query, membershipID)
	if err != nil {
		return nil, fmt.Errorf("failed to list entry balances: %w", err)
	}
	defer rows.Close()

	balances := []entries.EntryBalance{}
	for rows.Next() {
		var b entries.EntryBalance
		if err := rows.Scan(
			&b.ID, &b.CustomerMembershipID, &b.Periodo,
			&b.EntradasAsignadas, &b.EntradasUsadas, &b.FechaVencimiento,
		); err != nil {
			return nil, fmt.Errorf("failed to scan entry balance: %w", err)
		}
		balances = append(balances, b)
	}

	return balances, rows.Err()
}

// Update overwrites the mutable columns of the balance.
func (r *EntryBalanceRepository) Update(ctx context.Context, b *entries.EntryBalance) error {
	query := `
		UPDATE mem_entry_balance
		SET entradas_asignadas = $2, entradas_usadas = $3, fecha_vencimiento = $4
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query,
		b.ID, b.EntradasAsignadas, b.EntradasUsadas, b.FechaVencimiento,
	)
	if err != nil {
		return fmt.Errorf("failed to update entry balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	return nil
}

// SumUsedByPeriod sums entradas_usadas over the membership's balances for
// the given yyyyMM period. Missing rows count as zero.
func (r *EntryBalanceRepository) SumUsedByPeriod(ctx context.Context, membershipID, periodo int) (int, error) {
	var total int
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(entradas_usadas), 0)
		 FROM mem_entry_balance
		 WHERE customer_membership_id = $1 AND periodo = $2`,
		membershipID, periodo,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum used entries: %w", err)
	}
	return total, nil
}
