// internal/repository/postgres/payment_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"loyalty-service/internal/domain/payment"
	xerrors "loyalty-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type MembershipPaymentRepository struct {
	db *pgxpool.Pool
}

func NewMembershipPaymentRepository(db *pgxpool.Pool) *MembershipPaymentRepository {
	return &MembershipPaymentRepository{db: db}
}

func (r *MembershipPaymentRepository) Create(ctx context.Context, p *payment.MembershipPayment) error {
	query := `
		INSERT INTO mem_membership_payment (
			customer_membership_id, fecha_pago, monto, estado,
			referencia_externa, periodo, observaciones
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		p.CustomerMembershipID, p.FechaPago, p.Monto, p.Estado,
		p.ReferenciaExterna, p.Periodo, p.Observaciones,
	).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}

	return nil
}

func (r *MembershipPaymentRepository) FindByID(ctx context.Context, id int) (*payment.MembershipPayment, error) {
	query := `
		SELECT id, customer_membership_id, fecha_pago, monto, estado,
		       referencia_externa, periodo, observaciones
		FROM mem_membership_payment
		WHERE id = $1
	`

	var p payment.MembershipPayment
	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.CustomerMembershipID, &p.FechaPago, &p.Monto, &p.Estado,
		&p.ReferenciaExterna, &p.Periodo, &p.Observaciones,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find payment: %w", err)
	}

	return &p, nil
}

func (r *MembershipPaymentRepository) List(ctx context.Context) ([]payment.MembershipPayment, error) {
	query := `
		SELECT id, customer_membership_id, fecha_pago, monto, estado,
		       referencia_externa, periodo, observaciones
		FROM mem_membership_payment
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	payments := []payment.MembershipPayment{}
	for rows.Next() {
		var p payment.MembershipPayment
		if err := rows.Scan(
			&p.ID, &p.CustomerMembershipID, &p.FechaPago, &p.Monto, &p.Estado,
			&p.ReferenciaExterna, &p.Periodo, &p.Observaciones,
		); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, p)
	}

	return payments, rows.Err()
}

func (r *MembershipPaymentRepository) Update(ctx context.Context, p *payment.MembershipPayment) error {
	query := `
		UPDATE mem_membership_payment
		SET customer_membership_id = $2, fecha_pago = $3, monto = $4, estado = $5,
		    referencia_externa = $6, periodo = $7, observaciones = $8
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query,
		p.ID, p.CustomerMembershipID, p.FechaPago, p.Monto, p.Estado,
		p.ReferenciaExterna, p.Periodo, p.Observaciones,
	)
	if err != nil {
		return fmt.Errorf("failed to update payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	return nil
}

func (r *MembershipPaymentRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM mem_membership_payment WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	return nil
}

// PeriodoExists reports whether the membership already has a payment for
// the period, excluding excludeID (0 to check all).
func (r *MembershipPaymentRepository) PeriodoExists(ctx context.Context, membershipID, periodo, excludeID int) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(
			SELECT 1 FROM mem_membership_payment
			WHERE customer_membership_id = $1 AND periodo = $2 AND id <> $3
		)`,
		membershipID, periodo, excludeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check payment period: %w", err)
	}
	return exists, nil
}

// ReferenciaExists reports whether any payment uses the external reference,
// excluding excludeID (0 to check all).
func (r *MembershipPaymentRepository) ReferenciaExists(ctx context.Context, referencia string, excludeID int) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(
			SELECT 1 FROM mem_membership_payment
			WHERE referencia_externa = $1 AND id <> $2
		)`,
		referencia, excludeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check payment reference: %w", err)
	}
	return exists, nil
}
