// internal/repository/postgres/benefit_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"loyalty-service/internal/domain/benefit"
	xerrors "loyalty-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type MembershipBenefitRepository struct {
	db *pgxpool.Pool
}

func NewMembershipBenefitRepository(db *pgxpool.Pool) *MembershipBenefitRepository {
	return &MembershipBenefitRepository{db: db}
}

func (r *MembershipBenefitRepository) Create(ctx context.Context, b *benefit.MembershipBenefit) error {
	query := `
		INSERT INTO mem_membership_benefit (plan_id, clave, valor, dias_aplicables, observacion)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		b.PlanID, b.Clave, b.Valor, b.DiasAplicables, b.Observacion,
	).Scan(&b.ID)
	if err != nil {
		return fmt.Errorf("failed to create benefit: %w", err)
	}

	return nil
}

func (r *MembershipBenefitRepository) FindByID(ctx context.Context, id int) (*benefit.MembershipBenefit, error) {
	query := `
		SELECT id, plan_id, clave, valor, dias_aplicables, observacion
		FROM mem_membership_benefit
		WHERE id = $1
	`

	var b benefit.MembershipBenefit
	err := r.db.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.PlanID, &b.Clave, &b.Valor, &b.DiasAplicables, &b.Observacion,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find benefit: %w", err)
	}

	return &b, nil
}

func (r *MembershipBenefitRepository) List(ctx context.Context) ([]benefit.MembershipBenefit, error) {
	query := `
		SELECT id, plan_id, clave, valor, dias_aplicables, observacion
		FROM mem_membership_benefit
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list benefits: %w", err)
	}
	defer rows.Close()

	benefits := []benefit.MembershipBenefit{}
	for rows.Next() {
		var b benefit.MembershipBenefit
		if err := rows.Scan(&b.ID, &b.PlanID, &b.Clave, &b.Valor, &b.DiasAplicables, &b.Observacion); err != nil {
			return nil, fmt.Errorf("failed to scan benefit: %w", err)
		}
		benefits = append(benefits, b)
	}

	return benefits, rows.Err()
}

func (r *MembershipBenefitRepository) Update(ctx context.Context, b *benefit.MembershipBenefit) error {
	query := `
		UPDATE mem_membership_benefit
		SET plan_id = $2, clave = $3, valor = $4, dias_aplicables = $5, observacion = $6
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query,
		b.ID, b.PlanID, b.Clave, b.Valor, b.DiasAplicables, b.Observacion,
	)
	if err != nil {
		return fmt.Errorf("failed to update benefit: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	return nil
}

// Delete removes the benefit row. Benefits are the only hard-deleted
// plan-owned entity.
func (r *MembershipBenefitRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM mem_membership_benefit WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete benefit: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	return nil
}

// ClaveExists reports whether a benefit with clave already exists for the
// plan, excluding excludeID (0 to check all).
func (r *MembershipBenefitRepository) ClaveExists(ctx context.Context, planID int, clave string, excludeID int) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(
			SELECT 1 FROM mem_membership_benefit
			WHERE plan_id = $1 AND clave = $2 AND id <> $3
		)`,
		planID, clave, excludeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check benefit key: %w", err)
	}
	return exists, nil
}
