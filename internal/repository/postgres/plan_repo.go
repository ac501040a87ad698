// internal/repository/postgres/plan_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"loyalty-service/internal/domain/plan"
	xerrors "loyalty-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type MembershipPlanRepository struct {
	db *pgxpool.Pool
}

func NewMembershipPlanRepository(db *pgxpool.Pool) *MembershipPlanRepository {
	return &MembershipPlanRepository{db: db}
}

// Create inserts a new plan and fills in its generated ID.
func (r *MembershipPlanRepository) Create(ctx context.Context, p *plan.MembershipPlan) error {
	query := `
		INSERT INTO mem_membership_plan (
			nombre, precio_mensual, entradas_mensuales,
			meses_acumulacion_max, nivel, activo, fecha_creacion
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		p.Nombre, p.PrecioMensual, p.EntradasMensuales,
		p.MesesAcumulacionMax, p.Nivel, p.Activo, p.FechaCreacion,
	).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("failed to create membership plan: %w", err)
	}

	return nil
}

// FindByID retrieves a plan regardless of its active flag.
func (r *MembershipPlanRepository) FindByID(ctx context.Context, id int) (*plan.MembershipPlan, error) {
	query := `
		SELECT id, nombre, precio_mensual, entradas_mensuales,
		       meses_acumulacion_max, nivel, activo, fecha_creacion
		FROM mem_membership_plan
		WHERE id = $1
	`

	var p plan.MembershipPlan
	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Nombre, &p.PrecioMensual, &p.EntradasMensuales,
		&p.MesesAcumulacionMax, &p.Nivel, &p.Activo, &p.FechaCreacion,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find membership plan: %w", err)
	}

	return &p, nil
}

// ListActive retrieves all plans with activo = true.
func (r *MembershipPlanRepository) ListActive(ctx context.Context) ([]plan.MembershipPlan, error) {
	query := `
		SELECT id, nombre, precio_mensual, entradas_mensuales,
		       meses_acumulacion_max, nivel, activo, fecha_creacion
		FROM mem_membership_plan
		WHERE activo = true
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list membership plans: %w", err)
	}
	defer rows.Close()

	plans := []plan.MembershipPlan{}
	for rows.Next() {
		var p plan.MembershipPlan
		if err := rows.Scan(
			&p.ID, &p.Nombre, &p.PrecioMensual, &p.EntradasMensuales,
			&p.MesesAcumulacionMax, &p.Nivel, &p.Activo, &p.FechaCreacion,
		); err != nil {
			return nil, fmt.Errorf("failed to scan membership plan: %w", err)
		}
		plans = append(plans, p)
	}

	return plans, rows.Err()
}

// Update overwrites every mutable column of the plan.
func (r *MembershipPlanRepository) Update(ctx context.Context, p *plan.MembershipPlan) error {
	query := `
		UPDATE mem_membership_plan
		SET nombre = $2, precio_mensual = $3, entradas_mensuales = $4,
		    meses_acumulacion_max = $5, nivel = $6, activo = $7
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query,
		p.ID, p.Nombre, p.PrecioMensual, p.EntradasMensuales,
		p.MesesAcumulacionMax, p.Nivel, p.Activo,
	)
	if err != nil {
		return fmt.Errorf("failed to update membership plan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	return nil
}

// ActiveNameExists reports whether another active plan already uses nombre.
// excludeID skips a row (0 to check all).
func (r *MembershipPlanRepository) ActiveNameExists(ctx context.Context, nombre string, excludeID int) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(
			SELECT 1 FROM mem_membership_plan
			WHERE nombre = $1 AND activo = true AND id <> $2
		)`,
		nombre, excludeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check plan name: %w", err)
	}
	return exists, nil
}
