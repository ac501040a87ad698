// internal/repository/postgres/membership_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"loyalty-service/internal/domain/membership"
	xerrors "loyalty-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CustomerMembershipRepository struct {
	db *pgxpool.Pool
}

func NewCustomerMembershipRepository(db *pgxpool.Pool) *CustomerMembershipRepository {
	return &CustomerMembershipRepository{db: db}
}

func (r *CustomerMembershipRepository) Create(ctx context.Context, m *membership.CustomerMembership) error {
	query := `
		INSERT INTO mem_customer_membership (
			cod_cliente, plan_id, fecha_inicio, fecha_fin, estado,
			id_suscripcion_mp, id_cliente_mp, meses_acumulacion_personalizado
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		m.CodCliente, m.PlanID, m.FechaInicio, m.FechaFin, m.Estado,
		m.IDSuscripcionMP, m.IDClienteMP, m.MesesAcumulacionPersonalizado,
	).Scan(&m.ID)
	if err != nil {
		return fmt.Errorf("failed to create membership: %w", err)
	}

	return nil
}

// FindByID retrieves a membership regardless of status.
func (r *CustomerMembershipRepository) FindByID(ctx context.Context, id int) (*membership.CustomerMembership, error) {
	query := `
		SELECT id, cod_cliente, plan_id, fecha_inicio, fecha_fin, estado,
		       id_suscripcion_mp, id_cliente_mp, meses_acumulacion_personalizado
		FROM mem_customer_membership
		WHERE id = $1
	`

	var m membership.CustomerMembership
	err := r.db.QueryRow(ctx, query, id).Scan(
		&m.ID, &m.CodCliente, &m.PlanID, &m.FechaInicio, &m.FechaFin, &m.Estado,
		&m.IDSuscripcionMP, &m.IDClienteMP, &m.MesesAcumulacionPersonalizado,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find membership: %w", err)
	}

	return &m, nil
}

// Exists reports whether a membership row exists, in any status.
func (r *CustomerMembershipRepository) Exists(ctx context.Context, id int) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM mem_customer_membership WHERE id = $1)`, id,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check membership existence: %w", err)
	}
	return exists, nil
}

// ListActive retrieves ACTIVO memberships joined with their plan name.
func (r *CustomerMembershipRepository) ListActive(ctx context.Context) ([]membership.MembershipView, error) {
	query := `
		SELECT cm.id, cm.cod_cliente, cm.plan_id, p.nombre,
		       cm.fecha_inicio, cm.fecha_fin, cm.estado,
		       COALESCE(cm.id_suscripcion_mp, ''), COALESCE(cm.id_cliente_mp, ''),
		       cm.meses_acumulacion_personalizado
		FROM mem_customer_membership cm
		JOIN mem_membership_plan p ON p.id = cm.plan_id
		WHERE cm.estado = 'ACTIVO'
		ORDER BY cm.id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list memberships: %w", err)
	}
	defer rows.Close()

	views := []membership.MembershipView{}
	for rows.Next() {
		var v membership.MembershipView
		if err := rows.Scan(
			&v.ID, &v.CodCliente, &v.PlanID, &v.NombrePlan,
			&v.FechaInicio, &v.FechaFin, &v.Estado,
			&v.IDSuscripcionMP, &v.IDClienteMP,
			&v.MesesAcumulacionPersonalizado,
		); err != nil {
			return nil, fmt.Errorf("failed to scan membership: %w", err)
		}
		views = append(views, v)
	}

	return views, rows.Err()
}

// FindActiveViewByID retrieves a single ACTIVO membership joined with its
// plan name.
func (r *CustomerMembershipRepository) FindActiveViewByID(ctx context.Context, id int) (*membership.MembershipView, error) {
	query := `
		SELECT cm.id, cm.cod_cliente, cm.plan_id, p.nombre,
		       cm.fecha_inicio, cm.fecha_fin, cm.estado,
		       COALESCE(cm.id_suscripcion_mp, ''), COALESCE(cm.id_cliente_mp, ''),
		       cm.meses_acumulacion_personalizado
		FROM mem_customer_membership cm
		JOIN mem_membership_plan p ON p.id = cm.plan_id
		WHERE cm.id = $1 AND cm.estado = 'ACTIVO'
	`

	var v membership.MembershipView
	err := r.db.QueryRow(ctx, query, id).Scan(
		&v.ID, &v.CodCliente, &v.PlanID, &v.NombrePlan,
		&v.FechaInicio, &v.FechaFin, &v.Estado,
		&v.IDSuscripcionMP, &v.IDClienteMP,
		&v.MesesAcumulacionPersonalizado,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find membership: %w", err)
	}

	return &v, nil
}

// Update overwrites every mutable column except estado.
func (r *CustomerMembershipRepository) Update(ctx context.Context, m *membership.CustomerMembership) error {
	query := `
		UPDATE mem_customer_membership
		SET cod_cliente = $2, plan_id = $3, fecha_inicio = $4, fecha_fin = $5,
		    id_suscripcion_mp = $6, id_cliente_mp = $7, meses_acumulacion_personalizado = $8
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query,
		m.ID, m.CodCliente, m.PlanID, m.FechaInicio, m.FechaFin,
		m.IDSuscripcionMP, m.IDClienteMP, m.MesesAcumulacionPersonalizado,
	)
	if err != nil {
		return fmt.Errorf("failed to update membership: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	return nil
}

// UpdateEstado transitions the membership status.
func (r *CustomerMembershipRepository) UpdateEstado(ctx context.Context, id int, estado membership.Estado) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE mem_customer_membership SET estado = $2 WHERE id = $1`,
		id, estado,
	)
	if err != nil {
		return fmt.Errorf("failed to update membership status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	return nil
}

// ActiveExists reports whether an ACTIVO membership exists for the
// (customer, plan) pair, excluding excludeID (0 to check all).
func (r *CustomerMembershipRepository) ActiveExists(ctx context.Context, codCliente float64, planID, excludeID int) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(
			SELECT 1 FROM mem_customer_membership
			WHERE cod_cliente = $1 AND plan_id = $2 AND estado = 'ACTIVO' AND id <> $3
		)`,
		codCliente, planID, excludeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check active membership: %w", err)
	}
	return exists, nil
}

// FindActiveByCustomer retrieves the customer's ACTIVO membership joined
// with its plan and the plan's benefit descriptions.
func (r *CustomerMembershipRepository) FindActiveByCustomer(ctx context.Context, codCliente float64) (*membership.ActiveMembership, error) {
	query := `
		SELECT cm.id, cm.cod_cliente, cm.plan_id, cm.fecha_inicio, cm.fecha_fin, cm.estado,
		       cm.id_suscripcion_mp, cm.id_cliente_mp, cm.meses_acumulacion_personalizado,
		       p.id, p.nombre, p.precio_mensual, p.entradas_mensuales,
		       p.meses_acumulacion_max, p.nivel, p.activo, p.fecha_creacion
		FROM mem_customer_membership cm
		JOIN mem_membership_plan p ON p.id = cm.plan_id
		WHERE cm.cod_cliente = $1 AND cm.estado = 'ACTIVO'
		LIMIT 1
	`

	var am membership.ActiveMembership
	err := r.db.QueryRow(ctx, query, codCliente).Scan(
		&am.Membership.ID, &am.Membership.CodCliente, &am.Membership.PlanID,
		&am.Membership.FechaInicio, &am.Membership.FechaFin, &am.Membership.Estado,
		&am.Membership.IDSuscripcionMP, &am.Membership.IDClienteMP,
		&am.Membership.MesesAcumulacionPersonalizado,
		&am.Plan.ID, &am.Plan.Nombre, &am.Plan.PrecioMensual, &am.Plan.EntradasMensuales,
		&am.Plan.MesesAcumulacionMax, &am.Plan.Nivel, &am.Plan.Activo, &am.Plan.FechaCreacion,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find active membership: %w", err)
	}

	rows, err := r.db.Query(ctx,
		`SELECT COALESCE(observacion, '') FROM mem_membership_benefit WHERE plan_id = $1 ORDER BY id`,
		am.Plan.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load plan benefits: %w", err)
	}
	defer rows.Close()

	am.Beneficios = []string{}
	for rows.Next() {
		var obs string
		if err := rows.Scan(&obs); err != nil {
			return nil, fmt.Errorf("failed to scan benefit: %w", err)
		}
		am.Beneficios = append(am.Beneficios, obs)
	}

	return &am, rows.Err()
}
