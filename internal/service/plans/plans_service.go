// internal/service/plans/plans_service.go
package plans

import (
	"context"
	"time"

	"loyalty-service/internal/domain/plan"
	xerrors "loyalty-service/internal/pkg/errors"

	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, p *plan.MembershipPlan) error
	FindByID(ctx context.Context, id int) (*plan.MembershipPlan, error)
	ListActive(ctx context.Context) ([]plan.MembershipPlan, error)
	Update(ctx context.Context, p *plan.MembershipPlan) error
	ActiveNameExists(ctx context.Context, nombre string, excludeID int) (bool, error)
}

// PlanService manages the plan catalog. Plans are soft-deleted: Delete
// flips activo to false and keeps the row.
type PlanService struct {
	repo   Repository
	logger *zap.Logger
}

func NewPlanService(repo Repository, logger *zap.Logger) *PlanService {
	return &PlanService{repo: repo, logger: logger}
}

// List returns active plans only.
func (s *PlanService) List(ctx context.Context) ([]plan.MembershipPlan, error) {
	plans, err := s.repo.ListActive(ctx)
	if err != nil {
		s.logger.Error("failed to list plans", zap.Error(err))
		return nil, xerrors.Internal("Error al obtener los planes.")
	}
	return plans, nil
}

// Get returns an active plan. Inactive plans are treated as missing.
func (s *PlanService) Get(ctx context.Context, id int) (*plan.MembershipPlan, error) {
	p, err := s.repo.FindByID(ctx, id)
	if xerrors.Is(err, xerrors.ErrNotFound) {
		return nil, xerrors.NotFound("El plan no existe o está inactivo.")
	}
	if err != nil {
		s.logger.Error("failed to get plan", zap.Int("plan_id", id), zap.Error(err))
		return nil, xerrors.Internal("Error al obtener el plan.")
	}
	if !p.Activo {
		return nil, xerrors.NotFound("El plan no existe o está inactivo.")
	}
	return p, nil
}

func (s *PlanService) Create(ctx context.Context, req *plan.CreatePlanRequest) (*plan.MembershipPlan, error) {
	if err := validateMesesAcumulacion(req.MesesAcumulacionMax); err != nil {
		return nil, err
	}

	taken, err := s.repo.ActiveNameExists(ctx, req.Nombre, 0)
	if err != nil {
		s.logger.Error("failed to check plan name", zap.Error(err))
		return nil, xerrors.Internal("Error al crear el plan.")
	}
	if taken {
		return nil, xerrors.Conflict("Ya existe un plan activo con ese nombre.")
	}

	p := &plan.MembershipPlan{
		Nombre:              req.Nombre,
		PrecioMensual:       req.PrecioMensual,
		EntradasMensuales:   req.EntradasMensuales,
		MesesAcumulacionMax: req.MesesAcumulacionMax,
		Nivel:               req.Nivel,
		Activo:              req.Activo,
		FechaCreacion:       time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, p); err != nil {
		s.logger.Error("failed to create plan", zap.Error(err))
		return nil, xerrors.Internal("Error al crear el plan.")
	}

	s.logger.Info("plan created", zap.Int("plan_id", p.ID), zap.String("nombre", p.Nombre))
	return p, nil
}

// Update overwrites the plan. The name-conflict check only runs when the
// name actually changes.
func (s *PlanService) Update(ctx context.Context, id int, req *plan.CreatePlanRequest) error {
	p, err := s.repo.FindByID(ctx, id)
	if xerrors.Is(err, xerrors.ErrNotFound) {
		return xerrors.NotFound("El plan no existe.")
	}
	if err != nil {
		s.logger.Error("failed to find plan", zap.Int("plan_id", id), zap.Error(err))
		return xerrors.Internal("Error al actualizar el plan.")
	}

	if err := validateMesesAcumulacion(req.MesesAcumulacionMax); err != nil {
		return err
	}

	if req.Nombre != p.Nombre {
		taken, err := s.repo.ActiveNameExists(ctx, req.Nombre, id)
		if err != nil {
			s.logger.Error("failed to check plan name", zap.Error(err))
			return xerrors.Internal("Error al actualizar el plan.")
		}
		if taken {
			return xerrors.Conflict("Ya existe otro plan activo con ese nombre.")
		}
	}

	p.Nombre = req.Nombre
	p.PrecioMensual = req.PrecioMensual
	p.EntradasMensuales = req.EntradasMensuales
	p.MesesAcumulacionMax = req.MesesAcumulacionMax
	p.Nivel = req.Nivel
	p.Activo = req.Activo

	if err := s.repo.Update(ctx, p); err != nil {
		s.logger.Error("failed to update plan", zap.Int("plan_id", id), zap.Error(err))
		return xerrors.Internal("Error al actualizar el plan.")
	}

	return nil
}

// Delete deactivates the plan. Deleting an already inactive plan reports
// NotFound.
func (s *PlanService) Delete(ctx context.Context, id int) error {
	p, err := s.repo.FindByID(ctx, id)
	if xerrors.Is(err, xerrors.ErrNotFound) {
		return xerrors.NotFound("El plan no existe o ya está inactivo.")
	}
	if err != nil {
		s.logger.Error("failed to find plan", zap.Int("plan_id", id), zap.Error(err))
		return xerrors.Internal("Error al eliminar el plan.")
	}
	if !p.Activo {
		return xerrors.NotFound("El plan no existe o ya está inactivo.")
	}

	p.Activo = false
	if err := s.repo.Update(ctx, p); err != nil {
		s.logger.Error("failed to deactivate plan", zap.Int("plan_id", id), zap.Error(err))
		return xerrors.Internal("Error al eliminar el plan.")
	}

	s.logger.Info("plan deactivated", zap.Int("plan_id", id))
	return nil
}

// validateMesesAcumulacion checks the accumulation window only when one
// was supplied; any supplied value must fall in 1..12.
func validateMesesAcumulacion(meses *int) error {
	if meses != nil && (*meses < 1 || *meses > 12) {
		return xerrors.BadRequest("Los meses de acumulación máxima deben estar entre 1 y 12.")
	}
	return nil
}
