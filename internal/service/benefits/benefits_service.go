// internal/service/benefits/benefits_service.go
package benefits

import (
	"context"

	"loyalty-service/internal/domain/benefit"
	"loyalty-service/internal/domain/plan"
	xerrors "loyalty-service/internal/pkg/errors"

	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, b *benefit.MembershipBenefit) error
	FindByID(ctx context.Context, id int) (*benefit.MembershipBenefit, error)
	List(ctx context.Context) ([]benefit.MembershipBenefit, error)
	Update(ctx context.Context, b *benefit.MembershipBenefit) error
	Delete(ctx context.Context, id int) error
	ClaveExists(ctx context.Context, planID int, clave string, excludeID int) (bool, error)
}

type PlanRepository interface {
	FindByID(ctx context.Context, id int) (*plan.MembershipPlan, error)
}

// BenefitService manages the per-plan benefit catalog. A clave is unique
// within its plan.
type BenefitService struct {
	repo     Repository
	planRepo PlanRepository
	logger   *zap.Logger
}

func NewBenefitService(repo Repository, planRepo PlanRepository, logger *zap.Logger) *BenefitService {
	return &BenefitService{repo: repo, planRepo: planRepo, logger: logger}
}

func (s *BenefitService) List(ctx context.Context) ([]benefit.MembershipBenefit, error) {
	benefits, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list benefits", zap.Error(err))
		return nil, xerrors.Internal("Error al obtener los beneficios.")
	}
	return benefits, nil
}

func (s *BenefitService) Get(ctx context.Context, id int) (*benefit.MembershipBenefit, error) {
	b, err := s.repo.FindByID(ctx, id)
	if xerrors.Is(err, xerrors.ErrNotFound) {
		return nil, xerrors.NotFound("El beneficio no existe.")
	}
	if err != nil {
		s.logger.Error("failed to get benefit", zap.Int("benefit_id", id), zap.Error(err))
		return nil, xerrors.Internal("Error al obtener el beneficio.")
	}
	return b, nil
}

func (s *BenefitService) Create(ctx context.Context, req *benefit.CreateBenefitRequest) (*benefit.MembershipBenefit, error) {
	if err := s.requireActivePlan(ctx, req.PlanID); err != nil {
		return nil, err
	}

	dup, err := s.repo.ClaveExists(ctx, req.PlanID, req.Clave, 0)
	if err != nil {
		s.logger.Error("failed to check benefit clave", zap.Error(err))
		return nil, xerrors.Internal("Error al crear el beneficio.")
	}
	if dup {
		return nil, xerrors.Conflict("Ya existe un beneficio con esta clave para el plan especificado.")
	}

	b := &benefit.MembershipBenefit{
		PlanID:         req.PlanID,
		Clave:          req.Clave,
		Valor:          req.Valor,
		DiasAplicables: req.DiasAplicables,
		Observacion:    req.Observacion,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		s.logger.Error("failed to create benefit", zap.Error(err))
		return nil, xerrors.Internal("Error al crear el beneficio.")
	}

	s.logger.Info("benefit created",
		zap.Int("benefit_id", b.ID),
		zap.Int("plan_id", b.PlanID),
		zap.String("clave", b.Clave),
	)
	return b, nil
}

// Update overwrites the benefit. The clave-conflict check only runs when
// the (plan, clave) pair actually changes.
func (s *BenefitService) Update(ctx context.Context, id int, req *benefit.CreateBenefitRequest) error {
	b, err := s.repo.FindByID(ctx, id)
	if xerrors.Is(err, xerrors.ErrNotFound) {
		return xerrors.NotFound("El beneficio no existe.")
	}
	if err != nil {
		s.logger.Error("failed to find benefit", zap.Int("benefit_id", id), zap.Error(err))
		return xerrors.Internal("Error al actualizar el beneficio.")
	}

	if err := s.requireActivePlan(ctx, req.PlanID); err != nil {
		return err
	}

	if req.PlanID != b.PlanID || req.Clave != b.Clave {
		dup, err := s.repo.ClaveExists(ctx, req.PlanID, req.Clave, id)
		if err != nil {
			s.logger.Error("failed to check benefit clave", zap.Error(err))
			return xerrors.Internal("Error al actualizar el beneficio.")
		}
		if dup {
			return xerrors.Conflict("Ya existe un beneficio con esta clave para el plan especificado.")
		}
	}

	b.PlanID = req.PlanID
	b.Clave = req.Clave
	b.Valor = req.Valor
	b.DiasAplicables = req.DiasAplicables
	b.Observacion = req.Observacion

	if err := s.repo.Update(ctx, b); err != nil {
		s.logger.Error("failed to update benefit", zap.Int("benefit_id", id), zap.Error(err))
		return xerrors.Internal("Error al actualizar el beneficio.")
	}

	return nil
}

// Delete removes the benefit row permanently.
func (s *BenefitService) Delete(ctx context.Context, id int) error {
	err := s.repo.Delete(ctx, id)
	if xerrors.Is(err, xerrors.ErrNotFound) {
		return xerrors.NotFound("El beneficio no existe.")
	}
	if err != nil {
		s.logger.Error("failed to delete benefit", zap.Int("benefit_id", id), zap.Error(err))
		return xerrors.Internal("Error al eliminar el beneficio.")
	}

	s.logger.Info("benefit deleted", zap.Int("benefit_id", id))
	return nil
}

func (s *BenefitService) requireActivePlan(ctx context.Context, planID int) error {
	p, err := s.planRepo.FindByID(ctx, planID)
	if xerrors.Is(err, xerrors.ErrNotFound) {
		return xerrors.BadRequest("El plan especificado no existe o está inactivo.")
	}
	if err != nil {
		s.logger.Error("failed to find plan", zap.Int("plan_id", planID), zap.Error(err))
		return xerrors.Internal("Error al validar el plan.")
	}
	if !p.Activo {
		return xerrors.BadRequest("El plan especificado no existe o está inactivo.")
	}
	return nil
}
