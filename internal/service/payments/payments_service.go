// internal/service/payments/payments_service.go
package payments

import (
	"context"
	"time"

	"loyalty-service/internal/domain/membership"
	"loyalty-service/internal/domain/payment"
	xerrors "loyalty-service/internal/pkg/errors"
	"loyalty-service/internal/pkg/period"

	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, p *payment.MembershipPayment) error
	FindByID(ctx context.Context, id int) (*payment.MembershipPayment, error)
	List(ctx context.Context) ([]payment.MembershipPayment, error)
	Update(ctx context.Context, p *payment.MembershipPayment) error
	Delete(ctx context.Context, id int) error
	PeriodoExists(ctx context.Context, membershipID, periodo, excludeID int) (bool, error)
	ReferenciaExists(ctx context.Context, referencia string, excludeID int) (bool, error)
}

type MembershipRepository interface {
	FindByID(ctx context.Context, id int) (*membership.CustomerMembership, error)
}

// PaymentService records payments against memberships. A membership holds
// at most one payment per period, and external references are unique
// across all payments.
type PaymentService struct {
	repo           Repository
	membershipRepo MembershipRepository
	logger         *zap.Logger
}

func NewPaymentService(repo Repository, membershipRepo MembershipRepository, logger *zap.Logger) *PaymentService {
	return &PaymentService{repo: repo, membershipRepo: membershipRepo, logger: logger}
}

func (s *PaymentService) List(ctx context.Context) ([]payment.MembershipPayment, error) {
	payments, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list payments", zap.Error(err))
		return nil, xerrors.Internal("Error al obtener los pagos.")
	}
	return payments, nil
}

func (s *PaymentService) Get(ctx context.Context, id int) (*payment.MembershipPayment, error) {
	p, err := s.repo.FindByID(ctx, id)
	if xerrors.Is(err, xerrors.ErrNotFound) {
		return nil, xerrors.NotFound("El pago no existe.")
	}
	if err != nil {
		s.logger.Error("failed to get payment", zap.Int("payment_id", id), zap.Error(err))
		return nil, xerrors.Internal("Error al obtener el pago.")
	}
	return p, nil
}

func (s *PaymentService) Create(ctx context.Context, req *payment.CreatePaymentRequest) (*payment.MembershipPayment, error) {
	if err := s.validate(ctx, req); err != nil {
		return nil, err
	}

	if req.Periodo != nil {
		dup, err := s.repo.PeriodoExists(ctx, req.CustomerMembershipID, *req.Periodo, 0)
		if err != nil {
			s.logger.Error("failed to check payment period", zap.Error(err))
			return nil, xerrors.Internal("Error al crear el pago.")
		}
		if dup {
			return nil, xerrors.Conflict("Ya existe un pago para este período y membresía.")
		}
	}

	if req.ReferenciaExterna != "" {
		dup, err := s.repo.ReferenciaExists(ctx, req.ReferenciaExterna, 0)
		if err != nil {
			s.logger.Error("failed to check payment reference", zap.Error(err))
			return nil, xerrors.Internal("Error al crear el pago.")
		}
		if dup {
			return nil, xerrors.Conflict("Ya existe un pago con esta referencia externa.")
		}
	}

	p := &payment.MembershipPayment{
		CustomerMembershipID: req.CustomerMembershipID,
		FechaPago:            req.FechaPago,
		Monto:                req.Monto,
		Estado:               req.Estado,
		Periodo:              req.Periodo,
		Observaciones:        req.Observaciones,
	}
	if req.ReferenciaExterna != "" {
		ref := req.ReferenciaExterna
		p.ReferenciaExterna = &ref
	}

	if err := s.repo.Create(ctx, p); err != nil {
		s.logger.Error("failed to create payment", zap.Error(err))
		return nil, xerrors.Internal("Error al crear el pago.")
	}

	s.logger.Info("payment created",
		zap.Int("payment_id", p.ID),
		zap.Int("membership_id", p.CustomerMembershipID),
		zap.Float64("monto", p.Monto),
	)
	return p, nil
}

// Update overwrites the payment, re-running every Create validation.
// Conflict checks are skipped when the conflicting value did not change.
func (s *PaymentService) Update(ctx context.Context, id int, req *payment.CreatePaymentRequest) error {
	p, err := s.repo.FindByID(ctx, id)
	if xerrors.Is(err, xerrors.ErrNotFound) {
		return xerrors.NotFound("El pago no existe.")
	}
	if err != nil {
		s.logger.Error("failed to find payment", zap.Int("payment_id", id), zap.Error(err))
		return xerrors.Internal("Error al actualizar el pago.")
	}

	if err := s.validate(ctx, req); err != nil {
		return err
	}

	// The conflict check only fires when periodo itself changes, even if the
	// payment moves to another membership.
	if req.Periodo != nil && !intPtrEqual(req.Periodo, p.Periodo) {
		dup, err := s.repo.PeriodoExists(ctx, req.CustomerMembershipID, *req.Periodo, id)
		if err != nil {
			s.logger.Error("failed to check payment period", zap.Error(err))
			return xerrors.Internal("Error al actualizar el pago.")
		}
		if dup {
			return xerrors.Conflict("Ya existe un pago para este período y membresía.")
		}
	}

	oldRef := ""
	if p.ReferenciaExterna != nil {
		oldRef = *p.ReferenciaExterna
	}
	if req.ReferenciaExterna != "" && req.ReferenciaExterna != oldRef {
		dup, err := s.repo.ReferenciaExists(ctx, req.ReferenciaExterna, id)
		if err != nil {
			s.logger.Error("failed to check payment reference", zap.Error(err))
			return xerrors.Internal("Error al actualizar el pago.")
		}
		if dup {
			return xerrors.Conflict("Ya existe un pago con esta nueva referencia externa.")
		}
	}

	p.CustomerMembershipID = req.CustomerMembershipID
	p.FechaPago = req.FechaPago
	p.Monto = req.Monto
	p.Estado = req.Estado
	p.Periodo = req.Periodo
	p.Observaciones = req.Observaciones
	p.ReferenciaExterna = nil
	if req.ReferenciaExterna != "" {
		ref := req.ReferenciaExterna
		p.ReferenciaExterna = &ref
	}

	if err := s.repo.Update(ctx, p); err != nil {
		s.logger.Error("failed to update payment", zap.Int("payment_id", id), zap.Error(err))
		return xerrors.Internal("Error al actualizar el pago.")
	}

	return nil
}

// Delete removes the payment row permanently.
func (s *PaymentService) Delete(ctx context.Context, id int) error {
	err := s.repo.Delete(ctx, id)
	if xerrors.Is(err, xerrors.ErrNotFound) {
		return xerrors.NotFound("El pago no existe.")
	}
	if err != nil {
		s.logger.Error("failed to delete payment", zap.Int("payment_id", id), zap.Error(err))
		return xerrors.Internal("Error al eliminar el pago.")
	}

	s.logger.Info("payment deleted", zap.Int("payment_id", id))
	return nil
}

func (s *PaymentService) validate(ctx context.Context, req *payment.CreatePaymentRequest) error {
	m, err := s.membershipRepo.FindByID(ctx, req.CustomerMembershipID)
	if xerrors.Is(err, xerrors.ErrNotFound) {
		return xerrors.BadRequest("La membresía especificada no existe o está inactiva.")
	}
	if err != nil {
		s.logger.Error("failed to find membership", zap.Int("membership_id", req.CustomerMembershipID), zap.Error(err))
		return xerrors.Internal("Error al validar la membresía.")
	}
	if m.Estado != membership.EstadoActivo {
		return xerrors.BadRequest("La membresía especificada no existe o está inactiva.")
	}

	if req.Periodo != nil && !period.IsValid(*req.Periodo) {
		return xerrors.BadRequest("El Periodo debe estar en formato yyyyMM (ej. 202506).")
	}
	if req.FechaPago.After(time.Now().UTC()) {
		return xerrors.BadRequest("La FechaPago no puede ser futura.")
	}

	return nil
}

func intPtrEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
