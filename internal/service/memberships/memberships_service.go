// internal/service/memberships/memberships_service.go
package memberships

import (
	"context"
	"strconv"
	"time"

	"loyalty-service/internal/domain/customer"
	"loyalty-service/internal/domain/membership"
	"loyalty-service/internal/domain/plan"
	xerrors "loyalty-service/internal/pkg/errors"
	"loyalty-service/internal/pkg/period"

	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, m *membership.CustomerMembership) error
	FindByID(ctx context.Context, id int) (*membership.CustomerMembership, error)
	ListActive(ctx context.Context) ([]membership.MembershipView, error)
	FindActiveViewByID(ctx context.Context, id int) (*membership.MembershipView, error)
	Update(ctx context.Context, m *membership.CustomerMembership) error
	UpdateEstado(ctx context.Context, id int, estado membership.Estado) error
	ActiveExists(ctx context.Context, codCliente float64, planID, excludeID int) (bool, error)
	FindActiveByCustomer(ctx context.Context, codCliente float64) (*membership.ActiveMembership, error)
}

type PlanRepository interface {
	FindByID(ctx context.Context, id int) (*plan.MembershipPlan, error)
}

type ClienteRepository interface {
	FindByCod(ctx context.Context, codCliente float64) (*customer.Cliente, error)
}

type BalanceRepository interface {
	SumUsedByPeriod(ctx context.Context, membershipID, periodo int) (int, error)
}

// MembershipService manages the membership lifecycle and resolves the
// consolidated status view for a customer.
type MembershipService struct {
	repo        Repository
	planRepo    PlanRepository
	clienteRepo ClienteRepository
	balanceRepo BalanceRepository
	logger      *zap.Logger
}

func NewMembershipService(
	repo Repository,
	planRepo PlanRepository,
	clienteRepo ClienteRepository,
	balanceRepo BalanceRepository,
	logger *zap.Logger,
) *MembershipService {
	return &MembershipService{
		repo:        repo,
		planRepo:    planRepo,
		clienteRepo: clienteRepo,
		balanceRepo: balanceRepo,
		logger:      logger,
	}
}

// Create registers a new ACTIVO membership. At most one ACTIVO membership
// may exist per (customer, plan) pair.
func (s *MembershipService) Create(ctx context.Context, req *membership.CreateMembershipRequest) (*membership.MembershipView, error) {
	p, err := s.validateClienteAndPlan(ctx, req)
	if err != nil {
		return nil, err
	}

	dup, err := s.repo.ActiveExists(ctx, req.CodCliente, req.PlanID, 0)
	if err != nil {
		s.logger.Error("failed to check active membership", zap.Error(err))
		return nil, xerrors.Internal("Error interno del servidor al crear la membresía.")
	}
	if dup {
		return nil, xerrors.Conflict("Ya existe una membresía activa para este cliente y plan.")
	}

	if req.FechaFin != nil && req.FechaInicio.After(*req.FechaFin) {
		return nil, xerrors.BadRequest("La fecha de inicio debe ser anterior a la fecha de fin.")
	}

	m := &membership.CustomerMembership{
		CodCliente:  req.CodCliente,
		PlanID:      req.PlanID,
		FechaInicio: req.FechaInicio,
		FechaFin:    req.FechaFin,
		Estado:      membership.EstadoActivo,
	}
	applyOptionalFields(m, req)

	if err := s.repo.Create(ctx, m); err != nil {
		s.logger.Error("failed to create membership", zap.Error(err))
		return nil, xerrors.Internal("Error interno del servidor al crear la membresía.")
	}

	s.logger.Info("membership created",
		zap.Int("membership_id", m.ID),
		zap.Float64("cod_cliente", m.CodCliente),
		zap.Int("plan_id", m.PlanID),
	)

	return toView(m, p.Nombre), nil
}

// List returns all ACTIVO memberships with their plan names.
func (s *MembershipService) List(ctx context.Context) ([]membership.MembershipView, error) {
	views, err := s.repo.ListActive(ctx)
	if err != nil {
		s.logger.Error("failed to list memberships", zap.Error(err))
		return nil, xerrors.Internal("Error interno del servidor al obtener las membresías.")
	}
	return views, nil
}

// Get returns a single ACTIVO membership.
func (s *MembershipService) Get(ctx context.Context, id int) (*membership.MembershipView, error) {
	v, err := s.repo.FindActiveViewByID(ctx, id)
	if xerrors.Is(err, xerrors.ErrNotFound) {
		return nil, xerrors.NotFound("Membresía no encontrada o inactiva.")
	}
	if err != nil {
		s.logger.Error("failed to get membership", zap.Int("membership_id", id), zap.Error(err))
		return nil, xerrors.Internal("Error interno del servidor al obtener la membresía.")
	}
	return v, nil
}

// Update overwrites an ACTIVO membership, re-validating customer and plan
// exactly as Create does.
func (s *MembershipService) Update(ctx context.Context, id int, req *membership.CreateMembershipRequest) error {
	m, err := s.repo.FindByID(ctx, id)
	if xerrors.Is(err, xerrors.ErrNotFound) {
		return xerrors.NotFound("Membresía no encontrada o inactiva.")
	}
	if err != nil {
		s.logger.Error("failed to find membership", zap.Int("membership_id", id), zap.Error(err))
		return xerrors.Internal("Error interno del servidor al actualizar la membresía.")
	}
	if m.Estado != membership.EstadoActivo {
		return xerrors.NotFound("Membresía no encontrada o inactiva.")
	}

	if _, err := s.validateClienteAndPlan(ctx, req); err != nil {
		return err
	}

	dup, err := s.repo.ActiveExists(ctx, req.CodCliente, req.PlanID, id)
	if err != nil {
		s.logger.Error("failed to check active membership", zap.Error(err))
		return xerrors.Internal("Error interno del servidor al actualizar la membresía.")
	}
	if dup {
		return xerrors.Conflict("Ya existe otra membresía activa para este cliente y plan.")
	}

	if req.FechaFin != nil && req.FechaInicio.After(*req.FechaFin) {
		return xerrors.BadRequest("La fecha de inicio debe ser anterior a la fecha de fin.")
	}

	m.CodCliente = req.CodCliente
	m.PlanID = req.PlanID
	m.FechaInicio = req.FechaInicio
	m.FechaFin = req.FechaFin
	applyOptionalFields(m, req)

	if err := s.repo.Update(ctx, m); err != nil {
		s.logger.Error("failed to update membership", zap.Int("membership_id", id), zap.Error(err))
		return xerrors.Internal("Error interno del servidor al actualizar la membresía.")
	}

	return nil
}

// Deactivate transitions an ACTIVO membership to INACTIVO. A second call
// reports NotFound, matching soft-delete semantics.
func (s *MembershipService) Deactivate(ctx context.Context, id int) error {
	m, err := s.repo.FindByID(ctx, id)
	if xerrors.Is(err, xerrors.ErrNotFound) {
		return xerrors.NotFound("Membresía no encontrada o ya inactiva.")
	}
	if err != nil {
		s.logger.Error("failed to find membership", zap.Int("membership_id", id), zap.Error(err))
		return xerrors.Internal("Error interno del servidor al desactivar la membresía.")
	}
	if m.Estado != membership.EstadoActivo {
		return xerrors.NotFound("Membresía no encontrada o ya inactiva.")
	}

	if err := s.repo.UpdateEstado(ctx, id, membership.EstadoInactivo); err != nil {
		s.logger.Error("failed to deactivate membership", zap.Int("membership_id", id), zap.Error(err))
		return xerrors.Internal("Error interno del servidor al desactivar la membresía.")
	}

	s.logger.Info("membership deactivated", zap.Int("membership_id", id))
	return nil
}

// GetStatus resolves the customer's entitlement: active membership, plan,
// benefits, and entries available in the current period. Read-only.
//
// The ACTIVO check runs before the expiration check: a membership past its
// end date but never transitioned stays ACTIVO in storage and is reported
// here as expired.
func (s *MembershipService) GetStatus(ctx context.Context, codCliente string) (*membership.StatusResponse, error) {
	cod, err := strconv.ParseFloat(codCliente, 64)
	if err != nil {
		return nil, xerrors.BadRequest("CodCliente inválido.")
	}

	am, err := s.repo.FindActiveByCustomer(ctx, cod)
	if xerrors.Is(err, xerrors.ErrNotFound) {
		return nil, xerrors.NotFound("Cliente sin membresía activa.")
	}
	if err != nil {
		s.logger.Error("failed to resolve active membership", zap.Error(err))
		return nil, xerrors.Internal("Error interno del servidor al obtener el estado de la membresía.")
	}

	if am.Membership.FechaFin != nil && am.Membership.FechaFin.Before(time.Now().UTC()) {
		return nil, xerrors.NotFound("La membresía ha expirado.")
	}

	used, err := s.balanceRepo.SumUsedByPeriod(ctx, am.Membership.ID, period.Current())
	if err != nil {
		s.logger.Error("failed to sum used entries", zap.Int("membership_id", am.Membership.ID), zap.Error(err))
		return nil, xerrors.Internal("Error interno del servidor al obtener el estado de la membresía.")
	}

	// May go negative when usage exceeds the monthly allotment; no clamping.
	disponibles := am.Plan.EntradasMensuales - used

	return &membership.StatusResponse{
		Estado:              am.Membership.Estado,
		PlanID:              am.Plan.ID,
		NombrePlan:          am.Plan.Nombre,
		PrecioMensual:       am.Plan.PrecioMensual,
		EntradasMensuales:   am.Plan.EntradasMensuales,
		EntradasDisponibles: disponibles,
		Nivel:               am.Plan.Nivel,
		Beneficios:          am.Beneficios,
	}, nil
}

func (s *MembershipService) validateClienteAndPlan(ctx context.Context, req *membership.CreateMembershipRequest) (*plan.MembershipPlan, error) {
	if _, err := s.clienteRepo.FindByCod(ctx, req.CodCliente); err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			return nil, xerrors.BadRequest("El cliente especificado no existe.")
		}
		s.logger.Error("failed to check customer", zap.Error(err))
		return nil, xerrors.Internal("Error interno del servidor al validar el cliente.")
	}

	p, err := s.planRepo.FindByID(ctx, req.PlanID)
	if xerrors.Is(err, xerrors.ErrNotFound) {
		return nil, xerrors.BadRequest("El plan especificado no existe.")
	}
	if err != nil {
		s.logger.Error("failed to find plan", zap.Int("plan_id", req.PlanID), zap.Error(err))
		return nil, xerrors.Internal("Error interno del servidor al validar el plan.")
	}
	if !p.Activo {
		return nil, xerrors.BadRequest("El plan especificado está inactivo.")
	}

	return p, nil
}

// applyOptionalFields normalizes the optional request fields: empty
// external identifiers and a zero accumulation override are stored as NULL.
func applyOptionalFields(m *membership.CustomerMembership, req *membership.CreateMembershipRequest) {
	m.IDSuscripcionMP = nil
	if req.IDSuscripcionMP != "" {
		v := req.IDSuscripcionMP
		m.IDSuscripcionMP = &v
	}
	m.IDClienteMP = nil
	if req.IDClienteMP != "" {
		v := req.IDClienteMP
		m.IDClienteMP = &v
	}
	m.MesesAcumulacionPersonalizado = nil
	if req.MesesAcumulacionPersonalizado != 0 {
		v := req.MesesAcumulacionPersonalizado
		m.MesesAcumulacionPersonalizado = &v
	}
}

func toView(m *membership.CustomerMembership, nombrePlan string) *membership.MembershipView {
	v := &membership.MembershipView{
		ID:                            m.ID,
		CodCliente:                    m.CodCliente,
		PlanID:                        m.PlanID,
		NombrePlan:                    nombrePlan,
		FechaInicio:                   m.FechaInicio,
		FechaFin:                      m.FechaFin,
		Estado:                        m.Estado,
		MesesAcumulacionPersonalizado: m.MesesAcumulacionPersonalizado,
	}
	if m.IDSuscripcionMP != nil {
		v.IDSuscripcionMP = *m.IDSuscripcionMP
	}
	if m.IDClienteMP != nil {
		v.IDClienteMP = *m.IDClienteMP
	}
	return v
}
