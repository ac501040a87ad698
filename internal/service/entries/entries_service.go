// internal/service/entries/entries_service.go
package entries

import (
	"context"
	"time"

	domain "loyalty-service/internal/domain/entries"
	"loyalty-service/internal/domain/membership"
	xerrors "loyalty-service/internal/pkg/errors"

	"go.uber.org/zap"
)

type BalanceRepository interface {
	Create(ctx context.Context, b *domain.EntryBalance) error
	FindByID(ctx context.Context, id int) (*domain.EntryBalance, error)
	ListByMembership(ctx context.Context, membershipID int) ([]domain.EntryBalance, error)
	Update(ctx context.Context, b *domain.EntryBalance) error
}

type UsageRepository interface {
	ListByBalance(ctx context.Context, balanceID int) ([]domain.EntryUsage, error)
	CreateAndConsume(ctx context.Context, u *domain.EntryUsage) error
}

type MembershipRepository interface {
	FindByID(ctx context.Context, id int) (*membership.CustomerMembership, error)
	Exists(ctx context.Context, id int) (bool, error)
}

// EntryService owns entry consumption: it validates balance state and
// records usages, keeping the used counter and the usage rows in sync.
type EntryService struct {
	balanceRepo    BalanceRepository
	usageRepo      UsageRepository
	membershipRepo MembershipRepository
	logger         *zap.Logger
}

func NewEntryService(
	balanceRepo BalanceRepository,
	usageRepo UsageRepository,
	membershipRepo MembershipRepository,
	logger *zap.Logger,
) *EntryService {
	return &EntryService{
		balanceRepo:    balanceRepo,
		usageRepo:      usageRepo,
		membershipRepo: membershipRepo,
		logger:         logger,
	}
}

// ListBalances returns every balance owned by the membership.
func (s *EntryService) ListBalances(ctx context.Context, membershipID int) ([]domain.EntryBalance, error) {
	exists, err := s.membershipRepo.Exists(ctx, membershipID)
	if err != nil {
		s.logger.Error("failed to check membership", zap.Error(err))
		return nil, xerrors.Internal("Error al obtener los saldos.")
	}
	if !exists {
		return nil, xerrors.NotFound("La membresía especificada no existe.")
	}

	balances, err := s.balanceRepo.ListByMembership(ctx, membershipID)
	if err != nil {
		s.logger.Error("failed to list balances", zap.Int("membership_id", membershipID), zap.Error(err))
		return nil, xerrors.Internal("Error al obtener los saldos.")
	}

	return balances, nil
}

// CreateBalance creates a new balance for the membership with zero used
// entries.
func (s *EntryService) CreateBalance(ctx context.Context, membershipID int, req *domain.CreateBalanceRequest) (*domain.EntryBalance, error) {
	exists, err := s.membershipRepo.Exists(ctx, membershipID)
	if err != nil {
		s.logger.Error("failed to check membership", zap.Error(err))
		return nil, xerrors.Internal("Error al crear el saldo.")
	}
	if !exists {
		return nil, xerrors.BadRequest("La membresía especificada no existe.")
	}

	if req.EntradasAsignadas < 0 {
		return nil, xerrors.BadRequest("El número de entradas asignadas no puede ser negativo.")
	}
	if req.Periodo <= 0 {
		return nil, xerrors.BadRequest("El período debe ser mayor a cero.")
	}

	periodo := req.Periodo
	balance := &domain.EntryBalance{
		CustomerMembershipID: membershipID,
		Periodo:              &periodo,
		EntradasAsignadas:    req.EntradasAsignadas,
		EntradasUsadas:       0,
		FechaVencimiento:     req.FechaVencimiento,
	}

	if err := s.balanceRepo.Create(ctx, balance); err != nil {
		s.logger.Error("failed to create balance", zap.Error(err))
		return nil, xerrors.Internal("Error al crear el saldo.")
	}

	return balance, nil
}

// UpdateBalance applies a partial update. Only per-field non-negativity is
// enforced; used vs assigned is not cross-checked here, matching the
// observed PUT behavior.
func (s *EntryService) UpdateBalance(ctx context.Context, id int, req *domain.UpdateBalanceRequest) error {
	balance, err := s.balanceRepo.FindByID(ctx, id)
	if xerrors.Is(err, xerrors.ErrNotFound) {
		return xerrors.NotFound("El saldo especificado no existe.")
	}
	if err != nil {
		s.logger.Error("failed to find balance", zap.Int("balance_id", id), zap.Error(err))
		return xerrors.Internal("Error al actualizar el saldo.")
	}

	if req.EntradasAsignadas != nil && *req.EntradasAsignadas < 0 {
		return xerrors.BadRequest("Las entradas asignadas no pueden ser negativas.")
	}
	if req.EntradasUsadas != nil && *req.EntradasUsadas < 0 {
		return xerrors.BadRequest("Las entradas usadas no pueden ser negativas.")
	}

	if req.EntradasAsignadas != nil {
		balance.EntradasAsignadas = *req.EntradasAsignadas
	}
	if req.EntradasUsadas != nil {
		balance.EntradasUsadas = *req.EntradasUsadas
	}
	if req.FechaVencimiento != nil {
		balance.FechaVencimiento = *req.FechaVencimiento
	}

	if err := s.balanceRepo.Update(ctx, balance); err != nil {
		s.logger.Error("failed to update balance", zap.Int("balance_id", id), zap.Error(err))
		return xerrors.Internal("Error al actualizar el saldo.")
	}

	return nil
}

// ListUsages returns the usages recorded against a balance. The owning
// membership must be ACTIVO.
func (s *EntryService) ListUsages(ctx context.Context, balanceID int) ([]domain.EntryUsage, error) {
	balance, err := s.balanceRepo.FindByID(ctx, balanceID)
	if xerrors.Is(err, xerrors.ErrNotFound) {
		return nil, xerrors.NotFound("El saldo no existe.")
	}
	if err != nil {
		s.logger.Error("failed to find balance", zap.Int("balance_id", balanceID), zap.Error(err))
		return nil, xerrors.Internal("Error al obtener los usos.")
	}

	if err := s.requireActiveMembership(ctx, balance.CustomerMembershipID); err != nil {
		return nil, err
	}

	usages, err := s.usageRepo.ListByBalance(ctx, balanceID)
	if err != nil {
		s.logger.Error("failed to list usages", zap.Int("balance_id", balanceID), zap.Error(err))
		return nil, xerrors.Internal("Error al obtener los usos.")
	}

	return usages, nil
}

// RecordUsage consumes one entry from the balance. Validation order
// matters: an expired balance is reported before an exhausted one. The
// usage insert and the counter increment commit atomically.
func (s *EntryService) RecordUsage(ctx context.Context, balanceID int, req *domain.CreateUsageRequest) (*domain.EntryUsage, error) {
	balance, err := s.balanceRepo.FindByID(ctx, balanceID)
	if xerrors.Is(err, xerrors.ErrNotFound) {
		return nil, xerrors.NotFound("El saldo no existe.")
	}
	if err != nil {
		s.logger.Error("failed to find balance", zap.Int("balance_id", balanceID), zap.Error(err))
		return nil, xerrors.Internal("Error al registrar el uso de la entrada.")
	}

	if err := s.requireActiveMembership(ctx, balance.CustomerMembershipID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if balance.FechaVencimiento.Before(now) {
		return nil, xerrors.BadRequest("El saldo está vencido.")
	}
	if balance.EntradasUsadas >= balance.EntradasAsignadas {
		return nil, xerrors.BadRequest("No hay entradas disponibles en este saldo.")
	}
	if req.FechaUso.After(now) {
		return nil, xerrors.BadRequest("La FechaUso no puede ser futura.")
	}

	usage := &domain.EntryUsage{
		EntryBalanceID: balanceID,
		FechaUso:       req.FechaUso,
		CodComplejo:    req.CodComplejo,
		CodFuncion:     req.CodFuncion,
		IDEntrada:      req.IDEntrada,
	}

	if err := s.usageRepo.CreateAndConsume(ctx, usage); err != nil {
		s.logger.Error("failed to record entry usage", zap.Int("balance_id", balanceID), zap.Error(err))
		return nil, xerrors.Internal("Error al registrar el uso de la entrada.")
	}

	return usage, nil
}

func (s *EntryService) requireActiveMembership(ctx context.Context, membershipID int) error {
	m, err := s.membershipRepo.FindByID(ctx, membershipID)
	if xerrors.Is(err, xerrors.ErrNotFound) {
		return xerrors.BadRequest("La membresía asociada no existe o está inactiva.")
	}
	if err != nil {
		s.logger.Error("failed to find membership", zap.Int("membership_id", membershipID), zap.Error(err))
		return xerrors.Internal("Error al validar la membresía.")
	}
	if m.Estado != membership.EstadoActivo {
		return xerrors.BadRequest("La membresía asociada no existe o está inactiva.")
	}
	return nil
}
