// internal/service/payments/payments_service_test.go
package payments

import (
	"context"
	"testing"
	"time"

	"loyalty-service/internal/domain/membership"
	"loyalty-service/internal/domain/payment"
	xerrors "loyalty-service/internal/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakePaymentRepo struct {
	payments map[int]*payment.MembershipPayment
	nextID   int
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{payments: map[int]*payment.MembershipPayment{}, nextID: 1}
}

func (f *fakePaymentRepo) Create(_ context.Context, p *payment.MembershipPayment) error {
	p.ID = f.nextID
	f.nextID++
	cp := *p
	f.payments[p.ID] = &cp
	return nil
}

func (f *fakePaymentRepo) FindByID(_ context.Context, id int) (*payment.MembershipPayment, error) {
	p, ok := f.payments[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePaymentRepo) List(_ context.Context) ([]payment.MembershipPayment, error) {
	out := []payment.MembershipPayment{}
	for _, p := range f.payments {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakePaymentRepo) Update(_ context.Context, p *payment.MembershipPayment) error {
	if _, ok := f.payments[p.ID]; !ok {
		return xerrors.ErrNotFound
	}
	cp := *p
	f.payments[p.ID] = &cp
	return nil
}

func (f *fakePaymentRepo) Delete(_ context.Context, id int) error {
	if _, ok := f.payments[id]; !ok {
		return xerrors.ErrNotFound
	}
	delete(f.payments, id)
	return nil
}

func (f *fakePaymentRepo) PeriodoExists(_ context.Context, membershipID, periodo, excludeID int) (bool, error) {
	for _, p := range f.payments {
		if p.ID != excludeID && p.CustomerMembershipID == membershipID &&
			p.Periodo != nil && *p.Periodo == periodo {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakePaymentRepo) ReferenciaExists(_ context.Context, referencia string, excludeID int) (bool, error) {
	for _, p := range f.payments {
		if p.ID != excludeID && p.ReferenciaExterna != nil && *p.ReferenciaExterna == referencia {
			return true, nil
		}
	}
	return false, nil
}

type fakeMembershipRepo struct {
	memberships map[int]*membership.CustomerMembership
}

func (f *fakeMembershipRepo) FindByID(_ context.Context, id int) (*membership.CustomerMembership, error) {
	m, ok := f.memberships[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	cp := *m
	return &cp, nil
}

func newTestService() (*PaymentService, *fakePaymentRepo) {
	repo := newFakePaymentRepo()
	memberships := &fakeMembershipRepo{memberships: map[int]*membership.CustomerMembership{
		1: {ID: 1, CodCliente: 1001, PlanID: 1, Estado: membership.EstadoActivo},
		2: {ID: 2, CodCliente: 1002, PlanID: 1, Estado: membership.EstadoInactivo},
		3: {ID: 3, CodCliente: 1003, PlanID: 1, Estado: membership.EstadoActivo},
	}}
	return NewPaymentService(repo, memberships, zap.NewNop()), repo
}

func paymentRequest() *payment.CreatePaymentRequest {
	periodo := 202508
	return &payment.CreatePaymentRequest{
		CustomerMembershipID: 1,
		FechaPago:            time.Now().UTC().Add(-time.Hour),
		Monto:                19.99,
		Estado:               "APROBADO",
		Periodo:              &periodo,
	}
}

func TestCreatePayment(t *testing.T) {
	svc, _ := newTestService()

	p, err := svc.Create(context.Background(), paymentRequest())
	require.NoError(t, err)
	assert.NotZero(t, p.ID)
	assert.Nil(t, p.ReferenciaExterna)

	got, err := svc.Get(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, 19.99, got.Monto)
}

func TestCreatePaymentValidation(t *testing.T) {
	svc, _ := newTestService()

	req := paymentRequest()
	req.CustomerMembershipID = 99
	_, err := svc.Create(context.Background(), req)
	assert.EqualError(t, err, "La membresía especificada no existe o está inactiva.")

	req = paymentRequest()
	req.CustomerMembershipID = 2
	_, err = svc.Create(context.Background(), req)
	assert.EqualError(t, err, "La membresía especificada no existe o está inactiva.")

	req = paymentRequest()
	bad := 202513
	req.Periodo = &bad
	_, err = svc.Create(context.Background(), req)
	assert.EqualError(t, err, "El Periodo debe estar en formato yyyyMM (ej. 202506).")

	req = paymentRequest()
	req.FechaPago = time.Now().UTC().Add(time.Hour)
	_, err = svc.Create(context.Background(), req)
	assert.EqualError(t, err, "La FechaPago no puede ser futura.")
}

func TestCreatePaymentDuplicatePeriodo(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), paymentRequest())
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), paymentRequest())
	require.Error(t, err)
	assert.True(t, xerrors.Is(err, xerrors.ErrConflict))
	assert.EqualError(t, err, "Ya existe un pago para este período y membresía.")
}

func TestCreatePaymentDuplicateReferencia(t *testing.T) {
	svc, _ := newTestService()

	req := paymentRequest()
	req.ReferenciaExterna = "MP-12345"
	_, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	other := paymentRequest()
	periodo := 202509
	other.Periodo = &periodo
	other.ReferenciaExterna = "MP-12345"
	_, err = svc.Create(context.Background(), other)
	require.Error(t, err)
	assert.True(t, xerrors.Is(err, xerrors.ErrConflict))
	assert.EqualError(t, err, "Ya existe un pago con esta referencia externa.")
}

func TestUpdatePaymentSkipsUnchangedConflicts(t *testing.T) {
	svc, _ := newTestService()

	req := paymentRequest()
	req.ReferenciaExterna = "MP-12345"
	p, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	// Same periodo and reference on the same payment: no conflict.
	req.Monto = 24.99
	require.NoError(t, svc.Update(context.Background(), p.ID, req))

	got, err := svc.Get(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, 24.99, got.Monto)
}

// Pins the conflict scope: the periodo check only fires when periodo itself
// changes, so moving a payment to another membership with the same periodo
// passes even when that membership already has one for the period.
func TestUpdatePaymentPeriodoCheckSkippedWhenUnchanged(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), paymentRequest())
	require.NoError(t, err)

	moved := paymentRequest()
	moved.CustomerMembershipID = 3
	p, err := svc.Create(context.Background(), moved)
	require.NoError(t, err)

	moved.CustomerMembershipID = 1
	err = svc.Update(context.Background(), p.ID, moved)
	assert.NoError(t, err)
}

func TestUpdatePaymentReferenceConflict(t *testing.T) {
	svc, _ := newTestService()

	first := paymentRequest()
	first.ReferenciaExterna = "MP-11111"
	_, err := svc.Create(context.Background(), first)
	require.NoError(t, err)

	second := paymentRequest()
	periodo := 202509
	second.Periodo = &periodo
	second.ReferenciaExterna = "MP-22222"
	p, err := svc.Create(context.Background(), second)
	require.NoError(t, err)

	second.ReferenciaExterna = "MP-11111"
	err = svc.Update(context.Background(), p.ID, second)
	require.Error(t, err)
	assert.True(t, xerrors.Is(err, xerrors.ErrConflict))
	assert.EqualError(t, err, "Ya existe un pago con esta nueva referencia externa.")
}

func TestUpdatePaymentUnknown(t *testing.T) {
	svc, _ := newTestService()

	err := svc.Update(context.Background(), 42, paymentRequest())
	require.Error(t, err)
	assert.True(t, xerrors.Is(err, xerrors.ErrNotFound))
	assert.EqualError(t, err, "El pago no existe.")
}

func TestDeletePaymentIsHard(t *testing.T) {
	svc, _ := newTestService()

	p, err := svc.Create(context.Background(), paymentRequest())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), p.ID))

	_, err = svc.Get(context.Background(), p.ID)
	require.Error(t, err)
	assert.True(t, xerrors.Is(err, xerrors.ErrNotFound))

	err = svc.Delete(context.Background(), p.ID)
	assert.EqualError(t, err, "El pago no existe.")
}
