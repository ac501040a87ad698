// internal/service/benefits/benefits_service_test.go
package benefits

import (
	"context"
	"testing"

	"loyalty-service/internal/domain/benefit"
	"loyalty-service/internal/domain/plan"
	xerrors "loyalty-service/internal/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeBenefitRepo struct {
	benefits map[int]*benefit.MembershipBenefit
	nextID   int
}

func newFakeBenefitRepo() *fakeBenefitRepo {
	return &fakeBenefitRepo{benefits: map[int]*benefit.MembershipBenefit{}, nextID: 1}
}

func (f *fakeBenefitRepo) Create(_ context.Context, b *benefit.MembershipBenefit) error {
	b.ID = f.nextID
	f.nextID++
	cp := *b
	f.benefits[b.ID] = &cp
	return nil
}

func (f *fakeBenefitRepo) FindByID(_ context.Context, id int) (*benefit.MembershipBenefit, error) {
	b, ok := f.benefits[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBenefitRepo) List(_ context.Context) ([]benefit.MembershipBenefit, error) {
	out := []benefit.MembershipBenefit{}
	for _, b := range f.benefits {
		out = append(out, *b)
	}
	return out, nil
}

func (f *fakeBenefitRepo) Update(_ context.Context, b *benefit.MembershipBenefit) error {
	if _, ok := f.benefits[b.ID]; !ok {
		return xerrors.ErrNotFound
	}
	cp := *b
	f.benefits[b.ID] = &cp
	return nil
}

func (f *fakeBenefitRepo) Delete(_ context.Context, id int) error {
	if _, ok := f.benefits[id]; !ok {
		return xerrors.ErrNotFound
	}
	delete(f.benefits, id)
	return nil
}

func (f *fakeBenefitRepo) ClaveExists(_ context.Context, planID int, clave string, excludeID int) (bool, error) {
	for _, b := range f.benefits {
		if b.ID != excludeID && b.PlanID == planID && b.Clave == clave {
			return true, nil
		}
	}
	return false, nil
}

type fakePlanRepo struct {
	plans map[int]*plan.MembershipPlan
}

func (f *fakePlanRepo) FindByID(_ context.Context, id int) (*plan.MembershipPlan, error) {
	p, ok := f.plans[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func newTestService() (*BenefitService, *fakeBenefitRepo) {
	repo := newFakeBenefitRepo()
	plans := &fakePlanRepo{plans: map[int]*plan.MembershipPlan{
		1: {ID: 1, Nombre: "Premium", Activo: true},
		2: {ID: 2, Nombre: "Clásico", Activo: false},
	}}
	return NewBenefitService(repo, plans, zap.NewNop()), repo
}

func descuentoRequest() *benefit.CreateBenefitRequest {
	obs := "2x1 en entradas los martes"
	dias := "MAR"
	return &benefit.CreateBenefitRequest{
		PlanID:         1,
		Clave:          "DESCUENTO_ENTRADA",
		Valor:          50,
		DiasAplicables: &dias,
		Observacion:    &obs,
	}
}

func TestCreateBenefit(t *testing.T) {
	svc, _ := newTestService()

	b, err := svc.Create(context.Background(), descuentoRequest())
	require.NoError(t, err)
	assert.NotZero(t, b.ID)

	got, err := svc.Get(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, "DESCUENTO_ENTRADA", got.Clave)
}

func TestCreateBenefitPlanChecks(t *testing.T) {
	svc, _ := newTestService()

	req := descuentoRequest()
	req.PlanID = 77
	_, err := svc.Create(context.Background(), req)
	assert.EqualError(t, err, "El plan especificado no existe o está inactivo.")

	req = descuentoRequest()
	req.PlanID = 2
	_, err = svc.Create(context.Background(), req)
	assert.EqualError(t, err, "El plan especificado no existe o está inactivo.")
	assert.True(t, xerrors.Is(err, xerrors.ErrBadRequest))
}

func TestCreateBenefitDuplicateClave(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), descuentoRequest())
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), descuentoRequest())
	require.Error(t, err)
	assert.True(t, xerrors.Is(err, xerrors.ErrConflict))
	assert.EqualError(t, err, "Ya existe un beneficio con esta clave para el plan especificado.")
}

func TestUpdateBenefitClaveConflictOnlyWhenChanged(t *testing.T) {
	svc, _ := newTestService()

	b, err := svc.Create(context.Background(), descuentoRequest())
	require.NoError(t, err)

	other := descuentoRequest()
	other.Clave = "CANDY_GRATIS"
	_, err = svc.Create(context.Background(), other)
	require.NoError(t, err)

	// Unchanged clave updates freely.
	req := descuentoRequest()
	req.Valor = 75
	require.NoError(t, svc.Update(context.Background(), b.ID, req))

	req.Clave = "CANDY_GRATIS"
	err = svc.Update(context.Background(), b.ID, req)
	require.Error(t, err)
	assert.True(t, xerrors.Is(err, xerrors.ErrConflict))
}

func TestUpdateBenefitUnknown(t *testing.T) {
	svc, _ := newTestService()

	err := svc.Update(context.Background(), 42, descuentoRequest())
	require.Error(t, err)
	assert.EqualError(t, err, "El beneficio no existe.")
}

func TestDeleteBenefitIsHard(t *testing.T) {
	svc, _ := newTestService()

	b, err := svc.Create(context.Background(), descuentoRequest())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), b.ID))

	_, err = svc.Get(context.Background(), b.ID)
	require.Error(t, err)
	assert.True(t, xerrors.Is(err, xerrors.ErrNotFound))

	err = svc.Delete(context.Background(), b.ID)
	assert.EqualError(t, err, "El beneficio no existe.")
}
