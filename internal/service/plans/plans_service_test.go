// internal/service/plans/plans_service_test.go
package plans

import (
	"context"
	"testing"

	"loyalty-service/internal/domain/plan"
	xerrors "loyalty-service/internal/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakePlanRepo struct {
	plans  map[int]*plan.MembershipPlan
	nextID int
}

func newFakePlanRepo() *fakePlanRepo {
	return &fakePlanRepo{plans: map[int]*plan.MembershipPlan{}, nextID: 1}
}

func (f *fakePlanRepo) Create(_ context.Context, p *plan.MembershipPlan) error {
	p.ID = f.nextID
	f.nextID++
	cp := *p
	f.plans[p.ID] = &cp
	return nil
}

func (f *fakePlanRepo) FindByID(_ context.Context, id int) (*plan.MembershipPlan, error) {
	p, ok := f.plans[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePlanRepo) ListActive(_ context.Context) ([]plan.MembershipPlan, error) {
	out := []plan.MembershipPlan{}
	for _, p := range f.plans {
		if p.Activo {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakePlanRepo) Update(_ context.Context, p *plan.MembershipPlan) error {
	if _, ok := f.plans[p.ID]; !ok {
		return xerrors.ErrNotFound
	}
	cp := *p
	f.plans[p.ID] = &cp
	return nil
}

func (f *fakePlanRepo) ActiveNameExists(_ context.Context, nombre string, excludeID int) (bool, error) {
	for _, p := range f.plans {
		if p.ID != excludeID && p.Activo && p.Nombre == nombre {
			return true, nil
		}
	}
	return false, nil
}

func newTestService() (*PlanService, *fakePlanRepo) {
	repo := newFakePlanRepo()
	return NewPlanService(repo, zap.NewNop()), repo
}

func premiumRequest() *plan.CreatePlanRequest {
	return &plan.CreatePlanRequest{
		Nombre:            "Premium",
		PrecioMensual:     19.99,
		EntradasMensuales: 5,
		Nivel:             2,
		Activo:            true,
	}
}

func TestCreatePlan(t *testing.T) {
	svc, _ := newTestService()

	p, err := svc.Create(context.Background(), premiumRequest())
	require.NoError(t, err)
	assert.NotZero(t, p.ID)
	assert.False(t, p.FechaCreacion.IsZero())
	assert.Nil(t, p.MesesAcumulacionMax)
}

func TestCreatePlanDuplicateActiveName(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), premiumRequest())
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), premiumRequest())
	require.Error(t, err)
	assert.True(t, xerrors.Is(err, xerrors.ErrConflict))
	assert.EqualError(t, err, "Ya existe un plan activo con ese nombre.")
}

func TestCreatePlanNameFreedAfterSoftDelete(t *testing.T) {
	svc, _ := newTestService()

	p, err := svc.Create(context.Background(), premiumRequest())
	require.NoError(t, err)
	require.NoError(t, svc.Delete(context.Background(), p.ID))

	_, err = svc.Create(context.Background(), premiumRequest())
	assert.NoError(t, err)
}

func TestCreatePlanMesesAcumulacionRange(t *testing.T) {
	svc, _ := newTestService()

	for _, fuera := range []int{13, 0, -3} {
		req := premiumRequest()
		meses := fuera
		req.MesesAcumulacionMax = &meses
		_, err := svc.Create(context.Background(), req)
		require.Error(t, err)
		assert.True(t, xerrors.Is(err, xerrors.ErrBadRequest))
		assert.EqualError(t, err, "Los meses de acumulación máxima deben estar entre 1 y 12.")
	}

	req := premiumRequest()
	meses := 12
	req.MesesAcumulacionMax = &meses
	p, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, p.MesesAcumulacionMax)
	assert.Equal(t, 12, *p.MesesAcumulacionMax)
}

func TestGetHidesInactivePlan(t *testing.T) {
	svc, _ := newTestService()

	p, err := svc.Create(context.Background(), premiumRequest())
	require.NoError(t, err)
	require.NoError(t, svc.Delete(context.Background(), p.ID))

	_, err = svc.Get(context.Background(), p.ID)
	require.Error(t, err)
	assert.True(t, xerrors.Is(err, xerrors.ErrNotFound))
	assert.EqualError(t, err, "El plan no existe o está inactivo.")

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestUpdatePlanNameConflictOnlyWhenChanged(t *testing.T) {
	svc, _ := newTestService()

	p, err := svc.Create(context.Background(), premiumRequest())
	require.NoError(t, err)

	other := premiumRequest()
	other.Nombre = "Clásico"
	_, err = svc.Create(context.Background(), other)
	require.NoError(t, err)

	// Same name, no conflict check fires.
	req := premiumRequest()
	req.PrecioMensual = 24.99
	require.NoError(t, svc.Update(context.Background(), p.ID, req))

	// Renaming onto the other active plan conflicts.
	req.Nombre = "Clásico"
	err = svc.Update(context.Background(), p.ID, req)
	require.Error(t, err)
	assert.True(t, xerrors.Is(err, xerrors.ErrConflict))
	assert.EqualError(t, err, "Ya existe otro plan activo con ese nombre.")
}

func TestUpdatePlanUnknown(t *testing.T) {
	svc, _ := newTestService()

	err := svc.Update(context.Background(), 42, premiumRequest())
	require.Error(t, err)
	assert.EqualError(t, err, "El plan no existe.")
}

func TestDeletePlanTwice(t *testing.T) {
	svc, repo := newTestService()
	p, err := svc.Create(context.Background(), premiumRequest())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), p.ID))
	assert.False(t, repo.plans[p.ID].Activo)

	err = svc.Delete(context.Background(), p.ID)
	require.Error(t, err)
	assert.True(t, xerrors.Is(err, xerrors.ErrNotFound))
	assert.EqualError(t, err, "El plan no existe o ya está inactivo.")
}
