package maintenance

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/checkbus/fleet-backend/internal/domain"
)

var _ maintenanceRepo = &maintenanceRepoMock{}

type maintenanceRepoMock struct {
	CreateFunc  func(ctx context.Context, m domain.Maintenance) (domain.Maintenance, error)
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (domain.Maintenance, error)
	UpdateFunc  func(ctx context.Context, m domain.Maintenance) (domain.Maintenance, error)

	calls struct {
		Create []struct{ Maintenance domain.Maintenance }
		Update []struct{ Maintenance domain.Maintenance }
	}
	lock sync.RWMutex
}

func (mock *maintenanceRepoMock) Create(ctx context.Context, m domain.Maintenance) (domain.Maintenance, error) {
	if mock.CreateFunc == nil {
		panic("maintenanceRepoMock.CreateFunc: method is nil but maintenanceRepo.Create was just called")
	}
	mock.lock.Lock()
	mock.calls.Create = append(mock.calls.Create, struct{ Maintenance domain.Maintenance }{Maintenance: m})
	mock.lock.Unlock()
	return mock.CreateFunc(ctx, m)
}

func (mock *maintenanceRepoMock) GetByID(ctx context.Context, id uuid.UUID) (domain.Maintenance, error) {
	if mock.GetByIDFunc == nil {
		panic("maintenanceRepoMock.GetByIDFunc: method is nil but maintenanceRepo.GetByID was just called")
	}
	return mock.GetByIDFunc(ctx, id)
}

func (mock *maintenanceRepoMock) Update(ctx context.Context, m domain.Maintenance) (domain.Maintenance, error) {
	if mock.UpdateFunc == nil {
		panic("maintenanceRepoMock.UpdateFunc: method is nil but maintenanceRepo.Update was just called")
	}
	mock.lock.Lock()
	mock.calls.Update = append(mock.calls.Update, struct{ Maintenance domain.Maintenance }{Maintenance: m})
	mock.lock.Unlock()
	return mock.UpdateFunc(ctx, m)
}

func (mock *maintenanceRepoMock) CreateCalls() []struct{ Maintenance domain.Maintenance } {
	mock.lock.RLock()
	calls := mock.calls.Create
	mock.lock.RUnlock()
	return calls
}

func (mock *maintenanceRepoMock) UpdateCalls() []struct{ Maintenance domain.Maintenance } {
	mock.lock.RLock()
	calls := mock.calls.Update
	mock.lock.RUnlock()
	return calls
}

var _ catalogRepo = &catalogRepoMock{}

type catalogRepoMock struct {
	ResolveOrCreateFunc func(ctx context.Context, catalog domain.Catalog, name string) (uuid.UUID, error)

	mu  sync.Mutex
	ids map[string]uuid.UUID
}

func (mock *catalogRepoMock) ResolveOrCreate(ctx context.Context, catalog domain.Catalog, name string) (uuid.UUID, error) {
	if mock.ResolveOrCreateFunc != nil {
		return mock.ResolveOrCreateFunc(ctx, catalog, name)
	}
	return mock.id(catalog, name), nil
}

func (mock *catalogRepoMock) id(catalog domain.Catalog, name string) uuid.UUID {
	mock.mu.Lock()
	defer mock.mu.Unlock()
	if mock.ids == nil {
		mock.ids = make(map[string]uuid.UUID)
	}
	key := string(catalog) + "/" + name
	if _, ok := mock.ids[key]; !ok {
		mock.ids[key] = uuid.New()
	}
	return mock.ids[key]
}

var _ alertTrigger = &alertTriggerMock{}

type alertTriggerMock struct {
	OnMaintenanceCreatedFunc   func(ctx context.Context, maintenanceID uuid.UUID) error
	OnMaintenanceCompletedFunc func(ctx context.Context, maintenanceID uuid.UUID) error

	calls struct {
		OnMaintenanceCreated   []struct{ MaintenanceID uuid.UUID }
		OnMaintenanceCompleted []struct{ MaintenanceID uuid.UUID }
	}
	lock sync.RWMutex
}

func (mock *alertTriggerMock) OnMaintenanceCreated(ctx context.Context, maintenanceID uuid.UUID) error {
	mock.lock.Lock()
	mock.calls.OnMaintenanceCreated = append(mock.calls.OnMaintenanceCreated, struct{ MaintenanceID uuid.UUID }{MaintenanceID: maintenanceID})
	mock.lock.Unlock()
	if mock.OnMaintenanceCreatedFunc == nil {
		return nil
	}
	return mock.OnMaintenanceCreatedFunc(ctx, maintenanceID)
}

func (mock *alertTriggerMock) OnMaintenanceCompleted(ctx context.Context, maintenanceID uuid.UUID) error {
	mock.lock.Lock()
	mock.calls.OnMaintenanceCompleted = append(mock.calls.OnMaintenanceCompleted, struct{ MaintenanceID uuid.UUID }{MaintenanceID: maintenanceID})
	mock.lock.Unlock()
	if mock.OnMaintenanceCompletedFunc == nil {
		return nil
	}
	return mock.OnMaintenanceCompletedFunc(ctx, maintenanceID)
}

func (mock *alertTriggerMock) OnMaintenanceCreatedCalls() []struct{ MaintenanceID uuid.UUID } {
	mock.lock.RLock()
	calls := mock.calls.OnMaintenanceCreated
	mock.lock.RUnlock()
	return calls
}

func (mock *alertTriggerMock) OnMaintenanceCompletedCalls() []struct{ MaintenanceID uuid.UUID } {
	mock.lock.RLock()
	calls := mock.calls.OnMaintenanceCompleted
	mock.lock.RUnlock()
	return calls
}

var _ reconciler = &reconcilerMock{}

type reconcilerMock struct {
	ReconcileFunc func(ctx context.Context, busID uuid.UUID) error

	calls struct {
		Reconcile []struct{ BusID uuid.UUID }
	}
	lock sync.RWMutex
}

func (mock *reconcilerMock) Reconcile(ctx context.Context, busID uuid.UUID) error {
	mock.lock.Lock()
	mock.calls.Reconcile = append(mock.calls.Reconcile, struct{ BusID uuid.UUID }{BusID: busID})
	mock.lock.Unlock()
	if mock.ReconcileFunc == nil {
		return nil
	}
	return mock.ReconcileFunc(ctx, busID)
}

func (mock *reconcilerMock) ReconcileCalls() []struct{ BusID uuid.UUID } {
	mock.lock.RLock()
	calls := mock.calls.Reconcile
	mock.lock.RUnlock()
	return calls
}
