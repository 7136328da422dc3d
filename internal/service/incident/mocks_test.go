package incident

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/checkbus/fleet-backend/internal/domain"
)

var _ incidentRepo = &incidentRepoMock{}

type incidentRepoMock struct {
	CreateFunc       func(ctx context.Context, inc domain.Incident) (domain.Incident, error)
	GetByIDFunc      func(ctx context.Context, id uuid.UUID) (domain.Incident, error)
	UpdateStatusFunc func(ctx context.Context, id, statusID uuid.UUID) error

	calls struct {
		Create       []struct{ Incident domain.Incident }
		UpdateStatus []struct{ ID, StatusID uuid.UUID }
	}
	lock sync.RWMutex
}

func (mock *incidentRepoMock) Create(ctx context.Context, inc domain.Incident) (domain.Incident, error) {
	if mock.CreateFunc == nil {
		panic("incidentRepoMock.CreateFunc: method is nil but incidentRepo.Create was just called")
	}
	mock.lock.Lock()
	mock.calls.Create = append(mock.calls.Create, struct{ Incident domain.Incident }{Incident: inc})
	mock.lock.Unlock()
	return mock.CreateFunc(ctx, inc)
}

func (mock *incidentRepoMock) GetByID(ctx context.Context, id uuid.UUID) (domain.Incident, error) {
	if mock.GetByIDFunc == nil {
		panic("incidentRepoMock.GetByIDFunc: method is nil but incidentRepo.GetByID was just called")
	}
	return mock.GetByIDFunc(ctx, id)
}

func (mock *incidentRepoMock) UpdateStatus(ctx context.Context, id, statusID uuid.UUID) error {
	if mock.UpdateStatusFunc == nil {
		panic("incidentRepoMock.UpdateStatusFunc: method is nil but incidentRepo.UpdateStatus was just called")
	}
	mock.lock.Lock()
	mock.calls.UpdateStatus = append(mock.calls.UpdateStatus, struct{ ID, StatusID uuid.UUID }{ID: id, StatusID: statusID})
	mock.lock.Unlock()
	return mock.UpdateStatusFunc(ctx, id, statusID)
}

func (mock *incidentRepoMock) CreateCalls() []struct{ Incident domain.Incident } {
	mock.lock.RLock()
	calls := mock.calls.Create
	mock.lock.RUnlock()
	return calls
}

func (mock *incidentRepoMock) UpdateStatusCalls() []struct{ ID, StatusID uuid.UUID } {
	mock.lock.RLock()
	calls := mock.calls.UpdateStatus
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

// id returns a stable identifier for a catalog entry so tests can compare
// resolved ids without wiring.
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
	OnIncidentCreatedFunc func(ctx context.Context, incidentID uuid.UUID) error

	calls struct {
		OnIncidentCreated []struct{ IncidentID uuid.UUID }
	}
	lock sync.RWMutex
}

func (mock *alertTriggerMock) OnIncidentCreated(ctx context.Context, incidentID uuid.UUID) error {
	mock.lock.Lock()
	mock.calls.OnIncidentCreated = append(mock.calls.OnIncidentCreated, struct{ IncidentID uuid.UUID }{IncidentID: incidentID})
	mock.lock.Unlock()
	if mock.OnIncidentCreatedFunc == nil {
		return nil
	}
	return mock.OnIncidentCreatedFunc(ctx, incidentID)
}

func (mock *alertTriggerMock) OnIncidentCreatedCalls() []struct{ IncidentID uuid.UUID } {
	mock.lock.RLock()
	calls := mock.calls.OnIncidentCreated
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
