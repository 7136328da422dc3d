package fleet

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/checkbus/fleet-backend/internal/domain"
)

var _ busRepo = &busRepoMock{}

type busRepoMock struct {
	GetByIDFunc      func(ctx context.Context, id uuid.UUID) (domain.Bus, error)
	UpdateStatusFunc func(ctx context.Context, id, statusID uuid.UUID) error

	calls struct {
		GetByID      []struct{ ID uuid.UUID }
		UpdateStatus []struct{ ID, StatusID uuid.UUID }
	}
	lock sync.RWMutex
}

func (mock *busRepoMock) GetByID(ctx context.Context, id uuid.UUID) (domain.Bus, error) {
	if mock.GetByIDFunc == nil {
		panic("busRepoMock.GetByIDFunc: method is nil but busRepo.GetByID was just called")
	}
	mock.lock.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, struct{ ID uuid.UUID }{ID: id})
	mock.lock.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *busRepoMock) UpdateStatus(ctx context.Context, id, statusID uuid.UUID) error {
	if mock.UpdateStatusFunc == nil {
		panic("busRepoMock.UpdateStatusFunc: method is nil but busRepo.UpdateStatus was just called")
	}
	mock.lock.Lock()
	mock.calls.UpdateStatus = append(mock.calls.UpdateStatus, struct{ ID, StatusID uuid.UUID }{ID: id, StatusID: statusID})
	mock.lock.Unlock()
	return mock.UpdateStatusFunc(ctx, id, statusID)
}

func (mock *busRepoMock) UpdateStatusCalls() []struct{ ID, StatusID uuid.UUID } {
	mock.lock.RLock()
	calls := mock.calls.UpdateStatus
	mock.lock.RUnlock()
	return calls
}

var _ incidentRepo = &countRepoMock{}
var _ maintenanceRepo = &countRepoMock{}

// countRepoMock serves both count-only dependencies.
type countRepoMock struct {
	CountForBusByStatusNamesFunc func(ctx context.Context, busID uuid.UUID, names []string) (int, error)

	calls struct {
		CountForBusByStatusNames []struct {
			BusID uuid.UUID
			Names []string
		}
	}
	lock sync.RWMutex
}

func (mock *countRepoMock) CountForBusByStatusNames(ctx context.Context, busID uuid.UUID, names []string) (int, error) {
	if mock.CountForBusByStatusNamesFunc == nil {
		panic("countRepoMock.CountForBusByStatusNamesFunc: method is nil but CountForBusByStatusNames was just called")
	}
	callInfo := struct {
		BusID uuid.UUID
		Names []string
	}{BusID: busID, Names: names}
	mock.lock.Lock()
	mock.calls.CountForBusByStatusNames = append(mock.calls.CountForBusByStatusNames, callInfo)
	mock.lock.Unlock()
	return mock.CountForBusByStatusNamesFunc(ctx, busID, names)
}

var _ catalogResolver = &catalogResolverMock{}

type catalogResolverMock struct {
	ResolveOrCreateFunc func(ctx context.Context, catalog domain.Catalog, name string) (uuid.UUID, error)

	calls struct {
		ResolveOrCreate []struct {
			Catalog domain.Catalog
			Name    string
		}
	}
	lock sync.RWMutex
}

func (mock *catalogResolverMock) ResolveOrCreate(ctx context.Context, catalog domain.Catalog, name string) (uuid.UUID, error) {
	if mock.ResolveOrCreateFunc == nil {
		panic("catalogResolverMock.ResolveOrCreateFunc: method is nil but ResolveOrCreate was just called")
	}
	callInfo := struct {
		Catalog domain.Catalog
		Name    string
	}{Catalog: catalog, Name: name}
	mock.lock.Lock()
	mock.calls.ResolveOrCreate = append(mock.calls.ResolveOrCreate, callInfo)
	mock.lock.Unlock()
	return mock.ResolveOrCreateFunc(ctx, catalog, name)
}

func (mock *catalogResolverMock) ResolveOrCreateCalls() []struct {
	Catalog domain.Catalog
	Name    string
} {
	mock.lock.RLock()
	calls := mock.calls.ResolveOrCreate
	mock.lock.RUnlock()
	return calls
}
