package document

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/checkbus/fleet-backend/internal/domain"
)

var _ documentRepo = &documentRepoMock{}

type documentRepoMock struct {
	CreateFunc  func(ctx context.Context, d domain.Document) (domain.Document, error)
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (domain.Document, error)
	UpdateFunc  func(ctx context.Context, d domain.Document) (domain.Document, error)

	calls struct {
		Create []struct{ Document domain.Document }
		Update []struct{ Document domain.Document }
	}
	lock sync.RWMutex
}

func (mock *documentRepoMock) Create(ctx context.Context, d domain.Document) (domain.Document, error) {
	if mock.CreateFunc == nil {
		panic("documentRepoMock.CreateFunc: method is nil but documentRepo.Create was just called")
	}
	mock.lock.Lock()
	mock.calls.Create = append(mock.calls.Create, struct{ Document domain.Document }{Document: d})
	mock.lock.Unlock()
	return mock.CreateFunc(ctx, d)
}

func (mock *documentRepoMock) GetByID(ctx context.Context, id uuid.UUID) (domain.Document, error) {
	if mock.GetByIDFunc == nil {
		panic("documentRepoMock.GetByIDFunc: method is nil but documentRepo.GetByID was just called")
	}
	return mock.GetByIDFunc(ctx, id)
}

func (mock *documentRepoMock) Update(ctx context.Context, d domain.Document) (domain.Document, error) {
	if mock.UpdateFunc == nil {
		panic("documentRepoMock.UpdateFunc: method is nil but documentRepo.Update was just called")
	}
	mock.lock.Lock()
	mock.calls.Update = append(mock.calls.Update, struct{ Document domain.Document }{Document: d})
	mock.lock.Unlock()
	return mock.UpdateFunc(ctx, d)
}

func (mock *documentRepoMock) CreateCalls() []struct{ Document domain.Document } {
	mock.lock.RLock()
	calls := mock.calls.Create
	mock.lock.RUnlock()
	return calls
}

func (mock *documentRepoMock) UpdateCalls() []struct{ Document domain.Document } {
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
