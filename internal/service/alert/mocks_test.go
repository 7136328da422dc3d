package alert

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/checkbus/fleet-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// alertRepo
// ---------------------------------------------------------------------------

var _ alertRepo = &alertRepoMock{}

type alertRepoMock struct {
	CreateFunc       func(ctx context.Context, a domain.Alert) (domain.Alert, error)
	UpdateStatusFunc func(ctx context.Context, id, statusID uuid.UUID) error
	ListFunc         func(ctx context.Context, filter domain.AlertFilter) ([]domain.Alert, error)

	calls struct {
		Create       []domain.Alert
		UpdateStatus []struct{ ID, StatusID uuid.UUID }
	}
	lock sync.RWMutex
}

func (mock *alertRepoMock) Create(ctx context.Context, a domain.Alert) (domain.Alert, error) {
	if mock.CreateFunc == nil {
		panic("alertRepoMock.CreateFunc: method is nil but alertRepo.Create was just called")
	}
	mock.lock.Lock()
	mock.calls.Create = append(mock.calls.Create, a)
	mock.lock.Unlock()
	return mock.CreateFunc(ctx, a)
}

func (mock *alertRepoMock) CreateCalls() []domain.Alert {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Create
}

func (mock *alertRepoMock) UpdateStatus(ctx context.Context, id, statusID uuid.UUID) error {
	if mock.UpdateStatusFunc == nil {
		panic("alertRepoMock.UpdateStatusFunc: method is nil but alertRepo.UpdateStatus was just called")
	}
	mock.lock.Lock()
	mock.calls.UpdateStatus = append(mock.calls.UpdateStatus, struct{ ID, StatusID uuid.UUID }{id, statusID})
	mock.lock.Unlock()
	return mock.UpdateStatusFunc(ctx, id, statusID)
}

func (mock *alertRepoMock) UpdateStatusCalls() []struct{ ID, StatusID uuid.UUID } {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.UpdateStatus
}

func (mock *alertRepoMock) List(ctx context.Context, filter domain.AlertFilter) ([]domain.Alert, error) {
	if mock.ListFunc == nil {
		panic("alertRepoMock.ListFunc: method is nil but alertRepo.List was just called")
	}
	return mock.ListFunc(ctx, filter)
}

// ---------------------------------------------------------------------------
// catalogRepo — a name→id table usable as-is by most tests
// ---------------------------------------------------------------------------

var _ catalogRepo = &catalogRepoMock{}

// catalogRepoMock resolves names to stable generated ids, remembering them so
// repeated resolutions agree. Tests can look ids up via id().
type catalogRepoMock struct {
	ResolveOrCreateFunc          func(ctx context.Context, catalog domain.Catalog, name string) (uuid.UUID, error)
	ResolveOrCreateAlertTypeFunc func(ctx context.Context, name, category string) (uuid.UUID, error)

	ids  map[string]uuid.UUID
	lock sync.Mutex
}

func (mock *catalogRepoMock) id(catalog domain.Catalog, name string) uuid.UUID {
	mock.lock.Lock()
	defer mock.lock.Unlock()
	if mock.ids == nil {
		mock.ids = map[string]uuid.UUID{}
	}
	key := string(catalog) + "/" + name
	if id, ok := mock.ids[key]; ok {
		return id
	}
	id := uuid.New()
	mock.ids[key] = id
	return id
}

func (mock *catalogRepoMock) ResolveOrCreate(ctx context.Context, catalog domain.Catalog, name string) (uuid.UUID, error) {
	if mock.ResolveOrCreateFunc != nil {
		return mock.ResolveOrCreateFunc(ctx, catalog, name)
	}
	return mock.id(catalog, name), nil
}

func (mock *catalogRepoMock) ResolveOrCreateAlertType(ctx context.Context, name, category string) (uuid.UUID, error) {
	if mock.ResolveOrCreateAlertTypeFunc != nil {
		return mock.ResolveOrCreateAlertTypeFunc(ctx, name, category)
	}
	return mock.id(domain.CatalogAlertType, name), nil
}

// ---------------------------------------------------------------------------
// documentRepo
// ---------------------------------------------------------------------------

var _ documentRepo = &documentRepoMock{}

type documentRepoMock struct {
	ListExpiringBetweenFunc func(ctx context.Context, from, to time.Time) ([]domain.Document, error)
	ListExpiredBeforeFunc   func(ctx context.Context, day time.Time, notStatusID uuid.UUID) ([]domain.Document, error)
	UpdateStatusFunc        func(ctx context.Context, id, statusID uuid.UUID) error

	calls struct {
		UpdateStatus []struct{ ID, StatusID uuid.UUID }
	}
	lock sync.RWMutex
}

func (mock *documentRepoMock) ListExpiringBetween(ctx context.Context, from, to time.Time) ([]domain.Document, error) {
	if mock.ListExpiringBetweenFunc == nil {
		panic("documentRepoMock.ListExpiringBetweenFunc: method is nil but documentRepo.ListExpiringBetween was just called")
	}
	return mock.ListExpiringBetweenFunc(ctx, from, to)
}

func (mock *documentRepoMock) ListExpiredBefore(ctx context.Context, day time.Time, notStatusID uuid.UUID) ([]domain.Document, error) {
	if mock.ListExpiredBeforeFunc == nil {
		panic("documentRepoMock.ListExpiredBeforeFunc: method is nil but documentRepo.ListExpiredBefore was just called")
	}
	return mock.ListExpiredBeforeFunc(ctx, day, notStatusID)
}

func (mock *documentRepoMock) UpdateStatus(ctx context.Context, id, statusID uuid.UUID) error {
	if mock.UpdateStatusFunc == nil {
		panic("documentRepoMock.UpdateStatusFunc: method is nil but documentRepo.UpdateStatus was just called")
	}
	mock.lock.Lock()
	mock.calls.UpdateStatus = append(mock.calls.UpdateStatus, struct{ ID, StatusID uuid.UUID }{id, statusID})
	mock.lock.Unlock()
	return mock.UpdateStatusFunc(ctx, id, statusID)
}

func (mock *documentRepoMock) UpdateStatusCalls() []struct{ ID, StatusID uuid.UUID } {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.UpdateStatus
}

// ---------------------------------------------------------------------------
// busRepo
// ---------------------------------------------------------------------------

var _ busRepo = &busRepoMock{}

type busRepoMock struct {
	GetByIDFunc                  func(ctx context.Context, id uuid.UUID) (domain.Bus, error)
	ListExtinguisherExpiringFunc func(ctx context.Context, from, to time.Time) ([]domain.Bus, error)
	ListInspectionExpiringFunc   func(ctx context.Context, from, to time.Time) ([]domain.Bus, error)
}

func (mock *busRepoMock) GetByID(ctx context.Context, id uuid.UUID) (domain.Bus, error) {
	if mock.GetByIDFunc == nil {
		panic("busRepoMock.GetByIDFunc: method is nil but busRepo.GetByID was just called")
	}
	return mock.GetByIDFunc(ctx, id)
}

func (mock *busRepoMock) ListExtinguisherExpiring(ctx context.Context, from, to time.Time) ([]domain.Bus, error) {
	if mock.ListExtinguisherExpiringFunc == nil {
		panic("busRepoMock.ListExtinguisherExpiringFunc: method is nil but busRepo.ListExtinguisherExpiring was just called")
	}
	return mock.ListExtinguisherExpiringFunc(ctx, from, to)
}

func (mock *busRepoMock) ListInspectionExpiring(ctx context.Context, from, to time.Time) ([]domain.Bus, error) {
	if mock.ListInspectionExpiringFunc == nil {
		panic("busRepoMock.ListInspectionExpiringFunc: method is nil but busRepo.ListInspectionExpiring was just called")
	}
	return mock.ListInspectionExpiringFunc(ctx, from, to)
}

// ---------------------------------------------------------------------------
// incidentRepo
// ---------------------------------------------------------------------------

var _ incidentRepo = &incidentRepoMock{}

type incidentRepoMock struct {
	GetByIDFunc          func(ctx context.Context, id uuid.UUID) (domain.Incident, error)
	ListOpenOlderThanFunc func(ctx context.Context, cutoff time.Time, names []string) ([]domain.Incident, error)
}

func (mock *incidentRepoMock) GetByID(ctx context.Context, id uuid.UUID) (domain.Incident, error) {
	if mock.GetByIDFunc == nil {
		panic("incidentRepoMock.GetByIDFunc: method is nil but incidentRepo.GetByID was just called")
	}
	return mock.GetByIDFunc(ctx, id)
}

func (mock *incidentRepoMock) ListOpenOlderThan(ctx context.Context, cutoff time.Time, names []string) ([]domain.Incident, error) {
	if mock.ListOpenOlderThanFunc == nil {
		panic("incidentRepoMock.ListOpenOlderThanFunc: method is nil but incidentRepo.ListOpenOlderThan was just called")
	}
	return mock.ListOpenOlderThanFunc(ctx, cutoff, names)
}

// ---------------------------------------------------------------------------
// maintenanceRepo / shiftRepo / userRepo
// ---------------------------------------------------------------------------

var _ maintenanceRepo = &maintenanceRepoMock{}

type maintenanceRepoMock struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (domain.Maintenance, error)
}

func (mock *maintenanceRepoMock) GetByID(ctx context.Context, id uuid.UUID) (domain.Maintenance, error) {
	if mock.GetByIDFunc == nil {
		panic("maintenanceRepoMock.GetByIDFunc: method is nil but maintenanceRepo.GetByID was just called")
	}
	return mock.GetByIDFunc(ctx, id)
}

var _ shiftRepo = &shiftRepoMock{}

type shiftRepoMock struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (domain.Shift, error)
}

func (mock *shiftRepoMock) GetByID(ctx context.Context, id uuid.UUID) (domain.Shift, error) {
	if mock.GetByIDFunc == nil {
		panic("shiftRepoMock.GetByIDFunc: method is nil but shiftRepo.GetByID was just called")
	}
	return mock.GetByIDFunc(ctx, id)
}

var _ userRepo = &userRepoMock{}

type userRepoMock struct {
	GetByIDFunc           func(ctx context.Context, id uuid.UUID) (domain.User, error)
	EmailsByRoleNamesFunc func(ctx context.Context, names []string) ([]string, error)
	RolesByNamesFunc      func(ctx context.Context, names []string) ([]domain.Role, error)

	calls struct {
		EmailsByRoleNames [][]string
	}
	lock sync.RWMutex
}

func (mock *userRepoMock) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	if mock.GetByIDFunc == nil {
		panic("userRepoMock.GetByIDFunc: method is nil but userRepo.GetByID was just called")
	}
	return mock.GetByIDFunc(ctx, id)
}

func (mock *userRepoMock) EmailsByRoleNames(ctx context.Context, names []string) ([]string, error) {
	if mock.EmailsByRoleNamesFunc == nil {
		panic("userRepoMock.EmailsByRoleNamesFunc: method is nil but userRepo.EmailsByRoleNames was just called")
	}
	mock.lock.Lock()
	mock.calls.EmailsByRoleNames = append(mock.calls.EmailsByRoleNames, names)
	mock.lock.Unlock()
	return mock.EmailsByRoleNamesFunc(ctx, names)
}

func (mock *userRepoMock) EmailsByRoleNamesCalls() [][]string {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.EmailsByRoleNames
}

func (mock *userRepoMock) RolesByNames(ctx context.Context, names []string) ([]domain.Role, error) {
	if mock.RolesByNamesFunc == nil {
		panic("userRepoMock.RolesByNamesFunc: method is nil but userRepo.RolesByNames was just called")
	}
	return mock.RolesByNamesFunc(ctx, names)
}

// ---------------------------------------------------------------------------
// mailer
// ---------------------------------------------------------------------------

var _ mailer = &mailerMock{}

type mailerMock struct {
	SendAlertEmailFunc func(ctx context.Context, to []string, subject, title, body string) error

	calls struct {
		SendAlertEmail []struct {
			To      []string
			Subject string
			Title   string
			Body    string
		}
	}
	lock sync.RWMutex
}

func (mock *mailerMock) SendAlertEmail(ctx context.Context, to []string, subject, title, body string) error {
	if mock.SendAlertEmailFunc == nil {
		panic("mailerMock.SendAlertEmailFunc: method is nil but mailer.SendAlertEmail was just called")
	}
	callInfo := struct {
		To      []string
		Subject string
		Title   string
		Body    string
	}{To: to, Subject: subject, Title: title, Body: body}
	mock.lock.Lock()
	mock.calls.SendAlertEmail = append(mock.calls.SendAlertEmail, callInfo)
	mock.lock.Unlock()
	return mock.SendAlertEmailFunc(ctx, to, subject, title, body)
}

func (mock *mailerMock) SendAlertEmailCalls() []struct {
	To      []string
	Subject string
	Title   string
	Body    string
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.SendAlertEmail
}
