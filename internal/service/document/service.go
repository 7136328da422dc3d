// Package document implements document registration and the effective-status
// read path. The stored status is a cache of the expiry policy; reads always
// recompute it through domain.ClassifyDocumentStatus.
package document

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/checkbus/fleet-backend/internal/domain"
)

type documentRepo interface {
	Create(ctx context.Context, d domain.Document) (domain.Document, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Document, error)
	Update(ctx context.Context, d domain.Document) (domain.Document, error)
}

type catalogRepo interface {
	ResolveOrCreate(ctx context.Context, catalog domain.Catalog, name string) (uuid.UUID, error)
}

// Service implements the document business logic.
type Service struct {
	documents documentRepo
	catalogs  catalogRepo
	log       *slog.Logger

	// now is replaceable in tests.
	now func() time.Time
}

// NewService creates a new document service.
func NewService(log *slog.Logger, documents documentRepo, catalogs catalogRepo) *Service {
	return &Service{
		documents: documents,
		catalogs:  catalogs,
		log:       log.With("service", "document"),
		now:       time.Now,
	}
}

// RegisterInput carries the fields for a new document.
type RegisterInput struct {
	BusID     *uuid.UUID
	UserID    *uuid.UUID
	FileName  string
	Type      string
	ExpiresOn *time.Time
}

// Register creates a document, deriving the stored status from the expiry
// policy at creation time.
func (s *Service) Register(ctx context.Context, in RegisterInput) (domain.Document, error) {
	if in.FileName == "" {
		return domain.Document{}, domain.NewValidationError("file_name", "is required")
	}
	if in.BusID == nil && in.UserID == nil {
		return domain.Document{}, domain.NewValidationError("owner", "a bus or a user is required")
	}

	statusID, err := s.statusIDFor(ctx, in.ExpiresOn)
	if err != nil {
		return domain.Document{}, err
	}

	return s.documents.Create(ctx, domain.Document{
		BusID:     in.BusID,
		UserID:    in.UserID,
		FileName:  in.FileName,
		Type:      in.Type,
		ExpiresOn: in.ExpiresOn,
		StatusID:  statusID,
	})
}

// UpdateInput carries the optional changes to a document. Nil fields are
// left untouched; ClearExpiry removes the expiry date.
type UpdateInput struct {
	FileName    *string
	Type        *string
	ExpiresOn   *time.Time
	ClearExpiry bool
}

// Update applies the changes and re-derives the stored status whenever the
// expiry date moves.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (domain.Document, error) {
	d, err := s.documents.GetByID(ctx, id)
	if err != nil {
		return domain.Document{}, err
	}

	if in.FileName != nil {
		if *in.FileName == "" {
			return domain.Document{}, domain.NewValidationError("file_name", "must not be empty")
		}
		d.FileName = *in.FileName
	}
	if in.Type != nil {
		d.Type = *in.Type
	}

	expiryChanged := false
	switch {
	case in.ClearExpiry:
		d.ExpiresOn = nil
		expiryChanged = true
	case in.ExpiresOn != nil:
		d.ExpiresOn = in.ExpiresOn
		expiryChanged = true
	}

	if expiryChanged {
		statusID, err := s.statusIDFor(ctx, d.ExpiresOn)
		if err != nil {
			return domain.Document{}, err
		}
		d.StatusID = statusID
	}

	return s.documents.Update(ctx, d)
}

// Get returns a document by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (domain.Document, error) {
	return s.documents.GetByID(ctx, id)
}

// EffectiveStatus returns the policy-derived status of a document as of
// today, ignoring the stored one.
func (s *Service) EffectiveStatus(ctx context.Context, id uuid.UUID) (domain.DocumentStatus, error) {
	d, err := s.documents.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return domain.ClassifyDocumentStatus(d.ExpiresOn, s.now()), nil
}

func (s *Service) statusIDFor(ctx context.Context, expiresOn *time.Time) (uuid.UUID, error) {
	status := domain.ClassifyDocumentStatus(expiresOn, s.now())
	statusID, err := s.catalogs.ResolveOrCreate(ctx, domain.CatalogDocumentStatus, string(status))
	if err != nil {
		return uuid.Nil, fmt.Errorf("resolve document status: %w", err)
	}
	return statusID, nil
}
