package alert

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/checkbus/fleet-backend/internal/config"
	"github.com/checkbus/fleet-backend/internal/domain"
)

// staleIncidentAfterDays is how old an open incident must be before the
// sweep starts nagging about it.
const staleIncidentAfterDays = 7

// SweepReport counts the alerts each scan created during one run.
type SweepReport struct {
	DocumentsExpiring int
	DocumentsExpired  int
	Extinguishers     int
	Inspections       int
	StaleIncidents    int
}

// Total returns the number of alerts created by the run.
func (r SweepReport) Total() int {
	return r.DocumentsExpiring + r.DocumentsExpired + r.Extinguishers +
		r.Inspections + r.StaleIncidents
}

// Sweep runs the five alert scans: documents entering the expiry window,
// documents already expired with a stale status, extinguishers and technical
// inspections entering the window, and incidents left open too long.
//
// Scans run sequentially; a failing scan is logged and the remaining scans
// still run, with the joined error returned at the end. windowDays <= 0
// falls back to the configured window.
func (s *Service) Sweep(ctx context.Context, windowDays int) (SweepReport, error) {
	if windowDays <= 0 {
		windowDays = s.cfg.WindowDays
	}

	today := s.today()
	horizon := today.AddDate(0, 0, windowDays)

	var (
		report SweepReport
		errs   []error
	)

	run := func(name string, n *int, scan func(ctx context.Context) (int, error)) {
		count, err := scan(ctx)
		*n = count
		if err != nil {
			s.log.ErrorContext(ctx, "sweep scan failed", "scan", name, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}

	run("documents-expiring", &report.DocumentsExpiring, func(ctx context.Context) (int, error) {
		return s.scanExpiringDocuments(ctx, today, horizon)
	})
	run("documents-expired", &report.DocumentsExpired, func(ctx context.Context) (int, error) {
		return s.scanExpiredDocuments(ctx, today)
	})
	run("extinguishers", &report.Extinguishers, func(ctx context.Context) (int, error) {
		return s.scanExtinguishers(ctx, today, horizon)
	})
	run("inspections", &report.Inspections, func(ctx context.Context) (int, error) {
		return s.scanInspections(ctx, today, horizon)
	})
	run("stale-incidents", &report.StaleIncidents, func(ctx context.Context) (int, error) {
		return s.scanStaleIncidents(ctx, today)
	})

	s.log.InfoContext(ctx, "sweep finished",
		"window_days", windowDays,
		"alerts_created", report.Total(),
		"documents_expiring", report.DocumentsExpiring,
		"documents_expired", report.DocumentsExpired,
		"extinguishers", report.Extinguishers,
		"inspections", report.Inspections,
		"stale_incidents", report.StaleIncidents,
		"failed_scans", len(errs),
	)
	return report, errors.Join(errs...)
}

// scanExpiringDocuments alerts on documents whose expiry falls inside the
// window, correcting the stored status on the way when the policy says it
// drifted.
func (s *Service) scanExpiringDocuments(ctx context.Context, today, horizon time.Time) (int, error) {
	docs, err := s.documents.ListExpiringBetween(ctx, today, horizon)
	if err != nil {
		return 0, err
	}

	created := 0
	var errs []error
	for _, doc := range docs {
		if err := s.syncDocumentStatus(ctx, doc, today); err != nil {
			errs = append(errs, err)
		}

		raised, err := s.raiseDocumentAlert(ctx, doc, domain.AlertKindDocExpiring,
			domain.PriorityMedium,
			fmt.Sprintf("Document %s expires on %s", doc.FileName, doc.ExpiresOn.Format("2006-01-02")))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if raised {
			created++
		}
	}
	return created, errors.Join(errs...)
}

// scanExpiredDocuments forces the EXPIRED status on documents past their
// expiry that still carry another status, and alerts on each.
func (s *Service) scanExpiredDocuments(ctx context.Context, today time.Time) (int, error) {
	expiredID, err := s.catalogs.ResolveOrCreate(ctx, domain.CatalogDocumentStatus, string(domain.DocumentStatusExpired))
	if err != nil {
		return 0, err
	}

	docs, err := s.documents.ListExpiredBefore(ctx, today, expiredID)
	if err != nil {
		return 0, err
	}

	created := 0
	var errs []error
	for _, doc := range docs {
		if err := s.documents.UpdateStatus(ctx, doc.ID, expiredID); err != nil {
			errs = append(errs, err)
		}

		raised, err := s.raiseDocumentAlert(ctx, doc, domain.AlertKindDocExpired,
			domain.PriorityHigh,
			fmt.Sprintf("Document %s expired on %s", doc.FileName, doc.ExpiresOn.Format("2006-01-02")))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if raised {
			created++
		}
	}
	return created, errors.Join(errs...)
}

func (s *Service) raiseDocumentAlert(ctx context.Context, doc domain.Document, kind string, priority domain.Priority, title string) (bool, error) {
	var extra []string
	if doc.UserID != nil {
		if owner, err := s.users.GetByID(ctx, *doc.UserID); err == nil {
			extra = append(extra, owner.Email)
		}
	}
	recipients := s.recipientsFor(ctx, config.CategoryDocuments, extra...)

	return s.raise(ctx, kind, config.CategoryDocuments, domain.Alert{
		DedupKey:    domain.DailyDedupKey(kind, "doc", doc.ID, *doc.ExpiresOn),
		Title:       title,
		Description: title,
		Priority:    priority,
		BusID:       doc.BusID,
		UserID:      doc.UserID,
		DocumentID:  &doc.ID,
	}, recipients)
}

// syncDocumentStatus persists the policy-derived status when it differs from
// the stored one.
func (s *Service) syncDocumentStatus(ctx context.Context, doc domain.Document, today time.Time) error {
	status := domain.ClassifyDocumentStatus(doc.ExpiresOn, today)
	statusID, err := s.catalogs.ResolveOrCreate(ctx, domain.CatalogDocumentStatus, string(status))
	if err != nil {
		return err
	}
	if statusID == doc.StatusID {
		return nil
	}
	return s.documents.UpdateStatus(ctx, doc.ID, statusID)
}

func (s *Service) scanExtinguishers(ctx context.Context, today, horizon time.Time) (int, error) {
	buses, err := s.buses.ListExtinguisherExpiring(ctx, today, horizon)
	if err != nil {
		return 0, err
	}

	created := 0
	var errs []error
	for _, b := range buses {
		title := fmt.Sprintf("Extinguisher of bus %s expires on %s",
			b.Label(), b.ExtinguisherExpiry.Format("2006-01-02"))

		raised, err := s.raise(ctx, domain.AlertKindExtinguisher, config.CategoryExtinguishers, domain.Alert{
			DedupKey:    domain.DailyDedupKey(domain.AlertKindExtinguisher, "bus", b.ID, *b.ExtinguisherExpiry),
			Title:       title,
			Description: title,
			Priority:    domain.PriorityHigh,
			BusID:       &b.ID,
		}, s.recipientsFor(ctx, config.CategoryExtinguishers))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if raised {
			created++
		}
	}
	return created, errors.Join(errs...)
}

func (s *Service) scanInspections(ctx context.Context, today, horizon time.Time) (int, error) {
	buses, err := s.buses.ListInspectionExpiring(ctx, today, horizon)
	if err != nil {
		return 0, err
	}

	created := 0
	var errs []error
	for _, b := range buses {
		title := fmt.Sprintf("Technical inspection of bus %s expires on %s",
			b.Label(), b.InspectionExpiry.Format("2006-01-02"))

		raised, err := s.raise(ctx, domain.AlertKindInspection, config.CategoryInspections, domain.Alert{
			DedupKey:    domain.DailyDedupKey(domain.AlertKindInspection, "bus", b.ID, *b.InspectionExpiry),
			Title:       title,
			Description: title,
			Priority:    domain.PriorityMedium,
			BusID:       &b.ID,
		}, s.recipientsFor(ctx, config.CategoryInspections))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if raised {
			created++
		}
	}
	return created, errors.Join(errs...)
}

// scanStaleIncidents nags daily about incidents still open after
// staleIncidentAfterDays: the dedup key is stamped with today, so the same
// incident fires again on the next run.
func (s *Service) scanStaleIncidents(ctx context.Context, today time.Time) (int, error) {
	cutoff := today.AddDate(0, 0, -staleIncidentAfterDays)

	incidents, err := s.incidents.ListOpenOlderThan(ctx, cutoff, []string{
		domain.IncidentStatusReported, domain.IncidentStatusInReview,
	})
	if err != nil {
		return 0, err
	}

	created := 0
	var errs []error
	for _, inc := range incidents {
		days := int(today.Sub(inc.OccurredOn.Truncate(24*time.Hour)).Hours() / 24)
		title := fmt.Sprintf("Incident #%s open for %d days without resolution",
			inc.ID.String()[:8], days)

		raised, err := s.raise(ctx, domain.AlertKindIncidentStale, config.CategoryIncidents, domain.Alert{
			DedupKey:    domain.DailyDedupKey(domain.AlertKindIncidentStale, "incident", inc.ID, today),
			Title:       title,
			Description: title,
			Priority:    domain.PriorityMedium,
			BusID:       &inc.BusID,
			IncidentID:  &inc.ID,
		}, s.recipientsFor(ctx, config.CategoryIncidents))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if raised {
			created++
		}
	}
	return created, errors.Join(errs...)
}
