package alert

import (
	"context"
	"strings"

	"github.com/checkbus/fleet-backend/internal/config"
)

// recipientsFor resolves the emails for an alert category: the users holding
// any configured role for the category, plus any extra addresses (document
// owner, incident reporter). The fallback email is used only when the
// combined set ends up empty. Resolution failures degrade to the fallback
// rather than blocking the alert; the alert row itself never depends on it.
func (s *Service) recipientsFor(ctx context.Context, category config.AlertCategory, extra ...string) []string {
	roleNames := s.cfg.RolesFor(category)

	emails, err := s.users.EmailsByRoleNames(ctx, roleNames)
	if err != nil {
		s.log.ErrorContext(ctx, "recipient resolution failed",
			"category", category,
			"roles", roleNames,
			"error", err,
		)
		emails = nil
	}

	return s.combine(emails, extra)
}

// combine deduplicates emails as stored (case-sensitive), preserving order,
// and applies the fallback when empty.
func (s *Service) combine(emails, extra []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, e := range append(emails, extra...) {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		if seen[e] {
			continue
		}
		seen[e] = true
		out = append(out, e)
	}

	if len(out) == 0 && s.cfg.FallbackEmail != "" {
		out = []string{s.cfg.FallbackEmail}
	}
	return out
}

func normalizeRole(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
