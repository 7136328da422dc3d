package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// AlertCategory enumerates the alert groups that have their own recipient
// role configuration.
type AlertCategory string

const (
	CategoryDocuments     AlertCategory = "documents"
	CategoryExtinguishers AlertCategory = "extinguishers"
	CategoryInspections   AlertCategory = "inspections"
	CategoryIncidents     AlertCategory = "incidents"
	CategoryMaintenance   AlertCategory = "maintenance"
)

// AllAlertCategories lists every category, for startup validation.
var AllAlertCategories = []AlertCategory{
	CategoryDocuments,
	CategoryExtinguishers,
	CategoryInspections,
	CategoryIncidents,
	CategoryMaintenance,
}

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Alerts.validate(); err != nil {
		return fmt.Errorf("alerts: %w", err)
	}
	if err := c.Mail.validate(); err != nil {
		return fmt.Errorf("mail: %w", err)
	}
	return nil
}

func (a *AlertsConfig) validate() error {
	if a.WindowDays <= 0 {
		return fmt.Errorf("window_days must be > 0 (got %d)", a.WindowDays)
	}

	if _, err := cron.ParseStandard(a.Cron); err != nil {
		return fmt.Errorf("cron %q: %w", a.Cron, err)
	}

	if _, err := time.LoadLocation(a.Timezone); err != nil {
		return fmt.Errorf("timezone %q: %w", a.Timezone, err)
	}

	return nil
}

func (m *MailConfig) validate() error {
	if m.APIKey != "" && m.FromAddress == "" {
		return fmt.Errorf("from_address is required when api_key is set")
	}
	return nil
}

// RolesFor returns the configured role names for a category, applying the
// fallback chain: category -> default set; inspections additionally fall
// back to the extinguisher set before the default.
func (a *AlertsConfig) RolesFor(cat AlertCategory) []string {
	var raw string
	switch cat {
	case CategoryDocuments:
		raw = a.DocumentRoles
	case CategoryExtinguishers:
		raw = a.ExtinguisherRoles
	case CategoryInspections:
		raw = a.InspectionRoles
		if strings.TrimSpace(raw) == "" {
			raw = a.ExtinguisherRoles
		}
	case CategoryIncidents:
		raw = a.IncidentRoles
	case CategoryMaintenance:
		raw = a.MaintenanceRoles
	}

	if strings.TrimSpace(raw) == "" {
		raw = a.DefaultRoles
	}

	return SplitRoles(raw)
}

// SplitRoles parses a comma-separated list of role names, trimming blanks.
// An empty or whitespace-only input yields nil.
func SplitRoles(raw string) []string {
	parts := strings.Split(raw, ",")
	var names []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		names = append(names, p)
	}
	return names
}
