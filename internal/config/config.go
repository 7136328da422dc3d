package config

import "time"

// Config is the root application configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Alerts   AlertsConfig   `yaml:"alerts"`
	Mail     MailConfig     `yaml:"mail"`
	Log      LogConfig      `yaml:"log"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// AlertsConfig holds the alert engine settings: the sweep window, the cron
// schedule, and the comma-separated role names that receive each alert
// category. A category falls back to DefaultRoles when unset; inspection
// additionally falls back to the extinguisher set.
type AlertsConfig struct {
	WindowDays int    `yaml:"window_days" env:"ALERTS_WINDOW_DAYS" env-default:"30"`
	Cron       string `yaml:"cron"        env:"ALERTS_CRON"        env-default:"5 8 * * *"`
	Timezone   string `yaml:"timezone"    env:"ALERTS_TIMEZONE"    env-default:"America/Santiago"`

	DefaultRoles      string `yaml:"default_roles"      env:"ALERTS_DEFAULT_ROLES"`
	DocumentRoles     string `yaml:"document_roles"     env:"ALERTS_DOCUMENT_ROLES"`
	ExtinguisherRoles string `yaml:"extinguisher_roles" env:"ALERTS_EXTINGUISHER_ROLES"`
	InspectionRoles   string `yaml:"inspection_roles"   env:"ALERTS_INSPECTION_ROLES"`
	IncidentRoles     string `yaml:"incident_roles"     env:"ALERTS_INCIDENT_ROLES"`
	MaintenanceRoles  string `yaml:"maintenance_roles"  env:"ALERTS_MAINTENANCE_ROLES"`

	// FallbackEmail receives an alert only when no other recipient resolves.
	FallbackEmail string `yaml:"fallback_email" env:"ALERTS_FALLBACK_EMAIL"`
}

// MailConfig holds outbound email settings (Resend).
type MailConfig struct {
	APIKey      string `yaml:"api_key"      env:"MAIL_API_KEY"`
	FromAddress string `yaml:"from_address" env:"MAIL_FROM_ADDRESS"`
	FromName    string `yaml:"from_name"    env:"MAIL_FROM_NAME" env-default:"CheckBus"`
	LogoURL     string `yaml:"logo_url"     env:"MAIL_LOGO_URL"`
	AppURL      string `yaml:"app_url"      env:"MAIL_APP_URL"   env-default:"https://checkbus.cl"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
