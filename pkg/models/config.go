package models

// RootConfig holds the top-level shared-drive directories. It is read once
// at startup and never mutated.
type RootConfig struct {
	ProjectsFolder string `yaml:"projects_folder" mapstructure:"projects_folder"`
	Pictures       string `yaml:"pictures" mapstructure:"pictures"`
	QCModels       string `yaml:"qc_models" mapstructure:"qc_models"`
}

// LogConfig controls the event log file and its rotation.
type LogConfig struct {
	File       string `yaml:"file" mapstructure:"file"`
	Level      string `yaml:"level" mapstructure:"level"`
	// EventLevel is the lowest level written to the event log; empty keeps
	// every event.
	EventLevel string `yaml:"event_level,omitempty" mapstructure:"event_level"`
	MaxSizeMB  int    `yaml:"max_size_mb" mapstructure:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days" mapstructure:"max_age_days"`
}

// SlackConfig holds the webhook used to mirror open failures to a channel.
type SlackConfig struct {
	WebhookURL string `yaml:"webhook_url,omitempty" mapstructure:"webhook_url"`
}

// NotificationConfig selects where open failures are reported besides the
// terminal.
type NotificationConfig struct {
	Slack SlackConfig `yaml:"slack" mapstructure:"slack"`
}

// GlobalConfig holds every setting read from .jobnav.yaml via Viper.
type GlobalConfig struct {
	Roots         RootConfig         `yaml:"roots" mapstructure:"roots"`
	Log           LogConfig          `yaml:"log" mapstructure:"log"`
	Notifications NotificationConfig `yaml:"notifications" mapstructure:"notifications"`
}
