package core

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/laporte-eng/jobnav/pkg/models"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// ConfigFileName is the config file base name, searched for as
// .jobnav.yaml.
const ConfigFileName = ".jobnav"

// EnvPrefix prefixes every environment override, e.g.
// JOBNAV_ROOTS_PROJECTS_FOLDER.
const EnvPrefix = "JOBNAV"

// Historical share locations used when nothing else is configured.
const (
	DefaultProjectsFolder = `L:\Division2\PROJECTS FOLDER`
	DefaultPictures       = `T:\pictures\Axapta`
	DefaultQCModels       = `Q:\Quality Control\quality_controller\data\cad models`
)

// ConfigurationManager loads and validates the jobnav configuration.
type ConfigurationManager interface {
	LoadGlobalConfig() (*models.GlobalConfig, error)
	ValidateConfig(cfg *models.GlobalConfig) error
	// ConfigFileUsed returns the file the last load read, or "".
	ConfigFileUsed() string
}

// viperConfigManager implements ConfigurationManager using Viper for
// reading YAML configuration files and environment overrides.
type viperConfigManager struct {
	// basePath is searched first for .jobnav.yaml, then the home directory.
	basePath string
	used     string
}

// NewConfigurationManager creates a ConfigurationManager that reads
// .jobnav.yaml from basePath or the user's home directory.
func NewConfigurationManager(basePath string) ConfigurationManager {
	return &viperConfigManager{basePath: basePath}
}

// DefaultGlobalConfig returns a GlobalConfig populated with defaults.
func DefaultGlobalConfig(basePath string) *models.GlobalConfig {
	return &models.GlobalConfig{
		Roots: models.RootConfig{
			ProjectsFolder: DefaultProjectsFolder,
			Pictures:       DefaultPictures,
			QCModels:       DefaultQCModels,
		},
		Log: models.LogConfig{
			File:       filepath.Join(basePath, ".jobnav_events.jsonl"),
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 30,
		},
	}
}

// LoadGlobalConfig reads .jobnav.yaml and JOBNAV_* environment variables.
// Precedence: environment > file > defaults. A missing file is not an error.
func (cm *viperConfigManager) LoadGlobalConfig() (*models.GlobalConfig, error) {
	cfg := DefaultGlobalConfig(cm.basePath)

	v := viper.New()
	v.SetConfigName(ConfigFileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(cm.basePath)
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults double as the key list AutomaticEnv consults.
	v.SetDefault("roots.projects_folder", cfg.Roots.ProjectsFolder)
	v.SetDefault("roots.pictures", cfg.Roots.Pictures)
	v.SetDefault("roots.qc_models", cfg.Roots.QCModels)
	v.SetDefault("log.file", cfg.Log.File)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.event_level", "")
	v.SetDefault("log.max_size_mb", cfg.Log.MaxSizeMB)
	v.SetDefault("log.max_backups", cfg.Log.MaxBackups)
	v.SetDefault("log.max_age_days", cfg.Log.MaxAgeDays)
	v.SetDefault("notifications.slack.webhook_url", "")

	cm.used = ""
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading %s.yaml: %w", ConfigFileName, err)
		}
	} else {
		cm.used = v.ConfigFileUsed()
	}

	var err error
	if cfg.Roots.ProjectsFolder, err = expandRoot(v.GetString("roots.projects_folder")); err != nil {
		return nil, err
	}
	if cfg.Roots.Pictures, err = expandRoot(v.GetString("roots.pictures")); err != nil {
		return nil, err
	}
	if cfg.Roots.QCModels, err = expandRoot(v.GetString("roots.qc_models")); err != nil {
		return nil, err
	}

	if cfg.Log.File, err = expandRoot(v.GetString("log.file")); err != nil {
		return nil, err
	}
	cfg.Log.Level = v.GetString("log.level")
	cfg.Log.EventLevel = v.GetString("log.event_level")
	cfg.Log.MaxSizeMB = v.GetInt("log.max_size_mb")
	cfg.Log.MaxBackups = v.GetInt("log.max_backups")
	cfg.Log.MaxAgeDays = v.GetInt("log.max_age_days")
	cfg.Notifications.Slack.WebhookURL = v.GetString("notifications.slack.webhook_url")

	return cfg, nil
}

func (cm *viperConfigManager) ConfigFileUsed() string {
	return cm.used
}

// expandRoot expands a leading "~" to the user's home directory.
func expandRoot(p string) (string, error) {
	expanded, err := homedir.Expand(p)
	if err != nil {
		return "", fmt.Errorf("expanding %q: %w", p, err)
	}
	return expanded, nil
}

// ValidateConfig reports empty roots and invalid log settings. It is
// advisory: roots are only really checked on first use.
func (cm *viperConfigManager) ValidateConfig(cfg *models.GlobalConfig) error {
	if cfg == nil {
		return fmt.Errorf("configuration is nil")
	}

	var errs []string

	if cfg.Roots.ProjectsFolder == "" {
		errs = append(errs, "roots.projects_folder must not be empty")
	}
	if cfg.Roots.Pictures == "" {
		errs = append(errs, "roots.pictures must not be empty")
	}
	if cfg.Roots.QCModels == "" {
		errs = append(errs, "roots.qc_models must not be empty")
	}

	if cfg.Log.Level != "" {
		if _, err := zerolog.ParseLevel(cfg.Log.Level); err != nil {
			errs = append(errs, fmt.Sprintf("log.level %q is invalid", cfg.Log.Level))
		}
	}
	if cfg.Log.EventLevel != "" {
		if _, err := zerolog.ParseLevel(strings.ToLower(cfg.Log.EventLevel)); err != nil {
			errs = append(errs, fmt.Sprintf("log.event_level %q is invalid", cfg.Log.EventLevel))
		}
	}
	if cfg.Log.MaxSizeMB < 0 {
		errs = append(errs, fmt.Sprintf("log.max_size_mb must be non-negative, got %d", cfg.Log.MaxSizeMB))
	}
	if cfg.Log.MaxBackups < 0 {
		errs = append(errs, fmt.Sprintf("log.max_backups must be non-negative, got %d", cfg.Log.MaxBackups))
	}
	if cfg.Log.MaxAgeDays < 0 {
		errs = append(errs, fmt.Sprintf("log.max_age_days must be non-negative, got %d", cfg.Log.MaxAgeDays))
	}

	if url := cfg.Notifications.Slack.WebhookURL; url != "" && !strings.HasPrefix(url, "https://") && !strings.HasPrefix(url, "http://") {
		errs = append(errs, fmt.Sprintf("notifications.slack.webhook_url %q must be an http(s) URL", url))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
