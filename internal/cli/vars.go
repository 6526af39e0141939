package cli

import (
	"github.com/spf13/afero"

	"github.com/laporte-eng/jobnav/internal/core"
	"github.com/laporte-eng/jobnav/internal/integration"
	"github.com/laporte-eng/jobnav/internal/observability"
	"github.com/laporte-eng/jobnav/pkg/models"
)

// Service instances, set during app initialization in app.go.
var (
	Resolver  core.PathResolver
	Launcher  *integration.Launcher
	ConfigMgr core.ConfigurationManager
	Config    *models.GlobalConfig
	BasePath  string
	FS        afero.Fs
)

// Observability service instances, set during app initialization in app.go.
var (
	EventLog observability.EventLog
)
