// Package screens holds what every TUI screen shares.
package screens

import (
	"go.uber.org/zap"

	"github.com/abhisek/mockprep/internal/interview"
	"github.com/abhisek/mockprep/internal/store"
)

// Env carries the collaborators screens need. The controller is touched
// only while no command holding it is in flight; each screen tracks that
// with its own busy flag.
type Env struct {
	Controller *interview.Controller
	Reviews    store.ReviewRepo
	Logger     *zap.Logger

	// Paths are the documents given on the command line.
	Paths    []string
	Defaults interview.Settings

	// ExportPath is where the report is written on export. Empty picks a
	// dated name in the working directory.
	ExportPath string

	// Warning is shown on the home screen, e.g. a missing API key.
	Warning string

	Version      string
	CheckUpdates bool
}
