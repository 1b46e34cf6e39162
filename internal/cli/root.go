package cli

import (
	"github.com/alexanderramin/chronomap/internal/credentials"
	"github.com/alexanderramin/chronomap/internal/locale"
	"github.com/alexanderramin/chronomap/internal/repository"
	"github.com/alexanderramin/chronomap/internal/service"
	"github.com/alexanderramin/chronomap/internal/watcher"
	"github.com/spf13/cobra"
)

// App holds references to everything CLI commands need.
type App struct {
	Sessions    service.SessionController
	Credentials *credentials.Store
	History     repository.ReportLogRepo
	Watcher     *watcher.Watcher
	Bridge      *UIBridge
	Locale      *locale.Translator

	// IsTTY gates the badge TUI; set by main from the terminal state.
	IsTTY bool
}

// NewRootCmd creates the top-level "chronomap" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "chronomap",
		Short: "Track OSM editing sessions and file Rovas work reports",
	}

	root.AddCommand(
		newTrackCmd(app),
		newCredentialsCmd(app),
		newHistoryCmd(app),
	)

	return root
}
