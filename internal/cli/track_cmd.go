package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/alexanderramin/chronomap/internal/domain"
)

func newTrackCmd(app *App) *cobra.Command {
	var eventsPath string

	cmd := &cobra.Command{
		Use:   "track",
		Short: "Run the session badge and watch for uploaded changesets",
		Long: "Track runs the timer badge and consumes editor request URLs from\n" +
			"an event stream, one URL per line. Finalizing changeset requests\n" +
			"trigger the work report pipeline.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			events, closer, err := openEventStream(eventsPath)
			if err != nil {
				return err
			}
			if closer != nil {
				defer closer.Close()
			}

			go func() {
				_ = app.Watcher.Run(ctx, events)
			}()

			// The badge needs the keyboard, so it only runs when stdin is
			// not carrying the event stream.
			if app.IsTTY && closer != nil {
				model := newBadgeModel(ctx, app)
				_, err := tea.NewProgram(model, tea.WithContext(ctx)).Run()
				return err
			}

			return runHeadless(ctx, app)
		},
	}

	registerTrackFlags(cmd.Flags(), &eventsPath)

	return cmd
}

func registerTrackFlags(fs *pflag.FlagSet, eventsPath *string) {
	fs.StringVar(eventsPath, "events", "-", "Event stream file, or - for stdin")
}

// openEventStream resolves the --events flag to a reader. "-" means stdin,
// which is never closed by the caller.
func openEventStream(path string) (io.Reader, io.Closer, error) {
	if path == "" || path == "-" {
		return os.Stdin, nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open event stream: %w", err)
	}
	return f, f, nil
}

// runHeadless drives the controller without a TUI. The session starts
// immediately, notices go to stdout, and confirmations are asked on the
// controlling terminal. Without one, the report is declined.
func runHeadless(ctx context.Context, app *App) error {
	app.Sessions.Start()

	go func() {
		for {
			select {
			case n, ok := <-app.Bridge.Notices:
				if !ok {
					return
				}
				fmt.Println(n.Text)
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		for {
			select {
			case req, ok := <-app.Bridge.Confirms:
				if !ok {
					return
				}
				req.Response <- confirmOnTerminal(req.Prompt)
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case ev, ok := <-app.Watcher.Events():
			if !ok {
				// Stop notifies through the bridge; the notice drainer
				// prints it.
				app.Sessions.Stop(ctx)
				return nil
			}
			handleDetected(ctx, app, ev)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func handleDetected(ctx context.Context, app *App, ev domain.WorkUnitEvent) {
	outcome := app.Sessions.HandleWorkUnit(ctx, ev)
	if outcome == domain.OutcomeIgnored {
		return
	}
	fmt.Printf("changeset %s: %s\n", ev.WorkUnitID, outcome)
}

// confirmOnTerminal prompts on the controlling terminal. Stdin may be the
// event pipe, so the form reads from /dev/tty directly. Only an explicit
// yes proceeds; without a terminal every report is declined.
func confirmOnTerminal(prompt string) bool {
	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return false
	}
	defer tty.Close()

	var ok bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(prompt).
				Affirmative("Send").
				Negative("Cancel").
				Value(&ok),
		),
	).WithShowHelp(false).WithInput(tty).WithOutput(tty)
	if err := form.Run(); err != nil {
		return false
	}
	return ok
}
