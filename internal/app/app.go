// Package app wires configuration, the interactive loop and the post-loop
// dispatch together.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kyaoi/lope/internal/completion"
	"github.com/kyaoi/lope/internal/config"
	"github.com/kyaoi/lope/internal/ui"
)

// Options configures one run.
type Options struct {
	Root       string
	Config     config.Config
	PromptFile string
	// Files replaces the directory walk with an explicit list of root
	// relative paths when non-nil.
	Files []string

	DryRun bool
	Copy   bool
	Raw    bool
	Width  int

	Out    io.Writer
	Logger *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.Out == nil {
		o.Out = os.Stdout
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if o.Width <= 0 {
		o.Width = defaultWrapWidth
	}
	return o
}

// needsService reports whether the run ends in a completion call.
func (o Options) needsService() bool {
	return !o.DryRun && !o.Copy
}

// Run loads the tree, runs the interactive loop and, if the user chose Send,
// composes the query and delivers it.
func Run(ctx context.Context, opts Options) error {
	opts = opts.withDefaults()

	session, err := LoadInitialState(opts)
	if err != nil {
		return err
	}

	var client Completer
	if opts.needsService() {
		key, err := opts.Config.Completion.ResolveAPIKey()
		if err != nil {
			return fmt.Errorf("resolve api key: %w", err)
		}
		client = newClient(opts, key, session.Model)
	}

	model, err := runProgram(ctx, session.State)
	if err != nil {
		return err
	}
	if model.Action() != ui.ActionSend {
		opts.Logger.Info("quit without sending")
		return nil
	}
	return Dispatch(ctx, opts, session, client, SubmissionFrom(model.App()))
}

// newClient reports rejected requests on opts.Out as well as the log, which
// is discarded unless a log file is configured.
func newClient(opts Options, key, model string) *completion.Client {
	return completion.NewClient(
		opts.Config.Completion.Endpoint,
		key,
		model,
		completion.WithLogger(opts.Logger),
		completion.WithRejectHandler(func(status, body string) {
			fmt.Fprintf(opts.Out, "completion service returned %s\n%s\n", status, strings.TrimSpace(body))
		}),
	)
}

func runProgram(ctx context.Context, state ui.State) (*ui.Model, error) {
	model := ui.NewModel(state)
	defer model.Close()

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := program.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("run interactive loop: %w", err)
	}
	if m, ok := final.(*ui.Model); ok {
		return m, nil
	}
	return model, nil
}
