package app

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/muesli/termenv"

	"github.com/kyaoi/lope/internal/query"
	"github.com/kyaoi/lope/internal/ui"
)

const defaultWrapWidth = 100

// Completer sends one composed query and returns the reply text.
type Completer interface {
	Complete(ctx context.Context, system, query string) (string, error)
}

// Submission is what the loop hands over when the user sends.
type Submission struct {
	Prompt string
	Tree   string
	Paths  []string
}

// SubmissionFrom reads the final widget state.
func SubmissionFrom(a *ui.App) Submission {
	return Submission{
		Prompt: a.PromptEditor().Text(),
		Tree:   a.FileBrowser().RenderedTree(),
		Paths:  a.FileBrowser().IncludedPaths(),
	}
}

// copyToClipboard is swapped out in tests.
var copyToClipboard = clipboard.WriteAll

// Dispatch composes the query and delivers it. A compose failure aborts
// before anything leaves the process.
func Dispatch(ctx context.Context, opts Options, session Session, client Completer, sub Submission) error {
	opts = opts.withDefaults()

	q, err := query.Compose(os.DirFS(session.State.RootDir), sub.Prompt, sub.Tree, sub.Paths)
	if err != nil {
		return fmt.Errorf("compose query: %w", err)
	}
	opts.Logger.Info("query composed", "files", len(sub.Paths), "bytes", len(q))

	switch {
	case opts.DryRun:
		_, err := fmt.Fprintln(opts.Out, q)
		return err
	case opts.Copy:
		if err := copyToClipboard(q); err != nil {
			return fmt.Errorf("copy query: %w", err)
		}
		_, err := fmt.Fprintf(opts.Out, "copied query (%d bytes, %d files) to the clipboard\n", len(q), len(sub.Paths))
		return err
	}

	if client == nil {
		return fmt.Errorf("no completion client configured")
	}
	if timeout := opts.Config.Completion.Timeout; timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	reply, err := client.Complete(ctx, session.System, q)
	if err != nil {
		return fmt.Errorf("completion: %w", err)
	}
	if strings.TrimSpace(reply) == "" {
		_, err := fmt.Fprintln(opts.Out, "no reply from the completion service")
		return err
	}

	out, err := renderReply(reply, opts.Raw, opts.Width)
	if err != nil {
		opts.Logger.Warn("render reply", "error", err)
		out = reply
	}
	_, err = fmt.Fprintln(opts.Out, strings.TrimRight(out, "\n"))
	return err
}

func renderReply(reply string, raw bool, width int) (string, error) {
	if raw {
		return reply, nil
	}
	renderer, err := newRenderer(width)
	if err != nil {
		return "", err
	}
	return renderer.Render(reply)
}

func newRenderer(width int) (*glamour.TermRenderer, error) {
	style := styles.TokyoNightStyle
	if !termenv.HasDarkBackground() {
		style = styles.LightStyle
	}
	return glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
}
