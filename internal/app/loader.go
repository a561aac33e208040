package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kyaoi/lope/internal/query"
	"github.com/kyaoi/lope/internal/tree"
	"github.com/kyaoi/lope/internal/ui"
)

// Session is everything fixed before the loop starts.
type Session struct {
	State  ui.State
	System string
	Model  string
}

// LoadInitialState analyses the root directory and prepares the UI state.
func LoadInitialState(opts Options) (Session, error) {
	opts = opts.withDefaults()
	target := opts.Root
	if target == "" {
		target = "."
	}
	absRoot, err := filepath.Abs(target)
	if err != nil {
		return Session{}, err
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return Session{}, err
	}
	if !info.IsDir() {
		return Session{}, fmt.Errorf("%s is not a directory", target)
	}

	cfg := opts.Config
	walkOpts := tree.WalkOptions{
		IncludeByDefault: cfg.Tree.IncludeByDefault,
		StartCollapsed:   cfg.Tree.StartCollapsed,
		ShowHidden:       cfg.Tree.ShowHidden,
		Exclude:          cfg.Tree.Exclude,
	}

	var entries []tree.Entry
	if opts.Files != nil {
		entries = tree.Build(existingFiles(absRoot, opts.Files, opts), walkOpts)
	} else {
		entries, err = tree.Walk(absRoot, walkOpts)
		if err != nil {
			return Session{}, fmt.Errorf("walk %s: %w", target, err)
		}
	}
	opts.Logger.Debug("tree loaded", "root", absRoot, "entries", len(entries))

	session := Session{
		System: query.SystemPrompt,
		Model:  cfg.Completion.Model,
	}
	prompt := ""
	if opts.PromptFile != "" {
		pf, err := query.LoadPromptFile(opts.PromptFile)
		if err != nil {
			return Session{}, err
		}
		prompt = pf.Body
		session.System = pf.SystemOr(query.SystemPrompt)
		if pf.Model != "" {
			session.Model = pf.Model
		}
	}

	session.State = ui.State{
		Store:        tree.NewStore(entries),
		RootDir:      absRoot,
		DisplayRoot:  filepath.Base(absRoot),
		Prompt:       prompt,
		Model:        session.Model,
		WatchDirs:    tree.Dirs(absRoot, entries),
		TreeWidth:    cfg.UI.TreeWidth,
		TickInterval: cfg.UI.TickInterval,
		Logger:       opts.Logger,
	}
	return session, nil
}
