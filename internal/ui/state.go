package ui

import (
	"log/slog"
	"time"

	"github.com/kyaoi/lope/internal/tree"
)

// State contains the data required to bootstrap the Bubble Tea model.
type State struct {
	Store        *tree.Store
	RootDir      string
	DisplayRoot  string
	Prompt       string
	Model        string
	WatchDirs    []string
	TreeWidth    int
	TickInterval time.Duration
	Logger       *slog.Logger
}
