package ui

import (
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

type fileEventMsg struct {
	path string
	op   fsnotify.Op
}

type fileWatchErrMsg struct {
	err error
}

// startWatching registers every directory with one watcher. Directories that
// cannot be watched are logged and skipped.
func (m *Model) startWatching(dirs []string) tea.Cmd {
	if err := m.ensureWatcher(); err != nil {
		m.err = err
		m.log.Warn("file watcher unavailable", "error", err)
		return nil
	}
	for _, dir := range dirs {
		if err := m.watcher.Add(dir); err != nil {
			m.log.Debug("skip watch", "dir", dir, "error", err)
		}
	}
	return m.waitForFileEvent()
}

func (m *Model) ensureWatcher() error {
	if m.watcher != nil {
		return nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	m.watcher = watcher
	m.watchChan = make(chan tea.Msg, 10)

	go watchLoop(watcher, m.watchChan)
	return nil
}

// watchLoop only forwards events; it never touches model state. Events are
// dropped when the channel is full.
func watchLoop(watcher *fsnotify.Watcher, out chan<- tea.Msg) {
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			select {
			case out <- fileEventMsg{path: event.Name, op: event.Op}:
			default:
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			select {
			case out <- fileWatchErrMsg{err: err}:
			default:
			}
		}
	}
}

func (m *Model) waitForFileEvent() tea.Cmd {
	if m.watchChan == nil {
		return nil
	}
	ch := m.watchChan
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}

func (m *Model) handleFileEvent(msg fileEventMsg) tea.Cmd {
	rel, err := filepath.Rel(m.rootDir, msg.path)
	if err == nil && m.app.FileBrowser().MarkChanged(filepath.ToSlash(rel)) {
		m.log.Debug("file changed on disk", "path", rel, "op", msg.op.String())
		m.refresh()
	}
	return m.waitForFileEvent()
}
