package vantage

import (
	"io/fs"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// WatchModule watches asset directories and reports file changes
// through the logger. It is a development aid only: a live scene is
// never reloaded, since a spawned scene's load state is monotonic.
type WatchModule struct {
	Dirs []string
}

type assetWatcher struct {
	watcher *fsnotify.Watcher
	events  chan fsnotify.Event
	errs    chan error
}

func (m WatchModule) Install(app *App, cmd *Commands) {
	logger := app.Logger()

	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		logger.Warnf("watch: unavailable: %v", err)
		return
	}

	aw := &assetWatcher{
		watcher: fsWatch,
		events:  make(chan fsnotify.Event, 16),
		errs:    make(chan error, 4),
	}

	for _, dir := range m.Dirs {
		if err := aw.addRecursive(dir); err != nil {
			logger.Warnf("watch: %s: %v", dir, err)
		}
	}

	go aw.forward()

	cmd.AddResources(aw)
	app.UseSystem(
		System(watchDrainSystem).
			InStage(Finale).
			RunAlways(),
	)
}

// addRecursive registers the directory and everything below it.
// fsnotify itself watches single directories only.
func (aw *assetWatcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return aw.watcher.Add(path)
		}
		return nil
	})
}

func (aw *assetWatcher) forward() {
	for {
		select {
		case ev, ok := <-aw.watcher.Events:
			if !ok {
				return
			}
			select {
			case aw.events <- ev:
			default: // drop when the tick is behind
			}
		case err, ok := <-aw.watcher.Errors:
			if !ok {
				return
			}
			select {
			case aw.errs <- err:
			default:
			}
		}
	}
}

func watchDrainSystem(aw *assetWatcher, logger *DefaultLogger) {
	for {
		select {
		case ev := <-aw.events:
			logger.Debugf("watch: %s %s", ev.Op, ev.Name)
		case err := <-aw.errs:
			logger.Warnf("watch: %v", err)
		default:
			return
		}
	}
}
