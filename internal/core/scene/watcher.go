package scene

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/zeusync/physics2d/internal/core/observability/log"
)

const debounce = 100 * time.Millisecond

// Watcher reloads a scene file whenever it changes on disk. Successfully
// parsed scenes arrive on Scenes; load failures arrive on Errors and the
// previous scene stays in effect.
type Watcher struct {
	watcher *fsnotify.Watcher
	path    string
	logger  log.Log

	Scenes  chan *Scene
	Errors  chan error
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// NewWatcher watches the directory holding path, so that editors replacing
// the file through a rename are still seen.
func NewWatcher(path string, logger log.Log) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err = w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, err
	}

	watcher := &Watcher{
		watcher: w,
		path:    abs,
		logger:  logger.With(log.String("component", "scene-watcher"), log.String("path", abs)),
		Scenes:  make(chan *Scene, 1),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
		close(w.Scenes)
		close(w.Errors)
	})
	return err
}

// run reloads once the file has been quiet for the debounce period, so a
// truncate followed by a write is read only after the write.
func (w *Watcher) run() {
	defer close(w.done)
	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.emitError(err)
		case <-w.closeCh:
			return
		}
	}
}

func (w *Watcher) reload() {
	s, err := LoadFile(w.path)
	if err != nil {
		w.logger.Warn("scene reload failed", log.Error(err))
		w.emitError(err)
		return
	}
	w.logger.Info("scene reloaded", log.String("scene", s.Name), log.Int("bodies", len(s.Bodies)))
	select {
	case w.Scenes <- s:
	case <-w.closeCh:
	}
}

func (w *Watcher) emitError(err error) {
	select {
	case w.Errors <- err:
	default:
	}
}
