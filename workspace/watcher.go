package workspace

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// ChangeFunc is called after a file was reparsed, or with a nil file
// after it was removed.
type ChangeFunc func(path string, file *File)

type FileWatcher struct {
	workspace *Workspace
	watcher   *fsnotify.Watcher
	onChange  ChangeFunc
	stopCh    chan struct{}
	done      chan struct{}
}

func NewFileWatcher(w *Workspace, onChange ChangeFunc) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &FileWatcher{
		workspace: w,
		watcher:   watcher,
		onChange:  onChange,
		stopCh:    make(chan struct{}),
		done:      make(chan struct{}),
	}, nil
}

// Start watches every non-hidden directory below the workspace root and
// processes events in the background until Stop is called.
func (w *FileWatcher) Start() error {
	err := filepath.WalkDir(w.workspace.RootDir(), func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if path != w.workspace.RootDir() && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return w.watcher.Add(path)
	})
	if err != nil {
		w.watcher.Close()
		return err
	}
	go w.run()
	return nil
}

func (w *FileWatcher) Stop() {
	close(w.stopCh)
	<-w.done
	w.watcher.Close()
}

func (w *FileWatcher) run() {
	defer close(w.done)
	for {
		select {
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Warningf("watch: %s", err)
		}
	}
}

func (w *FileWatcher) handle(event fsnotify.Event) {
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.watcher.Add(event.Name); err != nil {
				log.Warningf("watch %s: %s", event.Name, err)
			}
			return
		}
	}
	if !w.workspace.Matches(event.Name) {
		return
	}
	switch {
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		w.workspace.RemoveFile(event.Name)
		w.notify(event.Name, nil)
	case event.Has(fsnotify.Create), event.Has(fsnotify.Write):
		file, err := w.workspace.ScanFile(event.Name)
		if err != nil {
			log.Debugf("watch: %s", err)
			return
		}
		w.notify(event.Name, file)
	}
}

func (w *FileWatcher) notify(path string, file *File) {
	if w.onChange != nil {
		w.onChange(path, file)
	}
}
