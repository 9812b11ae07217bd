// Package workspace keeps the parse results for a tree of source files
// current and reports their diagnostics, either to an LSP client or to a
// file watcher callback.
package workspace

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/dhamidi/tinyjs/js/parser"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("tinyjs.workspace")

type Workspace struct {
	mu         sync.RWMutex
	rootDir    string
	extensions []string
	files      map[string]*File
}

// File is the latest parse of one source file. Exactly one of Program and
// Err is set.
type File struct {
	Path    string
	Content []byte
	Program *parser.Program
	Err     error
}

// New returns an empty workspace rooted at rootDir that tracks files with
// the given extensions (".js" if none are given).
func New(rootDir string, extensions ...string) *Workspace {
	if len(extensions) == 0 {
		extensions = []string{".js"}
	}
	return &Workspace{
		rootDir:    rootDir,
		extensions: extensions,
		files:      make(map[string]*File),
	}
}

func (w *Workspace) RootDir() string {
	return w.rootDir
}

// Matches reports whether path has one of the tracked extensions.
func (w *Workspace) Matches(path string) bool {
	ext := filepath.Ext(path)
	for _, e := range w.extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// ScanAll parses every matching file below the root. Hidden directories
// are skipped.
func (w *Workspace) ScanAll() error {
	return filepath.WalkDir(w.rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if path != w.rootDir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if w.Matches(path) {
			if _, err := w.ScanFile(path); err != nil {
				log.Warningf("scan %s: %s", path, err)
			}
		}
		return nil
	})
}

func (w *Workspace) ScanFile(path string) (*File, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return w.UpdateFile(path, content), nil
}

// UpdateFile reparses content as the new state of path.
func (w *Workspace) UpdateFile(path string, content []byte) *File {
	prog, err := parser.Parse(string(content), parser.WithFile(filepath.Base(path)))
	file := &File{
		Path:    path,
		Content: content,
		Program: prog,
		Err:     err,
	}
	if err != nil {
		log.Debugf("%s: %s", path, err)
	}

	w.mu.Lock()
	w.files[path] = file
	w.mu.Unlock()
	return file
}

func (w *Workspace) RemoveFile(path string) {
	w.mu.Lock()
	delete(w.files, path)
	w.mu.Unlock()
}

func (w *Workspace) GetFile(path string) *File {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.files[path]
}

// Files returns the tracked files sorted by path.
func (w *Workspace) Files() []*File {
	w.mu.RLock()
	files := make([]*File, 0, len(w.files))
	for _, f := range w.files {
		files = append(files, f)
	}
	w.mu.RUnlock()

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files
}

// Errors returns the files that failed to parse, sorted by path.
func (w *Workspace) Errors() []*File {
	var failed []*File
	for _, f := range w.Files() {
		if f.Err != nil {
			failed = append(failed, f)
		}
	}
	return failed
}

// Functions lists the function declarations of a parsed file.
func (f *File) Functions() []*parser.FunctionDecl {
	if f.Program == nil {
		return nil
	}
	var fns []*parser.FunctionDecl
	for _, el := range f.Program.Elements {
		if fn, ok := el.(*parser.FunctionDecl); ok {
			fns = append(fns, fn)
		}
	}
	return fns
}
