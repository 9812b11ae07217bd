package workspace

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestScanAll(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "ok.js"), "function f(a) { return a; }\nvar x = f(1);\n")
	writeFile(t, filepath.Join(dir, "lib", "bad.js"), "var x = ;\n")
	writeFile(t, filepath.Join(dir, "notes.txt"), "not a source file")
	writeFile(t, filepath.Join(dir, ".hidden", "skip.js"), "var y = 1;")

	w := New(dir)
	if err := w.ScanAll(); err != nil {
		t.Fatal(err)
	}

	files := w.Files()
	if len(files) != 2 {
		t.Fatalf("got %d files, want 2", len(files))
	}
	if files[0].Path != filepath.Join(dir, "lib", "bad.js") || files[1].Path != filepath.Join(dir, "ok.js") {
		t.Errorf("unexpected files %s, %s", files[0].Path, files[1].Path)
	}

	errs := w.Errors()
	if len(errs) != 1 || filepath.Base(errs[0].Path) != "bad.js" {
		t.Fatalf("Errors() = %v", errs)
	}
	if errs[0].Program != nil {
		t.Error("failed file should have no program")
	}

	ok := w.GetFile(filepath.Join(dir, "ok.js"))
	if ok == nil || ok.Err != nil {
		t.Fatalf("ok.js: %+v", ok)
	}
	fns := ok.Functions()
	if len(fns) != 1 || fns[0].Name.Name != "f" {
		t.Errorf("Functions() = %v", fns)
	}
}

func TestUpdateAndRemove(t *testing.T) {
	w := New(t.TempDir())

	f := w.UpdateFile("a.js", []byte("var x = 1;"))
	if f.Err != nil {
		t.Fatal(f.Err)
	}
	f = w.UpdateFile("a.js", []byte("var x = 1"))
	if f.Err == nil {
		t.Fatal("expected a parse error")
	}
	if got := w.GetFile("a.js"); got != f {
		t.Error("GetFile should return the latest parse")
	}

	w.RemoveFile("a.js")
	if w.GetFile("a.js") != nil {
		t.Error("file still present after RemoveFile")
	}
}

func TestMatches(t *testing.T) {
	w := New(".", ".js", ".tjs")
	tests := []struct {
		path string
		want bool
	}{
		{"a.js", true},
		{"dir/b.tjs", true},
		{"c.json", false},
		{"js", false},
	}
	for _, tt := range tests {
		if got := w.Matches(tt.path); got != tt.want {
			t.Errorf("Matches(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
