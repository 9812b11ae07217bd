package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	err := cmd.Execute()
	return out.String(), err
}

func setup(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("TINYJS_DATABASE_PATH", filepath.Join(t.TempDir(), "code.db"))
}

func TestParseCommand(t *testing.T) {
	setup(t)

	tests := []struct {
		name    string
		args    []string
		stdin   string
		want    string
		wantErr bool
	}{
		{
			name:  "sexp",
			args:  []string{"parse", "--format", "sexp"},
			stdin: "var x = 1 + 2 * 3;",
			want:  "(program (var x (+ 1 (* 2 3))))\n",
		},
		{
			name:  "trace",
			args:  []string{"parse"},
			stdin: "f();",
			want:  `"global_env": "currently not available"`,
		},
		{
			name:    "syntax error",
			args:    []string{"parse", "-f", "sexp"},
			stdin:   "var x = ;",
			want:    "Illegal input ; at (1, 8)",
			wantErr: true,
		},
		{
			name:    "unknown format",
			args:    []string{"parse", "-f", "xml"},
			stdin:   "f();",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.stdin, tt.args...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v (output %q)", err, tt.wantErr, out)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("output %q does not contain %q", out, tt.want)
			}
		})
	}
}

func TestTokensCommand(t *testing.T) {
	setup(t)

	out, err := run(t, "x <= 1", "tokens")
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[1], "<=") || !strings.HasPrefix(lines[1], "1:3") {
		t.Errorf("line 2 = %q", lines[1])
	}

	if _, err := run(t, "x & y", "tokens"); err == nil {
		t.Error("expected a lex error for '&'")
	}
}

func TestGrammarCommand(t *testing.T) {
	setup(t)

	out, err := run(t, "", "grammar")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Program") {
		t.Errorf("grammar output missing Program:\n%s", out)
	}

	out, err = run(t, "", "grammar", "--verify")
	if err != nil {
		t.Fatalf("verify: %v\n%s", err, out)
	}
	if !strings.HasPrefix(out, "ok:") {
		t.Errorf("verify output = %q", out)
	}

	out, err = run(t, "function f(a) { return a; }", "grammar", "check")
	if err != nil || out != "<stdin>: ok\n" {
		t.Errorf("check = %q, %v", out, err)
	}
	if _, err := run(t, "var x", "grammar", "check"); err == nil {
		t.Error("check should reject an incomplete program")
	}
}

func TestSnippetCommands(t *testing.T) {
	setup(t)

	out, err := run(t, "function sq(x) { return x * x; }", "snippet", "save", "--name", "square", "-d", "x squared")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != "1" {
		t.Errorf("save printed %q, want id 1", out)
	}

	if _, err := run(t, "var x", "snippet", "save", "--check"); err == nil {
		t.Error("--check should refuse a program that does not parse")
	}

	out, err = run(t, "", "snippet", "show", "square", "-f", "sexp")
	if err != nil {
		t.Fatal(err)
	}
	if want := "(program (function sq (x) (block (return (* x x)))))\n"; out != want {
		t.Errorf("show = %q, want %q", out, want)
	}

	out, err = run(t, "", "snippet", "list")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "square") || !strings.Contains(out, "x squared") {
		t.Errorf("list = %q", out)
	}

	if _, err := run(t, "", "snippet", "delete", "1"); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, "", "snippet", "show", "1"); err == nil {
		t.Error("show after delete should fail")
	}
}
