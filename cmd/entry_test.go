package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type result struct {
	status int
	out    string
	err    string
}

func dispatch(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	var out, errOut bytes.Buffer
	status := Dispatch(args, Stdio{In: strings.NewReader(stdin), Out: &out, Err: &errOut})
	return result{status: status, out: out.String(), err: errOut.String()}
}

// writeProgram writes src next to an empty config file so runs never pick up
// the config of the machine running the tests.
func writeProgram(t *testing.T, src string) (program, cfg string) {
	t.Helper()
	dir := t.TempDir()
	program = filepath.Join(dir, "main.ql")
	cfg = filepath.Join(dir, "quill.yaml")
	if err := os.WriteFile(program, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(cfg, []byte("max_depth: 200\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return program, cfg
}

func TestRun(t *testing.T) {
	tests := []struct {
		src    string
		status int
		out    string
		err    string
	}{
		{
			src:    "let add = fn(a, b) { a + b };\nputs(\"sum\");\nadd(2, 3)",
			status: exitOK,
			out:    "sum\n5\n",
		},
		{
			src:    "let x = 1;",
			status: exitOK,
		},
		{
			src:    "let x 5;",
			status: exitFailure,
			err:    "main.ql:1:7: expected next token to be =, got int instead\n",
		},
		{
			src:    "1 / 0",
			status: exitFailure,
			err:    "ERROR: division by zero\n",
		},
		{
			src:    "let f = fn(n) { f(n + 1) }; f(0)",
			status: exitFailure,
			err:    "ERROR: recursion limit exceeded\n",
		},
	}

	for _, tt := range tests {
		program, cfg := writeProgram(t, tt.src)
		got := dispatch(t, "", "run", "-config", cfg, "-f", program)

		if got.status != tt.status {
			t.Errorf("%q: expected status %d, got %d", tt.src, tt.status, got.status)
		}
		if got.out != tt.out {
			t.Errorf("%q: expected out=%q, got=%q", tt.src, tt.out, got.out)
		}
		if !strings.HasSuffix(got.err, tt.err) {
			t.Errorf("%q: expected err ending in %q, got=%q", tt.src, tt.err, got.err)
		}
	}
}

func TestRunUsageErrors(t *testing.T) {
	got := dispatch(t, "", "run")
	if got.status != exitUsage {
		t.Errorf("expected usage status, got %d", got.status)
	}
	if !strings.Contains(got.err, "provide the filepath flag -f") {
		t.Errorf("unexpected stderr %q", got.err)
	}

	got = dispatch(t, "", "run", "-f", filepath.Join(t.TempDir(), "missing.ql"), "-config", filepath.Join(t.TempDir(), "none.yaml"))
	if got.status != exitFailure || !strings.Contains(got.err, "run: read") {
		t.Errorf("expected read failure, got %+v", got)
	}
}

func TestRunRejectsBadConfig(t *testing.T) {
	program, _ := writeProgram(t, "1")
	cfg := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(cfg, []byte("unknown_key: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got := dispatch(t, "", "run", "-config", cfg, "-f", program)
	if got.status != exitFailure || !strings.Contains(got.err, "config: parse") {
		t.Errorf("expected config failure, got %+v", got)
	}
}

func TestRunDebugLogging(t *testing.T) {
	program, cfg := writeProgram(t, "1 + 1")
	got := dispatch(t, "", "run", "-debug", "-config", cfg, "-f", program)

	if got.out != "2\n" {
		t.Errorf("unexpected stdout %q", got.out)
	}
	for _, msg := range []string{"config loaded", "msg=parsed", "msg=evaluated", "level=DEBUG"} {
		if !strings.Contains(got.err, msg) {
			t.Errorf("expected %q in debug log %q", msg, got.err)
		}
	}
}

func TestReplReadsPipedInput(t *testing.T) {
	_, cfg := writeProgram(t, "")
	got := dispatch(t, "let x = 2\nx * 21\n", "repl", "-config", cfg)

	if got.status != exitOK {
		t.Fatalf("unexpected status %d: %s", got.status, got.err)
	}
	if got.out != ">>> >>> 42\n>>> " {
		t.Errorf("unexpected output %q", got.out)
	}
}

func TestDispatchErrors(t *testing.T) {
	got := dispatch(t, "")
	if got.status != exitUsage {
		t.Errorf("expected usage status for no command, got %d", got.status)
	}

	got = dispatch(t, "", "compile")
	if got.status != exitUsage || !strings.Contains(got.err, "unknown command compile") {
		t.Errorf("unexpected result %+v", got)
	}
}

func TestHelpAndVersion(t *testing.T) {
	got := dispatch(t, "", "version")
	if got.out != "quill "+Version+"\n" {
		t.Errorf("unexpected version output %q", got.out)
	}

	got = dispatch(t, "", "help")
	for _, name := range []string{"run", "repl", "help", "version", "-config"} {
		if !strings.Contains(got.out, name) {
			t.Errorf("expected %q in help output", name)
		}
	}

	got = dispatch(t, "", "help", "run")
	if got.status != exitOK || !strings.Contains(got.out, "program file path") {
		t.Errorf("unexpected help run output %+v", got)
	}

	got = dispatch(t, "", "help", "nope")
	if got.status != exitUsage {
		t.Errorf("expected usage status, got %d", got.status)
	}
}
