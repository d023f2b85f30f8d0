package interpreter

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/go-test/deep"
	"gopkg.in/yaml.v3"

	"quill/object"
	"quill/parser"
	"quill/stdlib"
)

// evalCase is one entry of a testdata/*.yaml fixture file.
type evalCase struct {
	Name     string `yaml:"name"`
	Input    string `yaml:"input"`
	Expected string `yaml:"expected"`
	Output   string `yaml:"output"`
}

func loadCases(t *testing.T, path string) []evalCase {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()

	var cases []evalCase
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cases); err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return cases
}

func run(t *testing.T, input string, opts ...Option) (object.Object, string) {
	t.Helper()
	program, errs := parser.Parse("", input)
	if len(errs) != 0 {
		t.Fatalf("input %q produced parse errors: %v", input, errs)
	}

	var out bytes.Buffer
	interp := New(stdlib.New(&out), opts...)
	return interp.Eval(program, object.NewEnvironment(nil)), out.String()
}

func TestEvalFixtures(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("testdata", "*.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if len(files) == 0 {
		t.Fatal("no fixtures found")
	}

	for _, file := range files {
		group := strings.TrimSuffix(filepath.Base(file), ".yaml")
		for _, tc := range loadCases(t, file) {
			t.Run(group+"/"+tc.Name, func(t *testing.T) {
				result, out := run(t, tc.Input)
				if result == nil {
					t.Fatalf("input %q evaluated to nil", tc.Input)
				}
				if result.Inspect() != tc.Expected {
					t.Errorf("expected=%q, got=%q", tc.Expected, result.Inspect())
				}
				if out != tc.Output {
					t.Errorf("expected output=%q, got=%q", tc.Output, out)
				}
			})
		}
	}
}

func TestReturnValueNeverEscapes(t *testing.T) {
	inputs := []string{
		"return 1;",
		"let f = fn() { return 2; }; f()",
		"while (true) { return 3; }",
		"if (true) { return 4; }",
	}

	for _, input := range inputs {
		result, _ := run(t, input)
		if _, ok := result.(*object.ReturnValue); ok {
			t.Errorf("input %q leaked a return value", input)
		}
	}
}

func TestBooleansAreShared(t *testing.T) {
	result, _ := run(t, "1 < 2")
	if result != object.TRUE {
		t.Errorf("expected the shared TRUE constant, got %#v", result)
	}

	result, _ = run(t, "!true")
	if result != object.FALSE {
		t.Errorf("expected the shared FALSE constant, got %#v", result)
	}

	result, _ = run(t, "if (false) { 1 }")
	if result != object.NULL {
		t.Errorf("expected the shared NULL constant, got %#v", result)
	}
}

func TestEnvironmentPersistsAcrossPrograms(t *testing.T) {
	interp := New(stdlib.New(&bytes.Buffer{}))
	env := object.NewEnvironment(nil)

	inputs := []struct {
		input    string
		expected string
	}{
		{"let counter = fn(n) { n + 1 };", "null"},
		{"let x = counter(1);", "null"},
		{"counter(x)", "3"},
		{"x = 1", "ERROR: invalid expression"},
	}

	for _, tt := range inputs {
		program, _ := parser.Parse("", tt.input)
		result := interp.Eval(program, env)
		if result.Inspect() != tt.expected {
			t.Errorf("input %q: expected=%q, got=%q", tt.input, tt.expected, result.Inspect())
		}
	}
}

func TestBadExpressionEvaluatesToError(t *testing.T) {
	program, errs := parser.Parse("", "let x 5;")
	if len(errs) == 0 {
		t.Fatal("expected a parse error")
	}

	interp := New(stdlib.New(&bytes.Buffer{}))
	result := interp.Eval(program, object.NewEnvironment(nil))
	if result.Inspect() != "5" {
		t.Errorf("expected best-effort evaluation to reach 5, got %q", result.Inspect())
	}

	program, _ = parser.Parse("", "[1, 2")
	result = interp.Eval(program, object.NewEnvironment(nil))
	if result.Inspect() != "ERROR: invalid expression" {
		t.Errorf("unexpected result %q", result.Inspect())
	}
}

func TestMaxDepth(t *testing.T) {
	input := "let f = fn(n) { if (n == 0) { return 0; } f(n - 1) }; f(50)"

	result, _ := run(t, input)
	if result.Inspect() != "0" {
		t.Fatalf("expected 0 under the default limit, got %q", result.Inspect())
	}

	result, _ = run(t, input, WithMaxDepth(20))
	if result.Inspect() != "ERROR: recursion limit exceeded" {
		t.Errorf("expected recursion error, got %q", result.Inspect())
	}

	// the counter unwinds, so the same interpreter keeps working afterwards
	interp := New(nil, WithMaxDepth(20))
	env := object.NewEnvironment(nil)
	program, _ := parser.Parse("", input)
	interp.Eval(program, env)
	program, _ = parser.Parse("", "1 + 1")
	if got := interp.Eval(program, env).Inspect(); got != "2" {
		t.Errorf("expected 2 after a recursion error, got %q", got)
	}
}

func TestNilBuiltinTable(t *testing.T) {
	interp := New(nil)
	program, _ := parser.Parse("", "len([1])")
	result := interp.Eval(program, object.NewEnvironment(nil))
	if result.Inspect() != "ERROR: identifier not found: len" {
		t.Errorf("unexpected result %q", result.Inspect())
	}
}

func TestDeterministicAcrossInterpreters(t *testing.T) {
	input := `
let fib = fn(n) { if (n < 2) { return n; } fib(n - 1) + fib(n - 2) };
let h = {"a": fib(10), "b": [1 == 1, "x" + "y"]};
[h, keys(h), len("abc")]
`
	expected := `[{"a": 55, "b": [true, "xy"]}, ["a", "b"], 3]`

	const workers = 8
	results := make([]string, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			program, _ := parser.Parse(fmt.Sprintf("worker%d", w), input)
			interp := New(stdlib.New(&bytes.Buffer{}))
			results[w] = interp.Eval(program, object.NewEnvironment(nil)).Inspect()
		}(w)
	}
	wg.Wait()

	for w, got := range results {
		if diff := deep.Equal(got, expected); diff != nil {
			t.Errorf("worker %d: %v", w, diff)
		}
	}
}
