package rbw

import (
	"errors"
	"strings"
	"testing"
)

// fakeCall records one runner invocation.
type fakeCall struct {
	mode  string // "output", "run", "input"
	args  []string
	env   map[string]string
	input string
}

// fakeRunner injects canned results keyed by subcommand and records
// every invocation.
type fakeRunner struct {
	calls   []fakeCall
	results map[string]*Result // for Output, keyed by args[0]
	errs    map[string]error   // for Run and RunWithInput, keyed by args[0]
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{
		results: map[string]*Result{
			// Unlocked by default so operations proceed.
			"unlocked": {ExitCode: 0},
		},
		errs: map[string]error{},
	}
}

func (f *fakeRunner) Output(args []string, env map[string]string) (*Result, error) {
	f.calls = append(f.calls, fakeCall{mode: "output", args: args, env: env})
	if res, ok := f.results[args[0]]; ok {
		return res, nil
	}
	return &Result{ExitCode: 0}, nil
}

func (f *fakeRunner) Run(args []string, env map[string]string) error {
	f.calls = append(f.calls, fakeCall{mode: "run", args: args, env: env})
	return f.errs[args[0]]
}

func (f *fakeRunner) RunWithInput(args []string, env map[string]string, input string) error {
	f.calls = append(f.calls, fakeCall{mode: "input", args: args, env: env, input: input})
	return f.errs[args[0]]
}

// subcommands lists the recorded invocations as "mode args[0]" strings.
func (f *fakeRunner) subcommands() []string {
	var out []string
	for _, c := range f.calls {
		out = append(out, c.mode+" "+c.args[0])
	}
	return out
}

// stubTTY is a TTYResolver with a fixed answer.
type stubTTY struct {
	path string
	ok   bool
}

func (s stubTTY) TTYPath() (string, bool) { return s.path, s.ok }

func newTestClient(r Runner) *Client {
	return New(WithRunner(r), WithTTYResolver(stubTTY{}), WithSpinner(false))
}

func TestListNamespacesFiltersFolder(t *testing.T) {
	listJSON := `[
		{"name": "api", "folder": "bwenv", "type": "Login"},
		{"name": "db", "folder": "bwenv", "type": "SecureNote"},
		{"name": "other", "folder": "personal", "type": "Login"},
		{"name": "unfiled", "folder": null, "type": "Login"}
	]`

	tests := []struct {
		name     string
		folder   string
		expected []string
	}{
		{
			name:     "matching folder regardless of type",
			folder:   "bwenv",
			expected: []string{"api", "db"},
		},
		{
			name:     "empty folder matches only unfiled",
			folder:   "",
			expected: []string{"unfiled"},
		},
		{
			name:     "no matches",
			folder:   "missing",
			expected: nil,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			runner := newFakeRunner()
			runner.results["list"] = &Result{Stdout: []byte(listJSON)}
			c := newTestClient(runner)

			names, err := c.ListNamespaces(tc.folder)
			if err != nil {
				t.Fatalf("ListNamespaces failed: %v", err)
			}
			if len(names) != len(tc.expected) {
				t.Fatalf("expected %v, got %v", tc.expected, names)
			}
			for i := range names {
				if names[i] != tc.expected[i] {
					t.Errorf("expected %v, got %v", tc.expected, names)
				}
			}
		})
	}
}

func TestListNamespacesCommandFailure(t *testing.T) {
	runner := newFakeRunner()
	runner.results["list"] = &Result{ExitCode: 2, Stderr: []byte("rbw list: sync failed\n")}
	c := newTestClient(runner)

	_, err := c.ListNamespaces("bwenv")
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected *ExitError, got %v", err)
	}
	if exitErr.ExitCode != 2 {
		t.Errorf("expected exit code 2, got %d", exitErr.ExitCode)
	}
	if exitErr.Stderr != "rbw list: sync failed" {
		t.Errorf("expected trimmed stderr, got %q", exitErr.Stderr)
	}
}

func TestListNamespacesMalformedJSON(t *testing.T) {
	runner := newFakeRunner()
	runner.results["list"] = &Result{Stdout: []byte("not json")}
	c := newTestClient(runner)

	if _, err := c.ListNamespaces("bwenv"); err == nil {
		t.Fatal("expected parse error, got nil")
	}
}

func TestGetItem(t *testing.T) {
	runner := newFakeRunner()
	runner.results["get"] = &Result{Stdout: []byte(`{"type": "SecureNote", "notes": "FOO=bar\n"}`)}
	c := newTestClient(runner)

	item, err := c.GetItem("api", "bwenv")
	if err != nil {
		t.Fatalf("GetItem failed: %v", err)
	}
	if item == nil {
		t.Fatal("expected item, got nil")
	}
	if item.Notes != "FOO=bar\n" {
		t.Errorf("expected notes %q, got %q", "FOO=bar\n", item.Notes)
	}
	if !item.IsSecureNote() {
		t.Error("expected IsSecureNote to be true")
	}

	last := runner.calls[len(runner.calls)-1]
	want := []string{"get", "--raw", "--folder", "bwenv", "api"}
	if strings.Join(last.args, " ") != strings.Join(want, " ") {
		t.Errorf("expected args %v, got %v", want, last.args)
	}
}

func TestGetItemNotFound(t *testing.T) {
	phrasings := []string{
		"rbw get: no entry found",
		"rbw get: no items found",
		"Entry not found: api",
	}

	for _, stderr := range phrasings {
		t.Run(stderr, func(t *testing.T) {
			runner := newFakeRunner()
			runner.results["get"] = &Result{ExitCode: 1, Stderr: []byte(stderr)}
			c := newTestClient(runner)

			item, err := c.GetItem("api", "bwenv")
			if err != nil {
				t.Fatalf("expected absent result, got error: %v", err)
			}
			if item != nil {
				t.Fatalf("expected nil item, got %+v", item)
			}
		})
	}
}

func TestGetItemGenericFailure(t *testing.T) {
	runner := newFakeRunner()
	runner.results["get"] = &Result{ExitCode: 1, Stderr: []byte("rbw get: api error\n")}
	c := newTestClient(runner)

	_, err := c.GetItem("api", "bwenv")
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected *ExitError, got %v", err)
	}
	if !strings.Contains(exitErr.Error(), "exit status 1") {
		t.Errorf("expected message with exit status, got %q", exitErr.Error())
	}
}

func TestCreateItemPayload(t *testing.T) {
	runner := newFakeRunner()
	c := newTestClient(runner)

	if err := c.CreateItem("api", "bwenv", "FOO=bar"); err != nil {
		t.Fatalf("CreateItem failed: %v", err)
	}

	last := runner.calls[len(runner.calls)-1]
	if last.mode != "input" {
		t.Fatalf("expected piped-write mode, got %s", last.mode)
	}
	want := []string{"add", "--folder", "bwenv", "api"}
	if strings.Join(last.args, " ") != strings.Join(want, " ") {
		t.Errorf("expected args %v, got %v", want, last.args)
	}
	// Leading empty line supplies the empty password field.
	if last.input != "\nFOO=bar\n" {
		t.Errorf("expected payload %q, got %q", "\nFOO=bar\n", last.input)
	}
}

func TestEditItemPayload(t *testing.T) {
	tests := []struct {
		name       string
		secureNote bool
		expected   string
	}{
		{
			name:       "login keeps leading empty password line",
			secureNote: false,
			expected:   "\nFOO=bar\n",
		},
		{
			name:       "secure note pipes content directly",
			secureNote: true,
			expected:   "FOO=bar\n",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			runner := newFakeRunner()
			c := newTestClient(runner)

			if err := c.EditItem("api", "bwenv", "FOO=bar", tc.secureNote); err != nil {
				t.Fatalf("EditItem failed: %v", err)
			}

			last := runner.calls[len(runner.calls)-1]
			want := []string{"edit", "--folder", "bwenv", "api"}
			if strings.Join(last.args, " ") != strings.Join(want, " ") {
				t.Errorf("expected args %v, got %v", want, last.args)
			}
			if last.input != tc.expected {
				t.Errorf("expected payload %q, got %q", tc.expected, last.input)
			}
		})
	}
}

func TestDeleteItemFailure(t *testing.T) {
	runner := newFakeRunner()
	runner.results["remove"] = &Result{ExitCode: 3, Stderr: []byte("rbw remove: vault error")}
	c := newTestClient(runner)

	err := c.DeleteItem("api", "bwenv")
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected *ExitError, got %v", err)
	}
	if exitErr.ExitCode != 3 {
		t.Errorf("expected exit code 3, got %d", exitErr.ExitCode)
	}
	if !strings.Contains(err.Error(), "exit status 3") {
		t.Errorf("expected message with exit status, got %q", err.Error())
	}
	// Delete has no not-found special case: the same error surfaces even
	// for not-found phrasings.
	runner = newFakeRunner()
	runner.results["remove"] = &Result{ExitCode: 1, Stderr: []byte("no entry found")}
	c = newTestClient(runner)
	if err := c.DeleteItem("api", "bwenv"); err == nil {
		t.Fatal("expected error for failed remove, got nil")
	}
}

func TestUnlockGuard(t *testing.T) {
	t.Run("already unlocked skips unlock", func(t *testing.T) {
		runner := newFakeRunner()
		runner.results["list"] = &Result{Stdout: []byte("[]")}
		c := newTestClient(runner)

		if _, err := c.ListNamespaces(""); err != nil {
			t.Fatalf("ListNamespaces failed: %v", err)
		}
		for _, call := range runner.calls {
			if call.args[0] == "unlock" {
				t.Error("unlock should not run when vault is already unlocked")
			}
		}
	})

	t.Run("locked vault triggers interactive unlock", func(t *testing.T) {
		runner := newFakeRunner()
		runner.results["unlocked"] = &Result{ExitCode: 1}
		runner.results["list"] = &Result{Stdout: []byte("[]")}
		c := newTestClient(runner)

		if _, err := c.ListNamespaces(""); err != nil {
			t.Fatalf("ListNamespaces failed: %v", err)
		}
		want := []string{"output unlocked", "run unlock", "output list"}
		got := runner.subcommands()
		if strings.Join(got, ",") != strings.Join(want, ",") {
			t.Errorf("expected call sequence %v, got %v", want, got)
		}
	})

	t.Run("unlock failure is fatal", func(t *testing.T) {
		runner := newFakeRunner()
		runner.results["unlocked"] = &Result{ExitCode: 1}
		runner.errs["unlock"] = &ExitError{Cmd: "rbw unlock", ExitCode: 1}
		c := newTestClient(runner)

		if _, err := c.ListNamespaces(""); err == nil {
			t.Fatal("expected unlock failure to propagate, got nil")
		}
	})
}

func TestTTYEnvInjection(t *testing.T) {
	tests := []struct {
		name string
		tty  stubTTY
		want string // expected RBW_TTY value, "" means unset
	}{
		{
			name: "resolved terminal is injected",
			tty:  stubTTY{path: "/dev/pts/3", ok: true},
			want: "/dev/pts/3",
		},
		{
			name: "unavailable terminal leaves env untouched",
			tty:  stubTTY{},
			want: "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			runner := newFakeRunner()
			runner.results["list"] = &Result{Stdout: []byte("[]")}
			c := New(WithRunner(runner), WithTTYResolver(tc.tty), WithSpinner(false))

			if _, err := c.ListNamespaces(""); err != nil {
				t.Fatalf("ListNamespaces failed: %v", err)
			}
			for _, call := range runner.calls {
				got := call.env[EnvTTY]
				if got != tc.want {
					t.Errorf("call %v: expected %s=%q, got %q",
						call.args, EnvTTY, tc.want, got)
				}
				if tc.want == "" && call.env != nil {
					t.Errorf("call %v: expected no env overrides, got %v", call.args, call.env)
				}
			}
		})
	}
}

func TestExitErrorMessage(t *testing.T) {
	err := &ExitError{Cmd: "rbw get", ExitCode: 1, Stderr: "boom"}
	want := "`rbw get` failed (exit status 1): boom"
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}

	err = &ExitError{Cmd: "rbw unlock", ExitCode: 1}
	want = "`rbw unlock` failed (exit status 1)"
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}
