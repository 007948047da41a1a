package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTestConfig(t *testing.T) string {
	t.Helper()
	base := t.TempDir()
	cfgPath := filepath.Join(base, "cellar.toml")
	content := fmt.Sprintf(`[paths]
data_dir = %q
log_dir = %q

[crossover]
bottles_dir = %q
default_bottle = "Main"

[providers.rawg]
enabled = false

[providers.giantbomb]
enabled = false
`,
		filepath.Join(base, "data"),
		filepath.Join(base, "logs"),
		filepath.Join(base, "bottles"),
	)
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return cfgPath
}

func runCommand(t *testing.T, cfgPath string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestAddListShowRemoveRoundTrip(t *testing.T) {
	cfgPath := writeTestConfig(t)
	exe := filepath.Join(t.TempDir(), "doom.exe")
	if err := os.WriteFile(exe, []byte("x"), 0o644); err != nil {
		t.Fatalf("write exe: %v", err)
	}

	out, err := runCommand(t, cfgPath, "add", exe, "--name", "Doom", "--bottle", "Steam")
	if err != nil {
		t.Fatalf("add failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Added Doom") {
		t.Fatalf("unexpected add output: %s", out)
	}

	out, err = runCommand(t, cfgPath, "list")
	if err != nil {
		t.Fatalf("list failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Doom") || !strings.Contains(out, "Steam") {
		t.Fatalf("list missing instance: %s", out)
	}
	if !strings.Contains(out, "never") {
		t.Fatalf("expected never-played marker: %s", out)
	}

	out, err = runCommand(t, cfgPath, "show", "Doom")
	if err != nil {
		t.Fatalf("show failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, exe) {
		t.Fatalf("show missing executable: %s", out)
	}

	if _, err := runCommand(t, cfgPath, "remove", "Doom"); err == nil {
		t.Fatal("remove without --yes must fail")
	}
	out, err = runCommand(t, cfgPath, "remove", "Doom", "--yes")
	if err != nil {
		t.Fatalf("remove failed: %v\n%s", err, out)
	}

	out, err = runCommand(t, cfgPath, "list")
	if err != nil {
		t.Fatalf("list failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Catalogue is empty") {
		t.Fatalf("expected empty catalogue: %s", out)
	}
}

func TestEditRequiresAField(t *testing.T) {
	cfgPath := writeTestConfig(t)
	exe := filepath.Join(t.TempDir(), "doom.exe")
	if err := os.WriteFile(exe, []byte("x"), 0o644); err != nil {
		t.Fatalf("write exe: %v", err)
	}
	if out, err := runCommand(t, cfgPath, "add", exe, "--name", "Doom"); err != nil {
		t.Fatalf("add failed: %v\n%s", err, out)
	}

	if _, err := runCommand(t, cfgPath, "edit", "Doom"); err == nil {
		t.Fatal("edit without flags must fail")
	}
	out, err := runCommand(t, cfgPath, "edit", "Doom", "--name", "Doom Eternal")
	if err != nil {
		t.Fatalf("edit failed: %v\n%s", err, out)
	}
	out, err = runCommand(t, cfgPath, "list")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out, "Doom Eternal") {
		t.Fatalf("rename not visible: %s", out)
	}
}

func TestImportDryRunSkipMatch(t *testing.T) {
	cfgPath := writeTestConfig(t)
	library := t.TempDir()
	for _, rel := range []string{"Doom/doom.exe", "Celeste/celeste.exe"} {
		path := filepath.Join(library, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	out, err := runCommand(t, cfgPath, "import", library, "--dry-run", "--skip-match")
	if err != nil {
		t.Fatalf("import failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Found 2 candidates") {
		t.Fatalf("unexpected scan output: %s", out)
	}
	if !strings.Contains(out, "Dry run, nothing committed.") {
		t.Fatalf("expected dry-run notice: %s", out)
	}

	// Nothing reaches the catalogue on a dry run.
	out, err = runCommand(t, cfgPath, "list")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out, "Catalogue is empty") {
		t.Fatalf("dry run committed instances: %s", out)
	}
}

func TestImportCommitsBatch(t *testing.T) {
	cfgPath := writeTestConfig(t)
	library := t.TempDir()
	for _, rel := range []string{"Doom/doom.exe", "Celeste/celeste.exe"} {
		path := filepath.Join(library, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	out, err := runCommand(t, cfgPath, "import", library, "--skip-match", "--exclude", "Celeste")
	if err != nil {
		t.Fatalf("import failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Imported 1 instances.") {
		t.Fatalf("unexpected import output: %s", out)
	}

	out, err = runCommand(t, cfgPath, "list")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out, "Doom") || strings.Contains(out, "Celeste") {
		t.Fatalf("unexpected catalogue contents: %s", out)
	}
}

func TestConfigInitWritesSample(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"config", "init", "--path", target})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("config init failed: %v\n%s", err, out.String())
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "[crossover]") {
		t.Fatalf("sample config missing sections:\n%s", data)
	}
}
