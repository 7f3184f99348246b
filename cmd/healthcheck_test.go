package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestHealthcheckCommandExists(t *testing.T) {
	found := false
	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == "healthcheck" {
			found = true
			break
		}
	}

	if !found {
		t.Error("healthcheck command not found in root command")
	}
}

func TestHealthcheckCommand_Passes(t *testing.T) {
	base := isolateEnv(t)

	stdout, _, err := executeCommand(t, "", "--base-dir", base, "healthcheck")
	if err != nil {
		t.Fatalf("healthcheck failed: %v\n%s", err, stdout)
	}
	for _, want := range []string{"Session Hooks Health Check", "Counter store - file", "Health check passed"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("output should contain %q:\n%s", want, stdout)
		}
	}
}

func TestHealthcheckCommand_VerboseShowsPaths(t *testing.T) {
	base := isolateEnv(t)

	stdout, _, err := executeCommand(t, "", "-v", "--base-dir", base, "healthcheck")
	if err != nil {
		t.Fatalf("healthcheck failed: %v", err)
	}
	if !strings.Contains(stdout, "Sessions: "+filepath.Join(base, "sessions")) {
		t.Errorf("verbose output should list directories:\n%s", stdout)
	}
}

func TestHealthcheckCommand_FailsOnUnusableBase(t *testing.T) {
	file := filepath.Join(isolateEnv(t), "not-a-dir")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	stdout, _, err := executeCommand(t, "", "--base-dir", filepath.Join(file, ".claude"), "healthcheck")
	if err == nil {
		t.Fatal("healthcheck should fail when directories cannot be created")
	}
	if !strings.Contains(stdout, "Health check failed") {
		t.Errorf("output should report failure:\n%s", stdout)
	}
}
