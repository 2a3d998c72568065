package functional

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/ProtonMail/gopenpgp/v2/crypto"
)

// aCleanEnvironment is a no-op because the Before hook already sets up the
// scratch home directory. This step exists so feature files read naturally.
func aCleanEnvironment(ctx context.Context) (context.Context, error) {
	return ctx, nil
}

// aSigningKeyAt generates a fresh PGP key pair and writes its armored
// private key to <homeDir>/<relPath>, for scenarios that need --signing-key.
func aSigningKeyAt(ctx context.Context, relPath string) (context.Context, error) {
	state := getState(ctx)
	if state == nil {
		return ctx, fmt.Errorf("no test state; is the Before hook running?")
	}

	key, err := crypto.GenerateKey("Functional Test Signer", "signer@example.com", "rsa", 2048)
	if err != nil {
		return ctx, fmt.Errorf("generating test signing key: %w", err)
	}
	armored, err := key.Armor()
	if err != nil {
		return ctx, fmt.Errorf("armoring test signing key: %w", err)
	}

	fullPath := filepath.Join(state.homeDir, relPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return ctx, err
	}
	if err := os.WriteFile(fullPath, []byte(armored), 0o600); err != nil {
		return ctx, err
	}

	return ctx, nil
}

// iRun executes a command string, replacing "rookpkg" at the start with the
// test binary path and "$REPO" anywhere in the arguments with the scenario's
// scratch repository directory.
func iRun(ctx context.Context, command string) (context.Context, error) {
	state := getState(ctx)
	if state == nil {
		return ctx, fmt.Errorf("no test state; is the Before hook running?")
	}

	command = strings.ReplaceAll(command, "$REPO", state.repoDir)
	command = strings.ReplaceAll(command, "$HOME_DIR", state.homeDir)

	args := strings.Fields(command)
	if len(args) > 0 && args[0] == "rookpkg" {
		args[0] = state.binPath
	}

	cmd := exec.Command(args[0], args[1:]...)
	cmd.Dir = state.homeDir
	cmd.Env = append(os.Environ(), "ROOKPKG_HOME="+filepath.Join(state.homeDir, "config"))

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	state.stdout = stdout.String()
	state.stderr = stderr.String()

	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			state.exitCode = exitErr.ExitCode()
		} else {
			return ctx, fmt.Errorf("command execution failed: %w", err)
		}
	} else {
		state.exitCode = 0
	}

	return ctx, nil
}

func theExitCodeIs(ctx context.Context, expected int) error {
	state := getState(ctx)
	if state.exitCode != expected {
		return fmt.Errorf("expected exit code %d, got %d\nstdout: %s\nstderr: %s",
			expected, state.exitCode, state.stdout, state.stderr)
	}
	return nil
}

func theExitCodeIsNot(ctx context.Context, notExpected int) error {
	state := getState(ctx)
	if state.exitCode == notExpected {
		return fmt.Errorf("expected exit code to not be %d\nstdout: %s\nstderr: %s",
			notExpected, state.stdout, state.stderr)
	}
	return nil
}

func theOutputContains(ctx context.Context, text string) error {
	state := getState(ctx)
	if !strings.Contains(state.stdout, text) {
		return fmt.Errorf("expected stdout to contain %q, got:\n%s", text, state.stdout)
	}
	return nil
}

func theOutputDoesNotContain(ctx context.Context, text string) error {
	state := getState(ctx)
	if strings.Contains(state.stdout, text) {
		return fmt.Errorf("expected stdout not to contain %q, got:\n%s", text, state.stdout)
	}
	return nil
}

func theErrorOutputContains(ctx context.Context, text string) error {
	state := getState(ctx)
	if !strings.Contains(state.stderr, text) {
		return fmt.Errorf("expected stderr to contain %q, got:\n%s", text, state.stderr)
	}
	return nil
}

func theErrorOutputDoesNotContain(ctx context.Context, text string) error {
	state := getState(ctx)
	if strings.Contains(state.stderr, text) {
		return fmt.Errorf("expected stderr not to contain %q, got:\n%s", text, state.stderr)
	}
	return nil
}

func theRepoFileExists(ctx context.Context, path string) error {
	state := getState(ctx)
	fullPath := filepath.Join(state.repoDir, path)
	if _, err := os.Lstat(fullPath); os.IsNotExist(err) {
		return fmt.Errorf("expected file %q to exist", fullPath)
	}
	return nil
}

func theRepoFileDoesNotExist(ctx context.Context, path string) error {
	state := getState(ctx)
	fullPath := filepath.Join(state.repoDir, path)
	if _, err := os.Lstat(fullPath); err == nil {
		return fmt.Errorf("expected file %q not to exist", fullPath)
	}
	return nil
}
