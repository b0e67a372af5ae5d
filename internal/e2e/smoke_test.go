package e2e

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmokeFlow(t *testing.T) {
	home := t.TempDir()
	remote := t.TempDir()
	binaryPath := buildBinary(t)

	_, stderr, err := runPomo(t, binaryPath, home, remote, "section", "add", "math")
	require.NoError(t, err, "stderr: %s", stderr)

	stdout, stderr, err := runPomo(t, binaryPath, home, remote, "status")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "account:  guest")
	assert.Contains(t, stdout, "(online)")
	assert.Contains(t, stdout, "pending:  0")

	stdout, stderr, err = runPomo(t, binaryPath, home, remote, "export", "--format", "json")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, `"math"`)
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "pomo-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/pomo")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build pomo binary: %s", string(output))
	return binaryPath
}

func runPomo(t *testing.T, binaryPath, home, remote string, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Env = append(os.Environ(), "HOME="+home, "POMO_SYNC_REMOTE_URL=file://"+remote)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func repoRoot(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(wd, "..", ".."))
}
