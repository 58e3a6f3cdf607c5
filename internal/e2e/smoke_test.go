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
	binaryPath := buildBinary(t)
	require.NoError(t, writeScheduleFixture(home))

	stdout, stderr, err := runAtt(t, binaryPath, home, "schedule", "show", "Ana Night")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "ana\tNIGHT\t22:00-06:00\tnight")

	stdout, stderr, err = runAtt(t, binaryPath, home,
		"check", "--user", "ana", "--event", "login", "--at", "23:30", "--json",
	)
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, `"annotation": "LATE (1h30m)"`)

	_, _, err = runAtt(t, binaryPath, home, "schedule", "init")
	require.Error(t, err)
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "att-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/att")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build att binary: %s", string(output))
	return binaryPath
}

func runAtt(t *testing.T, binaryPath, home string, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Env = append(os.Environ(), "HOME="+home, "ATT_LOG_LEVEL=off")

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

func writeScheduleFixture(home string) error {
	configDir := filepath.Join(home, ".attendance")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return err
	}

	schedule := `version = 1
timezone = "UTC"

[[shifts]]
key = "ana"
start = "22:00"
end = "06:00"
team = "NIGHT"

[[shifts]]
key = "bruno"
aliases = ["bru"]
start = "06:00"
end = "14:00"
team = "DAY"
`

	return os.WriteFile(filepath.Join(configDir, "schedule.toml"), []byte(schedule), 0o600)
}
