package commands_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/betterqif/internal/config"
	"github.com/cleared-dev/betterqif/internal/tickers"
)

var binaryPath string

func TestMain(m *testing.M) {
	// Build the binary once for all tests.
	tmpDir, err := os.MkdirTemp("", "betterqif-test-*")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(tmpDir)

	binaryPath = filepath.Join(tmpDir, "betterqif")
	cmd := exec.Command("go", "build", "-o", binaryPath, "../../cmd/betterqif")
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		panic("failed to build binary: " + err.Error())
	}

	os.Exit(m.Run())
}

// runBetterqif runs the binary in workDir so that no config or .env from the
// source tree is picked up.
func runBetterqif(t *testing.T, workDir string, env []string, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(binaryPath, args...)
	cmd.Dir = workDir
	cmd.Env = append(os.Environ(), env...)
	out, err := cmd.CombinedOutput()
	return string(out), err
}

func TestInit_WritesConfig(t *testing.T) {
	dir := t.TempDir()
	out, err := runBetterqif(t, dir, nil, "init", dir)
	require.NoError(t, err, out)
	assert.Contains(t, out, "Initialized betterqif config")

	cfg, err := config.Load(filepath.Join(dir, config.DefaultFile))
	require.NoError(t, err)
	assert.Equal(t, config.Default().Goals, cfg.Goals)
	assert.Equal(t, filepath.Join(dir, "tickers.csv"), cfg.TickersFile)

	d, err := tickers.Load(filepath.Join(dir, "tickers.csv"))
	require.NoError(t, err)
	assert.Equal(t, len(tickers.Default()), d.Len())
}

func TestInit_RefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	_, err := runBetterqif(t, dir, nil, "init", dir)
	require.NoError(t, err)

	out, err := runBetterqif(t, dir, nil, "init", dir)
	require.Error(t, err)
	assert.Contains(t, out, "already exists")

	out, err = runBetterqif(t, dir, nil, "init", dir, "--force")
	require.NoError(t, err, out)
}

func TestVersion(t *testing.T) {
	out, err := runBetterqif(t, t.TempDir(), nil, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "betterqif version dev")
}

func TestConvert_PDFThroughExtractor(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("fake extractor is a shell script")
	}
	dir := t.TempDir()
	fixture, err := filepath.Abs("../../testdata/statement.txt")
	require.NoError(t, err)

	// pdftotext -nopgbrk -layout <pdf> - prints the text to stdout.
	fake := filepath.Join(dir, "fake-pdftotext")
	script := "#!/bin/sh\ncat '" + fixture + "'\n"
	require.NoError(t, os.WriteFile(fake, []byte(script), 0o755))

	pdf := filepath.Join(dir, "2016-q3.pdf")
	require.NoError(t, os.WriteFile(pdf, []byte("%PDF-1.4"), 0o644))

	out, err := runBetterqif(t, dir, []string{config.EnvPdftotext + "=" + fake}, "convert", pdf)
	require.NoError(t, err, out)
	assert.Contains(t, out, "2016-q3-build_wealth.qif (13 records)")

	got, err := os.ReadFile(filepath.Join(dir, "2016-q3-build_wealth.qif"))
	require.NoError(t, err)
	want, err := os.ReadFile("../../testdata/statement-build_wealth.qif")
	require.NoError(t, err)
	assert.Equal(t, string(want), string(got))
}

func TestConvert_MissingExtractor(t *testing.T) {
	dir := t.TempDir()
	pdf := filepath.Join(dir, "stmt.pdf")
	require.NoError(t, os.WriteFile(pdf, []byte("%PDF-1.4"), 0o644))

	_, err := runBetterqif(t, dir, []string{config.EnvPdftotext + "=" + filepath.Join(dir, "missing")}, "convert", pdf)
	require.Error(t, err)
}
