package commands_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/ledgerview/internal/accounts"
	"github.com/cleared-dev/ledgerview/internal/config"
)

var binaryPath string

func TestMain(m *testing.M) {
	// Build the binary once for all tests.
	tmpDir, err := os.MkdirTemp("", "ledgerview-test-*")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(tmpDir)

	binaryPath = filepath.Join(tmpDir, "ledgerview")
	cmd := exec.Command("go", "build", "-o", binaryPath, "../../cmd/ledgerview")
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		panic("failed to build binary: " + err.Error())
	}

	os.Exit(m.Run())
}

func runLedgerview(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(binaryPath, args...)
	cmd.Dir = t.TempDir()
	out, err := cmd.CombinedOutput()
	return string(out), err
}

func TestInit_CreatesProject(t *testing.T) {
	dir := t.TempDir()
	out, err := runLedgerview(t, "init", dir)
	require.NoError(t, err, out)
	assert.Contains(t, out, "Initialized ledgerview project at "+dir)

	for _, name := range []string{"ledgerview.yaml", "accounts.csv"} {
		_, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, "%s should exist", name)
	}
	_, err = os.Stat(filepath.Join(dir, ".git"))
	assert.ErrorIs(t, err, os.ErrNotExist, "no repository without --git")
}

func TestInit_Config(t *testing.T) {
	dir := t.TempDir()
	_, err := runLedgerview(t, "init", dir)
	require.NoError(t, err)

	cfg, err := config.Load(filepath.Join(dir, "ledgerview.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.SourceCSV, cfg.Source.Kind)
	assert.Equal(t, "accounts.csv", cfg.Source.Path)
	assert.Equal(t, ":9999", cfg.Server.Addr)
}

func TestInit_Accounts(t *testing.T) {
	dir := t.TempDir()
	_, err := runLedgerview(t, "init", dir)
	require.NoError(t, err)

	f, err := os.Open(filepath.Join(dir, "accounts.csv"))
	require.NoError(t, err)
	defer f.Close()

	accts, err := accounts.ReadAccounts(f)
	require.NoError(t, err)
	chart := accounts.SampleChart()
	require.Len(t, accts, len(chart))
	for i := range chart {
		assert.Equal(t, chart[i].ID, accts[i].ID)
		assert.Equal(t, chart[i].ParentID, accts[i].ParentID)
		assert.True(t, chart[i].Value.Equal(accts[i].Value), "account %s", chart[i].ID)
	}
}

func TestInit_SQLite(t *testing.T) {
	dir := t.TempDir()
	_, err := runLedgerview(t, "init", dir, "--source", "sqlite")
	require.NoError(t, err)

	cfg, err := config.Load(filepath.Join(dir, "ledgerview.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.SourceSQLite, cfg.Source.Kind)

	out, err := runLedgerview(t, "--config", filepath.Join(dir, "ledgerview.yaml"), "path", "14")
	require.NoError(t, err, out)
	assert.Equal(t, "Liabilities > Long-term Liabilities > Mortgage\n", out)
}

func TestInit_UsableFromAnotherDirectory(t *testing.T) {
	dir := t.TempDir()
	_, err := runLedgerview(t, "init", dir)
	require.NoError(t, err)

	out, err := runLedgerview(t, "--config", filepath.Join(dir, "ledgerview.yaml"), "table")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Retained Earnings")
}

func TestInit_RefusesExistingProject(t *testing.T) {
	dir := t.TempDir()
	_, err := runLedgerview(t, "init", dir)
	require.NoError(t, err)

	out, err := runLedgerview(t, "init", dir)
	require.Error(t, err)
	assert.Contains(t, out, "already exists")
}

func TestInit_UnsupportedSource(t *testing.T) {
	dir := t.TempDir()
	out, err := runLedgerview(t, "init", dir, "--source", "sample")
	require.Error(t, err)
	assert.Contains(t, out, "unsupported source")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "nothing written on bad flags")
}

func TestInit_GitRepo(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	dir := t.TempDir()
	out, err := runLedgerview(t, "init", dir, "--git")
	require.NoError(t, err, out)

	_, err = os.Stat(filepath.Join(dir, ".git"))
	require.NoError(t, err, ".git should exist")

	log := exec.Command("git", "log", "--format=%s|%an", "-1")
	log.Dir = dir
	logOut, err := log.Output()
	require.NoError(t, err)
	assert.Equal(t, "init: ledgerview project|ledgerview", strings.TrimSpace(string(logOut)))

	data, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	require.NoError(t, err)
	assert.Contains(t, string(data), ".env")
}

func TestVersion(t *testing.T) {
	out, err := runLedgerview(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "ledgerview version dev")
}
