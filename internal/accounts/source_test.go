package accounts

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/ledgerview/internal/config"
)

func TestSampleSource(t *testing.T) {
	accts, err := SampleSource{}.Accounts(context.Background())
	require.NoError(t, err)
	assert.Len(t, accts, 17)
}

func TestSampleSource_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := SampleSource{}.Accounts(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSaveCSVAndCSVSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "accounts.csv")
	require.NoError(t, SaveCSV(path, SampleChart()))

	_, err := os.Stat(path)
	require.NoError(t, err)

	accts, err := CSVSource{Path: path}.Accounts(context.Background())
	require.NoError(t, err)
	require.Len(t, accts, 17)
	assert.Equal(t, "Retained Earnings", accts[16].Name)
}

func TestCSVSource_Missing(t *testing.T) {
	_, err := CSVSource{Path: filepath.Join(t.TempDir(), "nope.csv")}.Accounts(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNewSource(t *testing.T) {
	src, closeFn, err := NewSource(config.SourceConfig{Kind: config.SourceSample})
	require.NoError(t, err)
	assert.IsType(t, SampleSource{}, src)
	require.NoError(t, closeFn())

	src, closeFn, err = NewSource(config.SourceConfig{Kind: config.SourceCSV, Path: "accounts.csv"})
	require.NoError(t, err)
	assert.Equal(t, CSVSource{Path: "accounts.csv"}, src)
	require.NoError(t, closeFn())

	src, closeFn, err = NewSource(config.SourceConfig{Kind: config.SourceSQLite, Path: filepath.Join(t.TempDir(), "ledger.db")})
	require.NoError(t, err)
	assert.IsType(t, &SQLiteSource{}, src)
	require.NoError(t, closeFn())

	_, _, err = NewSource(config.SourceConfig{Kind: "ftp"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown source kind "ftp"`)
}
