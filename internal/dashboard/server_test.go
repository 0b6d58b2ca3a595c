package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/ledgerview/internal/accounts"
)

func TestListenAndServe_StopsOnCancel(t *testing.T) {
	svc := NewService(accounts.SampleSource{}, Options{})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- svc.ListenAndServe(ctx, "127.0.0.1:0") }()

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(15 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestListenAndServe_BadAddress(t *testing.T) {
	svc := NewService(accounts.SampleSource{}, Options{})

	err := svc.ListenAndServe(context.Background(), "256.0.0.1:bad")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "serving dashboard")
}
