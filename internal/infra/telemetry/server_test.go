package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStartHTTPServerDisabledWithoutAddr(t *testing.T) {
	err := StartHTTPServer(context.Background(), HTTPServerOptions{}, nil)
	require.NoError(t, err)
}

func TestStartHTTPServerStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- StartHTTPServer(ctx, HTTPServerOptions{Addr: "127.0.0.1:0"}, nil)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("metrics server did not stop after cancel")
	}
}
