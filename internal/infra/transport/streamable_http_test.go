package transport

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

func TestRunFailsOnBindError(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = listener.Close() })

	server := mcp.NewServer(&mcp.Implementation{Name: "shopmcp", Version: "0.0.1"}, nil)
	s := NewStreamableHTTPServer(StreamableHTTPServerOptions{
		Addr:   listener.Addr().String(),
		Server: server,
	})

	err = s.Run(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to start")
}

func TestRunStopsOnContextCancel(t *testing.T) {
	server := mcp.NewServer(&mcp.Implementation{Name: "shopmcp", Version: "0.0.1"}, nil)
	s := NewStreamableHTTPServer(StreamableHTTPServerOptions{
		Addr:   "127.0.0.1:0",
		Server: server,
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop after cancel")
	}
}
