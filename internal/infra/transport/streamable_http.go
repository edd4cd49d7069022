// Package transport serves the MCP endpoint over streamable HTTP.
package transport

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

const mcpPath = "/mcp"

type StreamableHTTPServerOptions struct {
	Addr   string
	Server *mcp.Server
	Logger *zap.Logger
}

type StreamableHTTPServer struct {
	addr   string
	server *mcp.Server
	logger *zap.Logger
}

func NewStreamableHTTPServer(opts StreamableHTTPServerOptions) *StreamableHTTPServer {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StreamableHTTPServer{
		addr:   opts.Addr,
		server: opts.Server,
		logger: logger.Named("mcp_http"),
	}
}

// Run serves tool-invocation requests until ctx is cancelled. A failure to
// bind is returned to the caller, which exits non-zero.
func (s *StreamableHTTPServer) Run(ctx context.Context) error {
	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.server
	}, &mcp.StreamableHTTPOptions{JSONResponse: true})

	mux := http.NewServeMux()
	mux.Handle(mcpPath, handler)

	httpServer := &http.Server{
		Addr:    s.addr,
		Handler: mux,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("mcp server listening",
			zap.String("addr", s.addr),
			zap.String("path", mcpPath),
		)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("mcp server failed to start: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("mcp server shutdown error", zap.Error(err))
			return err
		}
		s.logger.Info("mcp server stopped")
		return nil
	}
}
