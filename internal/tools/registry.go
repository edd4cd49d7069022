// Package tools defines the static tool table the server exposes and the
// handlers behind it. Registration happens once at startup; there is no
// dynamic registration afterwards.
package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"shopmcp/internal/domain"
	"shopmcp/internal/infra/cache"
	"shopmcp/internal/infra/config"
	"shopmcp/internal/infra/shopify"
	"shopmcp/internal/infra/telemetry"
)

const serverName = "shopmcp"
const serverVersion = "0.2.0"

// VendorClient is the slice of the Admin API client the handlers use.
type VendorClient interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	SearchOrders(ctx context.Context, search shopify.OrderSearch) ([]domain.Order, error)
	GetOrderREST(ctx context.Context, orderID string) (domain.Order, error)
	GetOrderByID(ctx context.Context, id string) (domain.Order, error)
	CreateOrder(ctx context.Context, input shopify.OrderInput) (domain.Order, error)
	UpdateOrder(ctx context.Context, orderID string, update shopify.OrderUpdate) (domain.Order, error)
	FindOrCreateCustomer(ctx context.Context, customer domain.Customer) (domain.Customer, error)
	CreateDraftOrder(ctx context.Context, input shopify.DraftOrderInput) (domain.DraftOrder, error)
	ListDraftOrders(ctx context.Context, limit int) ([]domain.DraftOrder, error)
	CompleteDraftOrder(ctx context.Context, draftID string) (domain.DraftOrder, error)
}

type Deps struct {
	Config  config.Config
	Cache   *cache.Cache
	Client  VendorClient
	Logger  *zap.Logger
	Metrics *telemetry.Metrics
}

// handlerFunc returns the text summary and the structured payload for a
// successful invocation.
type handlerFunc func(ctx context.Context, args json.RawMessage) (string, any, error)

type toolDef struct {
	name        string
	description string
	schema      *jsonschema.Schema
	handler     handlerFunc
}

type Registry struct {
	server *mcp.Server
	deps   Deps
	logger *zap.Logger
}

func NewRegistry(deps Deps) (*Registry, error) {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := &Registry{
		server: mcp.NewServer(&mcp.Implementation{
			Name:    serverName,
			Version: serverVersion,
		}, &mcp.ServerOptions{HasTools: true}),
		deps:   deps,
		logger: logger.Named("tools"),
	}

	for _, def := range r.definitions() {
		if err := r.register(def); err != nil {
			return nil, fmt.Errorf("register tool %s: %w", def.name, err)
		}
	}
	return r, nil
}

func (r *Registry) Server() *mcp.Server {
	return r.server
}

func (r *Registry) definitions() []toolDef {
	return []toolDef{
		r.getProductsTool(),
		r.getOrderByIDTool(),
		r.searchOrdersTool(),
		r.createOrderTool(),
		r.updateOrderTool(),
		r.createDraftOrderTool(),
		r.listDraftOrdersTool(),
		r.completeDraftOrderTool(),
	}
}

func (r *Registry) register(def toolDef) error {
	resolved, err := def.schema.Resolve(nil)
	if err != nil {
		return fmt.Errorf("resolve input schema: %w", err)
	}

	r.server.AddTool(&mcp.Tool{
		Name:        def.name,
		Description: def.description,
		InputSchema: def.schema,
	}, r.wrap(def, resolved))
	return nil
}

// wrap enforces the shared handler contract: input validation against the
// declared schema, the credentials fail-fast, metrics, and the guarantee
// that no failure escapes as a protocol-level error.
func (r *Registry) wrap(def toolDef, resolved *jsonschema.Resolved) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (result *mcp.CallToolResult, _ error) {
		start := time.Now()
		logger := r.logger.With(
			zap.String("tool", def.name),
			zap.String("invocation_id", uuid.NewString()),
		)

		var handlerErr error
		defer func() {
			if rec := recover(); rec != nil {
				handlerErr = fmt.Errorf("panic: %v", rec)
				logger.Error("tool handler panicked", zap.Any("panic", rec))
				result = errorResult(fmt.Sprintf("%s failed unexpectedly", def.name))
			}
			r.deps.Metrics.ObserveTool(def.name, time.Since(start), handlerErr)
		}()

		raw := json.RawMessage(req.Params.Arguments)
		// Clients encode "no arguments" either by omitting the field or by
		// sending JSON null; both default to the empty object.
		if len(raw) == 0 || string(raw) == "null" {
			raw = json.RawMessage(`{}`)
		}

		var instance any
		if err := json.Unmarshal(raw, &instance); err != nil {
			handlerErr = err
			return errorResult("arguments must be a JSON object"), nil
		}
		if err := resolved.Validate(instance); err != nil {
			handlerErr = err
			return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		if !r.deps.Config.HasCredentials() {
			handlerErr = domain.ErrMissingCredentials
			return errorResult(domain.ErrMissingCredentials.Error()), nil
		}

		summary, structured, err := def.handler(ctx, raw)
		if err != nil {
			var notFound *domain.NotFound
			if errors.As(err, &notFound) {
				logger.Info("tool returned empty result", zap.String("entity", notFound.Entity))
				return textResult(notFound.Error(), nil), nil
			}
			handlerErr = err
			logger.Warn("tool failed", zap.Error(err))
			return errorResult(err.Error()), nil
		}

		logger.Debug("tool succeeded", zap.Duration("duration", time.Since(start)))
		return textResult(summary, structured), nil
	}
}

func textResult(summary string, structured any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content:           []mcp.Content{&mcp.TextContent{Text: summary}},
		StructuredContent: structured,
	}
}

func errorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: message}},
	}
}
