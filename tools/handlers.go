package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/olgasafonova/dragonball-mcp-server/internal/dragonball"
	apierrors "github.com/olgasafonova/dragonball-mcp-server/internal/errors"
	"github.com/olgasafonova/dragonball-mcp-server/metrics"
	"github.com/olgasafonova/dragonball-mcp-server/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// ToolResult is implemented by tool results. Summary renders the text content
// block and Raw returns the upstream body sent as structured content.
type ToolResult interface {
	Summary() string
	Raw() json.RawMessage
}

// HandlerRegistry provides type-safe tool registration by mapping
// tool names to their concrete handler implementations.
type HandlerRegistry struct {
	client *dragonball.Client
	logger *slog.Logger
}

// NewHandlerRegistry creates a new handler registry.
func NewHandlerRegistry(client *dragonball.Client, logger *slog.Logger) *HandlerRegistry {
	return &HandlerRegistry{
		client: client,
		logger: logger,
	}
}

// RegisterAll registers all tools with the MCP server.
func (h *HandlerRegistry) RegisterAll(server *mcp.Server) error {
	server.AddReceivingMiddleware(h.countRejectedCalls)
	for _, spec := range AllTools {
		if err := h.registerByName(server, spec); err != nil {
			return err
		}
	}
	h.logger.Info("Registered all tools", "count", len(AllTools))
	return nil
}

// registerByName dispatches to the correct typed registration function.
func (h *HandlerRegistry) registerByName(server *mcp.Server, spec ToolSpec) error {
	tool := h.buildTool(spec)

	switch spec.Method {
	case "ListCharacters":
		in, err := ListCharactersInputSchema()
		if err != nil {
			return fmt.Errorf("%s: %w", spec.Name, err)
		}
		tool.InputSchema = in
		tool.OutputSchema = CharacterPageOutputSchema()
		register(h, server, tool, spec, h.client.ListCharactersMCP)
	case "GetCharacter":
		in, err := CharacterDetailInputSchema()
		if err != nil {
			return fmt.Errorf("%s: %w", spec.Name, err)
		}
		tool.InputSchema = in
		tool.OutputSchema = CharacterDetailOutputSchema()
		register(h, server, tool, spec, h.client.GetCharacterMCP)
	default:
		return fmt.Errorf("unknown method %q for tool %s", spec.Method, spec.Name)
	}
	return nil
}

// buildTool creates an mcp.Tool from a ToolSpec.
func (h *HandlerRegistry) buildTool(spec ToolSpec) *mcp.Tool {
	annotations := &mcp.ToolAnnotations{
		Title:          spec.Title,
		ReadOnlyHint:   spec.ReadOnly,
		IdempotentHint: spec.Idempotent,
	}
	if spec.Destructive {
		annotations.DestructiveHint = ptr(true)
	} else {
		annotations.DestructiveHint = ptr(false)
	}
	if spec.OpenWorld {
		annotations.OpenWorldHint = ptr(true)
	}

	return &mcp.Tool{
		Name:        spec.Name,
		Title:       spec.Title,
		Description: spec.Description,
		Annotations: annotations,
	}
}

// register is a generic helper that registers a tool with the MCP server.
func register[Args any, Result ToolResult](
	h *HandlerRegistry,
	server *mcp.Server,
	tool *mcp.Tool,
	spec ToolSpec,
	method func(context.Context, Args) (Result, error),
) {
	mcp.AddTool(server, tool, toolHandler(h, spec, method))
}

// toolHandler wraps the client method with panic recovery, metrics, tracing,
// and logging. The summary becomes the text content and the upstream body is
// returned untouched as structured content; out stays nil so the SDK does not
// re-encode it.
func toolHandler[Args any, Result ToolResult](
	h *HandlerRegistry,
	spec ToolSpec,
	method func(context.Context, Args) (Result, error),
) mcp.ToolHandlerFor[Args, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, args Args) (res *mcp.CallToolResult, out any, err error) {
		markHandled(ctx)
		defer h.recoverPanic(spec.Name, &err)

		callID := uuid.NewString()

		ctx, span := tracing.StartSpan(ctx, "mcp.tool."+spec.Name)
		defer span.End()

		tracing.AddToolAttributes(span, spec.Name, spec.Category)
		span.SetAttributes(
			attribute.String("mcp.call.id", callID),
			attribute.Bool("mcp.tool.readonly", spec.ReadOnly),
		)

		metrics.RequestInFlight.WithLabelValues(spec.Name).Inc()
		defer metrics.RequestInFlight.WithLabelValues(spec.Name).Dec()

		start := time.Now()
		result, err := method(ctx, args)
		duration := time.Since(start).Seconds()

		span.SetAttributes(attribute.Float64("mcp.tool.duration_seconds", duration))

		if err != nil {
			kind := apierrors.Kind(err)
			tracing.RecordError(span, err)
			span.SetStatus(codes.Error, err.Error())
			metrics.RecordRequest(spec.Name, duration, false)
			metrics.RecordToolError(spec.Name, kind)
			h.logger.Warn("Tool failed",
				"tool", spec.Name,
				"call_id", callID,
				"kind", kind,
				"error", err)
			return nil, nil, fmt.Errorf("%s failed: %w", spec.Name, err)
		}

		structured := result.Raw()
		if len(structured) == 0 {
			if structured, err = json.Marshal(result); err != nil {
				return nil, nil, fmt.Errorf("%s failed: encoding result: %w", spec.Name, err)
			}
		}

		span.SetStatus(codes.Ok, "")
		metrics.RecordRequest(spec.Name, duration, true)
		h.logExecution(spec, callID, args, result, duration)

		return &mcp.CallToolResult{
			Content:           []mcp.Content{&mcp.TextContent{Text: result.Summary()}},
			StructuredContent: structured,
		}, nil, nil
	}
}

type handledKey struct{}

// markHandled records that a tools/call reached its handler.
func markHandled(ctx context.Context) {
	if handled, ok := ctx.Value(handledKey{}).(*bool); ok {
		*handled = true
	}
}

// countRejectedCalls counts tools/call requests that the SDK rejects before
// the handler runs, which is where schema validation failures end up.
func (h *HandlerRegistry) countRejectedCalls(next mcp.MethodHandler) mcp.MethodHandler {
	return func(ctx context.Context, method string, req mcp.Request) (mcp.Result, error) {
		call, ok := req.(*mcp.CallToolRequest)
		if method != "tools/call" || !ok || call.Params == nil || !knownTool(call.Params.Name) {
			return next(ctx, method, req)
		}

		handled := false
		result, err := next(context.WithValue(ctx, handledKey{}, &handled), method, req)
		if handled {
			return result, err
		}

		rejected := err != nil
		if res, ok := result.(*mcp.CallToolResult); ok && res != nil && res.IsError {
			rejected = true
		}
		if rejected {
			metrics.RecordToolError(call.Params.Name, "validation")
			h.logger.Warn("Tool call rejected",
				"tool", call.Params.Name,
				"error", err)
		}
		return result, err
	}
}

func knownTool(name string) bool {
	for _, spec := range AllTools {
		if spec.Name == name {
			return true
		}
	}
	return false
}

// recoverPanic recovers from panics in tool handlers and turns them into a
// tool error.
func (h *HandlerRegistry) recoverPanic(toolName string, err *error) {
	if rec := recover(); rec != nil {
		metrics.PanicsRecovered.WithLabelValues(toolName).Inc()
		metrics.RecordToolError(toolName, "internal")
		h.logger.Error("Panic recovered",
			"tool", toolName,
			"panic", rec,
			"stack", string(debug.Stack()))
		*err = fmt.Errorf("%s failed: internal error", toolName)
	}
}

// logExecution logs tool execution details.
func (h *HandlerRegistry) logExecution(spec ToolSpec, callID string, args, result any, duration float64) {
	attrs := []any{"tool", spec.Name, "call_id", callID, "duration_ms", int64(duration * 1000)}

	switch a := args.(type) {
	case dragonball.ListCharactersArgs:
		attrs = append(attrs, "page", a.Page, "limit", a.Limit)
	case dragonball.GetCharacterArgs:
		attrs = append(attrs, "id", a.ID)
	}

	switch r := result.(type) {
	case dragonball.CharacterPage:
		attrs = append(attrs, "items", len(r.Items), "total_items", r.Meta.TotalItems)
	case dragonball.CharacterDetail:
		attrs = append(attrs, "character", r.Name, "transformations", len(r.Transformations))
	}

	h.logger.Info("Tool executed", attrs...)
}
