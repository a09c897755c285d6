// Package resources implements the MCP resource handlers.
//
// Resources provide read-only data the host can consume for context.
// They use URI-based addressing (gemini://...) following MCP conventions.
package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/wiseyoda/gemini-code-assist-mcp/internal/config"
	"github.com/wiseyoda/gemini-code-assist-mcp/internal/gateway"
	"github.com/wiseyoda/gemini-code-assist-mcp/internal/templates"
)

// Prober is the gateway surface the status resource depends on.
type Prober interface {
	VerifyAuth(ctx context.Context) gateway.Result
}

// Handler manages the gemini:// resource endpoints.
type Handler struct {
	cfg      config.Config
	renderer templates.Renderer
	prober   Prober
}

// NewHandler creates a resource Handler with its dependencies.
func NewHandler(cfg config.Config, renderer templates.Renderer, prober Prober) *Handler {
	return &Handler{cfg: cfg, renderer: renderer, prober: prober}
}

// ConfigResource returns the MCP resource definition for server config.
func (h *Handler) ConfigResource() mcp.Resource {
	return mcp.NewResource(
		"gemini://config",
		"Server Configuration",
		mcp.WithResourceDescription("Effective server configuration: models, flags, limits"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleConfig returns the effective configuration as JSON.
func (h *Handler) HandleConfig(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	view := map[string]any{
		"name":              h.cfg.Name,
		"version":           h.cfg.Version,
		"description":       h.cfg.Description,
		"binary":            h.cfg.Binary,
		"model":             h.cfg.Model,
		"fallback_model":    h.cfg.FallbackModel,
		"sandbox":           h.cfg.Sandbox,
		"debug":             h.cfg.Debug,
		"timeout_seconds":   h.cfg.TimeoutSeconds,
		"enable_caching":    h.cfg.EnableCaching,
		"cache_ttl_seconds": h.cfg.CacheTTLSeconds,
		"max_file_size_mb":  h.cfg.MaxFileSizeMB,
		"max_context_files": h.cfg.MaxContextFiles,
	}
	return jsonResource(req.Params.URI, view)
}

// TemplatesResource returns the MCP resource definition for prompt
// templates.
func (h *Handler) TemplatesResource() mcp.Resource {
	return mcp.NewResource(
		"gemini://templates",
		"Prompt Templates",
		mcp.WithResourceDescription("Available prompt templates and their descriptions"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleTemplates lists the registered templates as JSON.
func (h *Handler) HandleTemplates(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return jsonResource(req.Params.URI, h.renderer.List())
}

// StatusResource returns the MCP resource definition for CLI status.
func (h *Handler) StatusResource() mcp.Resource {
	return mcp.NewResource(
		"gemini://status",
		"Gemini CLI Status",
		mcp.WithResourceDescription("Gemini CLI availability and authentication state"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleStatus probes the gemini CLI and reports availability.
func (h *Handler) HandleStatus(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	probe := h.prober.VerifyAuth(ctx)

	status := map[string]any{
		"authenticated": probe.Success,
		"cli_available": probe.ErrorKind != gateway.ErrToolNotFound,
		"model":         h.cfg.Model,
	}
	if !probe.Success {
		status["error"] = probe.ErrorMessage
		status["error_kind"] = probe.ErrorKind
	}
	return jsonResource(req.Params.URI, status)
}

// jsonResource marshals a value into a single JSON resource payload.
func jsonResource(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling resource %s: %w", uri, err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
