// Package tools implements the MCP tool handlers.
//
// Each tool is a struct receiving its dependencies at construction and
// exposing a Definition for registration plus a Handle compatible with
// mcp-go's CallToolRequest signature. Tools depend on the Invoker
// interface, not the concrete gateway client, so tests substitute fakes.
package tools

import (
	"context"
	"fmt"

	"github.com/wiseyoda/gemini-code-assist-mcp/internal/cache"
	"github.com/wiseyoda/gemini-code-assist-mcp/internal/gateway"
	"github.com/wiseyoda/gemini-code-assist-mcp/internal/templates"
)

// Invoker is the gateway surface tools depend on.
type Invoker interface {
	Invoke(ctx context.Context, req gateway.Request) gateway.Result
	VerifyAuth(ctx context.Context) gateway.Result
}

// Deps bundles the collaborators every tool shares.
type Deps struct {
	Invoker  Invoker
	Renderer templates.Renderer

	// Cache is optional; nil disables response caching.
	Cache *cache.Cache

	// Model is the configured primary model, used for cache keying.
	Model string
}

// complete runs one prompt pair through the cache and the gateway.
// Cache hits never spawn a subprocess.
func (d Deps) complete(ctx context.Context, system, user string) gateway.Result {
	key := cache.Key(system, user, d.Model)
	if d.Cache != nil {
		if content, ok := d.Cache.Get(key); ok {
			return gateway.Result{Success: true, Content: content, Model: d.Model}
		}
	}

	res := d.Invoker.Invoke(ctx, gateway.Request{SystemPrompt: system, UserPrompt: user})
	if res.Success && d.Cache != nil {
		d.Cache.Set(key, res.Content)
	}
	return res
}

// formatFailure renders a gateway failure as an actionable message.
func formatFailure(res gateway.Result) string {
	switch res.ErrorKind {
	case gateway.ErrToolNotFound:
		return res.ErrorMessage
	case gateway.ErrAuthUnavailable:
		return fmt.Sprintf("%s\n\nRun the gemini CLI once interactively to sign in, then retry.", res.ErrorMessage)
	case gateway.ErrTimeout:
		return fmt.Sprintf("%s\n\nTry a smaller input or raise the configured timeout.", res.ErrorMessage)
	case gateway.ErrModelRejected:
		return fmt.Sprintf("%s\n\nCheck the configured model and fallback model names.", res.ErrorMessage)
	default:
		return fmt.Sprintf("gemini invocation failed: %s", res.ErrorMessage)
	}
}

// fallbackNotice returns a footer telling the caller the fallback model
// answered, or an empty string.
func fallbackNotice(res gateway.Result) string {
	if !res.FallbackUsed || !res.Success {
		return ""
	}
	return fmt.Sprintf("\n\n> Note: the primary model was rejected; this response came from the fallback model %s.", res.Model)
}
