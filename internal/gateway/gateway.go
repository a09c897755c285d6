// Package gateway invokes the external gemini CLI and normalizes its
// output into typed results.
//
// The gateway is the only place in the codebase that spawns processes.
// Every failure mode is a Result value with an ErrorKind — nothing in
// this package panics or lets an OS error cross the boundary untyped.
// Calls are independent: the client holds no per-call state, so callers
// may invoke concurrently without coordination.
package gateway

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// DefaultBinary is the executable name resolved on the search path.
const DefaultBinary = "gemini"

// defaultProbeTimeout bounds the readiness probe so an interactive
// credential prompt from the CLI can't hang the caller.
const defaultProbeTimeout = 5 * time.Second

// Client invokes the gemini CLI. The zero value is not usable; create
// one with New or NewWithBinary.
type Client struct {
	binary       string
	defaults     Options
	probeTimeout time.Duration

	// verified caches a successful auth probe. Atomic so concurrent
	// invocations can share the client.
	verified atomic.Bool
}

// New creates a Client that resolves the "gemini" executable on PATH.
func New(defaults Options) *Client {
	return NewWithBinary(DefaultBinary, defaults)
}

// NewWithBinary creates a Client for a specific executable name or
// path. Tests point this at stub scripts.
func NewWithBinary(binary string, defaults Options) *Client {
	if binary == "" {
		binary = DefaultBinary
	}
	return &Client{
		binary:       binary,
		defaults:     defaults.merged(DefaultOptions()),
		probeTimeout: defaultProbeTimeout,
	}
}

// Invoke runs one gemini CLI call and returns exactly one Result.
//
// The sequence: resolve the executable, compose the prompt, run the
// subprocess under the request timeout, classify the outcome. When the
// first attempt fails with a model-rejection signature, the whole
// sequence is retried exactly once with the fallback model; the Result
// reports which model actually answered and that the fallback fired.
func (c *Client) Invoke(ctx context.Context, req Request) Result {
	id := uuid.NewString()
	opts := req.Options.merged(c.defaults)

	if strings.TrimSpace(req.SystemPrompt) == "" {
		return finalize(failure(ErrProcessFailed, "system prompt is required", opts.Model), id, 0, 0)
	}
	if strings.TrimSpace(req.UserPrompt) == "" {
		return finalize(failure(ErrProcessFailed, "user prompt is required", opts.Model), id, 0, 0)
	}

	start := time.Now()

	path, err := exec.LookPath(c.binary)
	if err != nil {
		msg := fmt.Sprintf("gemini CLI not found (looked for %q on PATH) — install and configure it first", c.binary)
		return finalize(failure(ErrToolNotFound, msg, opts.Model), id, time.Since(start), 0)
	}

	prompt := composePrompt(req)

	first := c.attempt(ctx, path, prompt, opts, req.Files)
	if first.Success || first.ErrorKind != ErrModelRejected ||
		opts.FallbackModel == "" || opts.FallbackModel == opts.Model {
		return finalize(first, id, time.Since(start), 1)
	}

	log.Printf("gateway: model %q rejected, retrying once with fallback %q (invocation %s)",
		opts.Model, opts.FallbackModel, id)

	second := c.attempt(ctx, path, prompt, opts.withModel(opts.FallbackModel), req.Files)
	second.FallbackUsed = true
	return finalize(second, id, time.Since(start), 2)
}

// VerifyAuth checks that the CLI is installed and able to answer a
// trivial prompt. A success is cached for the client's lifetime; the
// probe itself is bounded by the probe timeout.
func (c *Client) VerifyAuth(ctx context.Context) Result {
	id := uuid.NewString()
	start := time.Now()

	if c.verified.Load() {
		return finalize(Result{Success: true, Model: c.defaults.Model}, id, time.Since(start), 0)
	}

	path, err := exec.LookPath(c.binary)
	if err != nil {
		msg := fmt.Sprintf("gemini CLI not found (looked for %q on PATH)", c.binary)
		return finalize(failure(ErrToolNotFound, msg, c.defaults.Model), id, time.Since(start), 0)
	}

	probe := c.defaults
	probe.TimeoutSeconds = int(c.probeTimeout / time.Second)

	res := c.attempt(ctx, path, "Reply with the single word OK.", probe, nil)
	if res.Success {
		c.verified.Store(true)
	} else if res.ErrorKind != ErrTimeout {
		// Any non-timeout probe failure means the CLI is present but
		// can't serve requests — most commonly missing credentials.
		res.ErrorKind = ErrAuthUnavailable
	}
	return finalize(res, id, time.Since(start), 1)
}

// attempt spawns the CLI once and classifies its exit. The scoped
// temporary file, when used, is removed on every exit path via defer.
func (c *Client) attempt(parent context.Context, path, prompt string, opts Options, files []string) Result {
	ctx, cancel := context.WithTimeout(parent, opts.timeout())
	defer cancel()

	cmd := exec.CommandContext(ctx, path, opts.args(prompt)...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if len(files) > 0 {
		tmpPath, err := writeContextFile(files)
		if err != nil {
			return failure(ErrProcessFailed, err.Error(), opts.Model)
		}
		defer func() { _ = os.Remove(tmpPath) }()

		in, err := os.Open(tmpPath)
		if err != nil {
			return failure(ErrProcessFailed, fmt.Sprintf("opening context file: %v", err), opts.Model)
		}
		defer func() { _ = in.Close() }()
		cmd.Stdin = in
	}

	runErr := cmd.Run()

	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		msg := fmt.Sprintf("gemini did not finish within %s — process killed", opts.timeout())
		return failure(ErrTimeout, msg, opts.Model)
	case errors.Is(ctx.Err(), context.Canceled):
		return failure(ErrProcessFailed, "invocation canceled by caller", opts.Model)
	}

	content := strings.TrimSpace(stdout.String())
	if runErr == nil && content != "" {
		return Result{Success: true, Content: content, Model: opts.Model}
	}

	errMsg := strings.TrimSpace(stderr.String())
	if errMsg == "" {
		var exitErr *exec.ExitError
		switch {
		case errors.As(runErr, &exitErr):
			errMsg = fmt.Sprintf("gemini exited with code %d", exitErr.ExitCode())
		case runErr != nil:
			errMsg = fmt.Sprintf("spawning gemini: %v", runErr)
		default:
			errMsg = "gemini exited cleanly but produced no output"
		}
	}

	kind := ErrProcessFailed
	if isModelRejection(errMsg) {
		kind = ErrModelRejected
	}
	return failure(kind, errMsg, opts.Model)
}

// modelRejectionMarkers are the documented stderr phrasings the gemini
// CLI emits for an unknown, unsupported, or deprecated model. Anything
// not matching stays a generic ProcessFailed — the trigger is kept
// deliberately narrow.
var modelRejectionMarkers = []string{
	"not found or is not supported",
	"is not found for api version",
	"model not found",
}

func isModelRejection(stderr string) bool {
	s := strings.ToLower(stderr)
	for _, marker := range modelRejectionMarkers {
		if strings.Contains(s, marker) {
			return true
		}
	}
	return false
}

func finalize(r Result, id string, elapsed time.Duration, attempts int) Result {
	r.InvocationID = id
	r.DurationMS = elapsed.Milliseconds()
	r.Attempts = attempts
	return r
}
