package gateway

// ErrorKind classifies why an invocation failed. Every failure the
// gateway can produce is one of these values — callers render them
// without a generic catch-all.
type ErrorKind string

const (
	// ErrToolNotFound: the gemini executable is not on the search path.
	ErrToolNotFound ErrorKind = "tool_not_found"

	// ErrAuthUnavailable: the readiness probe failed — the CLI is
	// installed but can't answer (usually missing gcloud credentials).
	ErrAuthUnavailable ErrorKind = "auth_unavailable"

	// ErrTimeout: the attempt exceeded its wall-clock bound and the
	// child process was killed.
	ErrTimeout ErrorKind = "timeout"

	// ErrProcessFailed: non-zero exit or empty stdout, with no more
	// specific classification.
	ErrProcessFailed ErrorKind = "process_failed"

	// ErrModelRejected: the CLI refused the requested model. Absorbed
	// by the fallback retry; surfaced only when the fallback also fails.
	ErrModelRejected ErrorKind = "model_rejected"
)

// Result is the outcome of one Invoke call. Created per call, never
// mutated after return.
type Result struct {
	Success bool   `json:"success"`
	Content string `json:"content,omitempty"`

	// Model is the model that actually produced the content, which
	// differs from the requested one when the fallback fired.
	Model        string `json:"model"`
	FallbackUsed bool   `json:"fallback_used,omitempty"`

	ErrorKind    ErrorKind `json:"error_kind,omitempty"`
	ErrorMessage string    `json:"error_message,omitempty"`

	DurationMS   int64  `json:"duration_ms"`
	InvocationID string `json:"invocation_id"`

	// Attempts counts subprocess spawns: 1, or 2 when the fallback ran.
	Attempts int `json:"attempts"`
}

func failure(kind ErrorKind, message, model string) Result {
	return Result{
		Success:      false,
		Model:        model,
		ErrorKind:    kind,
		ErrorMessage: message,
	}
}
