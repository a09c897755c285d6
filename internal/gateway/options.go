package gateway

import "time"

// Default model configuration. The fallback is tried exactly once when
// the primary model is rejected by the CLI.
const (
	DefaultModel         = "gemini-3-pro-preview"
	DefaultFallbackModel = "gemini-2.5-pro"

	// DefaultTimeoutSeconds bounds one CLI attempt when the caller
	// doesn't set Options.TimeoutSeconds.
	DefaultTimeoutSeconds = 60
)

// Options configure a single gemini CLI invocation. Each field maps
// one-to-one onto a CLI flag; adding an option means extending args(),
// not the invocation algorithm.
type Options struct {
	Model           string
	FallbackModel   string
	Sandbox         bool
	Debug           bool
	AllFiles        bool
	ShowMemoryUsage bool
	Yolo            bool
	Checkpointing   bool
	TimeoutSeconds  int
}

// DefaultOptions returns the options used when a request leaves
// fields unset.
func DefaultOptions() Options {
	return Options{
		Model:          DefaultModel,
		FallbackModel:  DefaultFallbackModel,
		TimeoutSeconds: DefaultTimeoutSeconds,
	}
}

// merged fills zero-valued fields from the client defaults.
func (o Options) merged(defaults Options) Options {
	if o.Model == "" {
		o.Model = defaults.Model
	}
	if o.FallbackModel == "" {
		o.FallbackModel = defaults.FallbackModel
	}
	if o.TimeoutSeconds <= 0 {
		o.TimeoutSeconds = defaults.TimeoutSeconds
	}
	return o
}

// withModel returns a copy of the options targeting a different model.
func (o Options) withModel(model string) Options {
	o.Model = model
	return o
}

// timeout converts TimeoutSeconds to a duration, applying the default
// when unset.
func (o Options) timeout() time.Duration {
	secs := o.TimeoutSeconds
	if secs <= 0 {
		secs = DefaultTimeoutSeconds
	}
	return time.Duration(secs) * time.Second
}

// args serializes the options and prompt into the gemini CLI's
// flag convention.
func (o Options) args(prompt string) []string {
	args := []string{"-m", o.Model}
	if o.Sandbox {
		args = append(args, "-s")
	}
	if o.Debug {
		args = append(args, "-d")
	}
	if o.AllFiles {
		args = append(args, "-a")
	}
	if o.ShowMemoryUsage {
		args = append(args, "--show_memory_usage")
	}
	if o.Yolo {
		args = append(args, "-y")
	}
	if o.Checkpointing {
		args = append(args, "-c")
	}
	return append(args, "-p", prompt)
}
