package gateway

import (
	"reflect"
	"testing"
	"time"
)

func TestOptions_Args(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want []string
	}{
		{
			name: "model only",
			opts: Options{Model: "gemini-2.5-pro"},
			want: []string{"-m", "gemini-2.5-pro", "-p", "hello"},
		},
		{
			name: "sandbox and debug",
			opts: Options{Model: "m", Sandbox: true, Debug: true},
			want: []string{"-m", "m", "-s", "-d", "-p", "hello"},
		},
		{
			name: "all flags",
			opts: Options{
				Model:           "m",
				Sandbox:         true,
				Debug:           true,
				AllFiles:        true,
				ShowMemoryUsage: true,
				Yolo:            true,
				Checkpointing:   true,
			},
			want: []string{"-m", "m", "-s", "-d", "-a", "--show_memory_usage", "-y", "-c", "-p", "hello"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.opts.args("hello")
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("args() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOptions_Merged(t *testing.T) {
	defaults := DefaultOptions()

	empty := Options{}.merged(defaults)
	if empty.Model != DefaultModel {
		t.Errorf("Model = %q, want default", empty.Model)
	}
	if empty.FallbackModel != DefaultFallbackModel {
		t.Errorf("FallbackModel = %q, want default", empty.FallbackModel)
	}
	if empty.TimeoutSeconds != DefaultTimeoutSeconds {
		t.Errorf("TimeoutSeconds = %d, want default", empty.TimeoutSeconds)
	}

	set := Options{Model: "custom", FallbackModel: "other", TimeoutSeconds: 5}.merged(defaults)
	if set.Model != "custom" || set.FallbackModel != "other" || set.TimeoutSeconds != 5 {
		t.Errorf("explicit fields were overwritten: %+v", set)
	}

	// Boolean flags pass through untouched.
	flags := Options{Sandbox: true}.merged(defaults)
	if !flags.Sandbox {
		t.Error("Sandbox flag lost in merge")
	}
}

func TestOptions_Timeout(t *testing.T) {
	if got := (Options{TimeoutSeconds: 30}).timeout(); got != 30*time.Second {
		t.Errorf("timeout() = %s, want 30s", got)
	}
	if got := (Options{}).timeout(); got != DefaultTimeoutSeconds*time.Second {
		t.Errorf("zero timeout() = %s, want default", got)
	}
	if got := (Options{TimeoutSeconds: -1}).timeout(); got != DefaultTimeoutSeconds*time.Second {
		t.Errorf("negative timeout() = %s, want default", got)
	}
}
