package apierr

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestProviderErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      *ProviderError
		contains []string
	}{
		{
			name:     "status only",
			err:      &ProviderError{Op: "generate examples", Status: 502},
			contains: []string{"generate examples", "502"},
		},
		{
			name:     "with provider message",
			err:      &ProviderError{Op: "generate examples", Status: 500, Message: "OpenAI API key not configured"},
			contains: []string{"OpenAI API key not configured", "500"},
		},
		{
			name:     "message without status",
			err:      &ProviderError{Op: "translate", Message: "quota exceeded"},
			contains: []string{"translate: quota exceeded"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, want := range tt.contains {
				if !strings.Contains(msg, want) {
					t.Errorf("Error() = %q, want it to contain %q", msg, want)
				}
			}
		})
	}
}

func TestNetworkWrapsOnce(t *testing.T) {
	base := context.DeadlineExceeded
	err := Network("fetch words", base)

	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected NetworkError, got %T", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Error("NetworkError should unwrap to the cause")
	}

	// Already classified errors pass through untouched
	prov := fmt.Errorf("wrapped: %w", &ProviderError{Op: "tts", Status: 404})
	if got := Network("tts", prov); got != prov {
		t.Errorf("Network() re-wrapped a classified error: %v", got)
	}

	if Network("noop", nil) != nil {
		t.Error("Network(nil) should be nil")
	}
}

func TestStatus(t *testing.T) {
	err := fmt.Errorf("outer: %w", &ProviderError{Op: "words", Status: 503})
	if got := Status(err); got != 503 {
		t.Errorf("Status() = %d, want 503", got)
	}
	if got := Status(errors.New("plain")); got != 0 {
		t.Errorf("Status() = %d, want 0", got)
	}
}

func TestClassified(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"network", &NetworkError{Op: "x", Err: errors.New("refused")}, true},
		{"malformed", &MalformedResponseError{Reason: "no array"}, true},
		{"playback", fmt.Errorf("ctx: %w", &PlaybackError{Text: "hej", Err: errors.New("decode")}), true},
		{"plain", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classified(tt.err); got != tt.want {
				t.Errorf("Classified() = %v, want %v", got, tt.want)
			}
		})
	}
}
