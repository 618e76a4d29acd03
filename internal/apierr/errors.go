// Package apierr defines the failure taxonomy shared by every component
// that talks to a backing service: the vocabulary source, the example
// generator, the speech synthesizer and the audio player.
package apierr

import (
	"errors"
	"fmt"
)

// NetworkError means no response was received at all.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: no response: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ProviderError is a non-2xx answer. Message carries whatever the provider
// sent back in its error payload, if anything.
type ProviderError struct {
	Op      string
	Status  int
	Message string
}

func (e *ProviderError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: server error: %d", e.Op, e.Status)
	}
	if e.Status == 0 {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	return fmt.Sprintf("%s: %s (status %d)", e.Op, e.Message, e.Status)
}

// MalformedResponseError is a successful response whose payload cannot be
// interpreted.
type MalformedResponseError struct {
	Reason string
	Err    error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed response: %s: %v", e.Reason, e.Err)
	}
	return "malformed response: " + e.Reason
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// PlaybackError covers synthesis, decode and playback failures.
type PlaybackError struct {
	Text string
	Err  error
}

func (e *PlaybackError) Error() string {
	return fmt.Sprintf("playback of %q failed: %v", e.Text, e.Err)
}

func (e *PlaybackError) Unwrap() error { return e.Err }

// Network wraps err as a NetworkError unless it already carries a
// classification.
func Network(op string, err error) error {
	if err == nil || Classified(err) {
		return err
	}
	return &NetworkError{Op: op, Err: err}
}

// Classified reports whether err already belongs to the taxonomy.
func Classified(err error) bool {
	var (
		netErr  *NetworkError
		provErr *ProviderError
		malErr  *MalformedResponseError
		playErr *PlaybackError
	)
	return errors.As(err, &netErr) || errors.As(err, &provErr) ||
		errors.As(err, &malErr) || errors.As(err, &playErr)
}

// Status returns the HTTP status of a ProviderError in err's chain, or 0.
func Status(err error) int {
	var provErr *ProviderError
	if errors.As(err, &provErr) {
		return provErr.Status
	}
	return 0
}
