package fulfillment

import (
	"errors"
	"fmt"
)

// Error classification for remote calls. The orchestrator needs to tell
// "the request may never have reached the remote" apart from "the remote
// explicitly rejected it": only the second is safe to surface verbatim.
var (
	// ErrUnavailable covers dial failures, timeouts, and undecodable payloads.
	ErrUnavailable = errors.New("fulfillment service unavailable")
	// ErrNotFound is the remote's 404 for a referenced resource.
	ErrNotFound = errors.New("fulfillment resource not found")
	// ErrRejected is an explicit remote refusal (auth, validation, conflict).
	ErrRejected = errors.New("fulfillment request rejected")
)

func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrUnavailable, op, err)
}

func rejected(op, remoteMessage string) error {
	if remoteMessage == "" {
		return fmt.Errorf("%w: %s", ErrRejected, op)
	}
	return fmt.Errorf("%w: %s: %s", ErrRejected, op, remoteMessage)
}
