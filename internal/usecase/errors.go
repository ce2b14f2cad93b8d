package usecase

import (
	"context"
	"errors"
	"net"
	"strings"
)

const unknownErrorMessage = "An unexpected error occurred"

// ErrorMessage turns any fetch error into the single line shown in place of
// the affected view.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return "Request timed out"
	}
	if errors.Is(err, context.Canceled) {
		return "Request cancelled"
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return "Network error: " + netErr.Error()
	}

	msg := strings.TrimSpace(err.Error())
	if msg == "" {
		return unknownErrorMessage
	}
	return msg
}
