package source

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/nhle/notifywatch/internal/model"
)

// StatusError is returned when the server answers with a non-2xx status.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf(
		"unexpected status %d on %s %s: %s",
		e.StatusCode, e.Method, e.Path, e.Body,
	)
}

// IsAuthError reports whether err (or any error in its chain) is a
// StatusError caused by a missing or expired session. Redirects count
// because the portal sends anonymous clients to its login page.
func IsAuthError(err error) bool {
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		return false
	}
	switch statusErr.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden,
		http.StatusFound, http.StatusSeeOther:
		return true
	default:
		return false
	}
}

// Source fetches the current unread notification summary.
type Source interface {
	// FetchSummary performs exactly one request. A summary whose Success
	// is false is returned without error.
	FetchSummary(ctx context.Context) (*model.Summary, error)
}
