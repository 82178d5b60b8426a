// Package source provides the data feeds behind the ambient display. Each
// source turns an external reading (OS statistics, a weather API) into a
// status.Status on demand.
package source

import (
	"context"

	"ambientpi/internal/status"
)

// Source produces a fresh status snapshot on every call. Fetch may fail on
// transient errors (network, filesystem); callers decide how to render the
// failure. Implementations must honor the context deadline so a stalled
// collaborator cannot block the caller indefinitely.
type Source interface {
	Name() string
	Fetch(ctx context.Context) (status.Status, error)
}
