package usecases

import (
	"context"

	"github.com/opflow/opflow/internal/app/dto"
)

// TraceRecorder receives the record of one finished execution call.
// Implementations must be safe for concurrent use; the engine calls
// Record from whichever goroutine ran the call.
type TraceRecorder interface {
	Record(ctx context.Context, trace *dto.RunTrace) error
}
