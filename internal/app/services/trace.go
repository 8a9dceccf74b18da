// Package services provides application services around the execution
// engine.
package services

import (
	"context"
	"fmt"

	"github.com/opflow/opflow/internal/adapters/repository/memory"
	"github.com/opflow/opflow/internal/app/dto"
	"github.com/opflow/opflow/internal/infrastructure/metrics"
	"github.com/opflow/opflow/pkg/serialization"
)

// TraceService records run traces into a bounded in-memory store,
// serialized through the shared codec pipeline. It implements the
// engine's TraceRecorder interface.
type TraceService struct {
	store      *memory.TraceStore
	serializer *serialization.Serializer
}

// NewTraceService creates a recorder retaining the most recent capacity
// runs. A nil serializer selects the msgpack+zstd default.
func NewTraceService(capacity int, serializer *serialization.Serializer) *TraceService {
	if serializer == nil {
		serializer = serialization.Default()
	}
	return &TraceService{
		store:      memory.NewTraceStore(capacity),
		serializer: serializer,
	}
}

// Record serializes and stores one finished run trace.
func (s *TraceService) Record(_ context.Context, trace *dto.RunTrace) error {
	blob, err := s.serializer.Serialize(trace)
	if err != nil {
		return fmt.Errorf("serializing trace %s: %w", trace.RunID, err)
	}
	s.store.Put(trace.RunID, blob)
	metrics.IncTracesRecorded()
	return nil
}

// Load returns the stored trace for a run ID.
func (s *TraceService) Load(runID string) (*dto.RunTrace, error) {
	blob, ok := s.store.Get(runID)
	if !ok {
		return nil, fmt.Errorf("trace not found: %s", runID)
	}
	var trace dto.RunTrace
	if err := s.serializer.Deserialize(blob, &trace); err != nil {
		return nil, fmt.Errorf("deserializing trace %s: %w", runID, err)
	}
	return &trace, nil
}

// RunIDs returns the retained run IDs, oldest first.
func (s *TraceService) RunIDs() []string {
	return s.store.List()
}
