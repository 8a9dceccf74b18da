package operator

import "sync/atomic"

// inferenceDepth counts the calls currently running in inference mode.
// Training-mode tracking is considered disabled while it is non-zero.
// A counter, rather than a save/restore flag, keeps concurrent calls
// from re-enabling tracking underneath each other.
var inferenceDepth atomic.Int64

// InferenceGuard is a scoped disable of training-mode tracking.
// Release is idempotent and must run on every exit path of a call.
type InferenceGuard struct {
	released atomic.Bool
}

// BeginInference disables training-mode tracking until the returned
// guard is released.
func BeginInference() *InferenceGuard {
	inferenceDepth.Add(1)
	return &InferenceGuard{}
}

// Release re-enables training-mode tracking once no other call holds a
// guard. Calling Release more than once has no further effect.
func (g *InferenceGuard) Release() {
	if g.released.CompareAndSwap(false, true) {
		inferenceDepth.Add(-1)
	}
}

// TrainingEnabled reports whether training-mode tracking is active.
// Transforms that record gradients consult this and skip the recording
// during engine calls.
func TrainingEnabled() bool {
	return inferenceDepth.Load() == 0
}
