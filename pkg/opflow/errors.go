package opflow

import (
	"errors"

	"github.com/opflow/opflow/internal/app/dto"
)

// Facade errors
var (
	ErrTracesDisabled = errors.New("run traces were not enabled at compile time")
)

// Re-exported engine errors so callers can classify failures with
// errors.Is without importing internal packages.
var (
	ErrUnresolvedName         = dto.ErrUnresolvedName
	ErrArityMismatch          = dto.ErrArityMismatch
	ErrUnsupportedInput       = dto.ErrUnsupportedInput
	ErrMissingMaxStringLength = dto.ErrMissingMaxStringLength
	ErrUnboundVariable        = dto.ErrUnboundVariable
)
