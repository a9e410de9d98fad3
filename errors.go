package mp3info

import (
	"github.com/arafatamim/mp3info/internal/types"
)

// OutOfBoundsError is an alias to types.OutOfBoundsError.
// Re-exporting from internal/types to keep the public API in one place.
type OutOfBoundsError = types.OutOfBoundsError

// UnsupportedVersionError is an alias to types.UnsupportedVersionError.
// Re-exporting from internal/types to keep the public API in one place.
type UnsupportedVersionError = types.UnsupportedVersionError

// InvalidSynchsafeError is an alias to types.InvalidSynchsafeError.
// Re-exporting from internal/types to keep the public API in one place.
type InvalidSynchsafeError = types.InvalidSynchsafeError

// UnsupportedEncodingError is an alias to types.UnsupportedEncodingError.
// Re-exporting from internal/types to keep the public API in one place.
type UnsupportedEncodingError = types.UnsupportedEncodingError

// NoTagError is an alias to types.NoTagError.
// Re-exporting from internal/types to keep the public API in one place.
type NoTagError = types.NoTagError

// Warning is an alias to types.Warning.
// Re-exporting from internal/types to keep the public API in one place.
type Warning = types.Warning
