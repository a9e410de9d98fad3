package mp3info

import (
	"github.com/arafatamim/mp3info/internal/types"
)

// Metadata is an alias to types.Metadata.
// Re-exporting from internal/types to keep the public API in one place.
type Metadata = types.Metadata

// Comment is an alias to types.Comment.
// Re-exporting from internal/types to keep the public API in one place.
type Comment = types.Comment
