package loader

import (
	"context"

	"github.com/angeloszaimis/bootconfig/internal/settings"
)

// Outcome describes how a loader resolved.
type Outcome string

const (
	// OutcomeDocument means the configuration document was retrieved and parsed.
	OutcomeDocument Outcome = "document"
	// OutcomeFallback means the document was absent and fallback values were used.
	OutcomeFallback Outcome = "fallback"
)

// Result is a loader's successful resolution.
type Result struct {
	Patch   settings.Patch
	Outcome Outcome
}

// Loader retrieves runtime settings from one source. Load makes a single
// attempt; a missing document is not an error, everything else is.
type Loader interface {
	Name() string
	Load(ctx context.Context) (Result, error)
}

// document is the wire shape of the configuration document. Pointer fields
// so that absent fields are left out of the patch; unrecognized fields are
// ignored by the JSON decoder.
type document struct {
	BaseURL *string `json:"baseUrl"`
}

func (d document) patch() settings.Patch {
	return settings.Patch{BaseURL: d.BaseURL}
}
