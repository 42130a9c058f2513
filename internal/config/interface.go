package config

import "context"

// Loader reads a pipeline definition file and applies it over a base
// model. Implementations decide the file format; the rest of the
// application only ever sees the Model.
type Loader interface {
	// Load applies the definition at path over base and returns the merged
	// model. A path that does not exist returns base unchanged.
	Load(ctx context.Context, path string, base *Model) (*Model, error)
}
