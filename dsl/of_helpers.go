package dsl

import (
	"github.com/reoring/fmeaskema"
)

// SchemaOf converts an arbitrary Schema[T] into an AnyAdapter helper.
func SchemaOf[T any](s fmeaskema.Schema[T]) AnyAdapter { return anyAdapterFromSchema[T](s) }

// ArrayOfSchema converts a constrained ArrayBuilder[E] into an AnyAdapter.
// Example: Field("tags", ArrayOfSchema[string](Array(String()).Min(2)))
func ArrayOfSchema[E any](ab ArrayBuilder[E]) AnyAdapter { return anyAdapterFromSchema[[]E](ab) }
