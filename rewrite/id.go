// Package rewrite holds the dialect-independent parts of the engine: node
// identity, markers, recipe configuration and validation, and the pipeline
// that applies recipes to parsed source files.
package rewrite

import "github.com/google/uuid"

// ID identifies a node. It is assigned once when a node is created and is
// carried over unchanged when a new version of the node is derived from it.
type ID uuid.UUID

func NewID() ID {
	return ID(uuid.New())
}

func (id ID) String() string {
	return uuid.UUID(id).String()
}

func (id ID) IsZero() bool {
	return id == ID{}
}
