package rewrite

// Tree is implemented by every node of every dialect.
type Tree interface {
	ID() ID
}

// SourceFile is the root of a parsed unit. Implementations are immutable.
type SourceFile interface {
	Tree
	SourcePath() string
	Print(opts ...PrintOption) string
}

type PrintOptions struct {
	// Markers renders search results inline in front of the marked node.
	Markers bool
}

type PrintOption func(*PrintOptions)

// PrintMarkers makes the printer render search result markers.
func PrintMarkers() PrintOption {
	return func(o *PrintOptions) {
		o.Markers = true
	}
}

func NewPrintOptions(opts ...PrintOption) PrintOptions {
	var o PrintOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
