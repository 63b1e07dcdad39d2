package rewrite

import "strings"

// Marker is non-structural data attached to a node. Markers never change the
// parsed meaning of a tree.
type Marker interface {
	ID() ID
}

// SearchResult marks a node found by a search recipe.
type SearchResult struct {
	id          ID
	Description string
}

func NewSearchResult(description string) SearchResult {
	return SearchResult{id: NewID(), Description: description}
}

func (s SearchResult) ID() ID {
	return s.id
}

// Markers is an immutable list of markers. The zero value is empty.
type Markers struct {
	entries []Marker
}

func NewMarkers(markers ...Marker) Markers {
	if len(markers) == 0 {
		return Markers{}
	}
	return Markers{entries: append([]Marker(nil), markers...)}
}

// Add returns a copy of m with marker appended.
func (m Markers) Add(marker Marker) Markers {
	entries := make([]Marker, 0, len(m.entries)+1)
	entries = append(entries, m.entries...)
	entries = append(entries, marker)
	return Markers{entries: entries}
}

func (m Markers) All() []Marker {
	return append([]Marker(nil), m.entries...)
}

func (m Markers) Len() int {
	return len(m.entries)
}

func (m Markers) SearchResult() (SearchResult, bool) {
	for _, e := range m.entries {
		if s, ok := e.(SearchResult); ok {
			return s, true
		}
	}
	return SearchResult{}, false
}

// AddSearchResult marks m as found unless it already carries a search result.
func (m Markers) AddSearchResult(description string) (Markers, bool) {
	if _, ok := m.SearchResult(); ok {
		return m, false
	}
	return m.Add(NewSearchResult(description)), true
}

// SearchResultGlyph is printed in front of a found node.
const SearchResultGlyph = "~~>"

// Render returns the inline text printed for m before the node's own text.
func (m Markers) Render(opts PrintOptions) string {
	if !opts.Markers {
		return ""
	}
	s, ok := m.SearchResult()
	if !ok {
		return ""
	}
	if s.Description == "" {
		return SearchResultGlyph
	}
	var sb strings.Builder
	sb.WriteString("~~(")
	sb.WriteString(s.Description)
	sb.WriteString(")~~>")
	return sb.String()
}
