package rewrite

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Location is the position of a search result in the printed file. Line and
// Column are 1-based; Column counts bytes.
type Location struct {
	Offset      int
	Line        int
	Column      int
	Description string
}

// Locate returns the positions of the search results in file, in the order
// they appear. Positions refer to the file printed without markers.
func Locate(file SourceFile) []Location {
	plain := file.Print()
	marked := file.Print(PrintMarkers())
	if plain == marked {
		return nil
	}

	dmp := diffmatchpatch.New()
	var locs []Location
	offset := 0
	for _, d := range dmp.DiffMain(plain, marked, false) {
		switch d.Type {
		case diffmatchpatch.DiffEqual, diffmatchpatch.DiffDelete:
			offset += len(d.Text)
		case diffmatchpatch.DiffInsert:
			for _, desc := range splitMarkers(d.Text) {
				locs = append(locs, location(plain, offset, desc))
			}
		}
	}
	return locs
}

// splitMarkers returns the descriptions of the rendered markers in s.
func splitMarkers(s string) []string {
	var descs []string
	for s != "" {
		switch {
		case strings.HasPrefix(s, SearchResultGlyph):
			descs = append(descs, "")
			s = s[len(SearchResultGlyph):]
		case strings.HasPrefix(s, "~~("):
			end := strings.Index(s, ")~~>")
			if end < 0 {
				return descs
			}
			descs = append(descs, s[3:end])
			s = s[end+4:]
		default:
			// the diff shifted the marker into the surrounding text
			return append(descs, "")
		}
	}
	return descs
}

func location(text string, offset int, desc string) Location {
	before := text[:offset]
	line := strings.Count(before, "\n") + 1
	col := offset - strings.LastIndexByte(before, '\n')
	return Location{Offset: offset, Line: line, Column: col, Description: desc}
}
