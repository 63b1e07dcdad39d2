package pom

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

var ErrVersionSelector = errors.New("invalid version selector")

// Version is a Maven version split into items that compare the way Maven's
// ComparableVersion does: numbers numerically, qualifiers by their release
// order, trailing zeros and release qualifiers ignored.
type Version struct {
	raw   string
	items []versionItem
}

type versionItem struct {
	value   string
	numeric bool
	// sep is the separator in front of the item: '.', '-', '_' or 0.
	sep byte
}

func ParseVersion(s string) Version {
	s = strings.TrimSpace(s)
	items := splitVersion(s)
	for len(items) > 0 && items[len(items)-1].null() {
		items = items[:len(items)-1]
	}
	return Version{raw: s, items: items}
}

func (v Version) String() string { return v.raw }

// IsSnapshot reports whether v is a development version.
func (v Version) IsSnapshot() bool {
	return strings.HasSuffix(strings.ToUpper(v.raw), "-SNAPSHOT")
}

func splitVersion(s string) []versionItem {
	var items []versionItem
	var cur strings.Builder
	numeric := false
	var sep byte
	flush := func(next byte) {
		if cur.Len() > 0 {
			items = append(items, versionItem{value: cur.String(), numeric: numeric, sep: sep})
			cur.Reset()
		}
		sep = next
	}
	for i, r := range s {
		switch {
		case r == '.' || r == '-' || r == '_':
			flush(byte(r))
		case unicode.IsDigit(r):
			if cur.Len() > 0 && !numeric {
				flush(0)
			}
			numeric = true
			cur.WriteRune(r)
		case unicode.IsLetter(r):
			if cur.Len() > 0 && numeric {
				flush(0)
			}
			numeric = false
			cur.WriteRune(r)
		default:
			if i == 0 {
				numeric = false
			}
			cur.WriteRune(r)
		}
	}
	flush(0)
	return items
}

func (it versionItem) null() bool {
	if it.numeric {
		return strings.TrimLeft(it.value, "0") == ""
	}
	switch strings.ToLower(it.value) {
	case "", "final", "ga", "release":
		return true
	}
	return false
}

const releaseRank = 6

func qualifierRank(q string) int {
	switch strings.ToLower(q) {
	case "alpha", "a":
		return 1
	case "beta", "b":
		return 2
	case "milestone", "m":
		return 3
	case "rc", "cr":
		return 4
	case "snapshot":
		return 5
	case "sp":
		return 7
	}
	return releaseRank
}

func separatorRank(sep byte) int {
	switch sep {
	case '-':
		return 1
	case '.':
		return 2
	}
	return 0
}

// Compare returns -1, 0 or 1 when v is older than, equal to or newer than o.
func (v Version) Compare(o Version) int {
	for i := range max(len(v.items), len(o.items)) {
		a, aok := itemAt(v.items, i)
		b, bok := itemAt(o.items, i)
		var c int
		switch {
		case aok && bok:
			c = compareItems(a, b)
		case aok:
			c = compareMissing(a)
		default:
			c = -compareMissing(b)
		}
		if c != 0 {
			return c
		}
	}
	return 0
}

// compareMissing compares it with an absent item. Pre-release qualifiers
// sort before the release, service packs and other qualifiers after it.
func compareMissing(it versionItem) int {
	switch {
	case it.null():
		return 0
	case it.numeric:
		return 1
	case qualifierRank(it.value) < releaseRank:
		return -1
	}
	return 1
}

func itemAt(items []versionItem, i int) (versionItem, bool) {
	if i < len(items) {
		return items[i], true
	}
	return versionItem{}, false
}

func compareItems(a, b versionItem) int {
	switch {
	case a.numeric && b.numeric:
		an, _ := strconv.ParseInt(a.value, 10, 64)
		bn, _ := strconv.ParseInt(b.value, 10, 64)
		if c := cmpInt(an, bn); c != 0 {
			return c
		}
		return cmpInt(separatorRank(a.sep), separatorRank(b.sep))
	case a.numeric:
		return 1
	case b.numeric:
		return -1
	}
	if c := cmpInt(qualifierRank(a.value), qualifierRank(b.value)); c != 0 {
		return c
	}
	if c := strings.Compare(strings.ToLower(a.value), strings.ToLower(b.value)); c != 0 {
		return c
	}
	return cmpInt(separatorRank(a.sep), separatorRank(b.sep))
}

func cmpInt[T int | int64](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Range is one Maven version interval such as "[1.0,2.0)". A nil bound is
// open.
type Range struct {
	Min, Max                   *Version
	MinInclusive, MaxInclusive bool
}

func (r Range) Contains(v Version) bool {
	if r.Min != nil {
		c := v.Compare(*r.Min)
		if c < 0 || (c == 0 && !r.MinInclusive) {
			return false
		}
	}
	if r.Max != nil {
		c := v.Compare(*r.Max)
		if c > 0 || (c == 0 && !r.MaxInclusive) {
			return false
		}
	}
	return true
}

// Selector chooses a version: a plain version, a union of ranges, or one of
// "latest.release" and "latest.integration".
type Selector struct {
	raw    string
	exact  *Version
	ranges []Range
	latest string
}

func ParseSelector(s string) (Selector, error) {
	s = strings.TrimSpace(s)
	sel := Selector{raw: s}
	switch {
	case s == "":
		return sel, fmt.Errorf("%w: empty", ErrVersionSelector)
	case s == "latest.release" || s == "latest.integration":
		sel.latest = s
		return sel, nil
	case !strings.ContainsAny(s, "[](),"):
		v := ParseVersion(s)
		sel.exact = &v
		return sel, nil
	}
	for _, part := range splitRanges(s) {
		r, err := parseRange(part)
		if err != nil {
			return sel, fmt.Errorf("%w: %q: %w", ErrVersionSelector, s, err)
		}
		sel.ranges = append(sel.ranges, r)
	}
	return sel, nil
}

func (s Selector) String() string { return s.raw }

// IsExact reports whether s names a single version.
func (s Selector) IsExact() bool { return s.exact != nil }

func (s Selector) Matches(v Version) bool {
	switch {
	case s.exact != nil:
		return v.Compare(*s.exact) == 0
	case s.latest == "latest.release":
		return !v.IsSnapshot()
	case s.latest != "":
		return true
	}
	for _, r := range s.ranges {
		if r.Contains(v) {
			return true
		}
	}
	return false
}

// Select returns the newest of versions matched by s.
func (s Selector) Select(versions []string) (string, bool) {
	var best *Version
	for _, raw := range versions {
		v := ParseVersion(raw)
		if !s.Matches(v) {
			continue
		}
		if best == nil || v.Compare(*best) > 0 {
			best = &v
		}
	}
	if best == nil {
		return "", false
	}
	return best.raw, true
}

func splitRanges(s string) []string {
	var parts []string
	var cur strings.Builder
	depth := 0
	for _, r := range s {
		switch r {
		case '[', '(':
			if depth == 0 && cur.Len() > 0 {
				parts = append(parts, cur.String())
				cur.Reset()
			}
			depth++
			cur.WriteRune(r)
		case ']', ')':
			cur.WriteRune(r)
			depth--
			if depth == 0 {
				parts = append(parts, cur.String())
				cur.Reset()
			}
		case ',':
			if depth > 0 {
				cur.WriteRune(r)
			}
		default:
			cur.WriteRune(r)
		}
	}
	if strings.TrimSpace(cur.String()) != "" {
		parts = append(parts, cur.String())
	}
	return parts
}

func parseRange(s string) (Range, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || !strings.ContainsRune("[(", rune(s[0])) || !strings.ContainsRune("])", rune(s[len(s)-1])) {
		return Range{}, fmt.Errorf("malformed range %q", s)
	}
	r := Range{MinInclusive: s[0] == '[', MaxInclusive: s[len(s)-1] == ']'}
	lo, hi, ok := strings.Cut(s[1:len(s)-1], ",")
	if !ok {
		if !r.MinInclusive || !r.MaxInclusive {
			return Range{}, fmt.Errorf("single version range %q must be inclusive", s)
		}
		v := ParseVersion(lo)
		r.Min, r.Max = &v, &v
		return r, nil
	}
	if lo = strings.TrimSpace(lo); lo != "" {
		v := ParseVersion(lo)
		r.Min = &v
	}
	if hi = strings.TrimSpace(hi); hi != "" {
		v := ParseVersion(hi)
		r.Max = &v
	}
	return r, nil
}
