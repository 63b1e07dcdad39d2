// Package pom rewrites Maven pom.xml files. The recipes work on the lossless
// trees of package xml, so everything they do not touch prints unchanged.
package pom

import (
	"encoding/xml"
	"path"
	"slices"
	"strings"

	recastxml "github.com/dhamidi/recast/xml"
)

type Scope string

const (
	ScopeCompile  Scope = "compile"
	ScopeProvided Scope = "provided"
	ScopeRuntime  Scope = "runtime"
	ScopeTest     Scope = "test"
	ScopeSystem   Scope = "system"
	ScopeImport   Scope = "import"
)

func (s Scope) Valid() bool {
	switch s {
	case "", ScopeCompile, ScopeProvided, ScopeRuntime, ScopeTest, ScopeSystem, ScopeImport:
		return true
	}
	return false
}

// Metadata is the content of a maven-metadata.xml file.
type Metadata struct {
	XMLName    xml.Name   `xml:"metadata"`
	GroupID    string     `xml:"groupId"`
	ArtifactID string     `xml:"artifactId"`
	Versioning Versioning `xml:"versioning"`
}

type Versioning struct {
	Latest      string   `xml:"latest"`
	Release     string   `xml:"release"`
	Versions    []string `xml:"versions>version"`
	LastUpdated string   `xml:"lastUpdated"`
}

// Dependency is a dependency element of a pom tree.
type Dependency struct {
	GroupID    string
	ArtifactID string
	Version    string
	Scope      Scope
	Tag        *recastxml.Tag
}

func DependencyOf(t *recastxml.Tag) Dependency {
	d := Dependency{Tag: t}
	d.GroupID, _ = t.ChildValue("groupId")
	d.ArtifactID, _ = t.ChildValue("artifactId")
	d.Version, _ = t.ChildValue("version")
	scope, _ := t.ChildValue("scope")
	d.Scope = Scope(scope)
	return d
}

// Key returns "groupId:artifactId".
func (d Dependency) Key() string { return d.GroupID + ":" + d.ArtifactID }

// Matches reports whether d has the given coordinates. Both may contain
// "*" wildcards.
func (d Dependency) Matches(groupID, artifactID string) bool {
	return globMatch(groupID, d.GroupID) && globMatch(artifactID, d.ArtifactID)
}

func globMatch(pattern, s string) bool {
	if pattern == "" || pattern == "*" {
		return true
	}
	ok, err := path.Match(pattern, s)
	return err == nil && ok
}

// Dependencies returns the dependency elements directly below parent, which
// is a <dependencies> element.
func Dependencies(parent *recastxml.Tag) []Dependency {
	var deps []Dependency
	for _, t := range parent.Children("dependency") {
		deps = append(deps, DependencyOf(t))
	}
	return deps
}

// ByCoordinate orders dependency elements by groupId and then artifactId.
func ByCoordinate(a, b *recastxml.Tag) int {
	da, db := DependencyOf(a), DependencyOf(b)
	if c := strings.Compare(da.GroupID, db.GroupID); c != 0 {
		return c
	}
	return strings.Compare(da.ArtifactID, db.ArtifactID)
}

// projectElements is the order of the children of <project> in the Maven
// POM schema.
var projectElements = []string{
	"modelVersion", "parent", "groupId", "artifactId", "version", "packaging",
	"name", "description", "url", "inceptionYear", "organization", "licenses",
	"developers", "contributors", "mailingLists", "prerequisites", "modules",
	"scm", "issueManagement", "ciManagement", "distributionManagement",
	"properties", "dependencyManagement", "dependencies", "repositories",
	"pluginRepositories", "build", "reporting", "profiles",
}

// ByProjectSchema orders children of <project> the way the POM schema lists
// them. Unknown elements sort last.
func ByProjectSchema(a, b *recastxml.Tag) int {
	rank := func(t *recastxml.Tag) int {
		if i := slices.Index(projectElements, t.Name); i >= 0 {
			return i
		}
		return len(projectElements)
	}
	return rank(a) - rank(b)
}

// Properties returns the values of the <properties> of project.
func Properties(project *recastxml.Tag) map[string]string {
	props := make(map[string]string)
	if t, ok := project.Child("properties"); ok {
		for _, p := range t.ChildTags() {
			props[p.Name] = p.Value()
		}
	}
	return props
}

// PropertyRef returns name when v is exactly "${name}".
func PropertyRef(v string) (string, bool) {
	if strings.HasPrefix(v, "${") && strings.HasSuffix(v, "}") && len(v) > 3 {
		name := v[2 : len(v)-1]
		if !strings.ContainsAny(name, "${}") {
			return name, true
		}
	}
	return "", false
}

// indentUnit guesses the indentation unit of a document from the first
// indented child of its root element.
func indentUnit(project *recastxml.Tag) string {
	base := project.Indent()
	for _, c := range project.ChildTags() {
		p := c.Prefix()
		i := strings.LastIndexByte(p, '\n')
		if i < 0 {
			continue
		}
		if unit, ok := strings.CutPrefix(p[i+1:], base); ok && unit != "" {
			return unit
		}
	}
	return recastxml.DefaultIndent
}

// replaceChild returns parent with old replaced by next.
func replaceChild(parent, old, next *recastxml.Tag) *recastxml.Tag {
	content := slices.Clone(parent.Content)
	for i, c := range content {
		if c == recastxml.Content(old) {
			content[i] = next
			return parent.WithContent(content)
		}
	}
	return parent
}
