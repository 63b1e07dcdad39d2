package pom

import (
	"context"
	"fmt"
	"strings"

	"github.com/dhamidi/recast/rewrite"
	recastxml "github.com/dhamidi/recast/xml"
)

const AddDependencyName = "pom.AddDependency"

// AddDependency adds a dependency to /project/dependencies, keeping the
// dependencies sorted by groupId and artifactId. Projects that already
// declare the dependency are left alone. A version range or
// latest.release is resolved against the repository metadata.
type AddDependency struct {
	groupID    string
	artifactID string
	version    string
	scope      Scope
	source     MetadataSource
	sel        Selector
	selErr     error
}

func NewAddDependency(groupID, artifactID, version string, scope Scope, source MetadataSource) *AddDependency {
	r := &AddDependency{groupID: groupID, artifactID: artifactID, version: version, scope: scope, source: source}
	if version != "" {
		r.sel, r.selErr = ParseSelector(version)
	}
	return r
}

func (r *AddDependency) Name() string { return AddDependencyName }

func (r *AddDependency) Description() string {
	return fmt.Sprintf("Add dependency %s:%s:%s.", r.groupID, r.artifactID, r.version)
}

func (r *AddDependency) Validate() rewrite.Validated {
	v := rewrite.Required("groupId", r.groupID).
		And(rewrite.Required("artifactId", r.artifactID)).
		And(rewrite.Required("version", r.version))
	if r.selErr != nil {
		v = v.And(rewrite.Invalid("version", r.version, "is not a version or version range", r.selErr))
	}
	if !r.scope.Valid() {
		v = v.And(rewrite.Invalid("scope", string(r.scope), "is not a Maven scope", nil))
	}
	return v
}

func (r *AddDependency) Visitor() rewrite.TreeVisitor {
	return recastxml.Adapt(func() recastxml.Visitor { return &addDependencyVisitor{r: r} })
}

type addDependencyVisitor struct {
	recastxml.DefaultVisitor
	r *AddDependency
}

func (v *addDependencyVisitor) VisitTag(c *recastxml.Cursor, n *recastxml.Tag) recastxml.X {
	if n.Name != "project" || len(c.TagPath()) != 1 {
		return n
	}
	r := v.r
	deps, hasDeps := n.Child("dependencies")
	if hasDeps {
		for _, d := range Dependencies(deps) {
			if d.GroupID == r.groupID && d.ArtifactID == r.artifactID {
				log.Debugf("%s:%s is already declared", r.groupID, r.artifactID)
				return n
			}
		}
	}

	version := ""
	if !managed(n, r.groupID, r.artifactID) {
		var err error
		version, err = r.resolve()
		if err != nil {
			c.Context().Warn(fmt.Errorf("%s: %w", AddDependencyName, err))
			return n
		}
	}

	unit := indentUnit(n)
	dep := recastxml.MustParseTag(r.element(version, unit))
	log.Infof("adding dependency %s:%s:%s", r.groupID, r.artifactID, version)
	if hasDeps {
		return replaceChild(n, deps, recastxml.AddChild(deps, dep, ByCoordinate, unit))
	}
	deps = recastxml.AddChild(recastxml.MustParseTag("<dependencies/>"), dep, nil, unit)
	return recastxml.AddChild(n, deps, ByProjectSchema, unit)
}

func (r *AddDependency) resolve() (string, error) {
	if r.sel.IsExact() {
		return r.version, nil
	}
	return ResolveVersion(context.Background(), r.source, r.groupID, r.artifactID, r.sel)
}

// element writes the dependency with its children indented by unit.
func (r *AddDependency) element(version, unit string) string {
	var sb strings.Builder
	sb.WriteString("<dependency>")
	field := func(name, value string) {
		fmt.Fprintf(&sb, "\n%s<%s>%s</%s>", unit, name, recastxml.Escape(value), name)
	}
	field("groupId", r.groupID)
	field("artifactId", r.artifactID)
	if version != "" {
		field("version", version)
	}
	if r.scope != "" {
		field("scope", string(r.scope))
	}
	sb.WriteString("\n</dependency>")
	return sb.String()
}

// managed reports whether project pins the version of the dependency in
// its dependencyManagement section.
func managed(project *recastxml.Tag, groupID, artifactID string) bool {
	dm, ok := project.Child("dependencyManagement")
	if !ok {
		return false
	}
	deps, ok := dm.Child("dependencies")
	if !ok {
		return false
	}
	for _, d := range Dependencies(deps) {
		if d.GroupID == groupID && d.ArtifactID == artifactID && d.Version != "" {
			return true
		}
	}
	return false
}
