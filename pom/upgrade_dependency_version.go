package pom

import (
	"context"
	"fmt"
	"strings"

	"github.com/dhamidi/recast/rewrite"
	recastxml "github.com/dhamidi/recast/xml"
)

const UpgradeDependencyVersionName = "pom.UpgradeDependencyVersion"

var dependencyPaths = []*recastxml.PathPattern{
	mustCompilePath("/project/dependencies/dependency"),
	mustCompilePath("/project/dependencyManagement/dependencies/dependency"),
	mustCompilePath("/project/profiles/profile/dependencies/dependency"),
	mustCompilePath("/project/profiles/profile/dependencyManagement/dependencies/dependency"),
}

func mustCompilePath(s string) *recastxml.PathPattern {
	p, err := recastxml.CompilePath(s)
	if err != nil {
		panic(err)
	}
	return p
}

// UpgradeDependencyVersion raises the version of matching dependencies. A
// version taken from a property is changed where the property is defined.
// Dependencies already at or above the new version are left alone.
type UpgradeDependencyVersion struct {
	groupID    string
	artifactID string
	newVersion string
	source     MetadataSource
	sel        Selector
	selErr     error
}

// NewUpgradeDependencyVersion upgrades the dependencies matching groupID
// and artifactID, which may contain "*", to newVersion: a version, a
// version range or latest.release.
func NewUpgradeDependencyVersion(groupID, artifactID, newVersion string, source MetadataSource) *UpgradeDependencyVersion {
	r := &UpgradeDependencyVersion{groupID: groupID, artifactID: artifactID, newVersion: newVersion, source: source}
	if newVersion != "" {
		r.sel, r.selErr = ParseSelector(newVersion)
	}
	return r
}

func (r *UpgradeDependencyVersion) Name() string { return UpgradeDependencyVersionName }

func (r *UpgradeDependencyVersion) Description() string {
	return fmt.Sprintf("Upgrade %s:%s to %s.", r.groupID, r.artifactID, r.newVersion)
}

func (r *UpgradeDependencyVersion) Validate() rewrite.Validated {
	v := rewrite.Required("groupId", r.groupID).
		And(rewrite.Required("artifactId", r.artifactID)).
		And(rewrite.Required("newVersion", r.newVersion))
	if r.selErr != nil {
		v = v.And(rewrite.Invalid("newVersion", r.newVersion, "is not a version or version range", r.selErr))
	}
	return v
}

func (r *UpgradeDependencyVersion) Visitor() rewrite.TreeVisitor {
	return recastxml.Adapt(func() recastxml.Visitor {
		return &upgradeVisitor{r: r, resolved: make(map[string]string)}
	})
}

type upgradeVisitor struct {
	recastxml.DefaultVisitor
	r        *UpgradeDependencyVersion
	resolved map[string]string
}

func (v *upgradeVisitor) VisitTag(c *recastxml.Cursor, n *recastxml.Tag) recastxml.X {
	if n.Name != "dependency" || !isDependencyPath(c.TagPath()) {
		return n
	}
	d := DependencyOf(n)
	if d.Version == "" || !d.Matches(v.r.groupID, v.r.artifactID) {
		return n
	}

	if name, ok := PropertyRef(d.Version); ok {
		doc, ok := recastxml.Enclosing[*recastxml.Document](c)
		if !ok {
			return n
		}
		current, ok := Properties(doc.Root)[name]
		if !ok {
			log.Debugf("property %s of %s is not defined in the project", name, d.Key())
			return n
		}
		if target, ok := v.target(c, d, current); ok {
			log.Infof("upgrading property %s to %s", name, target)
			c.Context().AndThen(updateProperty(name, target))
		}
		return n
	}

	// ranges and other expressions are left as declared
	if strings.ContainsAny(d.Version, "[](),$") {
		return n
	}
	target, ok := v.target(c, d, d.Version)
	if !ok {
		return n
	}
	log.Infof("upgrading %s from %s to %s", d.Key(), d.Version, target)
	version, _ := n.Child("version")
	return replaceChild(n, version, version.WithValue(target))
}

// target returns the version to upgrade d to when it is newer than
// current.
func (v *upgradeVisitor) target(c *recastxml.Cursor, d Dependency, current string) (string, bool) {
	target := v.r.newVersion
	if !v.r.sel.IsExact() {
		var ok bool
		if target, ok = v.resolved[d.Key()]; !ok {
			var err error
			target, err = ResolveVersion(context.Background(), v.r.source, d.GroupID, d.ArtifactID, v.r.sel)
			if err != nil {
				c.Context().Warn(fmt.Errorf("%s: %w", UpgradeDependencyVersionName, err))
				return "", false
			}
			v.resolved[d.Key()] = target
		}
	}
	if ParseVersion(target).Compare(ParseVersion(current)) <= 0 {
		return "", false
	}
	return target, true
}

func isDependencyPath(names []string) bool {
	for _, p := range dependencyPaths {
		if p.MatchesPath(names) {
			return true
		}
	}
	return false
}

// propertyUpdate sets a project property. Updates of the same property are
// scheduled once per run.
type propertyUpdate struct {
	rewrite.TreeVisitor
	key string
}

func (p propertyUpdate) Key() string { return p.key }

func updateProperty(name, value string) propertyUpdate {
	return propertyUpdate{
		TreeVisitor: recastxml.NewChangeTagValue("/project/properties/"+name, value).Visitor(),
		key:         UpgradeDependencyVersionName + ":" + name,
	}
}
