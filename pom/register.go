package pom

import "github.com/dhamidi/recast/rewrite"

// Register adds the pom recipes to reg. Version ranges are resolved
// against source. pom.AddDependency also accepts the coordinates as a
// single "coordinate" option written groupId:artifactId:version[:scope].
func Register(reg *rewrite.Registry, source MetadataSource) {
	reg.Register(AddDependencyName, "Add a Maven dependency.",
		func(o rewrite.Options) rewrite.Recipe {
			d := Dependency{
				GroupID:    o.String("groupId"),
				ArtifactID: o.String("artifactId"),
				Version:    o.String("version"),
				Scope:      Scope(o.String("scope")),
			}
			if o.Has("coordinate") {
				if c, err := ParseCoordinate(o.String("coordinate")); err == nil {
					d = c
				}
			}
			return NewAddDependency(d.GroupID, d.ArtifactID, d.Version, d.Scope, source)
		})
	reg.Register(UpgradeDependencyVersionName, "Upgrade the version of Maven dependencies.",
		func(o rewrite.Options) rewrite.Recipe {
			return NewUpgradeDependencyVersion(o.String("groupId"), o.String("artifactId"), o.String("newVersion"), source)
		})
}
