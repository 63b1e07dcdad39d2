package xml

import "github.com/dhamidi/recast/rewrite"

// Register adds the xml recipes to reg. The "ordered" option of
// xml.AddToTag keeps children sorted by name.
func Register(reg *rewrite.Registry) {
	reg.Register(FindTagsName, "Find elements by path.",
		func(o rewrite.Options) rewrite.Recipe {
			return NewFindTags(o.String("xPath"))
		})
	reg.Register(AddToTagName, "Add an element to the elements at a path.",
		func(o rewrite.Options) rewrite.Recipe {
			var order Order
			if o.Bool("ordered") {
				order = ByName
			}
			var opts []AddOption
			if o.Has("indent") {
				opts = append(opts, WithIndent(o.String("indent")))
			}
			return NewAddToTag(o.String("xPath"), o.String("tag"), order, opts...)
		})
	reg.Register(ChangeTagValueName, "Set the text of the elements at a path.",
		func(o rewrite.Options) rewrite.Recipe {
			return NewChangeTagValue(o.String("xPath"), o.String("value"))
		})
}
