// Package recipes holds the java recipes: retargeting calls to static
// methods, renaming methods, finding method calls, implementing interfaces
// and managing imports.
package recipes

import "github.com/tliron/commonlog"

var log = commonlog.GetLogger("recast.java.recipes")
