package rewrite

import "github.com/tliron/commonlog"

var log = commonlog.GetLogger("recast.rewrite")
