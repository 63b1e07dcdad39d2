package project

import "github.com/tliron/commonlog"

var log = commonlog.GetLogger("recast.project")
