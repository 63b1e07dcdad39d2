package pom

import "github.com/tliron/commonlog"

var log = commonlog.GetLogger("recast.pom")
