package xml

import "github.com/tliron/commonlog"

var log = commonlog.GetLogger("recast.xml")
