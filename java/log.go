package java

import "github.com/tliron/commonlog"

var log = commonlog.GetLogger("recast.java")
