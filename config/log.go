package config

import "github.com/tliron/commonlog"

var log = commonlog.GetLogger("recast.config")
