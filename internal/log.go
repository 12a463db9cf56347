package internal

import (
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("jsval")
