//go:build tools

package jsval

import (
	_ "golang.org/x/tools/cmd/stringer"
)
