// Package source selects the go-json driver as the process-wide default
// lexer. Importing it is optional; without it svcconfig uses encoding/json.
package source

import (
	svcconfig "github.com/rpckit/svcconfig"
	drvgojson "github.com/rpckit/svcconfig/source/gojson"
)

// init lives in a separate package to avoid an import cycle in the root.
func init() { svcconfig.SetJSONDriver(drvgojson.Driver()) }
