//go:build !gojson

package gojson

import (
	"io"

	svcconfig "github.com/rpckit/svcconfig"
	jsonsrc "github.com/rpckit/svcconfig/source/json"
)

// Driver returns a stub driver when the gojson tag is not enabled. It
// delegates to the encoding/json-based source directly to avoid recursion.
func Driver() svcconfig.JSONDriver { return stub{} }

type stub struct{}

func (stub) NewReader(r io.Reader) svcconfig.Source {
	return svcconfig.SourceFromEngine(jsonsrc.NewReader(r))
}
func (stub) NewBytes(b []byte) svcconfig.Source {
	return svcconfig.SourceFromEngine(jsonsrc.NewBytes(b))
}
func (stub) Name() string { return "encoding/json (gojson stub)" }
