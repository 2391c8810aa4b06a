package svcconfig

import (
	"io"
	"sync"

	eng "github.com/rpckit/svcconfig/internal/engine"
	jsonsrc "github.com/rpckit/svcconfig/source/json"
)

// Source abstracts over polymorphic JSON token inputs. The engine never
// mutates the underlying document; it only consumes tokens.
type Source interface {
	NextToken() (eng.Token, error)
	Location() int64 // byte offset; -1 if unknown
}

// JSONDriver converts JSON input into a Source via a pluggable SPI. The
// default implementation is based on encoding/json and may be swapped with
// SetJSONDriver (for example to the go-json driver in source/gojson).
type JSONDriver interface {
	NewReader(r io.Reader) Source
	NewBytes(b []byte) Source
	Name() string
}

var (
	jsonDriverMu      sync.RWMutex
	currentJSONDriver JSONDriver = defaultJSONDriver{}
)

// SetJSONDriver replaces the global JSON driver; nil values are ignored.
// Drivers are expected to be installed at process start, before any
// document is parsed.
func SetJSONDriver(d JSONDriver) {
	if d == nil {
		return
	}
	jsonDriverMu.Lock()
	currentJSONDriver = d
	jsonDriverMu.Unlock()
}

// UseDefaultJSONDriver restores the default encoding/json-backed driver.
func UseDefaultJSONDriver() {
	jsonDriverMu.Lock()
	currentJSONDriver = defaultJSONDriver{}
	jsonDriverMu.Unlock()
}

func getJSONDriver() JSONDriver {
	jsonDriverMu.RLock()
	d := currentJSONDriver
	jsonDriverMu.RUnlock()
	return d
}

// defaultJSONDriver wraps the encoding/json implementation.
type defaultJSONDriver struct{}

func (defaultJSONDriver) NewReader(r io.Reader) Source { return engineSource{jsonsrc.NewReader(r)} }
func (defaultJSONDriver) NewBytes(b []byte) Source     { return engineSource{jsonsrc.NewBytes(b)} }
func (defaultJSONDriver) Name() string                 { return "encoding/json" }

// JSONReader wraps an io.Reader as a JSON Source.
func JSONReader(r io.Reader) Source { return getJSONDriver().NewReader(r) }

// JSONBytes wraps a byte slice as a JSON Source.
func JSONBytes(b []byte) Source { return getJSONDriver().NewBytes(b) }

// SourceFromEngine wraps an engine.TokenSource as a Source. It is used by
// driver implementations outside this package.
func SourceFromEngine(inner eng.TokenSource) Source { return engineSource{inner} }

type engineSource struct{ inner eng.TokenSource }

func (s engineSource) NextToken() (eng.Token, error) { return s.inner.NextToken() }
func (s engineSource) Location() int64               { return s.inner.Location() }
