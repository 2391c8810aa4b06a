package svcconfig

// ParsedConfig is an opaque, parser-defined result value. A ParsedConfig is
// owned by the ServiceConfig that produced it, lives exactly as long as
// that ServiceConfig, and is addressed by parser registration index.
type ParsedConfig any

// OptDisableParsing is a conventional Options key: parsers honoring it
// behave as if the document contained nothing relevant to them, without
// consulting the JSON at all.
const OptDisableParsing = "disable_parsing"

// Options is a small caller-supplied side channel of key/value settings
// consulted by individual parsers, e.g. a per-parser disable toggle or an
// experimental-feature flag. Option keys are defined by the parsers that
// read them.
type Options map[string]any

// Bool returns the option as a bool; absent or non-bool values read false.
func (o Options) Bool(key string) bool {
	b, _ := o[key].(bool)
	return b
}

// String returns the option as a string.
func (o Options) String(key string) (string, bool) {
	s, ok := o[key].(string)
	return s, ok
}

// Parser validates one feature's slice of a service config document.
// Independently developed parsers (retry, client channel, message size)
// plug into a Registry without knowing about each other.
//
// ParseGlobalParams is invoked exactly once per document with the entire
// top-level JSON object; parsers find their fields by key lookup.
// ParsePerMethodParams is invoked once per element of the methodConfig
// array with that one object. For both, finding nothing relevant is
// success: return (nil, nil), never an error.
type Parser interface {
	Name() string
	ParseGlobalParams(opts Options, js Value) (ParsedConfig, *ErrorNode)
	ParsePerMethodParams(opts Options, js Value) (ParsedConfig, *ErrorNode)
}

// BaseParser provides no-op implementations of both parse operations for
// embedding by parsers that only care about one of them.
type BaseParser struct{}

// ParseGlobalParams finds nothing relevant.
func (BaseParser) ParseGlobalParams(Options, Value) (ParsedConfig, *ErrorNode) {
	return nil, nil
}

// ParsePerMethodParams finds nothing relevant.
func (BaseParser) ParsePerMethodParams(Options, Value) (ParsedConfig, *ErrorNode) {
	return nil, nil
}
