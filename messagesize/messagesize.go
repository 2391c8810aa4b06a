// Package messagesize validates the per-method request/response byte limit
// fields of a service config.
package messagesize

import (
	svcconfig "github.com/rpckit/svcconfig"
)

// ParserName is the registry name of this parser.
const ParserName = "message_size"

// Unset marks a limit the document did not configure.
const Unset = -1

// ParsedMessageSize is the per-method result: maximum serialized payload
// sizes in bytes for the send (request) and receive (response) directions.
type ParsedMessageSize struct {
	MaxSendBytes int
	MaxRecvBytes int
}

// Parser validates maxRequestMessageBytes / maxResponseMessageBytes.
type Parser struct {
	svcconfig.BaseParser
}

// NewParser returns the message-size parser.
func NewParser() *Parser { return &Parser{} }

// Name implements svcconfig.Parser.
func (*Parser) Name() string { return ParserName }

// ParsePerMethodParams reads the optional byte-limit fields. Both are
// non-negative integers; -1 in the result means the field was absent.
func (*Parser) ParsePerMethodParams(opts svcconfig.Options, js svcconfig.Value) (svcconfig.ParsedConfig, *svcconfig.ErrorNode) {
	if opts.Bool(svcconfig.OptDisableParsing) {
		return nil, nil
	}
	obj, ok := js.AsObject()
	if !ok {
		return nil, nil
	}

	var errs []*svcconfig.ErrorNode
	maxSend, sendErr := parseLimit(obj, "maxRequestMessageBytes")
	errs = append(errs, sendErr)
	maxRecv, recvErr := parseLimit(obj, "maxResponseMessageBytes")
	errs = append(errs, recvErr)

	if errNode := svcconfig.GroupError("Message size parser", errs); errNode != nil {
		return nil, errNode
	}
	if maxSend == Unset && maxRecv == Unset {
		return nil, nil
	}
	return &ParsedMessageSize{MaxSendBytes: maxSend, MaxRecvBytes: maxRecv}, nil
}

func parseLimit(obj *svcconfig.Object, field string) (int, *svcconfig.ErrorNode) {
	v, ok := obj.Get(field)
	if !ok {
		return Unset, nil
	}
	n, ok := v.Int64()
	if !ok {
		return Unset, svcconfig.Errorf("field:%s error:should be of type number", field)
	}
	if n < 0 {
		return Unset, svcconfig.Errorf("field:%s error:should be non-negative", field)
	}
	return int(n), nil
}
