// Package svcconfig validates and compiles JSON service configuration
// documents, the mechanism an RPC runtime uses to control per-call
// behavior (retries, load balancing, timeouts, message-size limits,
// health checking), into an immutable, queryable ServiceConfig.
//
// The pieces:
//
//   - An ordered Registry of pluggable Parsers, each validating its own
//     slice of the document without knowing about the others
//   - A hierarchical ErrorNode tree that aggregates every failure from
//     every parser and field instead of failing fast
//   - Method-name resolution from the methodConfig array via the exact /
//     service-default / global-default precedence chain
//   - A streaming lexer SPI with duplicate-key detection; default driver is
//     encoding/json, with a go-json driver under source/gojson
//
// Design policy:
//   - Keep only public APIs in the root package; put the token engine under
//     internal/.
//   - Place concrete parsers in their own packages (retry, clientchannel,
//     messagesize), LB policy configs under balancer, and the CLI under
//     cmd/svcconfig.
//   - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	reg := svcconfig.NewRegistry()
//	reg.MustRegister(retry.NewParser())
//	reg.MustRegister(clientchannel.NewParser())
//	reg.MustRegister(messagesize.NewParser())
//
//	sc, err := svcconfig.Create(reg, nil, doc)
//	vec := sc.GetMethodParsedConfigVector("/Service/Method")
package svcconfig
