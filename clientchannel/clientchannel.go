// Package clientchannel validates the channel-level slice of a service
// config: load-balancing policy selection, the health-check target, and the
// per-method timeout / wait-for-ready settings.
package clientchannel

import (
	"strings"
	"time"

	svcconfig "github.com/rpckit/svcconfig"
	"github.com/rpckit/svcconfig/balancer"
)

// ParserName is the registry name of this parser.
const ParserName = "client_channel"

// GlobalConfig is the parsed channel-level result. At most one of
// ParsedLBConfig and ParsedDeprecatedLBPolicy is meaningful: when the
// structured loadBalancingConfig array is present it wins and the
// deprecated scalar field is not consulted.
type GlobalConfig struct {
	ParsedLBConfig           balancer.Config
	ParsedDeprecatedLBPolicy string
	HealthCheckServiceName   string
}

// MethodConfig is the parsed per-method result. WaitForReady is tri-state:
// nil means the document did not set it.
type MethodConfig struct {
	Timeout      time.Duration
	WaitForReady *bool
}

// Parser validates client-channel configuration.
type Parser struct{}

// NewParser returns the client-channel parser.
func NewParser() *Parser { return &Parser{} }

// Name implements svcconfig.Parser.
func (*Parser) Name() string { return ParserName }

// ParseGlobalParams validates loadBalancingConfig, the deprecated
// loadBalancingPolicy string, and healthCheckConfig.
func (*Parser) ParseGlobalParams(opts svcconfig.Options, js svcconfig.Value) (svcconfig.ParsedConfig, *svcconfig.ErrorNode) {
	if opts.Bool(svcconfig.OptDisableParsing) {
		return nil, nil
	}
	obj, ok := js.AsObject()
	if !ok {
		return nil, nil
	}

	var errs []*svcconfig.ErrorNode
	cfg := &GlobalConfig{}

	lbVal, hasLBConfig := obj.Get("loadBalancingConfig")
	if hasLBConfig {
		entries, ok := lbVal.AsArray()
		if !ok {
			errs = append(errs, svcconfig.GroupError("field:loadBalancingConfig", []*svcconfig.ErrorNode{
				svcconfig.LeafError("type should be array"),
			}))
		} else {
			lb, lerr := balancer.ParseConfigList(entries)
			if lerr != nil {
				errs = append(errs, svcconfig.GroupError("field:loadBalancingConfig", []*svcconfig.ErrorNode{lerr}))
			} else {
				cfg.ParsedLBConfig = lb
			}
		}
	}

	// The scalar field is deprecated; it is parsed for fallback only and
	// skipped entirely when the structured array is present.
	if v, ok := obj.Get("loadBalancingPolicy"); ok && !hasLBConfig {
		errs = append(errs, parseDeprecatedLBPolicy(v, cfg))
	}

	if v, ok := obj.Get("healthCheckConfig"); ok {
		errs = append(errs, parseHealthCheckConfig(v, cfg))
	}

	if errNode := svcconfig.GroupError("Client channel global parser", errs); errNode != nil {
		return nil, errNode
	}
	return cfg, nil
}

// ParsePerMethodParams validates the timeout and waitForReady fields.
func (*Parser) ParsePerMethodParams(opts svcconfig.Options, js svcconfig.Value) (svcconfig.ParsedConfig, *svcconfig.ErrorNode) {
	if opts.Bool(svcconfig.OptDisableParsing) {
		return nil, nil
	}
	obj, ok := js.AsObject()
	if !ok {
		return nil, nil
	}

	var errs []*svcconfig.ErrorNode
	cfg := &MethodConfig{}
	seen := false

	if v, ok := obj.Get("timeout"); ok {
		seen = true
		d, ok := svcconfig.ParseDuration(v)
		if !ok {
			errs = append(errs, svcconfig.LeafError("field:timeout error:type should be STRING of the form given by google.proto.Duration"))
		} else {
			cfg.Timeout = d
		}
	}
	if v, ok := obj.Get("waitForReady"); ok {
		seen = true
		b, ok := v.AsBool()
		if !ok {
			errs = append(errs, svcconfig.LeafError("field:waitForReady error:Type should be true/false"))
		} else {
			cfg.WaitForReady = &b
		}
	}

	if errNode := svcconfig.GroupError("Client channel parser", errs); errNode != nil {
		return nil, errNode
	}
	if !seen {
		return nil, nil
	}
	return cfg, nil
}

func parseDeprecatedLBPolicy(v svcconfig.Value, cfg *GlobalConfig) *svcconfig.ErrorNode {
	s, ok := v.AsString()
	if !ok {
		return svcconfig.LeafError("field:loadBalancingPolicy error:type should be string")
	}
	name := strings.ToLower(s)
	b := balancer.Get(name)
	if b == nil {
		return svcconfig.LeafError("field:loadBalancingPolicy error:Unknown lb policy")
	}
	if b.RequiresConfig() {
		return svcconfig.Errorf("field:loadBalancingPolicy error:%s requires a config. Please use loadBalancingConfig instead.", name)
	}
	cfg.ParsedDeprecatedLBPolicy = name
	return nil
}

func parseHealthCheckConfig(v svcconfig.Value, cfg *GlobalConfig) *svcconfig.ErrorNode {
	hc, ok := v.AsObject()
	if !ok {
		return svcconfig.LeafError("field:healthCheckConfig error:should be of type object")
	}
	sv, ok := hc.Get("serviceName")
	if !ok {
		return nil
	}
	s, ok := sv.AsString()
	if !ok {
		return svcconfig.LeafError("field:healthCheckConfig field:serviceName error:should be of type string")
	}
	cfg.HealthCheckServiceName = s
	return nil
}
