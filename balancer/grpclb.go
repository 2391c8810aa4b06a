package balancer

import svcconfig "github.com/rpckit/svcconfig"

func init() {
	Register(grpclbBuilder{})
}

// GrpclbConfig is the grpclb policy configuration: an optional child policy
// list, resolved recursively with the same first-recognized-wins rule, and
// an optional target service name.
type GrpclbConfig struct {
	ChildPolicy Config
	ServiceName string
}

func (GrpclbConfig) PolicyName() string { return "grpclb" }

type grpclbBuilder struct{}

func (grpclbBuilder) Name() string         { return "grpclb" }
func (grpclbBuilder) RequiresConfig() bool { return false }

func (grpclbBuilder) ParseConfig(js svcconfig.Value) (Config, *svcconfig.ErrorNode) {
	obj, ok := js.AsObject()
	if !ok {
		return nil, svcconfig.GroupError("GrpcLb Parser", []*svcconfig.ErrorNode{
			svcconfig.LeafError("type should be object"),
		})
	}
	var errs []*svcconfig.ErrorNode
	cfg := GrpclbConfig{}
	if v, ok := obj.Get("childPolicy"); ok {
		children, ok := v.AsArray()
		if !ok {
			errs = append(errs, svcconfig.GroupError("field:childPolicy", []*svcconfig.ErrorNode{
				svcconfig.LeafError("type should be array"),
			}))
		} else {
			child, cerr := ParseConfigList(children)
			if cerr != nil {
				errs = append(errs, svcconfig.GroupError("field:childPolicy", []*svcconfig.ErrorNode{cerr}))
			} else {
				cfg.ChildPolicy = child
			}
		}
	}
	if v, ok := obj.Get("serviceName"); ok {
		s, ok := v.AsString()
		if !ok {
			errs = append(errs, svcconfig.GroupError("field:serviceName", []*svcconfig.ErrorNode{
				svcconfig.LeafError("type should be string"),
			}))
		} else {
			cfg.ServiceName = s
		}
	}
	if errNode := svcconfig.GroupError("GrpcLb Parser", errs); errNode != nil {
		return nil, errNode
	}
	return cfg, nil
}
