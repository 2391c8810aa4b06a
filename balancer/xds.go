package balancer

import svcconfig "github.com/rpckit/svcconfig"

func init() {
	Register(xdsClusterResolverBuilder{})
}

// Discovery mechanism types accepted by the xds cluster resolver.
const (
	DiscoveryEDS        = "EDS"
	DiscoveryLogicalDNS = "LOGICAL_DNS"
)

// DiscoveryMechanism names one cluster and how its endpoints are found.
type DiscoveryMechanism struct {
	ClusterName string
	Type        string
}

// XdsClusterResolverConfig is the xds_cluster_resolver_experimental policy
// configuration. The policy cannot be selected via the deprecated scalar
// field because it is meaningless without this structure.
type XdsClusterResolverConfig struct {
	DiscoveryMechanisms []DiscoveryMechanism
}

func (XdsClusterResolverConfig) PolicyName() string { return "xds_cluster_resolver_experimental" }

type xdsClusterResolverBuilder struct{}

func (xdsClusterResolverBuilder) Name() string         { return "xds_cluster_resolver_experimental" }
func (xdsClusterResolverBuilder) RequiresConfig() bool { return true }

func (xdsClusterResolverBuilder) ParseConfig(js svcconfig.Value) (Config, *svcconfig.ErrorNode) {
	wrap := func(children ...*svcconfig.ErrorNode) *svcconfig.ErrorNode {
		return svcconfig.GroupError("XdsClusterResolver Parser", children)
	}
	obj, ok := js.AsObject()
	if !ok {
		return nil, wrap(svcconfig.LeafError("type should be object"))
	}
	v, ok := obj.Get("discoveryMechanisms")
	if !ok {
		return nil, wrap(svcconfig.LeafError("field:discoveryMechanisms error:required field missing"))
	}
	list, ok := v.AsArray()
	if !ok {
		return nil, wrap(svcconfig.LeafError("field:discoveryMechanisms error:type should be array"))
	}
	if len(list) == 0 {
		return nil, wrap(svcconfig.LeafError("field:discoveryMechanisms error:must be non-empty"))
	}
	var errs []*svcconfig.ErrorNode
	cfg := XdsClusterResolverConfig{}
	for i, entry := range list {
		mech, merr := parseDiscoveryMechanism(i, entry)
		if merr != nil {
			errs = append(errs, merr)
			continue
		}
		cfg.DiscoveryMechanisms = append(cfg.DiscoveryMechanisms, mech)
	}
	if errNode := wrap(errs...); errNode != nil {
		return nil, errNode
	}
	return cfg, nil
}

func parseDiscoveryMechanism(index int, entry svcconfig.Value) (DiscoveryMechanism, *svcconfig.ErrorNode) {
	obj, ok := entry.AsObject()
	if !ok {
		return DiscoveryMechanism{}, svcconfig.Errorf("field:discoveryMechanisms index %d error:type should be object", index)
	}
	mech := DiscoveryMechanism{}
	var errs []*svcconfig.ErrorNode
	if v, ok := obj.Get("clusterName"); !ok {
		errs = append(errs, svcconfig.LeafError("field:clusterName error:required field missing"))
	} else if s, ok := v.AsString(); !ok {
		errs = append(errs, svcconfig.LeafError("field:clusterName error:type should be string"))
	} else {
		mech.ClusterName = s
	}
	if v, ok := obj.Get("type"); !ok {
		errs = append(errs, svcconfig.LeafError("field:type error:required field missing"))
	} else if s, ok := v.AsString(); !ok {
		errs = append(errs, svcconfig.LeafError("field:type error:type should be string"))
	} else if s != DiscoveryEDS && s != DiscoveryLogicalDNS {
		errs = append(errs, svcconfig.Errorf("field:type error:unknown discovery mechanism %q", s))
	} else {
		mech.Type = s
	}
	if errNode := svcconfig.GroupError("discoveryMechanisms", errs); errNode != nil {
		return DiscoveryMechanism{}, errNode
	}
	return mech, nil
}
