package clientchannel_test

import (
	"strings"
	"testing"
	"time"

	svcconfig "github.com/rpckit/svcconfig"
	"github.com/rpckit/svcconfig/balancer"
	"github.com/rpckit/svcconfig/clientchannel"
)

func newRegistry(t *testing.T) *svcconfig.Registry {
	t.Helper()
	reg := svcconfig.NewRegistry()
	reg.MustRegister(clientchannel.NewParser())
	if i, _ := reg.GetParserIndex(clientchannel.ParserName); i != 0 {
		t.Fatalf("client_channel parser index = %d", i)
	}
	return reg
}

func containsInOrder(t *testing.T, s string, parts ...string) {
	t.Helper()
	rest := s
	for _, part := range parts {
		i := strings.Index(rest, part)
		if i < 0 {
			t.Fatalf("missing %q (in order) in:\n%s", part, s)
		}
		rest = rest[i+len(part):]
	}
}

func globalConfigOf(t *testing.T, sc *svcconfig.ServiceConfig) *clientchannel.GlobalConfig {
	t.Helper()
	cfg, ok := sc.GetGlobalParsedConfig(0).(*clientchannel.GlobalConfig)
	if !ok {
		t.Fatalf("unexpected global config type %T", sc.GetGlobalParsedConfig(0))
	}
	return cfg
}

func TestLoadBalancingConfig_PickFirst(t *testing.T) {
	sc, err := svcconfig.Create(newRegistry(t), nil, `{"loadBalancingConfig": [{"pick_first":{}}]}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cfg := globalConfigOf(t, sc)
	if cfg.ParsedLBConfig == nil || cfg.ParsedLBConfig.PolicyName() != "pick_first" {
		t.Fatalf("lb config = %v, want pick_first", cfg.ParsedLBConfig)
	}
}

func TestLoadBalancingConfig_RoundRobinStopsAtFirstRecognized(t *testing.T) {
	// The trailing empty object is never examined once round_robin matches.
	sc, err := svcconfig.Create(newRegistry(t), nil, `{"loadBalancingConfig": [{"round_robin":{}}, {}]}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cfg := globalConfigOf(t, sc)
	if cfg.ParsedLBConfig.PolicyName() != "round_robin" {
		t.Fatalf("policy = %s, want round_robin", cfg.ParsedLBConfig.PolicyName())
	}
}

func TestLoadBalancingConfig_Grpclb(t *testing.T) {
	sc, err := svcconfig.Create(newRegistry(t), nil,
		`{"loadBalancingConfig": [{"grpclb":{"childPolicy":[{"pick_first":{}}]}}]}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cfg := globalConfigOf(t, sc)
	lb, ok := cfg.ParsedLBConfig.(balancer.GrpclbConfig)
	if !ok {
		t.Fatalf("unexpected lb config type %T", cfg.ParsedLBConfig)
	}
	if lb.PolicyName() != "grpclb" {
		t.Fatalf("policy = %s", lb.PolicyName())
	}
	if lb.ChildPolicy == nil || lb.ChildPolicy.PolicyName() != "pick_first" {
		t.Fatalf("child policy = %v, want pick_first", lb.ChildPolicy)
	}
}

func TestLoadBalancingConfig_XdsSkipsUnknownEntries(t *testing.T) {
	sc, err := svcconfig.Create(newRegistry(t), nil, `{
	  "loadBalancingConfig":[
	    { "does_not_exist":{} },
	    { "xds_cluster_resolver_experimental":{
	      "discoveryMechanisms": [
	      { "clusterName": "foo",
	        "type": "EDS"
	    } ]
	    } }
	  ]
	}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cfg := globalConfigOf(t, sc)
	lb, ok := cfg.ParsedLBConfig.(balancer.XdsClusterResolverConfig)
	if !ok {
		t.Fatalf("unexpected lb config type %T", cfg.ParsedLBConfig)
	}
	if len(lb.DiscoveryMechanisms) != 1 || lb.DiscoveryMechanisms[0].ClusterName != "foo" {
		t.Fatalf("discovery mechanisms = %v", lb.DiscoveryMechanisms)
	}
}

func TestLoadBalancingConfig_Unknown(t *testing.T) {
	_, err := svcconfig.Create(newRegistry(t), nil, `{"loadBalancingConfig": [{"unknown":{}}]}`)
	if err == nil {
		t.Fatalf("expected error")
	}
	containsInOrder(t, err.Error(),
		"Service config parsing error",
		"Global Params",
		"Client channel global parser",
		"field:loadBalancingConfig",
		"No known policies in list: unknown")
}

func TestLoadBalancingConfig_InvalidGrpclbChildPolicy(t *testing.T) {
	// The error in the first recognized entry is reported even though a
	// valid round_robin entry follows: scan-first-recognized wins.
	_, err := svcconfig.Create(newRegistry(t), nil, `{"loadBalancingConfig": [
	  {"grpclb":{"childPolicy":1}},
	  {"round_robin":{}}
	]}`)
	if err == nil {
		t.Fatalf("expected error")
	}
	containsInOrder(t, err.Error(),
		"Service config parsing error",
		"Global Params",
		"Client channel global parser",
		"field:loadBalancingConfig",
		"GrpcLb Parser",
		"field:childPolicy",
		"type should be array")
}

func TestLoadBalancingPolicy_Valid(t *testing.T) {
	sc, err := svcconfig.Create(newRegistry(t), nil, `{"loadBalancingPolicy":"pick_first"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := globalConfigOf(t, sc).ParsedDeprecatedLBPolicy; got != "pick_first" {
		t.Fatalf("deprecated policy = %q, want pick_first", got)
	}
}

func TestLoadBalancingPolicy_AllCapsLowered(t *testing.T) {
	sc, err := svcconfig.Create(newRegistry(t), nil, `{"loadBalancingPolicy":"PICK_FIRST"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := globalConfigOf(t, sc).ParsedDeprecatedLBPolicy; got != "pick_first" {
		t.Fatalf("deprecated policy = %q, want pick_first", got)
	}
}

func TestLoadBalancingPolicy_Unknown(t *testing.T) {
	_, err := svcconfig.Create(newRegistry(t), nil, `{"loadBalancingPolicy":"unknown"}`)
	if err == nil {
		t.Fatalf("expected error")
	}
	containsInOrder(t, err.Error(),
		"Service config parsing error",
		"Global Params",
		"Client channel global parser",
		"field:loadBalancingPolicy error:Unknown lb policy")
}

func TestLoadBalancingPolicy_RequiresConfigNotAllowed(t *testing.T) {
	_, err := svcconfig.Create(newRegistry(t), nil,
		`{"loadBalancingPolicy":"xds_cluster_resolver_experimental"}`)
	if err == nil {
		t.Fatalf("expected error")
	}
	containsInOrder(t, err.Error(),
		"Service config parsing error",
		"Global Params",
		"Client channel global parser",
		"field:loadBalancingPolicy error:xds_cluster_resolver_experimental requires a config. Please use loadBalancingConfig instead.")
}

func TestLoadBalancingConfig_WinsOverDeprecatedPolicy(t *testing.T) {
	sc, err := svcconfig.Create(newRegistry(t), nil, `{
	  "loadBalancingConfig": [{"round_robin":{}}],
	  "loadBalancingPolicy": "bogus_policy_never_checked"
	}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cfg := globalConfigOf(t, sc)
	if cfg.ParsedLBConfig.PolicyName() != "round_robin" {
		t.Fatalf("policy = %s", cfg.ParsedLBConfig.PolicyName())
	}
	if cfg.ParsedDeprecatedLBPolicy != "" {
		t.Fatalf("deprecated policy should be untouched, got %q", cfg.ParsedDeprecatedLBPolicy)
	}
}

func TestMethodParams_ValidTimeout(t *testing.T) {
	sc, err := svcconfig.Create(newRegistry(t), nil, `{
	  "methodConfig": [ {
	    "name": [ { "service": "TestServ", "method": "TestMethod" } ],
	    "timeout": "5s"
	  } ]
	}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	vec := sc.GetMethodParsedConfigVector("/TestServ/TestMethod")
	if vec == nil {
		t.Fatalf("expected method config vector")
	}
	cfg := vec[0].(*clientchannel.MethodConfig)
	if cfg.Timeout != 5*time.Second {
		t.Fatalf("timeout = %v, want 5s", cfg.Timeout)
	}
	if cfg.WaitForReady != nil {
		t.Fatalf("waitForReady should be unset")
	}
}

func TestMethodParams_InvalidTimeout(t *testing.T) {
	_, err := svcconfig.Create(newRegistry(t), nil, `{
	  "methodConfig": [ {
	    "name": [ { "service": "service", "method": "method" } ],
	    "timeout": "5sec"
	  } ]
	}`)
	if err == nil {
		t.Fatalf("expected error")
	}
	containsInOrder(t, err.Error(),
		"Service config parsing error",
		"Method Params",
		"methodConfig",
		"Client channel parser",
		"field:timeout error:type should be STRING of the form given by google.proto.Duration")
}

func TestMethodParams_ValidWaitForReady(t *testing.T) {
	sc, err := svcconfig.Create(newRegistry(t), nil, `{
	  "methodConfig": [ {
	    "name": [ { "service": "TestServ", "method": "TestMethod" } ],
	    "waitForReady": true
	  } ]
	}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cfg := sc.GetMethodParsedConfigVector("/TestServ/TestMethod")[0].(*clientchannel.MethodConfig)
	if cfg.WaitForReady == nil || !*cfg.WaitForReady {
		t.Fatalf("waitForReady = %v, want true", cfg.WaitForReady)
	}
}

func TestMethodParams_InvalidWaitForReady(t *testing.T) {
	_, err := svcconfig.Create(newRegistry(t), nil, `{
	  "methodConfig": [ {
	    "name": [ { "service": "service", "method": "method" } ],
	    "waitForReady": "true"
	  } ]
	}`)
	if err == nil {
		t.Fatalf("expected error")
	}
	containsInOrder(t, err.Error(),
		"Service config parsing error",
		"Method Params",
		"methodConfig",
		"Client channel parser",
		"field:waitForReady error:Type should be true/false")
}

func TestHealthCheck_Valid(t *testing.T) {
	sc, err := svcconfig.Create(newRegistry(t), nil, `{
	  "healthCheckConfig": {
	    "serviceName": "health_check_service_name"
	  }
	}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := globalConfigOf(t, sc).HealthCheckServiceName; got != "health_check_service_name" {
		t.Fatalf("health check service name = %q", got)
	}
}

func TestHealthCheck_DuplicateKeyIsJSONError(t *testing.T) {
	_, err := svcconfig.Create(newRegistry(t), nil, `{
	  "healthCheckConfig": {
	    "serviceName": "health_check_service_name"
	  },
	  "healthCheckConfig": {
	    "serviceName": "health_check_service_name1"
	  }
	}`)
	if err == nil {
		t.Fatalf("expected error")
	}
	containsInOrder(t, err.Error(),
		"JSON parsing failed",
		`duplicate key "healthCheckConfig" at index`)
}
