// Package balancer holds the registry of load-balancing policy config
// parsers consulted while validating the loadBalancingConfig field of a
// service config. Only configuration schema validation lives here; policy
// runtime behavior is out of scope.
package balancer

import (
	"strings"

	svcconfig "github.com/rpckit/svcconfig"
)

// Config is an opaque validated policy configuration.
type Config interface {
	PolicyName() string
}

// Builder validates the configuration schema of one policy.
type Builder interface {
	Name() string
	// RequiresConfig reports that the policy cannot be selected through the
	// deprecated scalar loadBalancingPolicy field because it needs
	// structured configuration.
	RequiresConfig() bool
	ParseConfig(js svcconfig.Value) (Config, *svcconfig.ErrorNode)
}

// m holds registered builders. Register is expected to be called from init
// functions only, before any document is parsed; lookups thereafter need no
// synchronization.
var m = make(map[string]Builder)

// Register records b under its lower-cased name, overriding any builder
// registered under the same name.
func Register(b Builder) {
	m[strings.ToLower(b.Name())] = b
}

// Get returns the builder registered under name (case-insensitive), or nil.
func Get(name string) Builder {
	return m[strings.ToLower(name)]
}

// ParseConfigList resolves an ordered loadBalancingConfig array: each entry
// is a single-key object {policyName: policyConfig}. Entries are scanned in
// order and the first entry naming a registered policy wins; later entries
// are never examined. Unrecognized names are skipped, not errors, unless
// none match at all.
func ParseConfigList(entries []svcconfig.Value) (Config, *svcconfig.ErrorNode) {
	var unknown []string
	for _, entry := range entries {
		obj, ok := entry.AsObject()
		if !ok || obj.Len() != 1 {
			return nil, svcconfig.LeafError("each entry must be an object with exactly one policy name")
		}
		name := obj.Keys()[0]
		b := Get(name)
		if b == nil {
			unknown = append(unknown, name)
			continue
		}
		cfgJSON, _ := obj.Get(name)
		return b.ParseConfig(cfgJSON)
	}
	return nil, svcconfig.Errorf("No known policies in list: %s", strings.Join(unknown, ", "))
}
