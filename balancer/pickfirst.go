package balancer

import svcconfig "github.com/rpckit/svcconfig"

func init() {
	Register(pickFirstBuilder{})
	Register(roundRobinBuilder{})
}

// PickFirstConfig is the (empty) pick_first policy configuration.
type PickFirstConfig struct{}

func (PickFirstConfig) PolicyName() string { return "pick_first" }

type pickFirstBuilder struct{}

func (pickFirstBuilder) Name() string         { return "pick_first" }
func (pickFirstBuilder) RequiresConfig() bool { return false }
func (pickFirstBuilder) ParseConfig(svcconfig.Value) (Config, *svcconfig.ErrorNode) {
	return PickFirstConfig{}, nil
}

// RoundRobinConfig is the (empty) round_robin policy configuration.
type RoundRobinConfig struct{}

func (RoundRobinConfig) PolicyName() string { return "round_robin" }

type roundRobinBuilder struct{}

func (roundRobinBuilder) Name() string         { return "round_robin" }
func (roundRobinBuilder) RequiresConfig() bool { return false }
func (roundRobinBuilder) ParseConfig(svcconfig.Value) (Config, *svcconfig.ErrorNode) {
	return RoundRobinConfig{}, nil
}
