package environment

import (
	"encoding/json"

	"github.com/ejmvar/ey-cli/internal/flags"
)

// Topology names the cluster configuration variant.
type Topology string

const (
	// TopologyCluster is the default topology; the backend sizes the cluster itself.
	TopologyCluster Topology = "cluster"
	// TopologySingle colocates application and database on one instance.
	TopologySingle Topology = "single"
	// TopologyCustom sizes the cluster from the supplied flags.
	TopologyCustom Topology = "custom"
)

// ClusterConfig is the sizing descriptor handed to the provisioning backend.
// Single and Custom carry the full flag set the user supplied; Cluster carries nothing.
type ClusterConfig struct {
	Configuration Topology
	Flags         flags.Flags
}

// Cluster returns the default variant.
func Cluster() ClusterConfig {
	return ClusterConfig{Configuration: TopologyCluster}
}

// Single returns the solo variant carrying a copy of f.
func Single(f flags.Flags) ClusterConfig {
	return ClusterConfig{Configuration: TopologySingle, Flags: f.Clone()}
}

// Custom returns the sized variant carrying a copy of f.
func Custom(f flags.Flags) ClusterConfig {
	return ClusterConfig{Configuration: TopologyCustom, Flags: f.Clone()}
}

// Fields flattens the variant into the shape the backend expects:
// the parsed flags plus a "configuration" key.
func (c ClusterConfig) Fields() map[string]any {
	out := map[string]any{}
	if c.Configuration != TopologyCluster {
		out = c.Flags.Map()
	}
	out["configuration"] = string(c.Configuration)
	return out
}

func (c ClusterConfig) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Fields())
}

func (c ClusterConfig) MarshalYAML() (any, error) {
	return c.Fields(), nil
}

// Config is the resolved create_env configuration. Empty strings mean the
// option was not set.
type Config struct {
	Name                 string        `json:"name,omitempty" yaml:"name,omitempty"`
	FrameworkEnv         string        `json:"framework_env,omitempty" yaml:"framework_env,omitempty"`
	Stack                string        `json:"stack,omitempty" yaml:"stack,omitempty"`
	DBStack              string        `json:"db_stack,omitempty" yaml:"db_stack,omitempty"`
	RubyVersion          string        `json:"ruby_version,omitempty" yaml:"ruby_version,omitempty"`
	ClusterConfiguration ClusterConfig `json:"cluster_configuration" yaml:"cluster_configuration"`
}

// Defaults carries values supplied by collaborators rather than by flags.
type Defaults struct {
	// EnvName is used when --name was not given.
	EnvName string
	// RubyVersion is carried through unless the stack forces one.
	RubyVersion string
}

// Resolver turns parsed flags into a Config.
type Resolver interface {
	Resolve(f flags.Flags, d Defaults) (Config, error)
}
