// Package config parses the YAML tree description (spec §6) and builds a
// sweeprun experiment tree from it using gopkg.in/yaml.v3.
package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// RootConfig is the document root: a name, worker count, optional working
// directory and fixed parameters, and exactly one of Comparison or Optimised.
type RootConfig struct {
	Name    string         `yaml:"name"`
	Workers int            `yaml:"workers"`
	WorkDir string         `yaml:"workdir"`
	Fixed   map[string]any `yaml:"fixed"`

	Comparison nodeList `yaml:"comparison"`
	Optimised  nodeList `yaml:"optimised"`
}

// NodeConfig is one node of the tree: a Comparison node when it appears under
// a "comparison" key, an Optimised node when it appears under "optimised"
// (distinguished by the caller, not by this struct's shape, since both share
// params/commands/repeat). Optimiser and OptParams are only meaningful for
// Optimised nodes.
type NodeConfig struct {
	Params    map[string]any `yaml:"params"`
	Commands  []string       `yaml:"commands"`
	Repeat    int            `yaml:"repeat"`
	Optimiser string         `yaml:"optimiser"`
	OptParams map[string]any `yaml:"opt_params"`

	// Only Optimised children are supported below any node (spec schema
	// wording is generic; see DESIGN.md for why the tree only ever nests
	// Optimised children under either node kind).
	Optimised  nodeList `yaml:"optimised"`
	Comparison nodeList `yaml:"comparison"`
}

// nodeList decodes either a single mapping or a sequence of mappings into a
// slice, per spec §6: "optional child containers ... (object or list of
// objects)".
type nodeList []NodeConfig

func (nl *nodeList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.SequenceNode:
		var nodes []NodeConfig
		if err := value.Decode(&nodes); err != nil {
			return err
		}
		*nl = nodes
		return nil
	case yaml.MappingNode:
		var n NodeConfig
		if err := value.Decode(&n); err != nil {
			return err
		}
		*nl = nodeList{n}
		return nil
	case yaml.ScalarNode:
		if value.Tag == "!!null" {
			*nl = nil
			return nil
		}
		return fmt.Errorf("expected a mapping or a list of mappings, got scalar %q", value.Value)
	default:
		return fmt.Errorf("expected a mapping or a list of mappings")
	}
}
