// Package yamlconv bridges YAML documents into the validation engine's
// value model so YAML-authored service configs can be vetted without a
// separate code path. Key order and number spellings survive the trip.
package yamlconv

import (
	"fmt"
	"strconv"

	svcconfig "github.com/rpckit/svcconfig"
	"gopkg.in/yaml.v3"
)

// ValueFromYAML parses a single YAML document into a Value. Mapping key
// order is preserved as written.
func ValueFromYAML(data []byte) (svcconfig.Value, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return svcconfig.Null(), err
	}
	if root.Kind == 0 || len(root.Content) == 0 {
		// Empty document.
		return svcconfig.Null(), nil
	}
	return fromNode(root.Content[0])
}

func fromNode(n *yaml.Node) (svcconfig.Value, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		return fromScalar(n)
	case yaml.SequenceNode:
		items := make([]svcconfig.Value, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := fromNode(c)
			if err != nil {
				return svcconfig.Null(), err
			}
			items = append(items, v)
		}
		return svcconfig.Array(items), nil
	case yaml.MappingNode:
		obj := svcconfig.NewObject()
		for i := 0; i+1 < len(n.Content); i += 2 {
			k := n.Content[i]
			if k.Kind != yaml.ScalarNode {
				return svcconfig.Null(), fmt.Errorf("yamlconv: non-scalar mapping key at line %d", k.Line)
			}
			// Duplicate keys are a hard error here too, matching the JSON
			// decoder, never last-wins.
			if _, exists := obj.Get(k.Value); exists {
				return svcconfig.Null(), fmt.Errorf("yamlconv: duplicate key %q at line %d", k.Value, k.Line)
			}
			v, err := fromNode(n.Content[i+1])
			if err != nil {
				return svcconfig.Null(), err
			}
			obj.Set(k.Value, v)
		}
		return svcconfig.ObjectValue(obj), nil
	case yaml.AliasNode:
		return fromNode(n.Alias)
	default:
		return svcconfig.Null(), fmt.Errorf("yamlconv: unsupported node kind %d at line %d", n.Kind, n.Line)
	}
}

func fromScalar(n *yaml.Node) (svcconfig.Value, error) {
	switch n.Tag {
	case "!!null":
		return svcconfig.Null(), nil
	case "!!bool":
		b, err := strconv.ParseBool(n.Value)
		if err != nil {
			return svcconfig.Null(), fmt.Errorf("yamlconv: bad bool %q at line %d", n.Value, n.Line)
		}
		return svcconfig.Bool(b), nil
	case "!!int", "!!float":
		// The YAML spelling is kept verbatim as the number text.
		return svcconfig.Number(n.Value), nil
	default:
		return svcconfig.String(n.Value), nil
	}
}
