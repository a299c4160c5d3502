package bonus

import (
	"gopkg.in/yaml.v3"

	"github.com/benkolera/salty-deadlands/internal/errors"
)

// UnmarshalYAML reads a filter mapping. A missing field is Any and an
// explicit null is None:
//
//	filter:
//	  trait: Spirit
//	  aptitude: Guts
//	  concentration: ~
func (f *Filter) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return errors.InvalidArgumentf("filter must be a mapping (line %d)", value.Line)
	}

	out := Filter{}
	for i := 0; i+1 < len(value.Content); i += 2 {
		name, v := value.Content[i], value.Content[i+1]

		field, err := fieldFromNode(v)
		if err != nil {
			return errors.Wrapf(err, "filter field %q", name.Value)
		}

		switch name.Value {
		case "trait":
			out.Trait = field
		case "aptitude":
			out.Aptitude = field
		case "concentration":
			out.Concentration = field
		default:
			return errors.InvalidArgumentf("unknown filter field %q (line %d)", name.Value, name.Line)
		}
	}

	*f = out
	return nil
}

// MarshalYAML writes the filter back in the form UnmarshalYAML reads
func (f Filter) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	add := func(name string, field Field) {
		switch field.kind {
		case fieldNone:
			node.Content = append(node.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name},
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "~"})
		case fieldIs:
			node.Content = append(node.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name},
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: field.value})
		}
	}
	add("trait", f.Trait)
	add("aptitude", f.Aptitude)
	add("concentration", f.Concentration)
	return node, nil
}

func fieldFromNode(n *yaml.Node) (Field, error) {
	if n.Kind != yaml.ScalarNode {
		return Field{}, errors.InvalidArgumentf("expected a name or null (line %d)", n.Line)
	}
	if n.ShortTag() == "!!null" {
		return None(), nil
	}
	return Is(n.Value), nil
}
